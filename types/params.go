package types

import (
	fmt "fmt"
	"time"

	sdkmath "cosmossdk.io/math"
)

const (
	// DefaultVestingPeriod is how long an absorbed donation takes to fully enter the ledger.
	DefaultVestingPeriod = 24 * time.Hour
	// DefaultMaxObservationsPerFeed caps the TWAP window length when a feed does not set one.
	DefaultMaxObservationsPerFeed = 1000
)

// Params are the module-wide defaults applied when a vault or feed leaves a field unset.
type Params struct {
	DefaultVirtualAssets   sdkmath.Int   `json:"default_virtual_assets"`
	DefaultVirtualShares   sdkmath.Int   `json:"default_virtual_shares"`
	DefaultVestingPeriod   time.Duration `json:"default_vesting_period"`
	MaxObservationsPerFeed uint32        `json:"max_observations_per_feed"`
}

// DefaultParams returns the default module parameters. Equal virtual assets and
// virtual shares make the first deposit into an empty vault mint one share per asset unit.
func DefaultParams() Params {
	return Params{
		DefaultVirtualAssets:   sdkmath.OneInt(),
		DefaultVirtualShares:   sdkmath.OneInt(),
		DefaultVestingPeriod:   DefaultVestingPeriod,
		MaxObservationsPerFeed: DefaultMaxObservationsPerFeed,
	}
}

// Validate performs basic validation on the params.
func (p Params) Validate() error {
	if p.DefaultVirtualAssets.IsNil() || !p.DefaultVirtualAssets.IsPositive() {
		return fmt.Errorf("default virtual assets must be positive")
	}
	if p.DefaultVirtualShares.IsNil() || !p.DefaultVirtualShares.IsPositive() {
		return fmt.Errorf("default virtual shares must be positive")
	}
	if p.DefaultVestingPeriod < 0 {
		return fmt.Errorf("default vesting period cannot be negative")
	}
	if p.MaxObservationsPerFeed == 0 {
		return fmt.Errorf("max observations per feed must be positive")
	}
	return nil
}
