package types

import (
	fmt "fmt"
	"regexp"
	"time"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PolicyKind selects how a vault prices deposits and withdrawals.
type PolicyKind string

const (
	// PolicyNaive prices against the live balance held at the vault address.
	// Anyone can move that balance with a plain transfer, so it admits the donation attack.
	PolicyNaive PolicyKind = "naive"
	// PolicyOffset prices against the internally tracked asset counter padded
	// with virtual assets and virtual shares.
	PolicyOffset PolicyKind = "offset"
)

var idRegex = regexp.MustCompile(`^[a-z][a-z0-9-]{2,63}$`)

// Validate returns an error if the policy kind is unknown.
func (p PolicyKind) Validate() error {
	switch p {
	case PolicyNaive, PolicyOffset:
		return nil
	default:
		return fmt.Errorf("unknown accounting policy %q", string(p))
	}
}

// ValidateVaultID checks the vault identifier format.
func ValidateVaultID(id string) error {
	if !idRegex.MatchString(id) {
		return fmt.Errorf("invalid vault id %q", id)
	}
	return nil
}

// ValidateFeedID checks the price feed identifier format.
func ValidateFeedID(id string) error {
	if !idRegex.MatchString(id) {
		return fmt.Errorf("invalid feed id %q", id)
	}
	return nil
}

// DonationVesting is a linear release schedule for assets that arrived at the
// vault address outside of Deposit and were explicitly absorbed.
type DonationVesting struct {
	Total    sdkmath.Int `json:"total"`
	Released sdkmath.Int `json:"released"`
	Start    time.Time   `json:"start"`
	End      time.Time   `json:"end"`
}

// VestedAt returns the cumulative amount of the schedule vested at now, floored.
func (d DonationVesting) VestedAt(now time.Time) sdkmath.Int {
	if !now.After(d.Start) {
		return sdkmath.ZeroInt()
	}
	if !now.Before(d.End) {
		return d.Total
	}
	elapsed := sdkmath.NewInt(now.Sub(d.Start).Nanoseconds())
	span := sdkmath.NewInt(d.End.Sub(d.Start).Nanoseconds())
	scaled, err := d.Total.SafeMul(elapsed)
	if err != nil {
		return d.Total.Quo(span).Mul(elapsed)
	}
	return scaled.Quo(span)
}

// Releasable returns the vested amount not yet released into the ledger.
func (d DonationVesting) Releasable(now time.Time) sdkmath.Int {
	return d.VestedAt(now).Sub(d.Released)
}

// Unvested returns the amount still locked in the schedule at now.
func (d DonationVesting) Unvested(now time.Time) sdkmath.Int {
	return d.Total.Sub(d.VestedAt(now))
}

// Validate performs basic validation on the schedule.
func (d DonationVesting) Validate() error {
	if d.Total.IsNil() || !d.Total.IsPositive() {
		return fmt.Errorf("vesting total must be positive")
	}
	if d.Released.IsNil() || d.Released.IsNegative() || d.Released.GT(d.Total) {
		return fmt.Errorf("vesting released must be within [0, total]")
	}
	if d.End.Before(d.Start) {
		return fmt.Errorf("vesting end %s is before start %s", d.End, d.Start)
	}
	return nil
}

// Vault is the persisted ledger of a single-asset share vault.
type Vault struct {
	ID            string           `json:"id"`
	Denom         string           `json:"denom"`
	Policy        PolicyKind       `json:"policy"`
	TotalAssets   sdkmath.Int      `json:"total_assets"`
	TotalShares   sdkmath.Int      `json:"total_shares"`
	VirtualAssets sdkmath.Int      `json:"virtual_assets"`
	VirtualShares sdkmath.Int      `json:"virtual_shares"`
	VestingPeriod time.Duration    `json:"vesting_period"`
	Vesting       *DonationVesting `json:"vesting,omitempty"`
}

// GetAddress returns the custody address for the vault.
func (v Vault) GetAddress() sdk.AccAddress {
	return GetVaultAddress(v.ID)
}

// AccountedAssetsAt returns the internal asset counter including donations
// vested but not yet released at now.
func (v Vault) AccountedAssetsAt(now time.Time) sdkmath.Int {
	if v.Vesting == nil {
		return v.TotalAssets
	}
	return v.TotalAssets.Add(v.Vesting.Releasable(now))
}

// Validate performs basic validation on the vault fields.
func (v Vault) Validate() error {
	if err := ValidateVaultID(v.ID); err != nil {
		return err
	}
	if err := sdk.ValidateDenom(v.Denom); err != nil {
		return fmt.Errorf("invalid asset denom: %w", err)
	}
	if err := v.Policy.Validate(); err != nil {
		return err
	}
	if v.TotalAssets.IsNil() || v.TotalAssets.IsNegative() {
		return fmt.Errorf("total assets must be non-negative")
	}
	if v.TotalShares.IsNil() || v.TotalShares.IsNegative() {
		return fmt.Errorf("total shares must be non-negative")
	}
	if v.VestingPeriod < 0 {
		return fmt.Errorf("vesting period cannot be negative")
	}

	switch v.Policy {
	case PolicyOffset:
		if v.VirtualAssets.IsNil() || !v.VirtualAssets.IsPositive() {
			return fmt.Errorf("virtual assets must be positive for the %s policy", v.Policy)
		}
		if v.VirtualShares.IsNil() || !v.VirtualShares.IsPositive() {
			return fmt.Errorf("virtual shares must be positive for the %s policy", v.Policy)
		}
		if v.Vesting != nil {
			if err := v.Vesting.Validate(); err != nil {
				return fmt.Errorf("invalid donation vesting: %w", err)
			}
		}
		if v.TotalShares.IsZero() && (v.TotalAssets.IsPositive() || v.Vesting != nil) {
			return fmt.Errorf("vault with no shares outstanding cannot track assets or vest donations")
		}
	case PolicyNaive:
		if v.Vesting != nil {
			return fmt.Errorf("donation vesting is not supported by the %s policy", v.Policy)
		}
	}
	return nil
}

// VaultConfig holds the attributes for creating a new vault. Nil offsets and a
// zero vesting period fall back to the module params.
type VaultConfig struct {
	ID            string
	Denom         string
	Policy        PolicyKind
	VirtualAssets sdkmath.Int
	VirtualShares sdkmath.Int
	VestingPeriod time.Duration
}

// NewVault builds an empty vault from the config, filling defaults from params.
func NewVault(cfg VaultConfig, params Params) Vault {
	v := Vault{
		ID:            cfg.ID,
		Denom:         cfg.Denom,
		Policy:        cfg.Policy,
		TotalAssets:   sdkmath.ZeroInt(),
		TotalShares:   sdkmath.ZeroInt(),
		VirtualAssets: sdkmath.ZeroInt(),
		VirtualShares: sdkmath.ZeroInt(),
	}
	if cfg.Policy != PolicyOffset {
		return v
	}

	v.VirtualAssets = params.DefaultVirtualAssets
	if !cfg.VirtualAssets.IsNil() {
		v.VirtualAssets = cfg.VirtualAssets
	}
	v.VirtualShares = params.DefaultVirtualShares
	if !cfg.VirtualShares.IsNil() {
		v.VirtualShares = cfg.VirtualShares
	}
	v.VestingPeriod = params.DefaultVestingPeriod
	if cfg.VestingPeriod != 0 {
		v.VestingPeriod = cfg.VestingPeriod
	}
	return v
}

// ShareBalance is a single holder's share entry, used in genesis.
type ShareBalance struct {
	VaultID string      `json:"vault_id"`
	Holder  string      `json:"holder"`
	Shares  sdkmath.Int `json:"shares"`
}

// Validate performs basic validation on the balance entry.
func (b ShareBalance) Validate() error {
	if err := ValidateVaultID(b.VaultID); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(b.Holder); err != nil {
		return fmt.Errorf("invalid holder address: %w", err)
	}
	if b.Shares.IsNil() || !b.Shares.IsPositive() {
		return fmt.Errorf("share balance for %s must be positive", b.Holder)
	}
	return nil
}
