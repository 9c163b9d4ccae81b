package policy

import (
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/provlabs/sharevault/types"
	"github.com/provlabs/sharevault/utils"
)

// Offset prices shares against the internally tracked asset counter padded
// with the vault's virtual assets and virtual shares. Untracked transfers to
// the vault address never move the price until they are absorbed and vested.
// Conversions that would round a positive input to zero are rejected.
type Offset struct{}

var _ Policy = Offset{}

func (Offset) Kind() types.PolicyKind { return types.PolicyOffset }

// TotalAssets returns the tracked counter plus any vested donation not yet released.
func (Offset) TotalAssets(vault types.Vault, _ sdkmath.Int, now time.Time) sdkmath.Int {
	return vault.AccountedAssetsAt(now)
}

// ConvertToShares mints one share per asset unit into a vault with no shares
// outstanding, whatever its leftover asset counter says.
func (Offset) ConvertToShares(vault types.Vault, totalAssets, assets sdkmath.Int) (sdkmath.Int, error) {
	if vault.TotalShares.IsZero() {
		return assets, nil
	}
	shares, err := utils.CalculateSharesFromAssets(assets, totalAssets, vault.TotalShares, vault.VirtualAssets, vault.VirtualShares)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if assets.IsPositive() && shares.IsZero() {
		return sdkmath.Int{}, types.ErrInvalidAmount.Wrapf("deposit of %s %s would mint zero shares", assets, vault.Denom)
	}
	return shares, nil
}

func (Offset) ConvertToAssets(vault types.Vault, totalAssets, shares sdkmath.Int) (sdkmath.Int, error) {
	assets, err := utils.CalculateAssetsFromShares(shares, vault.TotalShares, totalAssets, vault.VirtualAssets, vault.VirtualShares)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if shares.IsPositive() && assets.IsZero() {
		return sdkmath.Int{}, types.ErrInvalidAmount.Wrapf("redeeming %s shares would return zero assets", shares)
	}
	return assets, nil
}

func (Offset) SharePrice(vault types.Vault, totalAssets sdkmath.Int) (sdkmath.LegacyDec, error) {
	return utils.CalculateSharePrice(totalAssets, vault.TotalShares, vault.VirtualAssets, vault.VirtualShares)
}
