package policy

import (
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/provlabs/sharevault/types"
	"github.com/provlabs/sharevault/utils"
)

// Naive prices shares against the balance actually held at the vault address
// with no virtual offsets. A deposit that rounds to zero shares is accepted.
type Naive struct{}

var _ Policy = Naive{}

func (Naive) Kind() types.PolicyKind { return types.PolicyNaive }

func (Naive) TotalAssets(_ types.Vault, held sdkmath.Int, _ time.Time) sdkmath.Int {
	return held
}

func (Naive) ConvertToShares(vault types.Vault, totalAssets, assets sdkmath.Int) (sdkmath.Int, error) {
	return utils.CalculateSharesFromAssets(assets, totalAssets, vault.TotalShares, sdkmath.ZeroInt(), sdkmath.ZeroInt())
}

func (Naive) ConvertToAssets(vault types.Vault, totalAssets, shares sdkmath.Int) (sdkmath.Int, error) {
	return utils.CalculateAssetsFromShares(shares, vault.TotalShares, totalAssets, sdkmath.ZeroInt(), sdkmath.ZeroInt())
}

func (Naive) SharePrice(vault types.Vault, totalAssets sdkmath.Int) (sdkmath.LegacyDec, error) {
	if vault.TotalShares.IsPositive() && totalAssets.IsZero() {
		return sdkmath.LegacyDec{}, types.ErrArithmeticOverflow.Wrapf("vault %s has %s shares and no assets", vault.ID, vault.TotalShares)
	}
	return utils.CalculateSharePrice(totalAssets, vault.TotalShares, sdkmath.ZeroInt(), sdkmath.ZeroInt())
}
