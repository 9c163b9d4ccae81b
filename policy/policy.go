// Package policy holds the share accounting policies a vault can be created with.
package policy

import (
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/provlabs/sharevault/types"
)

// Policy converts between assets and shares for a vault.
//
// TotalAssets picks the asset base the conversions price against. held is the
// live balance at the vault address and now is the block time. Only the naive
// policy reads held, which is what exposes it to donations.
type Policy interface {
	Kind() types.PolicyKind
	TotalAssets(vault types.Vault, held sdkmath.Int, now time.Time) sdkmath.Int
	ConvertToShares(vault types.Vault, totalAssets, assets sdkmath.Int) (sdkmath.Int, error)
	ConvertToAssets(vault types.Vault, totalAssets, shares sdkmath.Int) (sdkmath.Int, error)
	SharePrice(vault types.Vault, totalAssets sdkmath.Int) (sdkmath.LegacyDec, error)
}

// New returns the policy for the given kind.
func New(kind types.PolicyKind) (Policy, error) {
	switch kind {
	case types.PolicyNaive:
		return Naive{}, nil
	case types.PolicyOffset:
		return Offset{}, nil
	default:
		return nil, types.ErrInvalidRequest.Wrapf("unknown accounting policy %q", string(kind))
	}
}
