package utils

import (
	"cosmossdk.io/math"

	"github.com/provlabs/sharevault/types"
)

// CalculateSharesFromAssets returns the number of shares minted for a deposit of
// assets, floored so that rounding always favors the vault.
//
// Formula (integer, floor):
//
//	let ta' = totalAssets + virtualAssets
//	let ts' = totalShares + virtualShares
//	if ts' == 0:
//	    shares = assets
//	else:
//	    shares = floor( assets * ts' / ta' )
//
// Passing zero offsets yields the unprotected formula: the first deposit into an
// empty vault mints 1:1 and every later deposit is priced purely off totalAssets.
// Passing positive offsets keeps the ratio bounded when both totals are tiny,
// which is what defeats first-depositor inflation.
func CalculateSharesFromAssets(assets, totalAssets, totalShares, virtualAssets, virtualShares math.Int) (math.Int, error) {
	if assets.IsNegative() || totalAssets.IsNegative() || totalShares.IsNegative() ||
		virtualAssets.IsNegative() || virtualShares.IsNegative() {
		return math.Int{}, types.ErrInvalidAmount.Wrap("invalid input: negative values not allowed")
	}
	if assets.IsZero() {
		return math.ZeroInt(), nil
	}

	ts, err := SafeAdd(totalShares, virtualShares)
	if err != nil {
		return math.Int{}, err
	}
	if ts.IsZero() {
		return assets, nil
	}

	ta, err := SafeAdd(totalAssets, virtualAssets)
	if err != nil {
		return math.Int{}, err
	}
	if ta.IsZero() {
		return math.Int{}, types.ErrArithmeticOverflow.Wrapf("%s shares outstanding against a zero asset base", totalShares)
	}
	return MulDivFloor(assets, ts, ta)
}

// CalculateAssetsFromShares returns the assets paid out for redeeming shares,
// floored so that rounding always favors the vault.
//
// Formula (integer, floor):
//
//	let ta' = totalAssets + virtualAssets
//	let ts' = totalShares + virtualShares
//	if ts' == 0:
//	    assets = 0
//	else:
//	    assets = min( floor( shares * ta' / ts' ), totalAssets )
//
// The cap keeps the virtual assets from ever being paid out.
func CalculateAssetsFromShares(shares, totalShares, totalAssets, virtualAssets, virtualShares math.Int) (math.Int, error) {
	if shares.IsNegative() || totalShares.IsNegative() || totalAssets.IsNegative() ||
		virtualAssets.IsNegative() || virtualShares.IsNegative() {
		return math.Int{}, types.ErrInvalidAmount.Wrap("invalid input: negative values not allowed")
	}
	if shares.IsZero() {
		return math.ZeroInt(), nil
	}

	ts, err := SafeAdd(totalShares, virtualShares)
	if err != nil {
		return math.Int{}, err
	}
	if ts.IsZero() {
		return math.ZeroInt(), nil
	}

	ta, err := SafeAdd(totalAssets, virtualAssets)
	if err != nil {
		return math.Int{}, err
	}
	out, err := MulDivFloor(shares, ta, ts)
	if err != nil {
		return math.Int{}, err
	}
	return math.MinInt(out, totalAssets), nil
}

// CalculateSharePrice returns (totalAssets + virtualAssets) / (totalShares + virtualShares)
// as a decimal. An empty vault without offsets is quoted at 1.
func CalculateSharePrice(totalAssets, totalShares, virtualAssets, virtualShares math.Int) (math.LegacyDec, error) {
	if totalAssets.IsNegative() || totalShares.IsNegative() || virtualAssets.IsNegative() || virtualShares.IsNegative() {
		return math.LegacyDec{}, types.ErrInvalidAmount.Wrap("invalid input: negative values not allowed")
	}
	ts, err := SafeAdd(totalShares, virtualShares)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if ts.IsZero() {
		return math.LegacyOneDec(), nil
	}
	ta, err := SafeAdd(totalAssets, virtualAssets)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return catchDecOverflow(func() math.LegacyDec {
		return math.LegacyNewDecFromInt(ta).QuoInt(ts)
	})
}
