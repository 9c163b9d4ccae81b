package utils

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/provlabs/sharevault/types"
)

// MulDivFloor returns floor(a * b / c) for non-negative operands.
// An intermediate product past the Int bit limit or a zero divisor is reported
// as ErrArithmeticOverflow instead of panicking.
func MulDivFloor(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, types.ErrArithmeticOverflow.Wrapf("division of %s * %s by zero", a, b)
	}
	product, err := a.SafeMul(b)
	if err != nil {
		return math.Int{}, types.ErrArithmeticOverflow.Wrapf("%s * %s: %v", a, b, err)
	}
	return product.Quo(c), nil
}

// SafeAdd returns a + b, reporting overflow as ErrArithmeticOverflow.
func SafeAdd(a, b math.Int) (math.Int, error) {
	sum, err := a.SafeAdd(b)
	if err != nil {
		return math.Int{}, types.ErrArithmeticOverflow.Wrapf("%s + %s: %v", a, b, err)
	}
	return sum, nil
}

// catchDecOverflow converts a LegacyDec overflow panic raised inside fn into
// ErrArithmeticOverflow. LegacyDec has no checked arithmetic.
func catchDecOverflow(fn func() math.LegacyDec) (result math.LegacyDec, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = types.ErrArithmeticOverflow.Wrap(fmt.Sprint(r))
		}
	}()
	return fn(), nil
}
