package types

import "cosmossdk.io/errors"

var (
	ErrInvalidRequest      = errors.Register(ModuleName, 2, "invalid request")
	ErrInvalidAmount       = errors.Register(ModuleName, 3, "invalid amount")
	ErrInsufficientShares  = errors.Register(ModuleName, 4, "insufficient shares")
	ErrInsufficientHistory = errors.Register(ModuleName, 5, "insufficient price history")
	ErrStaleFeed           = errors.Register(ModuleName, 6, "stale price feed")
	ErrArithmeticOverflow  = errors.Register(ModuleName, 7, "arithmetic overflow")
	ErrVaultNotFound       = errors.Register(ModuleName, 8, "vault not found")
	ErrVaultExists         = errors.Register(ModuleName, 9, "vault already exists")
	ErrFeedNotFound        = errors.Register(ModuleName, 10, "price feed not found")
	ErrFeedExists          = errors.Register(ModuleName, 11, "price feed already exists")
	ErrInvalidPrice        = errors.Register(ModuleName, 12, "invalid price")
	ErrInvalidObservation  = errors.Register(ModuleName, 13, "invalid observation")
	ErrUnattested          = errors.Register(ModuleName, 14, "observation is not attested")
)
