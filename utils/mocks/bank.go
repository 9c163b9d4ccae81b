package mocks

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/store"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/provlabs/sharevault/types"
)

var _ types.BankKeeper = (*BankKeeper)(nil)

// balancesPrefix sits well clear of the module's own collection prefixes.
var balancesPrefix = collections.NewPrefix(255)

// BankKeeper is a store-backed stand-in for x/bank. Balances live under their
// own prefix of the module store, so they commit or roll back with the same
// cached context as the module state.
type BankKeeper struct {
	balances collections.Map[collections.Pair[sdk.AccAddress, string], sdkmath.Int]

	// SendErr, when set, is returned by the next SendCoins call and then cleared.
	SendErr error
}

// NewBankKeeper creates a new BankKeeper on the given store.
func NewBankKeeper(storeService store.KVStoreService) *BankKeeper {
	sb := collections.NewSchemaBuilder(storeService)
	b := &BankKeeper{
		balances: collections.NewMap(sb, balancesPrefix, "balances",
			collections.PairKeyCodec(sdk.AccAddressKey, collections.StringKey), sdk.IntValue),
	}
	if _, err := sb.Build(); err != nil {
		panic(err)
	}
	return b
}

// Fund credits coins to addr out of thin air. A transfer straight to a vault
// address is how a donation is simulated.
func (b *BankKeeper) Fund(ctx context.Context, addr sdk.AccAddress, coins sdk.Coins) error {
	for _, c := range coins {
		bal := b.GetBalance(ctx, addr, c.Denom).Amount
		if err := b.balances.Set(ctx, collections.Join(addr, c.Denom), bal.Add(c.Amount)); err != nil {
			return err
		}
	}
	return nil
}

func (b *BankKeeper) SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	if err := b.SendErr; err != nil {
		b.SendErr = nil
		return err
	}
	for _, c := range amt {
		from := b.GetBalance(ctx, fromAddr, c.Denom).Amount
		if from.LT(c.Amount) {
			return sdkerrors.ErrInsufficientFunds.Wrapf("%s%s is smaller than %s", from, c.Denom, c)
		}
		if err := b.balances.Set(ctx, collections.Join(fromAddr, c.Denom), from.Sub(c.Amount)); err != nil {
			return err
		}
		to := b.GetBalance(ctx, toAddr, c.Denom).Amount
		if err := b.balances.Set(ctx, collections.Join(toAddr, c.Denom), to.Add(c.Amount)); err != nil {
			return err
		}
	}
	return nil
}

func (b *BankKeeper) GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	amt, err := b.balances.Get(ctx, collections.Join(addr, denom))
	if err != nil {
		if !errors.Is(err, collections.ErrNotFound) {
			panic(err)
		}
		amt = sdkmath.ZeroInt()
	}
	return sdk.NewCoin(denom, amt)
}
