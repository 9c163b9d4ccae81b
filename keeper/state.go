package keeper

import (
	"context"

	"cosmossdk.io/collections"
	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/sharevault/types"
)

// GetVaults is a helper function for retrieving all vaults from state, ordered by id.
func (k Keeper) GetVaults(ctx context.Context) ([]types.Vault, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	return k.getVaults(ctx)
}

// GetFeeds is a helper function for retrieving all price feeds from state, ordered by id.
func (k Keeper) GetFeeds(ctx context.Context) ([]types.Feed, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	return k.getFeeds(ctx)
}

// GetBalances returns every holder's share balance in the vault.
func (k Keeper) GetBalances(ctx context.Context, vaultID string) ([]types.ShareBalance, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	return k.walkBalances(ctx, collections.NewPrefixedPairRange[string, sdk.AccAddress](vaultID))
}

func (k Keeper) getVaults(ctx context.Context) ([]types.Vault, error) {
	vaults := []types.Vault{}

	err := k.Vaults.Walk(ctx, nil, func(_ string, vault types.Vault) (stop bool, err error) {
		vaults = append(vaults, vault)
		return false, nil
	})

	return vaults, err
}

func (k Keeper) getFeeds(ctx context.Context) ([]types.Feed, error) {
	feeds := []types.Feed{}

	err := k.Feeds.Walk(ctx, nil, func(_ string, feed types.Feed) (stop bool, err error) {
		feeds = append(feeds, feed)
		return false, nil
	})

	return feeds, err
}

// getAllBalances returns every share balance across all vaults.
func (k Keeper) getAllBalances(ctx context.Context) ([]types.ShareBalance, error) {
	return k.walkBalances(ctx, nil)
}

func (k Keeper) walkBalances(ctx context.Context, ranger collections.Ranger[collections.Pair[string, sdk.AccAddress]]) ([]types.ShareBalance, error) {
	balances := []types.ShareBalance{}

	err := k.Shares.Walk(ctx, ranger, func(key collections.Pair[string, sdk.AccAddress], shares sdkmath.Int) (stop bool, err error) {
		holder, err := k.addressCodec.BytesToString(key.K2())
		if err != nil {
			return true, err
		}
		balances = append(balances, types.ShareBalance{
			VaultID: key.K1(),
			Holder:  holder,
			Shares:  shares,
		})
		return false, nil
	})

	return balances, err
}
