package keeper

import (
	"fmt"

	"cosmossdk.io/collections"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/sharevault/types"
)

// InitGenesis initializes the module state from genesis.
func (k Keeper) InitGenesis(ctx sdk.Context, genState *types.GenesisState) {
	if genState == nil {
		return
	}

	if err := genState.Validate(); err != nil {
		panic(fmt.Errorf("invalid %s genesis state: %w", types.ModuleName, err))
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if err := k.Params.Set(ctx, genState.Params); err != nil {
		panic(err)
	}

	for _, v := range genState.Vaults {
		if err := k.Vaults.Set(ctx, v.ID, v); err != nil {
			panic(fmt.Errorf("failed to store vault %s: %w", v.ID, err))
		}
		if v.Vesting != nil {
			if err := k.VestingQueue.Enqueue(ctx, v.ID, v.Vesting.End); err != nil {
				panic(fmt.Errorf("failed to schedule vesting for vault %s: %w", v.ID, err))
			}
		}
	}

	for i, b := range genState.Balances {
		holder, err := k.addressCodec.StringToBytes(b.Holder)
		if err != nil {
			panic(fmt.Errorf("invalid holder at balance index %d: %w", i, err))
		}
		if err := k.Shares.Set(ctx, collections.Join(b.VaultID, sdk.AccAddress(holder)), b.Shares); err != nil {
			panic(fmt.Errorf("failed to store balance for %s in vault %s: %w", b.Holder, b.VaultID, err))
		}
	}

	for _, f := range genState.Feeds {
		if err := k.Feeds.Set(ctx, f.ID, f); err != nil {
			panic(fmt.Errorf("failed to store feed %s: %w", f.ID, err))
		}
	}

	for _, o := range genState.Observations {
		if err := k.Observations.Append(ctx, o.FeedID, o.Point); err != nil {
			panic(fmt.Errorf("failed to store observation for feed %s: %w", o.FeedID, err))
		}
	}
}

// ExportGenesis exports the current state of the module.
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	k.mu.RLock()
	defer k.mu.RUnlock()

	params, err := k.GetParams(ctx)
	if err != nil {
		panic(fmt.Errorf("failed to get %s module params: %w", types.ModuleName, err))
	}

	vaults, err := k.getVaults(ctx)
	if err != nil {
		panic(fmt.Errorf("failed to export vaults: %w", err))
	}

	balances, err := k.getAllBalances(ctx)
	if err != nil {
		panic(fmt.Errorf("failed to export share balances: %w", err))
	}

	feeds, err := k.getFeeds(ctx)
	if err != nil {
		panic(fmt.Errorf("failed to export feeds: %w", err))
	}

	observations, err := k.Observations.Export(ctx)
	if err != nil {
		panic(fmt.Errorf("failed to export observations: %w", err))
	}

	return &types.GenesisState{
		Params:       params,
		Vaults:       vaults,
		Balances:     balances,
		Feeds:        feeds,
		Observations: observations,
	}
}
