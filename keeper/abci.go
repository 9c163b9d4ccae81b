package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/sharevault/types"
	"github.com/provlabs/sharevault/utils"
)

// BeginBlocker is a hook that is called at the beginning of every block.
func (k *Keeper) BeginBlocker(ctx sdk.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := k.finalizeDueVesting(ctx); err != nil {
		return err
	}
	return k.pruneAllFeeds(ctx)
}

// finalizeDueVesting releases the remainder of every donation schedule that
// has ended. Schedules still running are released lazily by the next mutation
// of their vault. A vault that fails is logged and skipped.
func (k *Keeper) finalizeDueVesting(ctx sdk.Context) error {
	now := ctx.BlockTime()
	due, err := k.VestingQueue.Due(ctx, now)
	if err != nil {
		return err
	}

	for _, key := range due {
		vaultID := key.K2()
		_, err := atomically(ctx, func(ctx sdk.Context) (struct{}, error) {
			// drop the entry first so a stale one never lingers
			if err := k.VestingQueue.Remove(ctx, key); err != nil {
				return struct{}{}, err
			}
			vault, _, err := k.loadVault(ctx, vaultID)
			if err != nil {
				return struct{}{}, err
			}
			if err := k.releaseVested(ctx, &vault, now); err != nil {
				return struct{}{}, err
			}
			return struct{}{}, k.Vaults.Set(ctx, vaultID, vault)
		})
		if err != nil {
			k.getLogger(ctx).Error("failed to release vested donation", "vault_id", vaultID, "error", err)
		}
	}
	return nil
}

// pruneAllFeeds evicts TWAP observations that have aged out of their window.
func (k *Keeper) pruneAllFeeds(ctx sdk.Context) error {
	feeds, err := k.getFeeds(ctx)
	if err != nil {
		return err
	}

	now := ctx.BlockTime()
	for feed := range utils.Filter(feeds, func(f types.Feed) bool { return f.Strategy == types.StrategyTWAP }) {
		_, err := atomically(ctx, func(ctx sdk.Context) (struct{}, error) {
			return struct{}{}, k.pruneFeed(ctx, feed, now)
		})
		if err != nil {
			k.getLogger(ctx).Error("failed to prune observations", "feed_id", feed.ID, "error", err)
		}
	}
	return nil
}
