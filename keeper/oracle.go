package keeper

import (
	"context"
	"errors"
	"time"

	"cosmossdk.io/collections"
	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/sharevault/oracle"
	"github.com/provlabs/sharevault/types"
)

// CreateFeed registers a new price feed.
func (k *Keeper) CreateFeed(ctx sdk.Context, cfg types.FeedConfig) (*types.Feed, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	feed := types.NewFeed(cfg, params)
	if err := feed.Validate(); err != nil {
		return nil, types.ErrInvalidRequest.Wrap(err.Error())
	}

	has, err := k.Feeds.Has(ctx, feed.ID)
	if err != nil {
		return nil, err
	}
	if has {
		return nil, types.ErrFeedExists.Wrapf("feed %s", feed.ID)
	}
	if err := k.Feeds.Set(ctx, feed.ID, feed); err != nil {
		return nil, err
	}

	k.emitEvent(ctx, types.NewEventFeedCreated(feed))
	k.getLogger(ctx).Info("price feed created", "feed_id", feed.ID, "strategy", feed.Strategy)
	return &feed, nil
}

// GetFeed finds a feed by id.
//
// This function will return nil if no feed exists with this id.
func (k Keeper) GetFeed(ctx context.Context, feedID string) (*types.Feed, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	feed, err := k.Feeds.Get(ctx, feedID)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &feed, nil
}

// RecordObservation writes a price into the feed according to its strategy.
// Appending to a TWAP window and pruning it commit together or not at all.
// Points stamped after the current block time are rejected.
func (k *Keeper) RecordObservation(ctx sdk.Context, feedID string, price sdkmath.LegacyDec, timestamp time.Time, attested bool) error {
	point := types.NewPricePoint(price, timestamp, attested)
	if err := point.Validate(); err != nil {
		return err
	}
	now := ctx.BlockTime()
	if point.Timestamp.After(now) {
		return types.ErrInvalidObservation.Wrapf("observation at %s is after block time %s",
			point.Timestamp.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	_, err := atomically(ctx, func(ctx sdk.Context) (struct{}, error) {
		feed, strategy, err := k.loadFeed(ctx, feedID)
		if err != nil {
			return struct{}{}, err
		}
		if err := strategy.Record(ctx, &feed, point, now); err != nil {
			return struct{}{}, err
		}
		if err := k.Feeds.Set(ctx, feedID, feed); err != nil {
			return struct{}{}, err
		}

		k.emitEvent(ctx, types.NewEventObservationRecorded(feedID, point))
		k.getLogger(ctx).Debug("observation recorded", "feed_id", feedID, "price", point.Price.String(), "timestamp", point.Timestamp)
		return struct{}{}, nil
	})
	return err
}

// ReadPrice answers the feed's price as of now. It never writes.
func (k Keeper) ReadPrice(ctx context.Context, feedID string, now time.Time) (sdkmath.LegacyDec, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	feed, strategy, err := k.loadFeed(ctx, feedID)
	if err != nil {
		return sdkmath.LegacyDec{}, err
	}
	return strategy.Read(ctx, feed, now.UTC())
}

// GetObservations returns the TWAP observations currently stored for the feed, oldest first.
func (k Keeper) GetObservations(ctx context.Context, feedID string) ([]types.PricePoint, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if _, _, err := k.loadFeed(ctx, feedID); err != nil {
		return nil, err
	}
	return k.Observations.Points(ctx, feedID)
}

// pruneFeed drops window entries that can no longer affect a read at now.
func (k Keeper) pruneFeed(ctx sdk.Context, feed types.Feed, now time.Time) error {
	removed, err := k.Observations.Prune(ctx, feed.ID, now.Add(-feed.Window), feed.MaxObservations)
	if err != nil {
		return err
	}
	if removed > 0 {
		k.getLogger(ctx).Debug("pruned observations", "feed_id", feed.ID, "removed", removed)
	}
	return nil
}

// loadFeed returns the stored feed and its read strategy.
func (k Keeper) loadFeed(ctx context.Context, feedID string) (types.Feed, oracle.Strategy, error) {
	feed, err := k.Feeds.Get(ctx, feedID)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Feed{}, nil, types.ErrFeedNotFound.Wrapf("feed %s", feedID)
		}
		return types.Feed{}, nil, err
	}
	strategy, err := oracle.New(feed.Strategy, k.Observations)
	if err != nil {
		return types.Feed{}, nil, err
	}
	return feed, strategy, nil
}
