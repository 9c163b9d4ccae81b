package container

import (
	"context"
	"time"

	"cosmossdk.io/collections"
	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/sharevault/types"
)

// ObservationWindowKey is the key for the ObservationWindow.
// It's a pair of (feed_id, timestamp), so each feed's points iterate oldest first.
var ObservationWindowKey = collections.PairKeyCodec(
	collections.StringKey,
	sdk.TimeKey,
)

// ObservationWindow is the per-feed, time-ordered store of price observations
// that backs TWAP reads.
type ObservationWindow struct {
	collections.Map[collections.Pair[string, time.Time], sdkmath.LegacyDec]
}

// NewObservationWindow creates a new ObservationWindow.
func NewObservationWindow(schema *collections.SchemaBuilder) ObservationWindow {
	return ObservationWindow{
		Map: collections.NewMap(
			schema,
			types.ObservationWindowPrefix,
			types.ObservationWindowName,
			ObservationWindowKey,
			sdk.LegacyDecValue,
		),
	}
}

// Append records a price for the feed at the given time. A second price at the
// same timestamp replaces the first.
func (w ObservationWindow) Append(ctx context.Context, feedID string, p types.PricePoint) error {
	return w.Set(ctx, collections.Join(feedID, p.Timestamp.UTC()), p.Price)
}

// Since returns the feed's observations with a timestamp strictly after from and
// at or before to, oldest first.
func (w ObservationWindow) Since(ctx context.Context, feedID string, from, to time.Time) ([]types.PricePoint, error) {
	var points []types.PricePoint
	err := w.Walk(ctx, collections.NewPrefixedPairRange[string, time.Time](feedID), func(key collections.Pair[string, time.Time], price sdkmath.LegacyDec) (stop bool, err error) {
		ts := key.K2()
		if !ts.After(from) {
			return false, nil
		}
		if ts.After(to) {
			return true, nil
		}
		points = append(points, types.NewPricePoint(price, ts, false))
		return false, nil
	})
	return points, err
}

// Points returns every observation stored for the feed, oldest first.
func (w ObservationWindow) Points(ctx context.Context, feedID string) ([]types.PricePoint, error) {
	var points []types.PricePoint
	err := w.Walk(ctx, collections.NewPrefixedPairRange[string, time.Time](feedID), func(key collections.Pair[string, time.Time], price sdkmath.LegacyDec) (bool, error) {
		points = append(points, types.NewPricePoint(price, key.K2(), false))
		return false, nil
	})
	return points, err
}

// Count returns the number of observations stored for the feed.
func (w ObservationWindow) Count(ctx context.Context, feedID string) (uint32, error) {
	var n uint32
	err := w.Walk(ctx, collections.NewPrefixedPairRange[string, time.Time](feedID), func(_ collections.Pair[string, time.Time], _ sdkmath.LegacyDec) (bool, error) {
		n++
		return false, nil
	})
	return n, err
}

// Prune removes the feed's observations at or before cutoff, then the oldest
// remaining ones until at most keep are left. It returns the number removed.
func (w ObservationWindow) Prune(ctx context.Context, feedID string, cutoff time.Time, keep uint32) (int, error) {
	var keys []collections.Pair[string, time.Time]
	err := w.Walk(ctx, collections.NewPrefixedPairRange[string, time.Time](feedID), func(key collections.Pair[string, time.Time], _ sdkmath.LegacyDec) (bool, error) {
		keys = append(keys, key)
		return false, nil
	})
	if err != nil {
		return 0, err
	}

	drop := 0
	for drop < len(keys) && !keys[drop].K2().After(cutoff) {
		drop++
	}
	if excess := len(keys) - int(keep); excess > drop {
		drop = excess
	}

	for _, key := range keys[:drop] {
		if err := w.Remove(ctx, key); err != nil {
			return 0, err
		}
	}
	return drop, nil
}

// ClearFeed removes every observation for the feed.
func (w ObservationWindow) ClearFeed(ctx context.Context, feedID string) error {
	return w.Clear(ctx, collections.NewPrefixedPairRange[string, time.Time](feedID))
}

// Export returns every stored observation across all feeds.
func (w ObservationWindow) Export(ctx context.Context) ([]types.FeedObservation, error) {
	var out []types.FeedObservation
	err := w.Walk(ctx, nil, func(key collections.Pair[string, time.Time], price sdkmath.LegacyDec) (bool, error) {
		out = append(out, types.FeedObservation{
			FeedID: key.K1(),
			Point:  types.NewPricePoint(price, key.K2(), false),
		})
		return false, nil
	})
	return out, err
}
