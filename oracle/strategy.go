// Package oracle implements the read strategies a price feed can be created with.
package oracle

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/provlabs/sharevault/types"
)

// Window is the ordered per-feed observation store backing TWAP reads.
type Window interface {
	Append(ctx context.Context, feedID string, p types.PricePoint) error
	Since(ctx context.Context, feedID string, from, to time.Time) ([]types.PricePoint, error)
	Prune(ctx context.Context, feedID string, cutoff time.Time, keep uint32) (int, error)
}

// Strategy records observations into a feed and answers reads from it.
//
// Record may update feed.Latest and the window as of now, the time of the
// block carrying the point; the caller persists the feed. Read never writes.
type Strategy interface {
	Kind() types.StrategyKind
	Record(ctx context.Context, feed *types.Feed, p types.PricePoint, now time.Time) error
	Read(ctx context.Context, feed types.Feed, now time.Time) (sdkmath.LegacyDec, error)
}

// New returns the strategy for the given kind.
func New(kind types.StrategyKind, window Window) (Strategy, error) {
	switch kind {
	case types.StrategySpot:
		return Spot{}, nil
	case types.StrategyTWAP:
		return TWAP{window: window}, nil
	case types.StrategyAttested:
		return Attested{}, nil
	default:
		return nil, types.ErrInvalidRequest.Wrapf("unknown oracle strategy %q", string(kind))
	}
}

// requireAfterLatest rejects a point that does not move the feed forward in time.
func requireAfterLatest(feed types.Feed, p types.PricePoint) error {
	if feed.Latest != nil && !p.Timestamp.After(feed.Latest.Timestamp) {
		return types.ErrInvalidObservation.Wrapf("observation at %s is not after latest %s for feed %s",
			p.Timestamp.Format(time.RFC3339Nano), feed.Latest.Timestamp.Format(time.RFC3339Nano), feed.ID)
	}
	return nil
}
