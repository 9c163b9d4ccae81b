package oracle

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/provlabs/sharevault/types"
	"github.com/provlabs/sharevault/utils"
)

// TWAP answers with the time-weighted average of the observations inside the
// feed's window. Appending a point and pruning the window happen in the same
// call.
type TWAP struct {
	window Window
}

var _ Strategy = TWAP{}

func (TWAP) Kind() types.StrategyKind { return types.StrategyTWAP }

func (t TWAP) Record(ctx context.Context, feed *types.Feed, p types.PricePoint, now time.Time) error {
	if err := requireAfterLatest(*feed, p); err != nil {
		return err
	}
	if err := t.window.Append(ctx, feed.ID, p); err != nil {
		return err
	}
	if _, err := t.window.Prune(ctx, feed.ID, now.Add(-feed.Window), feed.MaxObservations); err != nil {
		return err
	}
	feed.Latest = &p
	return nil
}

func (t TWAP) Read(ctx context.Context, feed types.Feed, now time.Time) (sdkmath.LegacyDec, error) {
	points, err := t.window.Since(ctx, feed.ID, now.Add(-feed.Window), now)
	if err != nil {
		return sdkmath.LegacyDec{}, err
	}
	if len(points) == 0 || uint32(len(points)) < feed.MinObservations {
		return sdkmath.LegacyDec{}, types.ErrInsufficientHistory.Wrapf("feed %s has %d observations in window, need %d",
			feed.ID, len(points), feed.MinObservations)
	}
	if span := now.Sub(points[0].Timestamp); span < feed.MinDuration {
		return sdkmath.LegacyDec{}, types.ErrInsufficientHistory.Wrapf("feed %s window spans %s, need %s",
			feed.ID, span, feed.MinDuration)
	}
	return utils.TimeWeightedAverage(points, now)
}
