package oracle

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/provlabs/sharevault/types"
)

// Spot keeps a single current value. Every write overwrites it, so the last
// writer fully controls the next read.
type Spot struct{}

var _ Strategy = Spot{}

func (Spot) Kind() types.StrategyKind { return types.StrategySpot }

func (Spot) Record(_ context.Context, feed *types.Feed, p types.PricePoint, _ time.Time) error {
	feed.Latest = &p
	return nil
}

func (Spot) Read(_ context.Context, feed types.Feed, _ time.Time) (sdkmath.LegacyDec, error) {
	if feed.Latest == nil {
		return sdkmath.LegacyDec{}, types.ErrInsufficientHistory.Wrapf("feed %s has no observation", feed.ID)
	}
	return feed.Latest.Price, nil
}
