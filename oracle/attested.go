package oracle

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/provlabs/sharevault/types"
)

// Attested keeps the latest externally attested point and refuses to answer
// once it is older than the feed's staleness bound.
type Attested struct{}

var _ Strategy = Attested{}

func (Attested) Kind() types.StrategyKind { return types.StrategyAttested }

func (Attested) Record(_ context.Context, feed *types.Feed, p types.PricePoint, _ time.Time) error {
	if !p.Attested {
		return types.ErrUnattested.Wrapf("feed %s only accepts attested observations", feed.ID)
	}
	if err := requireAfterLatest(*feed, p); err != nil {
		return err
	}
	feed.Latest = &p
	return nil
}

func (Attested) Read(_ context.Context, feed types.Feed, now time.Time) (sdkmath.LegacyDec, error) {
	if feed.Latest == nil {
		return sdkmath.LegacyDec{}, types.ErrStaleFeed.Wrapf("feed %s has never been updated", feed.ID)
	}
	if age := now.Sub(feed.Latest.Timestamp); age > feed.MaxStaleness {
		return sdkmath.LegacyDec{}, types.ErrStaleFeed.Wrapf("feed %s last updated %s ago, max staleness %s",
			feed.ID, age, feed.MaxStaleness)
	}
	return feed.Latest.Price, nil
}
