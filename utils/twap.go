package utils

import (
	"time"

	"cosmossdk.io/math"

	"github.com/provlabs/sharevault/types"
)

// TimeWeightedAverage returns Σ(price_i * duration_i) / Σ(duration_i) over points
// sorted by ascending timestamp, none of them after now.
//
// Each point is weighted by the time until the next point; the last point is
// weighted up to now. A point recorded exactly at now carries no weight, so a
// single write cannot move the average it is read against in the same instant.
// If every point sits at now the most recent price is returned.
func TimeWeightedAverage(points []types.PricePoint, now time.Time) (math.LegacyDec, error) {
	if len(points) == 0 {
		return math.LegacyDec{}, types.ErrInsufficientHistory.Wrap("no observations in window")
	}

	return catchDecOverflow(func() math.LegacyDec {
		weighted := math.LegacyZeroDec()
		var total int64
		for i, p := range points {
			end := now
			if i+1 < len(points) {
				end = points[i+1].Timestamp
			}
			d := end.Sub(p.Timestamp).Nanoseconds()
			if d <= 0 {
				continue
			}
			weighted = weighted.Add(p.Price.MulInt64(d))
			total += d
		}
		if total == 0 {
			return points[len(points)-1].Price
		}
		return weighted.QuoInt64(total)
	})
}
