package keeper_test

import (
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/provlabs/sharevault/types"
)

func (s *TestSuite) createTWAPFeed(id string) {
	_, err := s.k.CreateFeed(s.ctx, types.FeedConfig{
		ID:              id,
		Strategy:        types.StrategyTWAP,
		Window:          30 * time.Minute,
		MinObservations: 3,
		MinDuration:     10 * time.Minute,
	})
	s.Require().NoError(err)
}

// record writes an observation, moving the block clock forward to its timestamp.
func (s *TestSuite) record(feedID string, price int64, at time.Time, attested bool) {
	if at.After(s.ctx.BlockTime()) {
		s.ctx = s.ctx.WithBlockTime(at)
	}
	s.Require().NoError(s.k.RecordObservation(s.ctx, feedID, sdkmath.LegacyNewDec(price), at, attested))
}

func (s *TestSuite) TestCreateFeed() {
	s.createTWAPFeed("eth-twap")

	feed, err := s.k.GetFeed(s.ctx, "eth-twap")
	s.Require().NoError(err)
	s.Require().Equal(uint32(types.DefaultMaxObservationsPerFeed), feed.MaxObservations, "unset cap falls back to params")
	s.Require().Nil(feed.Latest)

	events := s.eventsOfType(types.EventTypeFeedCreated)
	s.Require().Len(events, 1)
	s.Require().Equal(string(types.StrategyTWAP), attr(events[0], types.AttributeKeyStrategy))

	_, err = s.k.CreateFeed(s.ctx, types.FeedConfig{ID: "eth-twap", Strategy: types.StrategySpot})
	s.Require().ErrorIs(err, types.ErrFeedExists)

	_, err = s.k.CreateFeed(s.ctx, types.FeedConfig{ID: "usdc-attested", Strategy: types.StrategyAttested})
	s.Require().ErrorIs(err, types.ErrInvalidRequest, "attested feeds need a staleness bound")

	missing, err := s.k.GetFeed(s.ctx, "nope-feed")
	s.Require().NoError(err)
	s.Require().Nil(missing)
}

func (s *TestSuite) TestRecordObservationValidation() {
	_, err := s.k.CreateFeed(s.ctx, types.FeedConfig{ID: "eth-spot", Strategy: types.StrategySpot})
	s.Require().NoError(err)

	err = s.k.RecordObservation(s.ctx, "eth-spot", sdkmath.LegacyZeroDec(), s.ctx.BlockTime(), false)
	s.Require().ErrorIs(err, types.ErrInvalidPrice)
	err = s.k.RecordObservation(s.ctx, "eth-spot", sdkmath.LegacyNewDec(-1), s.ctx.BlockTime(), false)
	s.Require().ErrorIs(err, types.ErrInvalidPrice)
	err = s.k.RecordObservation(s.ctx, "eth-spot", sdkmath.LegacyOneDec(), time.Time{}, false)
	s.Require().ErrorIs(err, types.ErrInvalidObservation)
	err = s.k.RecordObservation(s.ctx, "nope-feed", sdkmath.LegacyOneDec(), s.ctx.BlockTime(), false)
	s.Require().ErrorIs(err, types.ErrFeedNotFound)

	_, err = s.k.ReadPrice(s.ctx, "nope-feed", s.ctx.BlockTime())
	s.Require().ErrorIs(err, types.ErrFeedNotFound)
}

// One extreme write into a stable window barely moves the TWAP read while it
// fully controls the spot read.
func (s *TestSuite) TestTWAPOutlierResistance() {
	s.createTWAPFeed("eth-twap")
	_, err := s.k.CreateFeed(s.ctx, types.FeedConfig{ID: "eth-spot", Strategy: types.StrategySpot})
	s.Require().NoError(err)

	start := s.ctx.BlockTime()
	for i := 0; i < 30; i++ {
		at := start.Add(time.Duration(i) * time.Minute)
		s.record("eth-twap", 2_000, at, false)
		s.record("eth-spot", 2_000, at, false)
	}

	readAt := start.Add(30 * time.Minute)
	baseline, err := s.k.ReadPrice(s.ctx, "eth-twap", readAt)
	s.Require().NoError(err)
	spotBaseline, err := s.k.ReadPrice(s.ctx, "eth-spot", readAt)
	s.Require().NoError(err)

	outlierAt := readAt.Add(-time.Second)
	s.record("eth-twap", 20_000, outlierAt, false)
	s.record("eth-spot", 20_000, outlierAt, false)

	twap, err := s.k.ReadPrice(s.ctx, "eth-twap", readAt)
	s.Require().NoError(err)
	spot, err := s.k.ReadPrice(s.ctx, "eth-spot", readAt)
	s.Require().NoError(err)

	twapMove := twap.Sub(baseline).Quo(baseline)
	spotMove := spot.Sub(spotBaseline).Quo(spotBaseline)
	s.Require().True(twapMove.LT(sdkmath.LegacyNewDecWithPrec(1, 2)), "twap moved by %s", twapMove)
	s.Require().Equal("9.000000000000000000", spotMove.String(), "spot moves by the full deviation")

	again, err := s.k.ReadPrice(s.ctx, "eth-twap", readAt)
	s.Require().NoError(err)
	s.Require().True(again.Equal(twap), "repeated reads agree")

	observations, err := s.k.GetObservations(s.ctx, "eth-twap")
	s.Require().NoError(err)
	s.Require().Len(observations, 31)
	s.Require().Len(s.eventsOfType(types.EventTypeObservationRecorded), 62)
}

func (s *TestSuite) TestTWAPRejectsStaleTimestamp() {
	s.createTWAPFeed("eth-twap")
	now := s.ctx.BlockTime()
	s.record("eth-twap", 100, now, false)

	err := s.k.RecordObservation(s.ctx, "eth-twap", sdkmath.LegacyNewDec(100), now.Add(-time.Second), false)
	s.Require().ErrorIs(err, types.ErrInvalidObservation)

	observations, err := s.k.GetObservations(s.ctx, "eth-twap")
	s.Require().NoError(err)
	s.Require().Len(observations, 1, "a rejected write leaves the window unchanged")
}

// A point stamped in the future can neither evict the live window nor lock
// later reporters out.
func (s *TestSuite) TestRecordObservationRejectsFutureTimestamp() {
	s.createTWAPFeed("eth-twap")
	start := s.ctx.BlockTime()
	for i := 0; i < 30; i++ {
		s.record("eth-twap", 2_000, start.Add(time.Duration(i)*time.Minute), false)
	}
	now := s.ctx.BlockTime()

	err := s.k.RecordObservation(s.ctx, "eth-twap", sdkmath.LegacyNewDec(1), now.Add(30*time.Minute), false)
	s.Require().ErrorIs(err, types.ErrInvalidObservation)
	err = s.k.RecordObservation(s.ctx, "eth-twap", sdkmath.LegacyNewDec(1), now.Add(time.Nanosecond), false)
	s.Require().ErrorIs(err, types.ErrInvalidObservation)

	observations, err := s.k.GetObservations(s.ctx, "eth-twap")
	s.Require().NoError(err)
	s.Require().Len(observations, 30)
	price, err := s.k.ReadPrice(s.ctx, "eth-twap", now)
	s.Require().NoError(err)
	s.Require().Equal("2000.000000000000000000", price.String())

	s.advance(time.Minute)
	s.Require().NoError(s.k.RecordObservation(s.ctx, "eth-twap", sdkmath.LegacyNewDec(2_000), s.ctx.BlockTime(), false),
		"the next honest write is accepted")

	_, err = s.k.CreateFeed(s.ctx, types.FeedConfig{ID: "usdc-attested", Strategy: types.StrategyAttested, MaxStaleness: time.Minute})
	s.Require().NoError(err)
	err = s.k.RecordObservation(s.ctx, "usdc-attested", sdkmath.LegacyOneDec(), s.ctx.BlockTime().Add(time.Hour), true)
	s.Require().ErrorIs(err, types.ErrInvalidObservation, "a future attestation cannot stretch freshness")
}

func (s *TestSuite) TestAttestedFeedStaleness() {
	_, err := s.k.CreateFeed(s.ctx, types.FeedConfig{
		ID:           "usdc-attested",
		Strategy:     types.StrategyAttested,
		MaxStaleness: 5 * time.Minute,
	})
	s.Require().NoError(err)

	t := s.ctx.BlockTime()
	_, err = s.k.ReadPrice(s.ctx, "usdc-attested", t)
	s.Require().ErrorIs(err, types.ErrStaleFeed)

	err = s.k.RecordObservation(s.ctx, "usdc-attested", sdkmath.LegacyOneDec(), t, false)
	s.Require().ErrorIs(err, types.ErrUnattested)

	s.record("usdc-attested", 1, t, true)

	price, err := s.k.ReadPrice(s.ctx, "usdc-attested", t.Add(5*time.Minute))
	s.Require().NoError(err)
	s.Require().Equal("1.000000000000000000", price.String())

	_, err = s.k.ReadPrice(s.ctx, "usdc-attested", t.Add(5*time.Minute+time.Nanosecond))
	s.Require().ErrorIs(err, types.ErrStaleFeed)
}
