package keeper_test

import (
	"time"

	"github.com/provlabs/sharevault/types"
)

func (s *TestSuite) TestBeginBlockerPrunesAgedObservations() {
	s.createTWAPFeed("eth-twap")
	start := s.ctx.BlockTime()
	for i := 0; i < 10; i++ {
		s.record("eth-twap", 100, start.Add(time.Duration(i)*time.Minute), false)
	}

	s.ctx = s.ctx.WithBlockTime(start.Add(35 * time.Minute))
	s.Require().NoError(s.k.BeginBlocker(s.ctx))

	observations, err := s.k.GetObservations(s.ctx, "eth-twap")
	s.Require().NoError(err)
	s.Require().Len(observations, 4, "only points newer than now-window survive")
	s.Require().True(start.Add(6*time.Minute).Equal(observations[0].Timestamp))

	price, err := s.k.ReadPrice(s.ctx, "eth-twap", s.ctx.BlockTime())
	s.Require().NoError(err)
	s.Require().Equal("100.000000000000000000", price.String())

	s.advance(30 * time.Minute)
	s.Require().NoError(s.k.BeginBlocker(s.ctx))
	observations, err = s.k.GetObservations(s.ctx, "eth-twap")
	s.Require().NoError(err)
	s.Require().Empty(observations)

	_, err = s.k.ReadPrice(s.ctx, "eth-twap", s.ctx.BlockTime())
	s.Require().ErrorIs(err, types.ErrInsufficientHistory)
}

func (s *TestSuite) TestBeginBlockerIgnoresIdleState() {
	s.createVault("usd-offset", types.PolicyOffset)
	_, err := s.k.CreateFeed(s.ctx, types.FeedConfig{ID: "eth-spot", Strategy: types.StrategySpot})
	s.Require().NoError(err)
	eventsBefore := len(s.ctx.EventManager().Events())

	s.Require().NoError(s.k.BeginBlocker(s.ctx))
	s.Require().Len(s.ctx.EventManager().Events(), eventsBefore)
}
