package keeper_test

import (
	"time"

	"github.com/provlabs/sharevault/types"
)

func (s *TestSuite) TestStateReadsWaitForMutations() {
	vault := s.createVault("usd-offset", types.PolicyOffset)
	s.deposit(vault.ID, s.victim, 10)
	s.createTWAPFeed("eth-twap")

	reads := []struct {
		name string
		read func() (int, error)
	}{
		{name: "vaults", read: func() (int, error) { v, err := s.k.GetVaults(s.ctx); return len(v), err }},
		{name: "feeds", read: func() (int, error) { f, err := s.k.GetFeeds(s.ctx); return len(f), err }},
		{name: "balances", read: func() (int, error) { b, err := s.k.GetBalances(s.ctx, vault.ID); return len(b), err }},
	}

	for _, tc := range reads {
		s.Run(tc.name, func() {
			unlock := s.k.TestAccessor_writeLock(s.T())
			done := make(chan int, 1)
			go func() {
				n, err := tc.read()
				s.Assert().NoError(err)
				done <- n
			}()

			select {
			case <-done:
				unlock()
				s.FailNow("read returned while a mutation held the lock")
			case <-time.After(50 * time.Millisecond):
			}

			unlock()
			s.Require().Equal(1, <-done)
		})
	}
}
