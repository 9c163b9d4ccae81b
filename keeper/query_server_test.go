package keeper_test

import (
	"time"

	sdkmath "cosmossdk.io/math"
	sdkquery "github.com/cosmos/cosmos-sdk/types/query"
	"google.golang.org/grpc/codes"

	"github.com/provlabs/sharevault/keeper"
	"github.com/provlabs/sharevault/types"
	"github.com/provlabs/sharevault/utils/query"
)

func (s *TestSuite) TestQueryParams() {
	qs := keeper.NewQueryServer(s.k)
	ep := query.Endpoint[types.QueryParamsRequest, types.QueryParamsResponse]{
		Name:  "Params",
		Query: qs.Params,
		Check: func(actual *types.QueryParamsResponse) {
			s.Assert().Equal(types.DefaultVestingPeriod, actual.Params.DefaultVestingPeriod)
			s.Assert().Equal("1", actual.Params.DefaultVirtualAssets.String())
		},
	}

	query.Run(s, ep, query.Case[types.QueryParamsRequest, types.QueryParamsResponse]{
		Name: "defaults when unset",
		Req:  &types.QueryParamsRequest{},
	})
	query.Run(s, ep, query.Case[types.QueryParamsRequest, types.QueryParamsResponse]{
		Name: "nil request",
		Code: codes.InvalidArgument,
	})
}

func (s *TestSuite) TestQueryVaults() {
	qs := keeper.NewQueryServer(s.k)
	ep := query.Endpoint[types.QueryVaultsRequest, types.QueryVaultsResponse]{
		Name:  "Vaults",
		Query: qs.Vaults,
		Check: func(actual *types.QueryVaultsResponse) {
			s.Require().Len(actual.Vaults, 2)
			s.Assert().Equal("aaa-vault", actual.Vaults[0].ID)
			s.Assert().Equal("bbb-vault", actual.Vaults[1].ID)
			s.Assert().NotNil(actual.Pagination.NextKey)
		},
	}

	query.Run(s, ep, query.Case[types.QueryVaultsRequest, types.QueryVaultsResponse]{
		Name: "first page in id order",
		Setup: func() {
			for _, id := range []string{"ccc-vault", "aaa-vault", "bbb-vault"} {
				_, err := s.k.CreateVault(s.ctx, types.VaultConfig{ID: id, Denom: testDenom, Policy: types.PolicyOffset})
				s.Require().NoError(err)
			}
		},
		Req: &types.QueryVaultsRequest{Pagination: &sdkquery.PageRequest{Limit: 2}},
	})
}

func (s *TestSuite) TestQueryVault() {
	qs := keeper.NewQueryServer(s.k)
	ep := query.Endpoint[types.QueryVaultRequest, types.QueryVaultResponse]{
		Name:  "Vault",
		Query: qs.Vault,
		Check: func(actual *types.QueryVaultResponse) {
			s.Assert().Equal("usd-offset", actual.Vault.ID)
			s.Assert().Equal(types.GetVaultAddress("usd-offset").String(), actual.Address)
			s.Assert().Equal("1100", actual.HeldAssets.String(), "held balance includes the donation")
			s.Assert().Equal("1.000000000000000000", actual.SharePrice.String(), "price ignores the donation")
		},
	}

	query.Run(s, ep, query.Case[types.QueryVaultRequest, types.QueryVaultResponse]{
		Name: "offset vault with donation",
		Setup: func() {
			vault := s.createVault("usd-offset", types.PolicyOffset)
			s.deposit(vault.ID, s.victim, 1_000)
			s.fund(vault.GetAddress(), 100)
		},
		Req: &types.QueryVaultRequest{VaultID: "usd-offset"},
	})
	query.Run(s, ep, query.Case[types.QueryVaultRequest, types.QueryVaultResponse]{
		Name:       "unknown vault",
		Req:        &types.QueryVaultRequest{VaultID: "nope-vault"},
		Code:       codes.NotFound,
		ErrSubstrs: []string{"nope-vault"},
	})
	query.Run(s, ep, query.Case[types.QueryVaultRequest, types.QueryVaultResponse]{
		Name: "empty id",
		Req:  &types.QueryVaultRequest{},
		Code: codes.InvalidArgument,
	})
}

func (s *TestSuite) TestQueryBalances() {
	qs := keeper.NewQueryServer(s.k)
	ep := query.Endpoint[types.QueryBalancesRequest, types.QueryBalancesResponse]{
		Name:  "Balances",
		Query: qs.Balances,
		Check: func(actual *types.QueryBalancesResponse) {
			s.Require().Len(actual.Balances, 2, "balances of other vaults are excluded")
			total := sdkmath.ZeroInt()
			for _, b := range actual.Balances {
				s.Assert().Equal("usd-offset", b.VaultID)
				total = total.Add(b.Shares)
			}
			s.Assert().Equal("30", total.String())
		},
	}

	query.Run(s, ep, query.Case[types.QueryBalancesRequest, types.QueryBalancesResponse]{
		Name: "holders of one vault",
		Setup: func() {
			s.createVault("usd-offset", types.PolicyOffset)
			s.createVault("usd-other", types.PolicyOffset)
			s.deposit("usd-offset", s.victim, 10)
			s.deposit("usd-offset", s.attacker, 20)
			s.deposit("usd-other", s.victim, 5)
		},
		Req: &types.QueryBalancesRequest{VaultID: "usd-offset"},
	})
}

func (s *TestSuite) TestQueryPreviews() {
	qs := keeper.NewQueryServer(s.k)
	vault := s.createVault("usd-offset", types.PolicyOffset)
	s.deposit(vault.ID, s.victim, 1_000)

	depositEp := query.Endpoint[types.QueryPreviewDepositRequest, types.QueryPreviewDepositResponse]{
		Name:  "PreviewDeposit",
		Query: qs.PreviewDeposit,
	}
	query.Run(s, depositEp, query.Case[types.QueryPreviewDepositRequest, types.QueryPreviewDepositResponse]{
		Name:     "proportional",
		Req:      &types.QueryPreviewDepositRequest{VaultID: vault.ID, Assets: sdkmath.NewInt(500)},
		Expected: &types.QueryPreviewDepositResponse{Shares: sdkmath.NewInt(500)},
	})
	query.Run(s, depositEp, query.Case[types.QueryPreviewDepositRequest, types.QueryPreviewDepositResponse]{
		Name: "zero amount",
		Req:  &types.QueryPreviewDepositRequest{VaultID: vault.ID, Assets: sdkmath.ZeroInt()},
		Code: codes.InvalidArgument,
	})

	withdrawEp := query.Endpoint[types.QueryPreviewWithdrawRequest, types.QueryPreviewWithdrawResponse]{
		Name:  "PreviewWithdraw",
		Query: qs.PreviewWithdraw,
	}
	query.Run(s, withdrawEp, query.Case[types.QueryPreviewWithdrawRequest, types.QueryPreviewWithdrawResponse]{
		Name:     "proportional",
		Req:      &types.QueryPreviewWithdrawRequest{VaultID: vault.ID, Shares: sdkmath.NewInt(250)},
		Expected: &types.QueryPreviewWithdrawResponse{Assets: sdkmath.NewInt(250)},
	})
	query.Run(s, withdrawEp, query.Case[types.QueryPreviewWithdrawRequest, types.QueryPreviewWithdrawResponse]{
		Name: "more than outstanding",
		Req:  &types.QueryPreviewWithdrawRequest{VaultID: vault.ID, Shares: sdkmath.NewInt(1_001)},
		Code: codes.InvalidArgument,
	})
	query.Run(s, withdrawEp, query.Case[types.QueryPreviewWithdrawRequest, types.QueryPreviewWithdrawResponse]{
		Name: "unknown vault",
		Req:  &types.QueryPreviewWithdrawRequest{VaultID: "nope-vault", Shares: sdkmath.OneInt()},
		Code: codes.NotFound,
	})
}

func (s *TestSuite) TestQueryFeedAndPrice() {
	qs := keeper.NewQueryServer(s.k)
	s.createTWAPFeed("eth-twap")

	feedEp := query.Endpoint[types.QueryFeedRequest, types.QueryFeedResponse]{
		Name:  "Feed",
		Query: qs.Feed,
		Check: func(actual *types.QueryFeedResponse) {
			s.Assert().Equal(types.StrategyTWAP, actual.Feed.Strategy)
			s.Assert().Len(actual.Observations, 2)
		},
	}
	query.Run(s, feedEp, query.Case[types.QueryFeedRequest, types.QueryFeedResponse]{
		Name: "with observations",
		Setup: func() {
			s.record("eth-twap", 10, s.ctx.BlockTime().Add(-2*time.Minute), false)
			s.record("eth-twap", 20, s.ctx.BlockTime().Add(-time.Minute), false)
		},
		Req: &types.QueryFeedRequest{FeedID: "eth-twap"},
	})
	query.Run(s, feedEp, query.Case[types.QueryFeedRequest, types.QueryFeedResponse]{
		Name: "unknown feed",
		Req:  &types.QueryFeedRequest{FeedID: "nope-feed"},
		Code: codes.NotFound,
	})

	priceEp := query.Endpoint[types.QueryPriceRequest, types.QueryPriceResponse]{
		Name:  "Price",
		Query: qs.Price,
		Check: func(actual *types.QueryPriceResponse) {
			s.Assert().Equal("10.000000000000000000", actual.Price.String())
		},
	}
	query.Run(s, priceEp, query.Case[types.QueryPriceRequest, types.QueryPriceResponse]{
		Name: "insufficient history",
		Req:  &types.QueryPriceRequest{FeedID: "eth-twap"},
		Code: codes.FailedPrecondition,
	})
	query.Run(s, priceEp, query.Case[types.QueryPriceRequest, types.QueryPriceResponse]{
		Name: "stable window at block time",
		Setup: func() {
			now := s.ctx.BlockTime()
			for i := 20; i > 0; i-- {
				s.record("eth-twap", 10, now.Add(-time.Duration(i)*time.Minute), false)
			}
		},
		Req: &types.QueryPriceRequest{FeedID: "eth-twap"},
	})
}
