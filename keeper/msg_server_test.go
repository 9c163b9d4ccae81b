package keeper_test

import (
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/provlabs/sharevault/keeper"
	"github.com/provlabs/sharevault/types"
)

func (s *TestSuite) TestMsgServerVaultFlow() {
	ms := keeper.NewMsgServer(s.k)

	created, err := ms.CreateVault(s.ctx, &types.MsgCreateVaultRequest{
		Creator: s.attacker.String(),
		VaultID: "usd-offset",
		Denom:   testDenom,
		Policy:  types.PolicyOffset,
	})
	s.Require().NoError(err)
	s.Require().Equal(types.GetVaultAddress("usd-offset").String(), created.VaultAddress)

	s.fund(s.victim, 1_000)
	dep, err := ms.Deposit(s.ctx, &types.MsgDepositRequest{
		Depositor: s.victim.String(),
		VaultID:   "usd-offset",
		Assets:    sdkmath.NewInt(1_000),
	})
	s.Require().NoError(err)
	s.Require().Equal("1000", dep.SharesMinted.String())

	s.fund(types.GetVaultAddress("usd-offset"), 10)
	absorbed, err := ms.AbsorbDonation(s.ctx, &types.MsgAbsorbDonationRequest{Sender: s.attacker.String(), VaultID: "usd-offset"})
	s.Require().NoError(err)
	s.Require().Equal("10", absorbed.Absorbed.String())

	wd, err := ms.Withdraw(s.ctx, &types.MsgWithdrawRequest{
		Owner:   s.victim.String(),
		VaultID: "usd-offset",
		Shares:  sdkmath.NewInt(1_000),
	})
	s.Require().NoError(err)
	s.Require().Equal("1000", wd.AssetsPaid.String())
}

func (s *TestSuite) TestMsgServerValidation() {
	ms := keeper.NewMsgServer(s.k)

	_, err := ms.CreateVault(s.ctx, &types.MsgCreateVaultRequest{Creator: "bogus", VaultID: "usd-offset", Denom: testDenom, Policy: types.PolicyOffset})
	s.Require().ErrorIs(err, types.ErrInvalidRequest)

	_, err = ms.Deposit(s.ctx, &types.MsgDepositRequest{Depositor: s.victim.String(), VaultID: "usd-offset", Assets: sdkmath.ZeroInt()})
	s.Require().ErrorIs(err, types.ErrInvalidAmount)

	_, err = ms.Withdraw(s.ctx, &types.MsgWithdrawRequest{Owner: s.victim.String(), VaultID: "usd-offset", Shares: sdkmath.OneInt()})
	s.Require().ErrorIs(err, types.ErrVaultNotFound)

	_, err = ms.CreateFeed(s.ctx, &types.MsgCreateFeedRequest{Creator: s.victim.String(), FeedID: "eth-spot", Strategy: "median"})
	s.Require().ErrorIs(err, types.ErrInvalidRequest)

	_, err = ms.RecordObservation(s.ctx, &types.MsgRecordObservationRequest{
		Reporter:  s.victim.String(),
		FeedID:    "eth-spot",
		Price:     sdkmath.LegacyZeroDec(),
		Timestamp: s.ctx.BlockTime(),
	})
	s.Require().ErrorIs(err, types.ErrInvalidPrice)
}

func (s *TestSuite) TestMsgServerFeedFlow() {
	ms := keeper.NewMsgServer(s.k)

	_, err := ms.CreateFeed(s.ctx, &types.MsgCreateFeedRequest{
		Creator:      s.victim.String(),
		FeedID:       "usdc-attested",
		Strategy:     types.StrategyAttested,
		MaxStaleness: time.Minute,
	})
	s.Require().NoError(err)

	_, err = ms.RecordObservation(s.ctx, &types.MsgRecordObservationRequest{
		Reporter:  s.victim.String(),
		FeedID:    "usdc-attested",
		Price:     sdkmath.LegacyMustNewDecFromStr("0.9998"),
		Timestamp: s.ctx.BlockTime(),
		Attested:  true,
	})
	s.Require().NoError(err)

	price, err := s.k.ReadPrice(s.ctx, "usdc-attested", s.ctx.BlockTime())
	s.Require().NoError(err)
	s.Require().Equal("0.999800000000000000", price.String())
}

func (s *TestSuite) TestMsgServerUpdateParams() {
	ms := keeper.NewMsgServer(s.k)
	params := types.DefaultParams()
	params.MaxObservationsPerFeed = 16

	_, err := ms.UpdateParams(s.ctx, &types.MsgUpdateParams{Authority: s.victim.String(), Params: params})
	s.Require().ErrorIs(err, types.ErrInvalidRequest)
	s.Require().ErrorContains(err, "not the module authority")

	bad := params
	bad.MaxObservationsPerFeed = 0
	_, err = ms.UpdateParams(s.ctx, &types.MsgUpdateParams{Authority: s.authority, Params: bad})
	s.Require().ErrorIs(err, types.ErrInvalidRequest)

	_, err = ms.UpdateParams(s.ctx, &types.MsgUpdateParams{Authority: s.authority, Params: params})
	s.Require().NoError(err)

	stored, err := s.k.GetParams(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(uint32(16), stored.MaxObservationsPerFeed)

	s.createTWAPFeed("eth-twap")
	feed, err := s.k.GetFeed(s.ctx, "eth-twap")
	s.Require().NoError(err)
	s.Require().Equal(uint32(16), feed.MaxObservations, "new feeds pick up the updated default")
}
