package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/sharevault/types"
)

var _ types.MsgServer = msgServer{}

type msgServer struct {
	*Keeper
}

// NewMsgServer returns the message handlers for the module.
func NewMsgServer(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

// CreateVault creates a new vault.
func (k msgServer) CreateVault(goCtx context.Context, msg *types.MsgCreateVaultRequest) (*types.MsgCreateVaultResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrInvalidRequest.Wrap(err.Error())
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	vault, err := k.Keeper.CreateVault(ctx, msg.Config())
	if err != nil {
		return nil, err
	}
	return &types.MsgCreateVaultResponse{
		VaultID:      vault.ID,
		VaultAddress: vault.GetAddress().String(),
	}, nil
}

// Deposit deposits assets into a vault.
func (k msgServer) Deposit(goCtx context.Context, msg *types.MsgDepositRequest) (*types.MsgDepositResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	depositor, err := k.addressCodec.StringToBytes(msg.Depositor)
	if err != nil {
		return nil, types.ErrInvalidRequest.Wrapf("invalid depositor address: %v", err)
	}
	shares, err := k.Keeper.Deposit(ctx, msg.VaultID, depositor, msg.Assets)
	if err != nil {
		return nil, err
	}
	return &types.MsgDepositResponse{SharesMinted: shares}, nil
}

// Withdraw redeems shares for underlying assets.
func (k msgServer) Withdraw(goCtx context.Context, msg *types.MsgWithdrawRequest) (*types.MsgWithdrawResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	owner, err := k.addressCodec.StringToBytes(msg.Owner)
	if err != nil {
		return nil, types.ErrInvalidRequest.Wrapf("invalid owner address: %v", err)
	}
	assets, err := k.Keeper.Withdraw(ctx, msg.VaultID, owner, msg.Shares)
	if err != nil {
		return nil, err
	}
	return &types.MsgWithdrawResponse{AssetsPaid: assets}, nil
}

// AbsorbDonation starts vesting any untracked balance at a vault address.
func (k msgServer) AbsorbDonation(goCtx context.Context, msg *types.MsgAbsorbDonationRequest) (*types.MsgAbsorbDonationResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrInvalidRequest.Wrap(err.Error())
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	absorbed, err := k.Keeper.AbsorbDonation(ctx, msg.VaultID)
	if err != nil {
		return nil, err
	}
	return &types.MsgAbsorbDonationResponse{Absorbed: absorbed}, nil
}

// CreateFeed registers a new price feed.
func (k msgServer) CreateFeed(goCtx context.Context, msg *types.MsgCreateFeedRequest) (*types.MsgCreateFeedResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrInvalidRequest.Wrap(err.Error())
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	if _, err := k.Keeper.CreateFeed(ctx, msg.Config()); err != nil {
		return nil, err
	}
	return &types.MsgCreateFeedResponse{}, nil
}

// RecordObservation records a price into a feed.
func (k msgServer) RecordObservation(goCtx context.Context, msg *types.MsgRecordObservationRequest) (*types.MsgRecordObservationResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := k.Keeper.RecordObservation(ctx, msg.FeedID, msg.Price, msg.Timestamp, msg.Attested); err != nil {
		return nil, err
	}
	return &types.MsgRecordObservationResponse{}, nil
}

// UpdateParams updates the params for the module.
func (k msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrInvalidRequest.Wrap(err.Error())
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := k.Keeper.UpdateParams(ctx, msg.Authority, msg.Params); err != nil {
		return nil, err
	}
	return &types.MsgUpdateParamsResponse{}, nil
}
