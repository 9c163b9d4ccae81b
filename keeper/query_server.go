package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	sdkmath "cosmossdk.io/math"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"

	"github.com/provlabs/sharevault/types"
)

var _ types.QueryServer = queryServer{}

type queryServer struct {
	*Keeper
}

// NewQueryServer creates a new query server for the module.
func NewQueryServer(keeper *Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

// Params returns the module params.
func (k queryServer) Params(goCtx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	params, err := k.GetParams(goCtx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &types.QueryParamsResponse{Params: params}, nil
}

// Vaults returns a paginated list of all vaults.
func (k queryServer) Vaults(goCtx context.Context, req *types.QueryVaultsRequest) (*types.QueryVaultsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	k.mu.RLock()
	defer k.mu.RUnlock()

	vaults, pageRes, err := query.CollectionPaginate(
		goCtx,
		k.Keeper.Vaults,
		req.Pagination,
		func(_ string, vault types.Vault) (types.Vault, error) {
			return vault, nil
		},
	)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &types.QueryVaultsResponse{
		Vaults:     vaults,
		Pagination: pageRes,
	}, nil
}

// Vault returns the state of a specific vault along with its live pricing.
func (k queryServer) Vault(goCtx context.Context, req *types.QueryVaultRequest) (*types.QueryVaultResponse, error) {
	if req == nil || req.VaultID == "" {
		return nil, status.Error(codes.InvalidArgument, "vault_id must be provided")
	}

	vault, err := k.GetVault(goCtx, req.VaultID)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	if vault == nil {
		return nil, status.Errorf(codes.NotFound, "vault %q not found", req.VaultID)
	}

	price, err := k.SharePrice(goCtx, req.VaultID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &types.QueryVaultResponse{
		Vault:      *vault,
		Address:    vault.GetAddress().String(),
		HeldAssets: k.heldAssets(goCtx, *vault),
		SharePrice: price,
	}, nil
}

// Balances returns a paginated list of the share holders of a vault.
func (k queryServer) Balances(goCtx context.Context, req *types.QueryBalancesRequest) (*types.QueryBalancesResponse, error) {
	if req == nil || req.VaultID == "" {
		return nil, status.Error(codes.InvalidArgument, "vault_id must be provided")
	}

	k.mu.RLock()
	defer k.mu.RUnlock()

	balances, pageRes, err := query.CollectionPaginate(
		goCtx,
		k.Keeper.Shares,
		req.Pagination,
		func(key collections.Pair[string, sdk.AccAddress], shares sdkmath.Int) (types.ShareBalance, error) {
			holder, err := k.addressCodec.BytesToString(key.K2())
			if err != nil {
				return types.ShareBalance{}, err
			}
			return types.ShareBalance{VaultID: key.K1(), Holder: holder, Shares: shares}, nil
		},
		query.WithCollectionPaginationPairPrefix[string, sdk.AccAddress](req.VaultID),
	)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &types.QueryBalancesResponse{
		Balances:   balances,
		Pagination: pageRes,
	}, nil
}

// PreviewDeposit estimates the shares a deposit would mint at the current block.
func (k queryServer) PreviewDeposit(goCtx context.Context, req *types.QueryPreviewDepositRequest) (*types.QueryPreviewDepositResponse, error) {
	if req == nil || req.VaultID == "" {
		return nil, status.Error(codes.InvalidArgument, "vault_id must be provided")
	}

	shares, err := k.Keeper.PreviewDeposit(goCtx, req.VaultID, req.Assets)
	if err != nil {
		return nil, toStatus(err)
	}
	return &types.QueryPreviewDepositResponse{Shares: shares}, nil
}

// PreviewWithdraw estimates the assets redeeming shares would pay at the current block.
func (k queryServer) PreviewWithdraw(goCtx context.Context, req *types.QueryPreviewWithdrawRequest) (*types.QueryPreviewWithdrawResponse, error) {
	if req == nil || req.VaultID == "" {
		return nil, status.Error(codes.InvalidArgument, "vault_id must be provided")
	}

	assets, err := k.Keeper.PreviewWithdraw(goCtx, req.VaultID, req.Shares)
	if err != nil {
		return nil, toStatus(err)
	}
	return &types.QueryPreviewWithdrawResponse{Assets: assets}, nil
}

// Feed returns a price feed and its stored observations.
func (k queryServer) Feed(goCtx context.Context, req *types.QueryFeedRequest) (*types.QueryFeedResponse, error) {
	if req == nil || req.FeedID == "" {
		return nil, status.Error(codes.InvalidArgument, "feed_id must be provided")
	}

	feed, err := k.GetFeed(goCtx, req.FeedID)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	if feed == nil {
		return nil, status.Errorf(codes.NotFound, "feed %q not found", req.FeedID)
	}

	observations, err := k.GetObservations(goCtx, req.FeedID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &types.QueryFeedResponse{Feed: *feed, Observations: observations}, nil
}

// Price reads a feed at the current block time.
func (k queryServer) Price(goCtx context.Context, req *types.QueryPriceRequest) (*types.QueryPriceResponse, error) {
	if req == nil || req.FeedID == "" {
		return nil, status.Error(codes.InvalidArgument, "feed_id must be provided")
	}

	price, err := k.ReadPrice(goCtx, req.FeedID, blockTime(goCtx))
	if err != nil {
		return nil, toStatus(err)
	}
	return &types.QueryPriceResponse{Price: price}, nil
}

// toStatus maps module errors onto gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, types.ErrVaultNotFound), errors.Is(err, types.ErrFeedNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, types.ErrInsufficientHistory), errors.Is(err, types.ErrStaleFeed):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, types.ErrInvalidAmount), errors.Is(err, types.ErrInsufficientShares), errors.Is(err, types.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, types.ErrArithmeticOverflow):
		return status.Error(codes.OutOfRange, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
