package types

import (
	"context"

	sdkmath "cosmossdk.io/math"

	"github.com/cosmos/cosmos-sdk/types/query"
)

type QueryParamsRequest struct{}

type QueryParamsResponse struct {
	Params Params `json:"params"`
}

type QueryVaultsRequest struct {
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

type QueryVaultsResponse struct {
	Vaults     []Vault             `json:"vaults"`
	Pagination *query.PageResponse `json:"pagination,omitempty"`
}

type QueryVaultRequest struct {
	VaultID string `json:"vault_id"`
}

// QueryVaultResponse carries the vault together with its live pricing.
type QueryVaultResponse struct {
	Vault      Vault             `json:"vault"`
	Address    string            `json:"address"`
	HeldAssets sdkmath.Int       `json:"held_assets"`
	SharePrice sdkmath.LegacyDec `json:"share_price"`
}

type QueryBalancesRequest struct {
	VaultID    string             `json:"vault_id"`
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

type QueryBalancesResponse struct {
	Balances   []ShareBalance      `json:"balances"`
	Pagination *query.PageResponse `json:"pagination,omitempty"`
}

type QueryPreviewDepositRequest struct {
	VaultID string      `json:"vault_id"`
	Assets  sdkmath.Int `json:"assets"`
}

type QueryPreviewDepositResponse struct {
	Shares sdkmath.Int `json:"shares"`
}

type QueryPreviewWithdrawRequest struct {
	VaultID string      `json:"vault_id"`
	Shares  sdkmath.Int `json:"shares"`
}

type QueryPreviewWithdrawResponse struct {
	Assets sdkmath.Int `json:"assets"`
}

type QueryFeedRequest struct {
	FeedID string `json:"feed_id"`
}

type QueryFeedResponse struct {
	Feed         Feed         `json:"feed"`
	Observations []PricePoint `json:"observations,omitempty"`
}

type QueryPriceRequest struct {
	FeedID string `json:"feed_id"`
}

type QueryPriceResponse struct {
	Price sdkmath.LegacyDec `json:"price"`
}

// QueryServer is the module's query handler set.
type QueryServer interface {
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	Vaults(context.Context, *QueryVaultsRequest) (*QueryVaultsResponse, error)
	Vault(context.Context, *QueryVaultRequest) (*QueryVaultResponse, error)
	Balances(context.Context, *QueryBalancesRequest) (*QueryBalancesResponse, error)
	PreviewDeposit(context.Context, *QueryPreviewDepositRequest) (*QueryPreviewDepositResponse, error)
	PreviewWithdraw(context.Context, *QueryPreviewWithdrawRequest) (*QueryPreviewWithdrawResponse, error)
	Feed(context.Context, *QueryFeedRequest) (*QueryFeedResponse, error)
	Price(context.Context, *QueryPriceRequest) (*QueryPriceResponse, error)
}
