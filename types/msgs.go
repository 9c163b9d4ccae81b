package types

import (
	"context"
	fmt "fmt"
	"time"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgCreateVaultRequest creates a new vault. Unset offsets and vesting period
// take the module defaults.
type MsgCreateVaultRequest struct {
	Creator       string        `json:"creator"`
	VaultID       string        `json:"vault_id"`
	Denom         string        `json:"denom"`
	Policy        PolicyKind    `json:"policy"`
	VirtualAssets sdkmath.Int   `json:"virtual_assets"`
	VirtualShares sdkmath.Int   `json:"virtual_shares"`
	VestingPeriod time.Duration `json:"vesting_period"`
}

type MsgCreateVaultResponse struct {
	VaultID      string `json:"vault_id"`
	VaultAddress string `json:"vault_address"`
}

// MsgDepositRequest deposits assets into a vault.
type MsgDepositRequest struct {
	Depositor string      `json:"depositor"`
	VaultID   string      `json:"vault_id"`
	Assets    sdkmath.Int `json:"assets"`
}

type MsgDepositResponse struct {
	SharesMinted sdkmath.Int `json:"shares_minted"`
}

// MsgWithdrawRequest redeems shares for underlying assets.
type MsgWithdrawRequest struct {
	Owner   string      `json:"owner"`
	VaultID string      `json:"vault_id"`
	Shares  sdkmath.Int `json:"shares"`
}

type MsgWithdrawResponse struct {
	AssetsPaid sdkmath.Int `json:"assets_paid"`
}

// MsgAbsorbDonationRequest folds untracked balance at a vault address into its vesting schedule.
type MsgAbsorbDonationRequest struct {
	Sender  string `json:"sender"`
	VaultID string `json:"vault_id"`
}

type MsgAbsorbDonationResponse struct {
	Absorbed sdkmath.Int `json:"absorbed"`
}

// MsgCreateFeedRequest registers a new price feed.
type MsgCreateFeedRequest struct {
	Creator         string        `json:"creator"`
	FeedID          string        `json:"feed_id"`
	Strategy        StrategyKind  `json:"strategy"`
	Window          time.Duration `json:"window,omitempty"`
	MinObservations uint32        `json:"min_observations,omitempty"`
	MinDuration     time.Duration `json:"min_duration,omitempty"`
	MaxObservations uint32        `json:"max_observations,omitempty"`
	MaxStaleness    time.Duration `json:"max_staleness,omitempty"`
}

type MsgCreateFeedResponse struct{}

// MsgRecordObservationRequest records a price into a feed.
type MsgRecordObservationRequest struct {
	Reporter  string            `json:"reporter"`
	FeedID    string            `json:"feed_id"`
	Price     sdkmath.LegacyDec `json:"price"`
	Timestamp time.Time         `json:"timestamp"`
	Attested  bool              `json:"attested,omitempty"`
}

type MsgRecordObservationResponse struct{}

// MsgUpdateParams replaces the module params.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

type MsgUpdateParamsResponse struct{}

// ValidateBasic performs stateless validation on MsgCreateVaultRequest.
func (m MsgCreateVaultRequest) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Creator); err != nil {
		return fmt.Errorf("invalid creator address: %q: %w", m.Creator, err)
	}
	if err := ValidateVaultID(m.VaultID); err != nil {
		return err
	}
	if err := sdk.ValidateDenom(m.Denom); err != nil {
		return fmt.Errorf("invalid asset denom: %q: %w", m.Denom, err)
	}
	if err := m.Policy.Validate(); err != nil {
		return err
	}
	if !m.VirtualAssets.IsNil() && m.VirtualAssets.IsNegative() {
		return fmt.Errorf("virtual assets cannot be negative")
	}
	if !m.VirtualShares.IsNil() && m.VirtualShares.IsNegative() {
		return fmt.Errorf("virtual shares cannot be negative")
	}
	if m.VestingPeriod < 0 {
		return fmt.Errorf("vesting period cannot be negative")
	}
	return nil
}

// Config returns the vault config carried by the message.
func (m MsgCreateVaultRequest) Config() VaultConfig {
	return VaultConfig{
		ID:            m.VaultID,
		Denom:         m.Denom,
		Policy:        m.Policy,
		VirtualAssets: m.VirtualAssets,
		VirtualShares: m.VirtualShares,
		VestingPeriod: m.VestingPeriod,
	}
}

// ValidateBasic performs stateless validation on MsgDepositRequest.
func (m MsgDepositRequest) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Depositor); err != nil {
		return fmt.Errorf("invalid depositor address: %q: %w", m.Depositor, err)
	}
	if err := ValidateVaultID(m.VaultID); err != nil {
		return err
	}
	if m.Assets.IsNil() || !m.Assets.IsPositive() {
		return ErrInvalidAmount.Wrapf("deposit amount must be positive, got %v", m.Assets)
	}
	return nil
}

// ValidateBasic performs stateless validation on MsgWithdrawRequest.
func (m MsgWithdrawRequest) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Owner); err != nil {
		return fmt.Errorf("invalid owner address: %q: %w", m.Owner, err)
	}
	if err := ValidateVaultID(m.VaultID); err != nil {
		return err
	}
	if m.Shares.IsNil() || !m.Shares.IsPositive() {
		return ErrInvalidAmount.Wrapf("withdraw shares must be positive, got %v", m.Shares)
	}
	return nil
}

// ValidateBasic performs stateless validation on MsgAbsorbDonationRequest.
func (m MsgAbsorbDonationRequest) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Sender); err != nil {
		return fmt.Errorf("invalid sender address: %q: %w", m.Sender, err)
	}
	return ValidateVaultID(m.VaultID)
}

// ValidateBasic performs stateless validation on MsgCreateFeedRequest.
func (m MsgCreateFeedRequest) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Creator); err != nil {
		return fmt.Errorf("invalid creator address: %q: %w", m.Creator, err)
	}
	if err := ValidateFeedID(m.FeedID); err != nil {
		return err
	}
	return m.Strategy.Validate()
}

// Config returns the feed config carried by the message.
func (m MsgCreateFeedRequest) Config() FeedConfig {
	return FeedConfig{
		ID:              m.FeedID,
		Strategy:        m.Strategy,
		Window:          m.Window,
		MinObservations: m.MinObservations,
		MinDuration:     m.MinDuration,
		MaxObservations: m.MaxObservations,
		MaxStaleness:    m.MaxStaleness,
	}
}

// ValidateBasic performs stateless validation on MsgRecordObservationRequest.
func (m MsgRecordObservationRequest) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Reporter); err != nil {
		return fmt.Errorf("invalid reporter address: %q: %w", m.Reporter, err)
	}
	if err := ValidateFeedID(m.FeedID); err != nil {
		return err
	}
	return NewPricePoint(m.Price, m.Timestamp, m.Attested).Validate()
}

// ValidateBasic performs stateless validation on MsgUpdateParams.
func (m MsgUpdateParams) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Authority); err != nil {
		return fmt.Errorf("invalid authority address: %q: %w", m.Authority, err)
	}
	return m.Params.Validate()
}

// MsgServer is the module's message handler set.
type MsgServer interface {
	CreateVault(context.Context, *MsgCreateVaultRequest) (*MsgCreateVaultResponse, error)
	Deposit(context.Context, *MsgDepositRequest) (*MsgDepositResponse, error)
	Withdraw(context.Context, *MsgWithdrawRequest) (*MsgWithdrawResponse, error)
	AbsorbDonation(context.Context, *MsgAbsorbDonationRequest) (*MsgAbsorbDonationResponse, error)
	CreateFeed(context.Context, *MsgCreateFeedRequest) (*MsgCreateFeedResponse, error)
	RecordObservation(context.Context, *MsgRecordObservationRequest) (*MsgRecordObservationResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}
