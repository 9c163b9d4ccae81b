package types

import (
	fmt "fmt"

	"cosmossdk.io/collections"
	"github.com/cometbft/cometbft/crypto"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "sharevault"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

var (
	// ParamsKeyPrefix is the prefix to retrieve the module Params
	ParamsKeyPrefix = collections.NewPrefix(0)
	// ParamsName is a human-readable name for the params collection.
	ParamsName = "params"

	// VaultsKeyPrefix is the prefix to retrieve all Vaults
	VaultsKeyPrefix = collections.NewPrefix(1)
	// VaultsName is a human-readable name for the vaults collection.
	VaultsName = "vaults"

	// SharesKeyPrefix is the prefix for share balances keyed by (vault id, holder).
	SharesKeyPrefix = collections.NewPrefix(2)
	// SharesName is a human-readable name for the share balances collection.
	SharesName = "shares"

	// FeedsKeyPrefix is the prefix to retrieve all price Feeds
	FeedsKeyPrefix = collections.NewPrefix(3)
	// FeedsName is a human-readable name for the feeds collection.
	FeedsName = "feeds"

	// ObservationWindowPrefix is the prefix for TWAP observations keyed by (feed id, timestamp).
	ObservationWindowPrefix = collections.NewPrefix(4)
	// ObservationWindowName is a human-readable name for the observation window collection.
	ObservationWindowName = "observation_window"

	// VestingQueuePrefix is the prefix for active donation schedules keyed by (end, vault id).
	VestingQueuePrefix = collections.NewPrefix(5)
	// VestingQueueName is a human-readable name for the vesting queue collection.
	VestingQueueName = "vesting_queue"
)

// GetVaultAddress returns the custody address holding the assets for the given vault id.
func GetVaultAddress(vaultID string) sdk.AccAddress {
	return sdk.AccAddress(crypto.AddressHash([]byte(fmt.Sprintf("%s/%s", ModuleName, vaultID))))
}
