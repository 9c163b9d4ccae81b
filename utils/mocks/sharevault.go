package mocks

import (
	"fmt"
	"testing"
	"time"

	storetypes "cosmossdk.io/store/types"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"

	"github.com/provlabs/sharevault/keeper"
	"github.com/provlabs/sharevault/types"
)

// NewSharevaultKeeper returns an instance of the Keeper with all dependencies
// mocked. The context block time is set to now.
func NewSharevaultKeeper(t testing.TB) (sdk.Context, *keeper.Keeper, *BankKeeper) {
	key := storetypes.NewKVStoreKey(types.StoreKey)
	tkey := storetypes.NewTransientStoreKey(fmt.Sprintf("transient_%s", types.ModuleName))
	wrapper := testutil.DefaultContextWithDB(t, key, tkey)

	storeService := runtime.NewKVStoreService(key)
	bank := NewBankKeeper(storeService)
	k := keeper.NewKeeper(
		storeService,
		runtime.ProvideEventService(),
		addresscodec.NewBech32Codec("cosmos"),
		authtypes.NewModuleAddress(govtypes.ModuleName),
		bank,
	)

	ctx := wrapper.Ctx.WithBlockTime(time.Now().UTC()).WithEventManager(sdk.NewEventManager())
	return ctx, k, bank
}
