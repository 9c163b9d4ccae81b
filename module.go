package sharevault

import (
	"context"
	"encoding/json"

	"cosmossdk.io/core/address"
	"cosmossdk.io/core/appmodule"
	"cosmossdk.io/core/event"
	"cosmossdk.io/core/store"
	"cosmossdk.io/depinject"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"

	"github.com/provlabs/sharevault/keeper"
	"github.com/provlabs/sharevault/types"
)

// ConsensusVersion defines the current x/sharevault module consensus version.
const ConsensusVersion = 1

var (
	_ module.HasName             = AppModuleBasic{}
	_ module.HasGenesisBasics    = AppModuleBasic{}
	_ appmodule.AppModule        = AppModule{}
	_ appmodule.HasBeginBlocker  = AppModule{}
	_ module.HasConsensusVersion = AppModule{}
	_ module.HasGenesis          = AppModule{}
)

// AppModuleBasic implements the stateless methods of the module.
type AppModuleBasic struct{}

// Name returns the module name.
func (AppModuleBasic) Name() string { return types.ModuleName }

// DefaultGenesis returns default genesis state as raw bytes. The genesis
// document is encoded with types.ModuleCdc rather than the app's proto codec.
func (AppModuleBasic) DefaultGenesis(_ codec.JSONCodec) json.RawMessage {
	return mustMarshalGenesis(types.DefaultGenesisState())
}

// ValidateGenesis validates the genesis state.
func (AppModuleBasic) ValidateGenesis(_ codec.JSONCodec, _ client.TxEncodingConfig, bz json.RawMessage) error {
	_, err := parseGenesis(bz)
	return err
}

// AppModule implements the stateful module functionality.
type AppModule struct {
	AppModuleBasic
	keeper *keeper.Keeper
}

// NewAppModule creates a new AppModule instance.
func NewAppModule(keeper *keeper.Keeper) AppModule {
	return AppModule{keeper: keeper}
}

// IsOnePerModuleType asserts one module per type.
func (AppModule) IsOnePerModuleType() {}

// IsAppModule asserts this is an app module.
func (AppModule) IsAppModule() {}

// ConsensusVersion returns the module consensus version.
func (AppModule) ConsensusVersion() uint64 { return ConsensusVersion }

// InitGenesis initializes the module's state from genesis.
func (m AppModule) InitGenesis(ctx sdk.Context, _ codec.JSONCodec, bz json.RawMessage) {
	genesis, err := parseGenesis(bz)
	if err != nil {
		panic(err)
	}
	m.keeper.InitGenesis(ctx, genesis)
}

// ExportGenesis exports the module's state to genesis.
func (m AppModule) ExportGenesis(ctx sdk.Context, _ codec.JSONCodec) json.RawMessage {
	return mustMarshalGenesis(m.keeper.ExportGenesis(ctx))
}

// BeginBlock releases vested donations and prunes aged oracle observations.
func (m AppModule) BeginBlock(ctx context.Context) error {
	return m.keeper.BeginBlocker(sdk.UnwrapSDKContext(ctx))
}

// ModuleConfig carries optional app-level settings for the module.
type ModuleConfig struct {
	// Authority overrides the governance module account as the params authority.
	// It may be a module name or a bech32 address.
	Authority string
}

// ModuleInputs defines the inputs required to initialize the module.
type ModuleInputs struct {
	depinject.In

	Config       *ModuleConfig `optional:"true"`
	StoreService store.KVStoreService
	EventService event.Service
	AddressCodec address.Codec
	BankKeeper   types.BankKeeper
}

// ModuleOutputs defines the outputs of the module provider.
type ModuleOutputs struct {
	depinject.Out

	Keeper      *keeper.Keeper
	Module      appmodule.AppModule
	MsgServer   types.MsgServer
	QueryServer types.QueryServer
}

// ProvideModule wires up the module, its keeper and its handler sets. The
// handlers are plain Go types with no proto service descriptors, so the app
// routes to them itself instead of through RegisterServices.
func ProvideModule(in ModuleInputs) ModuleOutputs {
	authority := authtypes.NewModuleAddress(govtypes.ModuleName)
	if in.Config != nil && in.Config.Authority != "" {
		authority = authtypes.NewModuleAddressOrBech32Address(in.Config.Authority)
	}

	k := keeper.NewKeeper(
		in.StoreService,
		in.EventService,
		in.AddressCodec,
		authority,
		in.BankKeeper,
	)
	return ModuleOutputs{
		Keeper:      k,
		Module:      NewAppModule(k),
		MsgServer:   keeper.NewMsgServer(k),
		QueryServer: keeper.NewQueryServer(k),
	}
}
