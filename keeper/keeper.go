package keeper

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/address"
	"cosmossdk.io/core/event"
	"cosmossdk.io/core/store"
	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/sharevault/container"
	"github.com/provlabs/sharevault/types"
)

// Keeper owns the vault ledgers and price feeds.
//
// Every mutation runs under the write lock and inside a cached context that is
// only committed on success, so a failed call leaves state untouched and no
// caller observes a half-applied update. Reads take the read lock.
type Keeper struct {
	schema       collections.Schema
	eventService event.Service
	addressCodec address.Codec
	authority    []byte
	mu           *sync.RWMutex

	BankKeeper types.BankKeeper

	Params       collections.Item[types.Params]
	Vaults       collections.Map[string, types.Vault]
	Shares       collections.Map[collections.Pair[string, sdk.AccAddress], sdkmath.Int]
	Feeds        collections.Map[string, types.Feed]
	Observations container.ObservationWindow
	VestingQueue container.VestingQueue
}

func NewKeeper(
	storeService store.KVStoreService,
	eventService event.Service,
	addressCodec address.Codec,
	authority []byte,
	bankKeeper types.BankKeeper,
) *Keeper {
	if _, err := addressCodec.BytesToString(authority); err != nil {
		panic(fmt.Sprintf("invalid authority address %s: %s", authority, err))
	}

	builder := collections.NewSchemaBuilder(storeService)

	keeper := &Keeper{
		eventService: eventService,
		addressCodec: addressCodec,
		authority:    authority,
		mu:           &sync.RWMutex{},
		BankKeeper:   bankKeeper,
		Params:       collections.NewItem(builder, types.ParamsKeyPrefix, types.ParamsName, types.AminoValue[types.Params]("Params")),
		Vaults:       collections.NewMap(builder, types.VaultsKeyPrefix, types.VaultsName, collections.StringKey, types.AminoValue[types.Vault]("Vault")),
		Shares: collections.NewMap(builder, types.SharesKeyPrefix, types.SharesName,
			collections.PairKeyCodec(collections.StringKey, sdk.AccAddressKey), sdk.IntValue),
		Feeds:        collections.NewMap(builder, types.FeedsKeyPrefix, types.FeedsName, collections.StringKey, types.AminoValue[types.Feed]("Feed")),
		Observations: container.NewObservationWindow(builder),
		VestingQueue: container.NewVestingQueue(builder),
	}

	schema, err := builder.Build()
	if err != nil {
		panic(err)
	}

	keeper.schema = schema
	return keeper
}

// GetAuthority returns the module's authority.
func (k Keeper) GetAuthority() []byte {
	return k.authority
}

// GetParams returns the module params, falling back to the defaults if none are stored.
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	params, err := k.Params.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.DefaultParams(), nil
		}
		return types.Params{}, err
	}
	return params, nil
}

// UpdateParams replaces the module params. Only the authority may call it.
func (k Keeper) UpdateParams(ctx sdk.Context, authority string, params types.Params) error {
	addr, err := k.addressCodec.StringToBytes(authority)
	if err != nil {
		return types.ErrInvalidRequest.Wrapf("invalid authority %q: %v", authority, err)
	}
	if !sdk.AccAddress(addr).Equals(sdk.AccAddress(k.authority)) {
		return types.ErrInvalidRequest.Wrapf("%s is not the module authority", authority)
	}
	if err := params.Validate(); err != nil {
		return types.ErrInvalidRequest.Wrap(err.Error())
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	return k.Params.Set(ctx, params)
}

// getLogger returns a logger with module context.
func (k Keeper) getLogger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+types.ModuleName)
}

// emitEvent emits a typed event through the event service. A failure to emit
// is logged and never fails the operation that produced it.
func (k Keeper) emitEvent(ctx sdk.Context, e types.Event) {
	if err := k.eventService.EventManager(ctx).EmitKV(ctx, e.Type, e.Attributes...); err != nil {
		k.getLogger(ctx).Error("failed to emit event", "type", e.Type, "error", err)
	}
}

// atomically runs fn against a cached context and commits it only if fn succeeds.
func atomically[T any](ctx sdk.Context, fn func(sdk.Context) (T, error)) (T, error) {
	cacheCtx, write := ctx.CacheContext()
	out, err := fn(cacheCtx)
	if err != nil {
		var zero T
		return zero, err
	}
	write()
	return out, nil
}
