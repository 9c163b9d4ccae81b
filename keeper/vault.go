package keeper

import (
	"context"
	"errors"
	"time"

	"cosmossdk.io/collections"
	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/sharevault/policy"
	"github.com/provlabs/sharevault/types"
	"github.com/provlabs/sharevault/utils"
)

// CreateVault creates an empty vault from the config. Unset offsets and
// vesting period are filled from the module params.
func (k *Keeper) CreateVault(ctx sdk.Context, cfg types.VaultConfig) (*types.Vault, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	vault := types.NewVault(cfg, params)
	if err := vault.Validate(); err != nil {
		return nil, types.ErrInvalidRequest.Wrap(err.Error())
	}

	has, err := k.Vaults.Has(ctx, vault.ID)
	if err != nil {
		return nil, err
	}
	if has {
		return nil, types.ErrVaultExists.Wrapf("vault %s", vault.ID)
	}
	if err := k.Vaults.Set(ctx, vault.ID, vault); err != nil {
		return nil, err
	}

	k.emitEvent(ctx, types.NewEventVaultCreated(vault))
	k.getLogger(ctx).Info("vault created", "vault_id", vault.ID, "denom", vault.Denom, "policy", vault.Policy)
	return &vault, nil
}

// GetVault finds a vault by id.
//
// This function will return nil if no vault exists with this id.
func (k Keeper) GetVault(ctx context.Context, vaultID string) (*types.Vault, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	vault, err := k.Vaults.Get(ctx, vaultID)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vault, nil
}

// ShareBalanceOf returns the holder's share balance in the vault, zero if none.
func (k Keeper) ShareBalanceOf(ctx context.Context, vaultID string, holder sdk.AccAddress) (sdkmath.Int, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if _, _, err := k.loadVault(ctx, vaultID); err != nil {
		return sdkmath.Int{}, err
	}
	return k.shareBalance(ctx, vaultID, holder)
}

// TotalAssets returns the asset base the vault currently prices against: the
// live held balance for a naive vault, the tracked counter plus vested
// donations for an offset vault.
func (k Keeper) TotalAssets(ctx context.Context, vaultID string) (sdkmath.Int, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	vault, pol, err := k.loadVault(ctx, vaultID)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return pol.TotalAssets(vault, k.heldAssets(ctx, vault), blockTime(ctx)), nil
}

// TotalShares returns the vault's outstanding shares.
func (k Keeper) TotalShares(ctx context.Context, vaultID string) (sdkmath.Int, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	vault, _, err := k.loadVault(ctx, vaultID)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return vault.TotalShares, nil
}

// Deposit moves assets from the depositor into the vault and mints shares
// priced by the vault's policy. It returns the shares minted.
func (k *Keeper) Deposit(ctx sdk.Context, vaultID string, depositor sdk.AccAddress, assets sdkmath.Int) (sdkmath.Int, error) {
	if assets.IsNil() || !assets.IsPositive() {
		return sdkmath.ZeroInt(), types.ErrInvalidAmount.Wrapf("deposit amount must be positive, got %v", assets)
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	return atomically(ctx, func(ctx sdk.Context) (sdkmath.Int, error) {
		vault, pol, err := k.loadVault(ctx, vaultID)
		if err != nil {
			return sdkmath.Int{}, err
		}
		now := ctx.BlockTime()
		if err := k.releaseVested(ctx, &vault, now); err != nil {
			return sdkmath.Int{}, err
		}

		totalAssets := pol.TotalAssets(vault, k.heldAssets(ctx, vault), now)
		shares, err := pol.ConvertToShares(vault, totalAssets, assets)
		if err != nil {
			return sdkmath.Int{}, err
		}

		if vault.TotalAssets, err = utils.SafeAdd(vault.TotalAssets, assets); err != nil {
			return sdkmath.Int{}, err
		}
		if vault.TotalShares, err = utils.SafeAdd(vault.TotalShares, shares); err != nil {
			return sdkmath.Int{}, err
		}
		if err := k.addShares(ctx, vaultID, depositor, shares); err != nil {
			return sdkmath.Int{}, err
		}
		if err := k.Vaults.Set(ctx, vaultID, vault); err != nil {
			return sdkmath.Int{}, err
		}

		if err := k.BankKeeper.SendCoins(ctx, depositor, vault.GetAddress(), sdk.NewCoins(sdk.NewCoin(vault.Denom, assets))); err != nil {
			return sdkmath.Int{}, err
		}

		k.emitEvent(ctx, types.NewEventDeposit(vaultID, depositor.String(), assets, shares))
		k.getLogger(ctx).Debug("deposit", "vault_id", vaultID, "depositor", depositor.String(), "assets", assets.String(), "shares", shares.String())
		return shares, nil
	})
}

// Withdraw burns shares from the holder and pays out the assets they redeem
// for. It returns the assets paid.
func (k *Keeper) Withdraw(ctx sdk.Context, vaultID string, holder sdk.AccAddress, shares sdkmath.Int) (sdkmath.Int, error) {
	if shares.IsNil() || !shares.IsPositive() {
		return sdkmath.ZeroInt(), types.ErrInvalidAmount.Wrapf("withdraw shares must be positive, got %v", shares)
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	return atomically(ctx, func(ctx sdk.Context) (sdkmath.Int, error) {
		vault, pol, err := k.loadVault(ctx, vaultID)
		if err != nil {
			return sdkmath.Int{}, err
		}

		balance, err := k.shareBalance(ctx, vaultID, holder)
		if err != nil {
			return sdkmath.Int{}, err
		}
		if shares.GT(balance) {
			return sdkmath.Int{}, types.ErrInsufficientShares.Wrapf("%s holds %s shares of %s, requested %s", holder, balance, vaultID, shares)
		}

		now := ctx.BlockTime()
		if err := k.releaseVested(ctx, &vault, now); err != nil {
			return sdkmath.Int{}, err
		}

		totalAssets := pol.TotalAssets(vault, k.heldAssets(ctx, vault), now)
		assets, err := pol.ConvertToAssets(vault, totalAssets, shares)
		if err != nil {
			return sdkmath.Int{}, err
		}

		// naive vaults price off the live balance and can pay out more than they tracked
		if assets.GT(vault.TotalAssets) {
			vault.TotalAssets = sdkmath.ZeroInt()
		} else {
			vault.TotalAssets = vault.TotalAssets.Sub(assets)
		}
		vault.TotalShares = vault.TotalShares.Sub(shares)
		if vault.TotalShares.IsZero() {
			// the next deposit is a first deposit again
			if err := k.emptyVault(ctx, &vault); err != nil {
				return sdkmath.Int{}, err
			}
		}
		if err := k.setShares(ctx, vaultID, holder, balance.Sub(shares)); err != nil {
			return sdkmath.Int{}, err
		}
		if err := k.Vaults.Set(ctx, vaultID, vault); err != nil {
			return sdkmath.Int{}, err
		}

		if !assets.IsZero() {
			if err := k.BankKeeper.SendCoins(ctx, vault.GetAddress(), holder, sdk.NewCoins(sdk.NewCoin(vault.Denom, assets))); err != nil {
				return sdkmath.Int{}, err
			}
		}

		k.emitEvent(ctx, types.NewEventWithdraw(vaultID, holder.String(), assets, shares))
		k.getLogger(ctx).Debug("withdraw", "vault_id", vaultID, "holder", holder.String(), "assets", assets.String(), "shares", shares.String())
		return assets, nil
	})
}

// SharePrice returns the current assets-per-share of the vault. It never writes.
func (k Keeper) SharePrice(ctx context.Context, vaultID string) (sdkmath.LegacyDec, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	vault, pol, err := k.loadVault(ctx, vaultID)
	if err != nil {
		return sdkmath.LegacyDec{}, err
	}
	totalAssets := pol.TotalAssets(vault, k.heldAssets(ctx, vault), blockTime(ctx))
	return pol.SharePrice(vault, totalAssets)
}

// PreviewDeposit returns the shares a deposit of assets would mint right now.
func (k Keeper) PreviewDeposit(ctx context.Context, vaultID string, assets sdkmath.Int) (sdkmath.Int, error) {
	if assets.IsNil() || !assets.IsPositive() {
		return sdkmath.ZeroInt(), types.ErrInvalidAmount.Wrapf("deposit amount must be positive, got %v", assets)
	}

	k.mu.RLock()
	defer k.mu.RUnlock()

	vault, pol, err := k.loadVault(ctx, vaultID)
	if err != nil {
		return sdkmath.Int{}, err
	}
	totalAssets := pol.TotalAssets(vault, k.heldAssets(ctx, vault), blockTime(ctx))
	return pol.ConvertToShares(vault, totalAssets, assets)
}

// PreviewWithdraw returns the assets redeeming shares would pay right now.
func (k Keeper) PreviewWithdraw(ctx context.Context, vaultID string, shares sdkmath.Int) (sdkmath.Int, error) {
	if shares.IsNil() || !shares.IsPositive() {
		return sdkmath.ZeroInt(), types.ErrInvalidAmount.Wrapf("withdraw shares must be positive, got %v", shares)
	}

	k.mu.RLock()
	defer k.mu.RUnlock()

	vault, pol, err := k.loadVault(ctx, vaultID)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if shares.GT(vault.TotalShares) {
		return sdkmath.Int{}, types.ErrInsufficientShares.Wrapf("vault %s has %s shares outstanding", vaultID, vault.TotalShares)
	}
	totalAssets := pol.TotalAssets(vault, k.heldAssets(ctx, vault), blockTime(ctx))
	return pol.ConvertToAssets(vault, totalAssets, shares)
}

// AbsorbDonation folds any balance at the vault address that the ledger does
// not account for into a linear vesting schedule, so it reaches share holders
// gradually over the vault's vesting period. It returns the newly absorbed
// amount, which is zero when there is nothing to absorb.
//
// Only offset vaults support absorption; a naive vault already prices off the
// live balance.
func (k *Keeper) AbsorbDonation(ctx sdk.Context, vaultID string) (sdkmath.Int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	return atomically(ctx, func(ctx sdk.Context) (sdkmath.Int, error) {
		vault, _, err := k.loadVault(ctx, vaultID)
		if err != nil {
			return sdkmath.Int{}, err
		}
		if vault.Policy != types.PolicyOffset {
			return sdkmath.Int{}, types.ErrInvalidRequest.Wrapf("vault %s uses the %s policy, which has no donation ledger", vaultID, vault.Policy)
		}
		if vault.TotalShares.IsZero() {
			return sdkmath.Int{}, types.ErrInvalidRequest.Wrapf("vault %s has no shares outstanding to absorb a donation into", vaultID)
		}

		now := ctx.BlockTime()
		if err := k.releaseVested(ctx, &vault, now); err != nil {
			return sdkmath.Int{}, err
		}

		locked := sdkmath.ZeroInt()
		if vault.Vesting != nil {
			locked = vault.Vesting.Unvested(now)
		}
		surplus := k.heldAssets(ctx, vault).Sub(vault.TotalAssets).Sub(locked)
		if !surplus.IsPositive() {
			return sdkmath.ZeroInt(), k.Vaults.Set(ctx, vaultID, vault)
		}

		if vault.VestingPeriod == 0 {
			if vault.TotalAssets, err = utils.SafeAdd(vault.TotalAssets, surplus); err != nil {
				return sdkmath.Int{}, err
			}
		} else {
			total, err := utils.SafeAdd(locked, surplus)
			if err != nil {
				return sdkmath.Int{}, err
			}
			// the remaining locked amount restarts with the new donation
			if vault.Vesting != nil {
				if err := k.VestingQueue.Dequeue(ctx, vaultID, vault.Vesting.End); err != nil {
					return sdkmath.Int{}, err
				}
			}
			vault.Vesting = &types.DonationVesting{
				Total:    total,
				Released: sdkmath.ZeroInt(),
				Start:    now,
				End:      now.Add(vault.VestingPeriod),
			}
			if err := k.VestingQueue.Enqueue(ctx, vaultID, vault.Vesting.End); err != nil {
				return sdkmath.Int{}, err
			}
		}
		if err := k.Vaults.Set(ctx, vaultID, vault); err != nil {
			return sdkmath.Int{}, err
		}

		vestEnd := now.Add(vault.VestingPeriod)
		k.emitEvent(ctx, types.NewEventDonationAbsorbed(vaultID, surplus, vestEnd))
		k.getLogger(ctx).Info("donation absorbed", "vault_id", vaultID, "amount", surplus.String(), "vest_end", vestEnd)
		return surplus, nil
	})
}

// loadVault returns the stored vault and its accounting policy.
func (k Keeper) loadVault(ctx context.Context, vaultID string) (types.Vault, policy.Policy, error) {
	vault, err := k.Vaults.Get(ctx, vaultID)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Vault{}, nil, types.ErrVaultNotFound.Wrapf("vault %s", vaultID)
		}
		return types.Vault{}, nil, err
	}
	pol, err := policy.New(vault.Policy)
	if err != nil {
		return types.Vault{}, nil, err
	}
	return vault, pol, nil
}

// releaseVested moves the vested part of the vault's donation schedule into
// its tracked assets. A vault without shares has nobody to credit, so its
// schedule is dropped instead. The caller persists the vault.
func (k Keeper) releaseVested(ctx sdk.Context, vault *types.Vault, now time.Time) error {
	if vault.Vesting == nil {
		return nil
	}
	if vault.TotalShares.IsZero() {
		return k.dropVesting(ctx, vault)
	}
	amount := vault.Vesting.Releasable(now)
	if amount.IsPositive() {
		total, err := utils.SafeAdd(vault.TotalAssets, amount)
		if err != nil {
			return err
		}
		vault.TotalAssets = total
		vault.Vesting.Released = vault.Vesting.Released.Add(amount)
		k.emitEvent(ctx, types.NewEventDonationVested(vault.ID, amount))
	}
	if vault.Vesting.Released.GTE(vault.Vesting.Total) {
		if err := k.VestingQueue.Dequeue(ctx, vault.ID, vault.Vesting.End); err != nil {
			return err
		}
		vault.Vesting = nil
	}
	return nil
}

// emptyVault clears the ledger of a vault whose last shares were redeemed.
// Rounding dust and any unvested donation stay at the vault address as an
// untracked balance. The caller persists the vault.
func (k Keeper) emptyVault(ctx sdk.Context, vault *types.Vault) error {
	vault.TotalAssets = sdkmath.ZeroInt()
	if err := k.dropVesting(ctx, vault); err != nil {
		return err
	}
	k.getLogger(ctx).Info("vault emptied", "vault_id", vault.ID)
	return nil
}

// dropVesting removes the vault's schedule without releasing what is left of it.
func (k Keeper) dropVesting(ctx sdk.Context, vault *types.Vault) error {
	if vault.Vesting == nil {
		return nil
	}
	if err := k.VestingQueue.Dequeue(ctx, vault.ID, vault.Vesting.End); err != nil {
		return err
	}
	vault.Vesting = nil
	return nil
}

// heldAssets returns the live balance at the vault address.
func (k Keeper) heldAssets(ctx context.Context, vault types.Vault) sdkmath.Int {
	return k.BankKeeper.GetBalance(ctx, vault.GetAddress(), vault.Denom).Amount
}

func (k Keeper) shareBalance(ctx context.Context, vaultID string, holder sdk.AccAddress) (sdkmath.Int, error) {
	bal, err := k.Shares.Get(ctx, collections.Join(vaultID, holder))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return sdkmath.ZeroInt(), nil
		}
		return sdkmath.Int{}, err
	}
	return bal, nil
}

func (k Keeper) addShares(ctx context.Context, vaultID string, holder sdk.AccAddress, shares sdkmath.Int) error {
	if shares.IsZero() {
		return nil
	}
	bal, err := k.shareBalance(ctx, vaultID, holder)
	if err != nil {
		return err
	}
	bal, err = utils.SafeAdd(bal, shares)
	if err != nil {
		return err
	}
	return k.setShares(ctx, vaultID, holder, bal)
}

// setShares stores the holder's balance, removing the entry when it reaches zero.
func (k Keeper) setShares(ctx context.Context, vaultID string, holder sdk.AccAddress, shares sdkmath.Int) error {
	key := collections.Join(vaultID, holder)
	if shares.IsZero() {
		return k.Shares.Remove(ctx, key)
	}
	return k.Shares.Set(ctx, key, shares)
}

// blockTime returns the block time carried by an sdk context.
func blockTime(ctx context.Context) time.Time {
	return sdk.UnwrapSDKContext(ctx).BlockTime()
}
