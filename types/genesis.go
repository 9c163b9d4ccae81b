package types

import (
	fmt "fmt"

	sdkmath "cosmossdk.io/math"
)

// GenesisState is the exported state of the module.
type GenesisState struct {
	Params       Params            `json:"params"`
	Vaults       []Vault           `json:"vaults"`
	Balances     []ShareBalance    `json:"balances"`
	Feeds        []Feed            `json:"feeds"`
	Observations []FeedObservation `json:"observations"`
}

// DefaultGenesisState returns the default genesis state.
func DefaultGenesisState() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
	}
}

// Validate performs basic genesis state validation. Beyond per-entry checks it
// requires every vault's share total to equal the sum of its holders' balances.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}

	vaults := make(map[string]Vault, len(gs.Vaults))
	for i, v := range gs.Vaults {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid vault at index %d: %w", i, err)
		}
		if _, dup := vaults[v.ID]; dup {
			return fmt.Errorf("duplicate vault id %q", v.ID)
		}
		vaults[v.ID] = v
	}

	sums := make(map[string]sdkmath.Int, len(vaults))
	seen := make(map[string]struct{}, len(gs.Balances))
	for i, b := range gs.Balances {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("invalid balance at index %d: %w", i, err)
		}
		if _, ok := vaults[b.VaultID]; !ok {
			return fmt.Errorf("balance at index %d references unknown vault %q", i, b.VaultID)
		}
		key := b.VaultID + "/" + b.Holder
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate balance for %s in vault %q", b.Holder, b.VaultID)
		}
		seen[key] = struct{}{}
		sum, ok := sums[b.VaultID]
		if !ok {
			sum = sdkmath.ZeroInt()
		}
		sums[b.VaultID] = sum.Add(b.Shares)
	}
	for id, v := range vaults {
		sum, ok := sums[id]
		if !ok {
			sum = sdkmath.ZeroInt()
		}
		if !sum.Equal(v.TotalShares) {
			return fmt.Errorf("vault %q total shares %s does not match holder balances %s", id, v.TotalShares, sum)
		}
	}

	feeds := make(map[string]Feed, len(gs.Feeds))
	for i, f := range gs.Feeds {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("invalid feed at index %d: %w", i, err)
		}
		if _, dup := feeds[f.ID]; dup {
			return fmt.Errorf("duplicate feed id %q", f.ID)
		}
		feeds[f.ID] = f
	}
	for i, o := range gs.Observations {
		f, ok := feeds[o.FeedID]
		if !ok {
			return fmt.Errorf("observation at index %d references unknown feed %q", i, o.FeedID)
		}
		if f.Strategy != StrategyTWAP {
			return fmt.Errorf("observation at index %d belongs to %s feed %q", i, f.Strategy, o.FeedID)
		}
		if err := o.Point.Validate(); err != nil {
			return fmt.Errorf("invalid observation at index %d: %w", i, err)
		}
	}
	return nil
}
