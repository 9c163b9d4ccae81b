package sharevault

import (
	"encoding/json"
	"fmt"

	"github.com/provlabs/sharevault/types"
)

// parseGenesis decodes and validates a raw genesis document.
func parseGenesis(bz json.RawMessage) (*types.GenesisState, error) {
	var genesis types.GenesisState
	if err := types.ModuleCdc.UnmarshalJSON(bz, &genesis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s genesis state: %w", types.ModuleName, err)
	}
	if err := genesis.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s genesis state: %w", types.ModuleName, err)
	}
	return &genesis, nil
}

func mustMarshalGenesis(genesis *types.GenesisState) json.RawMessage {
	return types.ModuleCdc.MustMarshalJSON(genesis)
}
