package container

import (
	"context"
	"time"

	"cosmossdk.io/collections"

	"github.com/provlabs/sharevault/types"
)

// VestingQueueKey orders entries by schedule end (unix nanoseconds), then vault id.
var VestingQueueKey = collections.PairKeyCodec(
	collections.Int64Key,
	collections.StringKey,
)

// VestingQueue indexes the vaults whose donation schedule has not been fully
// released, by the time the schedule ends.
type VestingQueue struct {
	collections.KeySet[collections.Pair[int64, string]]
}

// NewVestingQueue creates a new VestingQueue.
func NewVestingQueue(schema *collections.SchemaBuilder) VestingQueue {
	return VestingQueue{
		KeySet: collections.NewKeySet(schema, types.VestingQueuePrefix, types.VestingQueueName, VestingQueueKey),
	}
}

// Enqueue schedules vaultID to be finalized at end.
func (q VestingQueue) Enqueue(ctx context.Context, vaultID string, end time.Time) error {
	return q.Set(ctx, collections.Join(end.UnixNano(), vaultID))
}

// Dequeue removes the entry for vaultID at end. Removing a missing entry is a no-op.
func (q VestingQueue) Dequeue(ctx context.Context, vaultID string, end time.Time) error {
	return q.Remove(ctx, collections.Join(end.UnixNano(), vaultID))
}

// Due returns the entries whose end is at or before now, earliest first.
func (q VestingQueue) Due(ctx context.Context, now time.Time) ([]collections.Pair[int64, string], error) {
	var due []collections.Pair[int64, string]
	err := q.Walk(ctx, collections.NewPrefixUntilPairRange[int64, string](now.UnixNano()), func(key collections.Pair[int64, string]) (bool, error) {
		due = append(due, key)
		return false, nil
	})
	return due, err
}
