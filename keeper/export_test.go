package keeper

import "testing"

// TestAccessor_writeLock holds this keeper's write lock, as a mutation would, until the returned func is called.
func (k *Keeper) TestAccessor_writeLock(t *testing.T) func() {
	t.Helper()
	k.mu.Lock()
	return k.mu.Unlock
}
