package reaper

import (
	"context"

	"github.com/lockreap/lockreapd/internal/core"
)

// deleteChunkSize bounds how many digests one pipelined round trip removes.
const deleteChunkSize = 100

// DeleteBatch removes digests from the lock registry along with their
// per-digest metadata keys, in pipelined chunks. Returns how many digests
// were actually present in the registry; deleting an already-absent digest
// is a no-op.
func DeleteBatch(ctx context.Context, store core.Store, keys core.Keys, digests []string) (int64, error) {
	var deleted int64
	for start := 0; start < len(digests); start += deleteChunkSize {
		end := start + deleteChunkSize
		if end > len(digests) {
			end = len(digests)
		}
		n, err := store.DeleteLockBatch(ctx, keys, digests[start:end])
		if err != nil {
			return deleted, err
		}
		deleted += n
	}
	return deleted, nil
}
