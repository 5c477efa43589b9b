package reaper

import (
	"context"
	"strings"

	"github.com/lockreap/lockreapd/internal/core"
)

// queuePageSize is the LRANGE window width used when walking a live queue.
const queuePageSize = 50

// scanQueue reports whether digest occurs in any entry of the list at key.
//
// The list is being popped from its front by live workers while this reads
// it, so fixed windows would slide off the entries they meant to cover.
// Each window is instead shifted back by the number of entries drained
// since the scan began (initial length minus current length), re-measured
// after every fetch, so window N keeps pointing at the same logical entries
// that existed at scan start. An entry popped before its window is read is
// simply never seen; callers accept that.
func scanQueue(ctx context.Context, store core.Store, key, digest string, pageSize int64) (bool, error) {
	initial, err := store.ListLength(ctx, key)
	if err != nil || initial == 0 {
		return false, err
	}

	var deleted int64
	page := int64(0)
	for {
		start := page*pageSize - deleted
		if start < 0 {
			start = 0
		}

		entries, err := store.ListRange(ctx, key, start, start+pageSize-1)
		if err != nil {
			return false, err
		}
		for _, entry := range entries {
			if strings.Contains(entry, digest) {
				return true, nil
			}
		}

		// Workers may have drained more entries during the fetch itself.
		length, err := store.ListLength(ctx, key)
		if err != nil {
			return false, err
		}
		deleted = initial - length

		switch {
		case len(entries) == 0:
			// The window emptied between the correction and the
			// fetch. Re-adjust it with the fresh correction: if it
			// still starts at or past the tail the queue has been
			// drained out from under the scan, and without this stop
			// the loop would spin forever against an empty list.
			// Otherwise retry the window where it now points.
			adjusted := page*pageSize - deleted
			if adjusted < 0 {
				adjusted = 0
			}
			if adjusted >= length {
				return false, nil
			}
		case int64(len(entries)) < pageSize:
			// A short window covered the current tail.
			return false, nil
		default:
			page++
		}
	}
}
