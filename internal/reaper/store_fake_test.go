package reaper

import (
	"context"
	"sort"
	"strings"

	"github.com/lockreap/lockreapd/internal/core"
)

// fakeStore implements core.Store in memory for testing.
type fakeStore struct {
	zsets map[string][]scoredMember
	sets  map[string][]string
	lists map[string][]string
	kv    map[string]string

	// optional overrides and hooks
	runScriptFunc    func(name string, keys []string, args []any) (int64, error)
	beforeListRange  func(key string)
	beforeListLength func(key string)

	// call counters per liveness source
	zscanCalls     map[string]int
	setScanCalls     int
	listRangeCalls   int
	deleteBatchCalls int
}

type scoredMember struct {
	member string
	score  float64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		zsets:      make(map[string][]scoredMember),
		sets:       make(map[string][]string),
		lists:      make(map[string][]string),
		kv:         make(map[string]string),
		zscanCalls: make(map[string]int),
	}
}

func (f *fakeStore) zadd(key, member string, score float64) {
	f.zsets[key] = append(f.zsets[key], scoredMember{member: member, score: score})
	sort.SliceStable(f.zsets[key], func(i, j int) bool {
		return f.zsets[key][i].score < f.zsets[key][j].score
	})
}

func (f *fakeStore) addLock(digest string, score float64) {
	f.zadd(core.DefaultKeys().Digests, digest, score)
	f.kv[digest] = "holder"
	f.kv[core.LockInfoKey(digest)] = `{"jid":"job-` + digest + `"}`
}

func (f *fakeStore) addQueue(name string, entries ...string) {
	f.sets[core.DefaultKeys().Queues] = append(f.sets[core.DefaultKeys().Queues], name)
	f.lists[core.QueueKey(name)] = append(f.lists[core.QueueKey(name)], entries...)
}

func (f *fakeStore) SortedSetReverseRange(ctx context.Context, key string) ([]string, error) {
	members := f.zsets[key]
	out := make([]string, 0, len(members))
	for i := len(members) - 1; i >= 0; i-- {
		out = append(out, members[i].member)
	}
	return out, nil
}

func (f *fakeStore) SortedSetCard(ctx context.Context, key string) (int64, error) {
	return int64(len(f.zsets[key])), nil
}

func (f *fakeStore) SortedSetScore(ctx context.Context, key, member string) (float64, bool, error) {
	for _, m := range f.zsets[key] {
		if m.member == member {
			return m.score, true, nil
		}
	}
	return 0, false, nil
}

func (f *fakeStore) SortedSetScan(ctx context.Context, key, pattern string, count int64) ([]string, error) {
	f.zscanCalls[key]++
	needle := strings.Trim(pattern, "*")
	var out []string
	for _, m := range f.zsets[key] {
		if strings.Contains(m.member, needle) {
			out = append(out, m.member)
		}
	}
	return out, nil
}

func (f *fakeStore) SetScanEach(ctx context.Context, key string) ([]string, error) {
	f.setScanCalls++
	return append([]string(nil), f.sets[key]...), nil
}

func (f *fakeStore) ListLength(ctx context.Context, key string) (int64, error) {
	if f.beforeListLength != nil {
		f.beforeListLength(key)
	}
	return int64(len(f.lists[key])), nil
}

// ListRange follows LRANGE semantics: inclusive stop, negative indices from
// the end, out-of-range windows clamped.
func (f *fakeStore) ListRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	if f.beforeListRange != nil {
		f.beforeListRange(key)
	}
	f.listRangeCalls++

	list := f.lists[key]
	length := int64(len(list))
	if start < 0 {
		start = length + start
		if start < 0 {
			start = 0
		}
	}
	if stop < 0 {
		stop = length + stop
	}
	if start >= length || stop < start {
		return nil, nil
	}
	if stop >= length {
		stop = length - 1
	}
	return append([]string(nil), list[start:stop+1]...), nil
}

func (f *fakeStore) RunScript(ctx context.Context, name string, keys []string, args ...any) (int64, error) {
	if f.runScriptFunc != nil {
		return f.runScriptFunc(name, keys, args)
	}
	return 0, nil
}

func (f *fakeStore) Delete(ctx context.Context, keys ...string) (int64, error) {
	var n int64
	for _, key := range keys {
		if _, ok := f.kv[key]; ok {
			delete(f.kv, key)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) SortedSetRemove(ctx context.Context, key string, members ...string) (int64, error) {
	var removed int64
	for _, member := range members {
		for i, m := range f.zsets[key] {
			if m.member == member {
				f.zsets[key] = append(f.zsets[key][:i], f.zsets[key][i+1:]...)
				removed++
				break
			}
		}
	}
	return removed, nil
}

func (f *fakeStore) DeleteLockBatch(ctx context.Context, keys core.Keys, digests []string) (int64, error) {
	f.deleteBatchCalls++
	removed, _ := f.SortedSetRemove(ctx, keys.Digests, digests...)
	for _, digest := range digests {
		f.Delete(ctx, core.LockKeys(digest)...)
	}
	return removed, nil
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, error) {
	return f.kv[key], nil
}

func (f *fakeStore) Ping(ctx context.Context) error {
	return nil
}

// fakeProvider hands the same fakeStore to every pass.
type fakeProvider struct {
	store core.Store
}

func (p *fakeProvider) WithStore(ctx context.Context, fn func(core.Store) error) error {
	return fn(p.store)
}
