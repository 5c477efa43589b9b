package core

// Key layout for the shared Redis deployment.
//
//	<prefix>:digests     -- lock registry zset, scored by registration time
//	schedule             -- scheduled jobs zset, scored by due time
//	retry                -- retry jobs zset, scored by due time
//	queues               -- set of known queue names
//	queue:{name}         -- FIFO list of serialized jobs for one queue
//	{digest}             -- lock holder key
//	{digest}:QUEUED      -- waiting holders list
//	{digest}:PRIMED      -- primed holders list
//	{digest}:LOCKED      -- holder hash
//	{digest}:RUN         -- runtime lock variant
//	{digest}:INFO        -- JSON lock metadata
const (
	// DefaultPrefix namespaces the registry keys owned by the lock
	// subsystem. The schedule, retry and queue keys are shared with the
	// job workers and carry no prefix.
	DefaultPrefix = "uniquejobs"

	// QueuePrefix precedes every per-queue list key.
	QueuePrefix = "queue:"
)

// Per-digest metadata key suffixes, deleted together with the digest.
var LockKeySuffixes = []string{":QUEUED", ":PRIMED", ":LOCKED", ":RUN", ":INFO"}

// Keys holds the Redis keys one reaper instance operates on.
type Keys struct {
	Digests  string // lock registry zset
	Schedule string // scheduled jobs zset
	Retry    string // retry jobs zset
	Queues   string // set of queue names
}

// KeysForPrefix creates Keys with the registry namespaced under prefix.
func KeysForPrefix(prefix string) Keys {
	return Keys{
		Digests:  prefix + ":digests",
		Schedule: "schedule",
		Retry:    "retry",
		Queues:   "queues",
	}
}

// DefaultKeys returns the standard key layout.
func DefaultKeys() Keys {
	return KeysForPrefix(DefaultPrefix)
}

// QueueKey returns the list key for a named queue.
// Example: queue:default
func QueueKey(name string) string {
	return QueuePrefix + name
}

// LockInfoKey returns the key holding a digest's JSON metadata.
func LockInfoKey(digest string) string {
	return digest + ":INFO"
}

// LockKeys returns every key owned by a digest, the digest key itself first.
func LockKeys(digest string) []string {
	keys := make([]string, 0, len(LockKeySuffixes)+1)
	keys = append(keys, digest)
	for _, suffix := range LockKeySuffixes {
		keys = append(keys, digest+suffix)
	}
	return keys
}
