package core

import "encoding/json"

// LockInfo is the JSON metadata written next to a digest at acquisition
// time ({digest}:INFO). This system only reads it.
type LockInfo struct {
	JobID       string  `json:"jid,omitempty"`
	Queue       string  `json:"queue,omitempty"`
	Worker      string  `json:"worker,omitempty"`
	Limit       int     `json:"limit,omitempty"`
	Timeout     *int    `json:"timeout,omitempty"`
	TTL         *int    `json:"ttl,omitempty"`
	Lock        string  `json:"lock,omitempty"`
	CreatedAt   float64 `json:"time,omitempty"`

	Args json.RawMessage `json:"args,omitempty"`
}

// Lock pairs a registry digest with its metadata, when present.
type Lock struct {
	Digest string    `json:"digest"`
	Info   *LockInfo `json:"info,omitempty"`
}

// UnmarshalLockInfo decodes an INFO blob, returning nil for empty input.
func UnmarshalLockInfo(data []byte) (*LockInfo, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var info LockInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
