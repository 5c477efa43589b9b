package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/lockreap/lockreapd/internal/core"
)

// Client owns the pooled connection to the shared Redis deployment and
// implements core.ConnProvider.
type Client struct {
	rdb *goredis.Client
}

// New connects to Redis at url (redis:// or rediss://) and verifies the
// connection with a PING.
func New(ctx context.Context, url string) (*Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := goredis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return &Client{rdb: rdb}, nil
}

// NewFromClient wraps an existing go-redis client. The caller keeps
// ownership of the client's lifecycle.
func NewFromClient(rdb *goredis.Client) *Client {
	return &Client{rdb: rdb}
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Store returns a Store backed by the shared pool.
func (c *Client) Store() *Store {
	return NewStore(c.rdb)
}

// WithStore runs fn with a Store bound to a dedicated connection checked
// out of the pool. The connection is returned on every exit path.
func (c *Client) WithStore(ctx context.Context, fn func(core.Store) error) error {
	conn := c.rdb.Conn()
	defer conn.Close()
	return fn(NewStore(conn))
}
