// Package redis caches completed tabulations behind a digest of their
// input (rules + ballots), so re-running the same election twice — a
// common pattern when a caller retries after a transport hiccup — does
// not redo the round-by-round computation. It plays the fast-backend
// role the teacher's pool of vote.Backend implementations reserves for
// a low-latency store in front of postgres, expressed here with
// gomodule/redigo's connection-pool idiom.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/openslides/rcvtab/rcv"
)

// Cache wraps a redigo connection pool.
type Cache struct {
	pool *redis.Pool
	ttl  time.Duration
}

// New dials addr lazily via a redigo pool. ttl is how long a cached
// result survives before it must be recomputed; zero means no expiry.
func New(addr string, ttl time.Duration) *Cache {
	return &Cache{
		pool: &redis.Pool{
			MaxIdle:     8,
			IdleTimeout: 240 * time.Second,
			Dial: func() (redis.Conn, error) {
				return redis.DialContext(context.Background(), "tcp", addr)
			},
		},
		ttl: ttl,
	}
}

// Close shuts down the connection pool.
func (c *Cache) Close() error {
	return c.pool.Close()
}

func (c *Cache) String() string {
	return "redis"
}

// Digest fingerprints rules and raw ballots into a cache key. It
// hashes the exact JSON encoding rather than a normalized form, so the
// same ballots in a different order, or aggregated differently, get a
// different digest even when they tabulate identically.
func Digest(rules rcv.Rules, ballots []rcv.RawBallot) (string, error) {
	payload, err := json.Marshal(struct {
		Rules   rcv.Rules
		Ballots []rcv.RawBallot
	}{rules, ballots})
	if err != nil {
		return "", fmt.Errorf("marshal digest payload: %w", err)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// Get fetches a cached result for digest, if present.
func (c *Cache) Get(ctx context.Context, digest string) (rcv.VotingResult, bool, error) {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return rcv.VotingResult{}, false, fmt.Errorf("getting redis connection: %w", err)
	}
	defer conn.Close()

	raw, err := redis.Bytes(conn.Do("GET", cacheKey(digest)))
	if err == redis.ErrNil {
		return rcv.VotingResult{}, false, nil
	}
	if err != nil {
		return rcv.VotingResult{}, false, fmt.Errorf("reading cache: %w", err)
	}

	var result rcv.VotingResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return rcv.VotingResult{}, false, fmt.Errorf("decoding cached result: %w", err)
	}
	return result, true, nil
}

// Set stores result under digest.
func (c *Cache) Set(ctx context.Context, digest string, result rcv.VotingResult) error {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("getting redis connection: %w", err)
	}
	defer conn.Close()

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	args := []any{cacheKey(digest), payload}
	if c.ttl > 0 {
		args = append(args, "EX", int(c.ttl.Seconds()))
	}
	if _, err := conn.Do("SET", args...); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

func cacheKey(digest string) string {
	return "rcvtab:result:" + digest
}
