// Package postgres persists completed tabulations to a postgres
// database via pgx, playing the durable-storage role the teacher's
// internal/backends/postgres package plays for vote backends. The
// New/Wait/Migrate/Close shape and the doesNotExistError marker-error
// idiom are carried over from that package, ported from pgx/v4 to the
// v5 API the teacher's own go.mod already pins (pgxpool.New instead of
// ParseConfig+ConnectConfig, pgx.BeginFunc instead of
// pool.BeginTxFunc).
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openslides/rcvtab/rcv"
)

const schema = `
CREATE TABLE IF NOT EXISTS tabulation (
	election_id TEXT PRIMARY KEY,
	winners     TEXT[] NOT NULL,
	threshold   BIGINT NOT NULL,
	rounds      JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Backend stores completed tabulations in postgres.
type Backend struct {
	pool *pgxpool.Pool
}

// New opens a connection pool to addr without blocking for postgres to
// become reachable; call Wait to block until it is.
func New(ctx context.Context, addr string) (*Backend, error) {
	pool, err := pgxpool.New(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	return &Backend{pool: pool}, nil
}

// Wait blocks until postgres answers a ping or ctx is done.
func (b *Backend) Wait(ctx context.Context) {
	for {
		if err := b.pool.Ping(ctx); err == nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(500 * time.Millisecond):
		}
	}
}

// Migrate creates the tabulation table if it does not already exist.
func (b *Backend) Migrate(ctx context.Context) error {
	if _, err := b.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (b *Backend) Close() {
	b.pool.Close()
}

func (b *Backend) String() string {
	return "postgres"
}

// Save persists a completed result, replacing any prior result for the
// same election id.
func (b *Backend) Save(ctx context.Context, electionID string, result rcv.VotingResult) error {
	rounds, err := json.Marshal(result.Rounds)
	if err != nil {
		return fmt.Errorf("marshal rounds: %w", err)
	}

	err = pgx.BeginFunc(ctx, b.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO tabulation (election_id, winners, threshold, rounds)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (election_id) DO UPDATE
			SET winners = EXCLUDED.winners, threshold = EXCLUDED.threshold, rounds = EXCLUDED.rounds, created_at = now()
		`, electionID, result.Winners, result.Threshold, rounds)
		return err
	})
	if err != nil {
		return fmt.Errorf("saving tabulation %q: %w", electionID, err)
	}
	return nil
}

// Load fetches a previously saved result.
func (b *Backend) Load(ctx context.Context, electionID string) (rcv.VotingResult, error) {
	var result rcv.VotingResult
	var rounds []byte

	row := b.pool.QueryRow(ctx, `SELECT winners, threshold, rounds FROM tabulation WHERE election_id = $1`, electionID)
	if err := row.Scan(&result.Winners, &result.Threshold, &rounds); err != nil {
		if err == pgx.ErrNoRows {
			return rcv.VotingResult{}, doesNotExistError{fmt.Errorf("no result stored for election %q", electionID)}
		}
		return rcv.VotingResult{}, fmt.Errorf("loading tabulation %q: %w", electionID, err)
	}

	if err := json.Unmarshal(rounds, &result.Rounds); err != nil {
		return rcv.VotingResult{}, fmt.Errorf("unmarshal rounds: %w", err)
	}
	return result, nil
}

type doesNotExistError struct {
	error
}

func (doesNotExistError) DoesNotExist() {}
