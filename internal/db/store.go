package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const readyPollInterval = 100 * time.Millisecond

type Store struct {
	Pool *pgxpool.Pool
}

// Connect opens a pool against databaseURL. When wait is set the call
// blocks until the connection answers a ping, retrying on a short
// interval until ctx expires. Batch jobs pass wait; the server relies on
// the pool connecting lazily.
func Connect(ctx context.Context, databaseURL string, wait bool) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := &Store{Pool: pool}
	if !wait {
		return s, nil
	}
	for {
		if err := s.Ping(ctx); err == nil {
			return s, nil
		}
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(readyPollInterval):
		}
	}
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}
