package lookup

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the Postgres-backed lookup source, for deployments where the
// screening records live in a database instead of a bundled CSV.
type Store struct {
	pool *pgxpool.Pool
}

func Connect(ctx context.Context, url string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) FindByIndex(ctx context.Context, index int) (Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT question_id, answer FROM screening_records WHERE row_idx = $1`, index)
	if err != nil {
		return Record{}, fmt.Errorf("query screening_records: %w", err)
	}
	defer rows.Close()

	answers := make(map[string]bool)
	for rows.Next() {
		var id string
		var answer bool
		if err := rows.Scan(&id, &answer); err != nil {
			return Record{}, fmt.Errorf("scan screening_records: %w", err)
		}
		answers[id] = answer
	}
	if err := rows.Err(); err != nil {
		return Record{}, fmt.Errorf("read screening_records: %w", err)
	}
	if len(answers) == 0 {
		return Record{}, ErrNotFound
	}
	return Record{Answers: answers}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	s.pool.Close()
}
