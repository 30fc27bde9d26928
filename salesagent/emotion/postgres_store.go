package emotion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	_ "github.com/lib/pq"
)

const defaultPostgresTable = "lead_emotional_state"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// PostgresConfig configures PostgresStore.
type PostgresConfig struct {
	Table       string // default "lead_emotional_state"
	AutoMigrate bool   // create the table if missing
}

// PostgresStore keeps one row per lead key. Upserts use ON CONFLICT, so concurrent writers
// resolve to last-write-wins.
type PostgresStore struct {
	db    *sql.DB
	table string
}

// OpenPostgres opens a lib/pq connection pool and verifies it with a ping.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("emotion.OpenPostgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("emotion.OpenPostgres: ping: %w", err)
	}
	return db, nil
}

func NewPostgresStore(ctx context.Context, db *sql.DB, cfg PostgresConfig) (*PostgresStore, error) {
	if db == nil {
		return nil, errors.New("emotion.NewPostgresStore: nil db")
	}
	if cfg.Table == "" {
		cfg.Table = defaultPostgresTable
	}
	if !tableNamePattern.MatchString(cfg.Table) {
		return nil, fmt.Errorf("emotion.NewPostgresStore: invalid table name %q", cfg.Table)
	}
	s := &PostgresStore{db: db, table: cfg.Table}
	if cfg.AutoMigrate {
		if err := s.migrate(ctx); err != nil {
			return nil, fmt.Errorf("emotion.NewPostgresStore: migrate: %w", err)
		}
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		lead_key   TEXT PRIMARY KEY,
		pleasure   DOUBLE PRECISION NOT NULL DEFAULT 0.5,
		arousal    DOUBLE PRECISION NOT NULL DEFAULT 0.5,
		dominance  DOUBLE PRECISION NOT NULL DEFAULT 0.5,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`, s.table)
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, key string) (Vector, bool, error) {
	if key == "" {
		return Vector{}, false, ErrEmptyKey
	}
	q := fmt.Sprintf(`SELECT pleasure, arousal, dominance FROM %s WHERE lead_key = $1`, s.table)
	var v Vector
	err := s.db.QueryRowContext(ctx, q, key).Scan(&v.Pleasure, &v.Arousal, &v.Dominance)
	if errors.Is(err, sql.ErrNoRows) {
		return Vector{}, false, nil
	}
	if err != nil {
		return Vector{}, false, fmt.Errorf("emotion.PostgresStore.Get: %w", err)
	}
	return v, true, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, key string, v Vector) error {
	if key == "" {
		return ErrEmptyKey
	}
	q := fmt.Sprintf(`INSERT INTO %s (lead_key, pleasure, arousal, dominance, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (lead_key) DO UPDATE SET
			pleasure   = EXCLUDED.pleasure,
			arousal    = EXCLUDED.arousal,
			dominance  = EXCLUDED.dominance,
			updated_at = EXCLUDED.updated_at`, s.table)
	if _, err := s.db.ExecContext(ctx, q, key, v.Pleasure, v.Arousal, v.Dominance); err != nil {
		return fmt.Errorf("emotion.PostgresStore.Upsert: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	q := fmt.Sprintf(`DELETE FROM %s WHERE lead_key = $1`, s.table)
	if _, err := s.db.ExecContext(ctx, q, key); err != nil {
		return fmt.Errorf("emotion.PostgresStore.Delete: %w", err)
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
