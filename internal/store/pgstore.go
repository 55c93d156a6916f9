package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"aurora/internal/game"
)

const saveSlotSchema = `
CREATE SCHEMA IF NOT EXISTS aurora;
CREATE TABLE IF NOT EXISTS aurora.save_slots (
	slot       text PRIMARY KEY,
	snapshot   jsonb NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
);`

// PGStore keeps one snapshot per named slot in Postgres.
type PGStore struct {
	pool *pgxpool.Pool
	slot string
}

// OpenPG connects a pooled Postgres store and ensures the save-slot
// table exists.
func OpenPG(ctx context.Context, databaseURL, slot string) (*PGStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 10 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if _, err := pool.Exec(ctx, saveSlotSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure save slots: %w", err)
	}
	return &PGStore{pool: pool, slot: slot}, nil
}

func (s *PGStore) Save(ctx context.Context, snap game.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO aurora.save_slots (slot, snapshot, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (slot) DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = now()`,
		s.slot, raw)
	if err != nil {
		return fmt.Errorf("write save slot: %w", err)
	}
	return nil
}

func (s *PGStore) Load(ctx context.Context) (game.Snapshot, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT snapshot FROM aurora.save_slots WHERE slot = $1`, s.slot).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return game.Snapshot{}, false, nil
	}
	if err != nil {
		return game.Snapshot{}, false, fmt.Errorf("read save slot: %w", err)
	}
	var snap game.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// A snapshot that no longer decodes starts a fresh game rather
		// than refusing to boot.
		return game.Snapshot{}, false, nil
	}
	return snap, true, nil
}

func (s *PGStore) Close() {
	s.pool.Close()
}
