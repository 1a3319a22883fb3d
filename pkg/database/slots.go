package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// The slot store is the persistence collaborator for all bounded contexts:
// a named key → JSON value table. Each repository owns a small set of slot
// names and reads/writes whole documents; last write wins per slot.

// ErrSlotNotFound indicates the named slot has never been written.
var ErrSlotNotFound = errors.New("slot not found")

// Querier is satisfied by both *sql.DB and *sql.Tx, so slot helpers work
// inside and outside transactions.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// GetSlot unmarshals the named slot's JSON value into dest.
// Returns ErrSlotNotFound when the slot does not exist.
func GetSlot(ctx context.Context, q Querier, key string, dest any) error {
	var raw []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSlotNotFound
	}
	if err != nil {
		return fmt.Errorf("get slot %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode slot %s: %w", key, err)
	}
	return nil
}

// PutSlot marshals v as JSON and upserts it into the named slot.
func PutSlot(ctx context.Context, q Querier, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", key, err)
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, raw,
	)
	if err != nil {
		return fmt.Errorf("put slot %s: %w", key, err)
	}
	return nil
}
