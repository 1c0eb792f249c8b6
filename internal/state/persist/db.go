// Package persist stores the agent-state store in SQLite so needs, pack
// membership, and nest records survive agent respawn and process restarts.
// The decision core treats this as a plain get/set service; only the host
// loop calls it, between ticks.
package persist

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/neilhuang007/better-ecology-sub002/internal/pack"
	"github.com/neilhuang007/better-ecology-sub002/internal/state"
)

// DB wraps the SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the connection.
func (db *DB) Close() error { return db.conn.Close() }

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS agents (
		id        TEXT PRIMARY KEY,
		hunger    REAL NOT NULL,
		thirst    REAL NOT NULL,
		pack_id   TEXT NOT NULL DEFAULT '',
		rank      INTEGER NOT NULL DEFAULT 0,
		nest_json TEXT NOT NULL DEFAULT '{}'
	);`
	_, err := db.conn.Exec(schema)
	return err
}

type agentRow struct {
	ID       string  `db:"id" json:"id"`
	Hunger   float64 `db:"hunger" json:"hunger"`
	Thirst   float64 `db:"thirst" json:"thirst"`
	PackID   string  `db:"pack_id" json:"pack_id,omitempty"`
	Rank     int     `db:"rank" json:"rank"`
	NestJSON string  `db:"nest_json" json:"nest,omitempty"`
}

func rowFor(a *state.AgentState) (agentRow, error) {
	nest, err := json.Marshal(a.Nest)
	if err != nil {
		return agentRow{}, fmt.Errorf("marshal nest: %w", err)
	}
	packID := ""
	if a.PackID != uuid.Nil {
		packID = a.PackID.String()
	}
	return agentRow{
		ID:       a.ID.String(),
		Hunger:   a.Needs.Hunger(),
		Thirst:   a.Needs.Thirst(),
		PackID:   packID,
		Rank:     int(a.Rank),
		NestJSON: string(nest),
	}, nil
}

func (r agentRow) restore(store *state.Store) error {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return fmt.Errorf("agent id %q: %w", r.ID, err)
	}
	a := store.Ensure(id)
	a.Needs.SetHunger(r.Hunger)
	a.Needs.SetThirst(r.Thirst)
	a.Rank = pack.Rank(r.Rank)
	a.PackID = uuid.Nil
	if r.PackID != "" {
		pid, err := uuid.Parse(r.PackID)
		if err != nil {
			return fmt.Errorf("pack id %q: %w", r.PackID, err)
		}
		a.PackID = pid
	}
	if r.NestJSON != "" && r.NestJSON != "{}" {
		if err := json.Unmarshal([]byte(r.NestJSON), &a.Nest); err != nil {
			return fmt.Errorf("nest for %s: %w", r.ID, err)
		}
	}
	return nil
}

// Save writes every agent in the store. Existing rows are replaced.
func (db *DB) Save(store *state.Store) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var saveErr error
	store.ForEach(func(a *state.AgentState) {
		if saveErr != nil {
			return
		}
		row, err := rowFor(a)
		if err != nil {
			saveErr = err
			return
		}
		_, err = tx.NamedExec(`
			INSERT OR REPLACE INTO agents (id, hunger, thirst, pack_id, rank, nest_json)
			VALUES (:id, :hunger, :thirst, :pack_id, :rank, :nest_json)`, row)
		if err != nil {
			saveErr = fmt.Errorf("save %s: %w", row.ID, err)
		}
	})
	if saveErr != nil {
		return saveErr
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	slog.Debug("agent state saved", "agents", store.Len())
	return nil
}

// Load restores every persisted agent into the store.
func (db *DB) Load(store *state.Store) error {
	var rows []agentRow
	if err := db.conn.Select(&rows, `SELECT id, hunger, thirst, pack_id, rank, nest_json FROM agents`); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("load agents: %w", err)
	}
	for _, r := range rows {
		if err := r.restore(store); err != nil {
			return err
		}
	}
	slog.Debug("agent state loaded", "agents", len(rows))
	return nil
}

// Delete removes one agent's persisted row.
func (db *DB) Delete(id uuid.UUID) error {
	_, err := db.conn.Exec(`DELETE FROM agents WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}
