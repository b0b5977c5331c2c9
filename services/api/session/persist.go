package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// Persister stores the authenticated flag across restarts.
type Persister interface {
	Load(ctx context.Context) (bool, error)
	Save(ctx context.Context, authenticated bool) error
}

const (
	sqlCreateSessionState = `
CREATE TABLE IF NOT EXISTS session_state (
	name TEXT PRIMARY KEY,
	authenticated INTEGER NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);`

	sqlLoadSessionState = `SELECT authenticated FROM session_state WHERE name = ?;`

	sqlSaveSessionState = `
INSERT INTO session_state (name, authenticated)
VALUES (?, ?)
ON CONFLICT (name) DO UPDATE SET
	authenticated = excluded.authenticated,
	updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now');`
)

// stateKey mirrors the key the browser dashboard used in local storage.
const stateKey = "auth-state"

// SQLitePersister keeps the flag in a local sqlite file.
type SQLitePersister struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the session database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLitePersister, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqlCreateSessionState); err != nil {
		db.Close()
		return nil, fmt.Errorf("create session table: %w", err)
	}
	return &SQLitePersister{db: db}, nil
}

func (p *SQLitePersister) Load(ctx context.Context) (bool, error) {
	var v int
	err := p.db.QueryRowContext(ctx, sqlLoadSessionState, stateKey).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load session state: %w", err)
	}
	return v != 0, nil
}

func (p *SQLitePersister) Save(ctx context.Context, authenticated bool) error {
	v := 0
	if authenticated {
		v = 1
	}
	if _, err := p.db.ExecContext(ctx, sqlSaveSessionState, stateKey, v); err != nil {
		return fmt.Errorf("save session state: %w", err)
	}
	return nil
}

func (p *SQLitePersister) Close() error {
	return p.db.Close()
}

// MemoryPersister is a Persister that lives only as long as the process.
type MemoryPersister struct {
	mu    sync.Mutex
	value bool
	saves int
}

func (p *MemoryPersister) Load(context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value, nil
}

func (p *MemoryPersister) Save(_ context.Context, authenticated bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.value = authenticated
	p.saves++
	return nil
}

// Saves reports how many writes reached the persister.
func (p *MemoryPersister) Saves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}
