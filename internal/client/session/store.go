package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/dbx"
)

// Data is what survives a restart: the bearer token and the email of the last
// successful login.
type Data struct {
	Token string
	Email string
}

// Store persists session Data. Clear forgets the token but keeps the email so
// the next login prompt can offer it.
type Store interface {
	Load(ctx context.Context) (Data, error)
	Save(ctx context.Context, d Data) error
	Clear(ctx context.Context) error
}

// SQLiteStore keeps session Data as key/value rows in the session table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context) (Data, error) {
	var d Data
	var err error

	if d.Token, err = get(ctx, s.db, common.SessionTokenKey); err != nil {
		return Data{}, err
	}
	if d.Email, err = get(ctx, s.db, common.SessionEmailKey); err != nil {
		return Data{}, err
	}
	return d, nil
}

func (s *SQLiteStore) Save(ctx context.Context, d Data) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, common.SessionTokenKey, d.Token); err != nil {
			return err
		}
		if d.Email == "" {
			return nil
		}
		return set(ctx, tx, common.SessionEmailKey, d.Email)
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, common.SessionTokenKey)
	if err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	return nil
}

func get(ctx context.Context, db dbx.DBTX, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, db dbx.DBTX, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO session (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

// MemoryStore is a process-local Store, used when no database path is
// configured.
type MemoryStore struct {
	mu sync.Mutex
	d  Data
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(context.Context) (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d, nil
}

func (s *MemoryStore) Save(_ context.Context, d Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.Token = d.Token
	if d.Email != "" {
		s.d.Email = d.Email
	}
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.Token = ""
	return nil
}
