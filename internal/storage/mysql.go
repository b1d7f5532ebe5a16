package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// MySQLStore shares client state between devices of one installation, e.g.
// several kiosks that should see the same signed-in session.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) EnsureSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS ClientState (
		stateKey VARCHAR(191) NOT NULL PRIMARY KEY,
		stateValue MEDIUMTEXT NOT NULL,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating ClientState table: %w", err)
	}
	return nil
}

func (s *MySQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT stateValue FROM ClientState WHERE stateKey = ?`

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying state %q: %w", key, err)
	}
	return value, true, nil
}

func (s *MySQLStore) Set(ctx context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	query := `
		INSERT INTO ClientState (stateKey, stateValue) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE stateValue = VALUES(stateValue)
	`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("upserting state %q: %w", key, err)
	}
	return nil
}

func (s *MySQLStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	query := fmt.Sprintf(`DELETE FROM ClientState WHERE stateKey IN (%s)`, placeholders)

	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deleting state: %w", err)
	}
	return nil
}
