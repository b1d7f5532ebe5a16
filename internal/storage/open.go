package storage

import (
	"context"
	"errors"
	"fmt"

	"petiscaria/internal/config"
	"petiscaria/internal/infrastructure/mysql"
)

// ErrNotShared is returned when another process asks for the memory store,
// which lives and dies with the server.
var ErrNotShared = errors.New("memory storage is private to the server process")

// Open builds the store selected by cfg.Driver. The returned close func
// releases the database pool when there is one. shared requests a store
// another process can read, which rules out the memory driver.
func Open(ctx context.Context, cfg config.StorageConfig, db config.DatabaseConfig, shared bool) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case "memory":
		if shared {
			return nil, noop, ErrNotShared
		}
		return NewMemoryStore(), noop, nil
	case "mysql":
		conn, err := mysql.NewConnection(ctx, db)
		if err != nil {
			return nil, noop, err
		}
		st := NewMySQLStore(conn)
		if err := st.EnsureSchema(ctx); err != nil {
			conn.Close()
			return nil, noop, err
		}
		return st, conn.Close, nil
	case "file":
		st, err := NewFileStore(cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		return st, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
