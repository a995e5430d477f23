// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/ballot-box/db"
)

const (
	DefaultTxTimeout    = 5 * time.Second
	DefaultMaxOpenConns = 10
)

// Options tunes a Store. Zero values fall back to the defaults.
type Options struct {
	TxTimeout    time.Duration
	MaxOpenConns int
	Logger       *slog.Logger
}

// Store owns the connection pool for the ballot database.
// It holds no ballot state of its own; everything lives in the database.
type Store struct {
	db        *sql.DB
	dialect   db.Dialect
	txTimeout time.Duration
	logger    *slog.Logger
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, databaseType, dsn string, opts Options) (*Store, error) {
	driver, dialect, err := db.Driver(databaseType)
	if err != nil {
		return nil, err
	}
	if dialect == db.SQLite {
		dsn = db.SQLiteDSN(dsn)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return New(conn, dialect, opts), nil
}

// New wraps an already opened pool.
func New(conn *sql.DB, dialect db.Dialect, opts Options) *Store {
	if opts.TxTimeout <= 0 {
		opts.TxTimeout = DefaultTxTimeout
	}
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = DefaultMaxOpenConns
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	conn.SetMaxOpenConns(opts.MaxOpenConns)
	conn.SetMaxIdleConns(opts.MaxOpenConns)

	return &Store{
		db:        conn,
		dialect:   dialect,
		txTimeout: opts.TxTimeout,
		logger:    opts.Logger,
	}
}

// DB exposes the underlying pool for tests and schema tooling.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Dialect() db.Dialect { return s.dialect }

func (s *Store) Close() error { return s.db.Close() }

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// CreateSchema provisions the ballot tables.
func (s *Store) CreateSchema(ctx context.Context) error {
	if err := db.CreateSchema(ctx, s.db, s.dialect); err != nil {
		return unavailable("create schema", err)
	}
	return nil
}

// InTx runs fn inside a single database transaction.
//
// The transaction is detached from the caller's cancellation and bounded by
// the store's timeout instead, so an abandoned request still ends in a commit
// or a rollback. fn must use the context it is handed. Any error from fn rolls
// the whole transaction back and is returned unchanged.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) (retErr error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.txTimeout)
	defer cancel()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin transaction", err)
	}
	defer func() {
		if retErr == nil {
			return
		}
		if err := sqlTx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.logger.Error("failed to roll back transaction", "error", err)
		}
	}()

	if err := fn(ctx, &Tx{tx: sqlTx, dialect: s.dialect}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return unavailable("commit", err)
	}
	return nil
}

func (s *Store) rebind(query string) string {
	return db.Rebind(s.dialect, query)
}
