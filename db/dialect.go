// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"
	"strings"
)

// Dialect selects the SQL flavour used for schema and placeholders
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

// Database types accepted in configuration
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypePgx      = "pgx"
)

// Driver maps a configured database type to its database/sql driver name and dialect.
// "postgres" uses lib/pq, "pgx" uses the pgx stdlib adapter, "sqlite" uses modernc.
func Driver(databaseType string) (driver string, dialect Dialect, err error) {
	switch strings.ToLower(databaseType) {
	case TypeSQLite, "":
		return "sqlite", SQLite, nil
	case TypePostgres, "postgresql":
		return "postgres", Postgres, nil
	case TypePgx:
		return "pgx", Postgres, nil
	default:
		return "", 0, fmt.Errorf("unsupported database type %q (use sqlite, postgres or pgx)", databaseType)
	}
}

// sqliteOptions are merged into every sqlite DSN.
// WAL lets readers run beside the single writer; immediate transactions take
// the write lock at BEGIN so concurrent writers queue on busy_timeout.
var sqliteOptions = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
	"_pragma=journal_mode(WAL)",
	"_txlock=immediate",
}

// SQLiteDSN builds a DSN for a database file. Options already present in the
// query string are kept; the missing ones from sqliteOptions are appended.
func SQLiteDSN(dsn string) string {
	path, query, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")

	var params []string
	if query != "" {
		params = strings.Split(query, "&")
	}
	have := make(map[string]bool, len(params))
	for _, p := range params {
		have[optionKey(p)] = true
	}
	for _, opt := range sqliteOptions {
		if !have[optionKey(opt)] {
			params = append(params, opt)
		}
	}

	return "file:" + path + "?" + strings.Join(params, "&")
}

// optionKey identifies a DSN parameter: the key itself, or the pragma name
// for _pragma entries, since several of those share one key.
func optionKey(param string) string {
	key, value, _ := strings.Cut(param, "=")
	if key != "_pragma" {
		return key
	}
	name, _, _ := strings.Cut(value, "(")
	name, _, _ = strings.Cut(name, "=")
	return key + "=" + strings.ToLower(strings.TrimSpace(name))
}

// Rebind rewrites $N placeholders into the dialect's form.
// Queries are written once in postgres style; sqlite gets ?N, which binds by position.
func Rebind(dialect Dialect, query string) string {
	if dialect != SQLite || !strings.Contains(query, "$") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		c := query[i]
		if c == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			b.WriteByte('?')
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
