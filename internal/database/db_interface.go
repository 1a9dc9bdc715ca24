// Package database provides the MySQL connection provider: name resolution,
// bounded retries, optional TLS with a trust anchor, and per-operation
// connections.
package database

import (
	"context"
	"database/sql"
	"net"
)

// Acquirer hands out a fresh connection for one logical operation.
// Callers close the returned Conn on every path.
type Acquirer interface {
	Acquire(ctx context.Context) (*Conn, error)
}

// Resolver turns the configured host name into addresses.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Opener creates a database handle for a DSN without dialing.
type Opener func(dsn string) (*sql.DB, error)

// mysqlOpener is the production Opener.
func mysqlOpener(dsn string) (*sql.DB, error) {
	return sql.Open("mysql", dsn)
}

var (
	_ Acquirer = (*Provider)(nil)
	_ Resolver = (*net.Resolver)(nil)
)
