package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"travel-agency/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxIface is the subset of the pool the repositories depend on.
// *pgxpool.Pool and pgxmock pools both satisfy it.
type PgxIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var _ PgxIface = (*pgxpool.Pool)(nil)

const pingTimeout = 3 * time.Second

// InitDB opens the pool and pings it once before returning.
func InitDB(config utils.DatabaseConfig) (PgxIface, error) {
	poolConfig, err := pgxpool.ParseConfig(connString(config))
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}
	tunePool(poolConfig, config.MaxConns)

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database %s@%s/%s: %w", config.User, config.Host, config.Name, err)
	}

	return pool, nil
}

// connString renders a keyword/value DSN, quoting values so passwords
// with spaces or quotes survive.
func connString(config utils.DatabaseConfig) string {
	pairs := []struct{ key, value string }{
		{"host", config.Host},
		{"port", config.Port},
		{"dbname", config.Name},
		{"user", config.User},
		{"password", config.Password},
	}

	parts := make([]string, 0, len(pairs)+1)
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		parts = append(parts, p.key+"="+quoteValue(p.value))
	}
	parts = append(parts, "sslmode=disable")
	return strings.Join(parts, " ")
}

func quoteValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func tunePool(c *pgxpool.Config, maxConns int32) {
	if maxConns < 1 {
		maxConns = 1
	}
	c.MaxConns = maxConns
	c.MinConns = min(2, maxConns)
	c.MaxConnLifetime = 30 * time.Minute
	c.MaxConnIdleTime = 5 * time.Minute
	c.HealthCheckPeriod = time.Minute
	c.ConnConfig.ConnectTimeout = 5 * time.Second
}
