// Package postgres implements the board repositories on PostgreSQL through
// a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultMaxConns = 10

	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Config captures the settings for establishing a PostgreSQL pool.
type Config struct {
	DSN      string
	MaxConns int
	Timeout  time.Duration
}

// Connect creates a pgx pool and verifies connectivity with a ping.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}
	poolConfig.MaxConns = int32(maxConns)
	poolConfig.HealthCheckPeriod = 30 * time.Second

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return pool, nil
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// assignments accumulates the SET clause of a partial UPDATE. Placeholder
// $1 is reserved for the row id.
type assignments struct {
	cols []string
	args []any
}

func newAssignments(id string) *assignments {
	return &assignments{args: []any{id}}
}

func (a *assignments) add(col string, val any) {
	a.args = append(a.args, val)
	a.cols = append(a.cols, col+" = $"+strconv.Itoa(len(a.args)))
}

// clause renders the SET list, always bumping updated_at.
func (a *assignments) clause() string {
	return strings.Join(append(a.cols, "updated_at = NOW()"), ", ")
}
