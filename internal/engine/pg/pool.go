package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/docsearch/db"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PoolConfig struct {
	ConnStr string
	// Migrate applies the embedded migrations when the pool is created
	Migrate bool
}

type ConnectionPool struct {
	conn *pgxpool.Pool
}

func NewConnectionPool(ctx context.Context, cfg PoolConfig) (*ConnectionPool, error) {
	dbpool, err := pgxpool.New(ctx, cfg.ConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	p := &ConnectionPool{conn: dbpool}
	if cfg.Migrate {
		if err := p.Migrate(ctx); err != nil {
			dbpool.Close()
			return nil, err
		}
	}
	return p, nil
}

// Migrate applies every up migration; the scripts are idempotent
func (p *ConnectionPool) Migrate(ctx context.Context) error {
	scripts, err := db.UpMigrations()
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	for i, script := range scripts {
		if _, err := p.conn.Exec(ctx, script); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", i+1, err)
		}
	}
	slog.Info("PostgreSQL migrations applied", "count", len(scripts))
	return nil
}

func (p *ConnectionPool) GetConn() *pgxpool.Pool {
	return p.conn
}

func (p *ConnectionPool) Close() {
	p.conn.Close()
}

func (p *ConnectionPool) Ping(ctx context.Context) error {
	c, err := p.conn.Acquire(ctx)
	if err != nil {
		return err
	}
	defer c.Release()
	return c.Ping(ctx)
}
