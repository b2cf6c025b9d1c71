// internal/db/postgres.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// PostgresDB holds both handles onto the database: the native pgx pool and a
// database/sql pool (pgx driver) wrapped by sqlx.
type PostgresDB struct {
	Pool *pgxpool.Pool
	SQL  *sqlx.DB
}

type PoolOptions struct {
	MaxConns int
	MinConns int
}

func NewPostgresDB(databaseURL string, opts PoolOptions) (*PostgresDB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pool settings
	config.MaxConns = int32(opts.MaxConns)
	config.MinConns = int32(opts.MinConns)
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to open sql DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(opts.MaxConns)
	sqlDB.SetMaxIdleConns(opts.MinConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.PingContext(ctx); err != nil {
		pool.Close()
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping sql DB: %w", err)
	}

	log.Println("[DB] ✅ Connected to PostgreSQL")
	return &PostgresDB{Pool: pool, SQL: sqlx.NewDb(sqlDB, "pgx")}, nil
}

// Ping checks both pools.
func (db *PostgresDB) Ping(ctx context.Context) error {
	if err := db.Pool.Ping(ctx); err != nil {
		return err
	}
	return db.SQL.PingContext(ctx)
}

// LogStats writes the current pool usage to the log.
func (db *PostgresDB) LogStats() {
	s := db.Pool.Stat()
	sq := db.SQL.Stats()
	log.Printf("[DB] pgxpool total=%d idle=%d acquired=%d max=%d | sql open=%d idle=%d in_use=%d",
		s.TotalConns(), s.IdleConns(), s.AcquiredConns(), s.MaxConns(),
		sq.OpenConnections, sq.Idle, sq.InUse)
}

func (db *PostgresDB) Close() {
	if db.SQL != nil {
		db.SQL.Close()
	}
	if db.Pool != nil {
		db.Pool.Close()
		log.Println("[DB] PostgreSQL connection closed")
	}
}
