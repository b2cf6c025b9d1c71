package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

// ErrDuplicateKey is returned when an insert or update hits a unique constraint.
var ErrDuplicateKey = errors.New("duplicate key")

type Repositories struct {
	// pgxpool
	MemberRepo MemberRepository

	// database/sql (sqlx)
	ScheduleRepo ScheduleRepository
}

func NewRepositories(pool *pgxpool.Pool, db *sqlx.DB, queryTimeout time.Duration) *Repositories {
	return &Repositories{
		MemberRepo:   NewMemberRepository(pool, queryTimeout),
		ScheduleRepo: NewScheduleRepository(db, queryTimeout),
	}
}

// NewInMemoryRepositories creates repositories backed by process memory
// (for testing/fallback). Members and schedules share one store so deleting a
// member detaches its schedules like the foreign key does.
func NewInMemoryRepositories() *Repositories {
	store := newMemoryStore()
	return &Repositories{
		MemberRepo:   &memoryMemberRepository{store: store},
		ScheduleRepo: &memoryScheduleRepository{store: store},
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
