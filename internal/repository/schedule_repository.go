package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Schedule is a calendar entry. DeletedAt is a soft-delete marker; reads do
// not filter on it.
type Schedule struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Author      string     `json:"author" db:"author"`
	Password    string     `json:"-" db:"password"`
	Description string     `json:"description" db:"description"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
	MemberID    *int64     `json:"memberId,omitempty" db:"member_id"`
}

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *Schedule) error
	FindByID(ctx context.Context, id int64) (*Schedule, error)
	FindPaged(ctx context.Context, filter ScheduleFilter, limit, offset int) ([]*Schedule, int64, error)
	Update(ctx context.Context, schedule *Schedule) (int64, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
	MarkDeletedByMemberID(ctx context.Context, memberID int64) (int64, error)
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type scheduleRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewScheduleRepository creates a ScheduleRepository over database/sql.
func NewScheduleRepository(db *sqlx.DB, timeout time.Duration) ScheduleRepository {
	return &scheduleRepository{db: db, timeout: timeout}
}

// Create inserts schedule and reads the generated id back from the same
// statement.
func (r *scheduleRepository) Create(ctx context.Context, schedule *Schedule) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO schedule (title, author, password, description, created_at, updated_at, deleted_at, member_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		schedule.Title, schedule.Author, schedule.Password, schedule.Description,
		schedule.CreatedAt, schedule.UpdatedAt, schedule.DeletedAt, schedule.MemberID,
	).Scan(&schedule.ID)
	if err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}
	return nil
}

func (r *scheduleRepository) FindByID(ctx context.Context, id int64) (*Schedule, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	schedule := &Schedule{}
	err := r.db.GetContext(ctx, schedule, selectScheduleSQL+` WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query schedule %d: %w", id, err)
	}
	return schedule, nil
}

// FindPaged returns one page of schedules matching filter, newest update
// first, plus the total number of matches. An offset past the end yields an
// empty slice and the unchanged total.
func (r *scheduleRepository) FindPaged(ctx context.Context, filter ScheduleFilter, limit, offset int) ([]*Schedule, int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	q := buildPageQuery(filter, limit, offset)

	var total int64
	if err := r.db.GetContext(ctx, &total, q.countSQL, q.countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count schedules: %w", err)
	}
	if int64(offset) >= total {
		return []*Schedule{}, total, nil
	}

	schedules := []*Schedule{}
	if err := r.db.SelectContext(ctx, &schedules, q.dataSQL, q.dataArgs...); err != nil {
		return nil, 0, fmt.Errorf("query schedules: %w", err)
	}
	return schedules, total, nil
}

// Update writes every mutable column of schedule by id.
func (r *scheduleRepository) Update(ctx context.Context, schedule *Schedule) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		UPDATE schedule SET
			title = $2, author = $3, password = $4, description = $5,
			updated_at = $6, deleted_at = $7, member_id = $8
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		schedule.ID, schedule.Title, schedule.Author, schedule.Password, schedule.Description,
		schedule.UpdatedAt, schedule.DeletedAt, schedule.MemberID,
	)
	if err != nil {
		return 0, fmt.Errorf("update schedule %d: %w", schedule.ID, err)
	}
	return res.RowsAffected()
}

func (r *scheduleRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM schedule WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete schedule %d: %w", id, err)
	}
	return res.RowsAffected()
}

// MarkDeletedByMemberID stamps deleted_at on every live schedule of a member.
func (r *scheduleRepository) MarkDeletedByMemberID(ctx context.Context, memberID int64) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `UPDATE schedule SET deleted_at = NOW() WHERE member_id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, memberID)
	if err != nil {
		return 0, fmt.Errorf("mark schedules of member %d deleted: %w", memberID, err)
	}
	return res.RowsAffected()
}

// PurgeDeletedBefore hard-deletes schedules soft-deleted before cutoff.
func (r *scheduleRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM schedule WHERE deleted_at IS NOT NULL AND deleted_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge deleted schedules: %w", err)
	}
	return res.RowsAffected()
}
