package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Member struct {
	ID        int64
	UserID    string
	Password  string
	Name      string
	Email     string
	UpdatedAt time.Time
}

type MemberRepository interface {
	Create(ctx context.Context, member *Member) error
	FindByID(ctx context.Context, id int64) (*Member, error)
	FindByUserID(ctx context.Context, userID string) (*Member, error)
	FindByName(ctx context.Context, name string) (*Member, error)
	FindAll(ctx context.Context) ([]*Member, error)
	Update(ctx context.Context, member *Member) (int64, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

type pgMemberRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewMemberRepository(pool *pgxpool.Pool, timeout time.Duration) MemberRepository {
	return &pgMemberRepository{pool: pool, timeout: timeout}
}

const memberColumns = `id, user_id, password, COALESCE(name, ''), COALESCE(email, ''), updated_at`

// Create inserts member and fills in the generated id.
func (r *pgMemberRepository) Create(ctx context.Context, member *Member) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO member (user_id, password, name, email, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		member.UserID, member.Password, member.Name, member.Email, member.UpdatedAt,
	).Scan(&member.ID, &member.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	if err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

func (r *pgMemberRepository) FindByID(ctx context.Context, id int64) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM member WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *pgMemberRepository) FindByUserID(ctx context.Context, userID string) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM member WHERE user_id = $1`
	return r.findOne(ctx, query, userID)
}

func (r *pgMemberRepository) FindByName(ctx context.Context, name string) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM member WHERE name = $1 ORDER BY id LIMIT 1`
	return r.findOne(ctx, query, name)
}

func (r *pgMemberRepository) FindAll(ctx context.Context) ([]*Member, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT ` + memberColumns + ` FROM member ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	members := []*Member{}
	for rows.Next() {
		m := &Member{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.Password, &m.Name, &m.Email, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// Update replaces every column except id. It returns the number of rows
// touched so callers can tell a vanished row apart from a successful write.
func (r *pgMemberRepository) Update(ctx context.Context, member *Member) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		UPDATE member SET user_id = $2, password = $3, name = $4, email = $5, updated_at = $6
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		member.ID, member.UserID, member.Password, member.Name, member.Email, member.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return 0, ErrDuplicateKey
	}
	if err != nil {
		return 0, fmt.Errorf("update member %d: %w", member.ID, err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgMemberRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM member WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete member %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgMemberRepository) findOne(ctx context.Context, query string, arg any) (*Member, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	m := &Member{}
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&m.ID, &m.UserID, &m.Password, &m.Name, &m.Email, &m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query member: %w", err)
	}
	return m, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
