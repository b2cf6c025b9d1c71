package validation

import (
	"context"
	"time"

	"github.com/Marga-Ghale/daily-schedule-backend/internal/apperr"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/models"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/repository"
)

// ScheduleValidator checks schedule preconditions and computes update
// payloads. A mutation passes password, then id, then preparation; any
// failure ends the request.
type ScheduleValidator struct {
	repo      repository.ScheduleRepository
	members   repository.MemberRepository
	passwords PasswordMatcher
	now       func() time.Time
}

func NewScheduleValidator(repo repository.ScheduleRepository, members repository.MemberRepository, passwords PasswordMatcher) *ScheduleValidator {
	return &ScheduleValidator{
		repo:      repo,
		members:   members,
		passwords: passwords,
		now:       time.Now,
	}
}

// RequireExists loads the schedule or fails with ID_NOT_FOUND.
func (v *ScheduleValidator) RequireExists(ctx context.Context, id int64) (*repository.Schedule, error) {
	schedule, err := v.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.ErrInternal.Wrap(err)
	}
	if schedule == nil {
		return nil, apperr.ErrIDNotFound
	}
	return schedule, nil
}

func (v *ScheduleValidator) RequirePasswordMatch(stored, supplied string) error {
	if !v.passwords.Matches(stored, supplied) {
		return apperr.ErrPasswordIncorrect
	}
	return nil
}

func (v *ScheduleValidator) RequireIDMatch(supplied, recordID int64) error {
	if supplied != recordID {
		return apperr.ErrIDIncorrect
	}
	return nil
}

// PrepareUpdate checks the password and returns a new schedule carrying the
// request's title and author. existing is not modified.
func (v *ScheduleValidator) PrepareUpdate(req models.UpdateScheduleRequest, existing *repository.Schedule) (*repository.Schedule, error) {
	if err := v.RequirePasswordMatch(existing.Password, req.Password); err != nil {
		return nil, err
	}

	updated := *existing
	if existing.MemberID != nil {
		memberID := *existing.MemberID
		updated.MemberID = &memberID
	}
	if existing.DeletedAt != nil {
		deletedAt := *existing.DeletedAt
		updated.DeletedAt = &deletedAt
	}
	updated.Title = req.Title
	updated.Author = req.Author
	updated.UpdatedAt = v.now()
	return &updated, nil
}

// RequireDeletable runs the password check and then checks that the id the
// caller supplied names existing.
func (v *ScheduleValidator) RequireDeletable(id int64, password string, existing *repository.Schedule) error {
	if err := v.RequirePasswordMatch(existing.Password, password); err != nil {
		return err
	}
	return v.RequireIDMatch(id, existing.ID)
}

// RequireMemberAndSchedule loads both records. A missing member is
// INVALID_MEMBER_INFO, a missing schedule ID_NOT_FOUND.
func (v *ScheduleValidator) RequireMemberAndSchedule(ctx context.Context, memberID, scheduleID int64) (*repository.Member, *repository.Schedule, error) {
	member, err := v.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, nil, apperr.ErrInternal.Wrap(err)
	}
	if member == nil {
		return nil, nil, apperr.ErrInvalidMemberInfo
	}
	schedule, err := v.RequireExists(ctx, scheduleID)
	if err != nil {
		return nil, nil, err
	}
	return member, schedule, nil
}
