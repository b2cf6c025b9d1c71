package validation

import (
	"context"
	"strings"

	"github.com/Marga-Ghale/daily-schedule-backend/internal/apperr"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/repository"
)

// MemberValidator checks member preconditions before a mutation.
type MemberValidator struct {
	repo      repository.MemberRepository
	passwords PasswordMatcher
}

func NewMemberValidator(repo repository.MemberRepository, passwords PasswordMatcher) *MemberValidator {
	return &MemberValidator{repo: repo, passwords: passwords}
}

// RequireUnique fails with USER_ID_EXIST when userID is taken.
func (v *MemberValidator) RequireUnique(ctx context.Context, userID string) error {
	existing, err := v.repo.FindByUserID(ctx, userID)
	if err != nil {
		return apperr.ErrInternal.Wrap(err)
	}
	if existing != nil {
		return apperr.ErrUserIDExist
	}
	return nil
}

// RequireExists loads the member or fails with ID_NOT_FOUND.
func (v *MemberValidator) RequireExists(ctx context.Context, id int64) (*repository.Member, error) {
	member, err := v.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.ErrInternal.Wrap(err)
	}
	if member == nil {
		return nil, apperr.ErrIDNotFound
	}
	return member, nil
}

func (v *MemberValidator) RequireByUserID(ctx context.Context, userID string) (*repository.Member, error) {
	member, err := v.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.ErrInternal.Wrap(err)
	}
	if member == nil {
		return nil, apperr.ErrInvalidMemberInfo
	}
	return member, nil
}

func (v *MemberValidator) RequireByName(ctx context.Context, name string) (*repository.Member, error) {
	member, err := v.repo.FindByName(ctx, name)
	if err != nil {
		return nil, apperr.ErrInternal.Wrap(err)
	}
	if member == nil {
		return nil, apperr.ErrNotFound
	}
	return member, nil
}

func (v *MemberValidator) RequirePasswordMatch(member *repository.Member, supplied string) error {
	if !v.passwords.Matches(member.Password, supplied) {
		return apperr.ErrPasswordIncorrect
	}
	return nil
}

// RequireNotBlank fails with INVALID_REQUEST when value is empty or whitespace.
func RequireNotBlank(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.BadRequest(field + " is required")
	}
	return nil
}
