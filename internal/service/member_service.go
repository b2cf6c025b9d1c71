package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Marga-Ghale/daily-schedule-backend/internal/apperr"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/models"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/repository"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/validation"
)

// ============================================
// Member Service
// ============================================

type MemberService interface {
	Create(ctx context.Context, req models.MemberRequest) (*models.MemberResponse, error)
	FindByID(ctx context.Context, id int64) (*models.MemberResponse, error)
	FindByUserID(ctx context.Context, userID string) (*models.MemberResponse, error)
	FindByName(ctx context.Context, name string) (*models.MemberResponse, error)
	FindAll(ctx context.Context) ([]models.MemberResponse, error)
	Update(ctx context.Context, id int64, req models.MemberRequest) (*models.MemberResponse, error)
	Delete(ctx context.Context, id int64, password string) error
}

type memberService struct {
	memberRepo   repository.MemberRepository
	scheduleRepo repository.ScheduleRepository
	validator    *validation.MemberValidator
	passwords    validation.PasswordMatcher
}

func NewMemberService(
	memberRepo repository.MemberRepository,
	scheduleRepo repository.ScheduleRepository,
	passwords validation.PasswordMatcher,
) MemberService {
	return &memberService{
		memberRepo:   memberRepo,
		scheduleRepo: scheduleRepo,
		validator:    validation.NewMemberValidator(memberRepo, passwords),
		passwords:    passwords,
	}
}

func (s *memberService) Create(ctx context.Context, req models.MemberRequest) (*models.MemberResponse, error) {
	if err := validation.RequireNotBlank("userId", req.UserID); err != nil {
		return nil, err
	}
	if err := validation.RequireNotBlank("password", req.Password); err != nil {
		return nil, err
	}
	if err := s.validator.RequireUnique(ctx, req.UserID); err != nil {
		return nil, err
	}

	hashed, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, apperr.ErrCreationFailed.Wrap(err)
	}

	member := &repository.Member{
		UserID:    req.UserID,
		Password:  hashed,
		Name:      req.Name,
		Email:     req.Email,
		UpdatedAt: time.Now(),
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		// lost the race against a concurrent signup
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperr.ErrUserIDExist
		}
		return nil, apperr.ErrInternal.Wrap(err)
	}

	log.Printf("[Member] created id=%d userId=%s", member.ID, member.UserID)
	resp := toMemberResponse(member)
	return &resp, nil
}

func (s *memberService) FindByID(ctx context.Context, id int64) (*models.MemberResponse, error) {
	member, err := s.validator.RequireExists(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toMemberResponse(member)
	return &resp, nil
}

func (s *memberService) FindByUserID(ctx context.Context, userID string) (*models.MemberResponse, error) {
	if err := validation.RequireNotBlank("userId", userID); err != nil {
		return nil, err
	}
	member, err := s.validator.RequireByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toMemberResponse(member)
	return &resp, nil
}

func (s *memberService) FindByName(ctx context.Context, name string) (*models.MemberResponse, error) {
	if err := validation.RequireNotBlank("name", name); err != nil {
		return nil, err
	}
	member, err := s.validator.RequireByName(ctx, name)
	if err != nil {
		return nil, err
	}
	resp := toMemberResponse(member)
	return &resp, nil
}

func (s *memberService) FindAll(ctx context.Context) ([]models.MemberResponse, error) {
	members, err := s.memberRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.ErrInternal.Wrap(err)
	}
	return toMemberResponses(members), nil
}

// Update replaces userId, name and email after the stored password matches.
// The password itself is not changed.
func (s *memberService) Update(ctx context.Context, id int64, req models.MemberRequest) (*models.MemberResponse, error) {
	if err := validation.RequireNotBlank("userId", req.UserID); err != nil {
		return nil, err
	}
	existing, err := s.validator.RequireExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.RequirePasswordMatch(existing, req.Password); err != nil {
		return nil, err
	}
	if req.UserID != existing.UserID {
		if err := s.validator.RequireUnique(ctx, req.UserID); err != nil {
			return nil, err
		}
	}

	updated := *existing
	updated.UserID = req.UserID
	updated.Name = req.Name
	updated.Email = req.Email
	updated.UpdatedAt = time.Now()

	n, err := s.memberRepo.Update(ctx, &updated)
	if errors.Is(err, repository.ErrDuplicateKey) {
		return nil, apperr.ErrUserIDExist
	}
	if err != nil {
		return nil, apperr.ErrInternal.Wrap(err)
	}
	if n == 0 {
		return nil, apperr.ErrIDNotFound
	}

	resp := toMemberResponse(&updated)
	return &resp, nil
}

// Delete removes the member after the password matches. Its schedules are
// stamped deleted first and detached by the foreign key.
func (s *memberService) Delete(ctx context.Context, id int64, password string) error {
	existing, err := s.validator.RequireExists(ctx, id)
	if err != nil {
		return err
	}
	if err := s.validator.RequirePasswordMatch(existing, password); err != nil {
		return err
	}

	marked, err := s.scheduleRepo.MarkDeletedByMemberID(ctx, id)
	if err != nil {
		return apperr.ErrInternal.Wrap(err)
	}
	n, err := s.memberRepo.DeleteByID(ctx, id)
	if err != nil {
		return apperr.ErrInternal.Wrap(err)
	}
	if n == 0 {
		return apperr.ErrIDNotFound
	}

	log.Printf("[Member] deleted id=%d (%d schedules marked deleted)", id, marked)
	return nil
}
