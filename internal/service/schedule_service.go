package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Marga-Ghale/daily-schedule-backend/internal/apperr"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/models"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/pagination"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/repository"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/validation"
)

// Date fields accepted by FindDateByID.
const (
	DateFieldCreatedAt = "createdAt"
	DateFieldUpdatedAt = "updatedAt"
	DateFieldDeletedAt = "deletedAt"
)

// ============================================
// Schedule Service
// ============================================

type ScheduleService interface {
	Create(ctx context.Context, req models.CreateScheduleRequest) (*models.ScheduleResponse, error)
	FindByID(ctx context.Context, id int64) (*models.ScheduleResponse, error)
	FindByUpdatedDateAndAuthor(ctx context.Context, query models.ScheduleSearchQuery) (pagination.Page[models.ScheduleResponse], error)
	FindByUpdatedDateDesc(ctx context.Context, req pagination.Request) (pagination.Page[models.ScheduleResponse], error)
	FindByDate(ctx context.Context, query models.ScheduleSearchQuery) (pagination.Page[models.ScheduleResponse], error)
	FindDateByID(ctx context.Context, id int64, field, date string) (*models.SingleDateScheduleResponse, error)
	UpdateTitleAndAuthor(ctx context.Context, id int64, req models.UpdateScheduleRequest) (*models.ScheduleResponse, error)
	DeleteByID(ctx context.Context, id int64, req models.DeleteRequest) error
	FindSchedulesByMemberID(ctx context.Context, memberID, scheduleID int64, req pagination.Request) (pagination.Page[models.ScheduleResponse], error)
	FindScheduleByMemberID(ctx context.Context, memberID, scheduleID int64) (*models.ScheduleResponse, error)
}

type scheduleService struct {
	scheduleRepo    repository.ScheduleRepository
	memberRepo      repository.MemberRepository
	validator       *validation.ScheduleValidator
	memberValidator *validation.MemberValidator
	passwords       validation.PasswordMatcher
}

func NewScheduleService(
	scheduleRepo repository.ScheduleRepository,
	memberRepo repository.MemberRepository,
	passwords validation.PasswordMatcher,
) ScheduleService {
	return &scheduleService{
		scheduleRepo:    scheduleRepo,
		memberRepo:      memberRepo,
		validator:       validation.NewScheduleValidator(scheduleRepo, memberRepo, passwords),
		memberValidator: validation.NewMemberValidator(memberRepo, passwords),
		passwords:       passwords,
	}
}

// Create stores a schedule owned by the member named in the request, either
// by memberId or by member.id / member.userId.
func (s *scheduleService) Create(ctx context.Context, req models.CreateScheduleRequest) (*models.ScheduleResponse, error) {
	for _, f := range []struct{ name, value string }{
		{"title", req.Title},
		{"author", req.Author},
		{"password", req.Password},
	} {
		if err := validation.RequireNotBlank(f.name, f.value); err != nil {
			return nil, err
		}
	}

	member, err := s.resolveMember(ctx, req)
	if err != nil {
		return nil, err
	}

	hashed, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, apperr.ErrCreationFailed.Wrap(err)
	}

	now := time.Now()
	schedule := &repository.Schedule{
		Title:       req.Title,
		Author:      req.Author,
		Password:    hashed,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
		MemberID:    &member.ID,
	}
	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, apperr.ErrInternal.Wrap(err)
	}

	log.Printf("[Schedule] created id=%d member=%d", schedule.ID, member.ID)
	resp := toScheduleResponse(schedule, member)
	return &resp, nil
}

func (s *scheduleService) resolveMember(ctx context.Context, req models.CreateScheduleRequest) (*repository.Member, error) {
	var id *int64
	var userID string
	switch {
	case req.MemberID != nil:
		id = req.MemberID
	case req.Member != nil && req.Member.ID != nil:
		id = req.Member.ID
	case req.Member != nil && strings.TrimSpace(req.Member.UserID) != "":
		userID = req.Member.UserID
	default:
		return nil, apperr.BadRequest("memberId is required")
	}

	if id == nil {
		return s.memberValidator.RequireByUserID(ctx, userID)
	}
	member, err := s.memberRepo.FindByID(ctx, *id)
	if err != nil {
		return nil, apperr.ErrInternal.Wrap(err)
	}
	if member == nil {
		return nil, apperr.ErrInvalidMemberInfo
	}
	return member, nil
}

func (s *scheduleService) FindByID(ctx context.Context, id int64) (*models.ScheduleResponse, error) {
	schedule, err := s.validator.RequireExists(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.withMember(ctx, schedule)
}

// withMember converts schedule, embedding its member when it still has one.
func (s *scheduleService) withMember(ctx context.Context, schedule *repository.Schedule) (*models.ScheduleResponse, error) {
	var member *repository.Member
	if schedule.MemberID != nil {
		var err error
		member, err = s.memberRepo.FindByID(ctx, *schedule.MemberID)
		if err != nil {
			return nil, apperr.ErrInternal.Wrap(err)
		}
	}
	resp := toScheduleResponse(schedule, member)
	return &resp, nil
}

// FindByUpdatedDateAndAuthor pages schedules matching the optional date and
// author filters. No match is an empty page.
func (s *scheduleService) FindByUpdatedDateAndAuthor(ctx context.Context, query models.ScheduleSearchQuery) (pagination.Page[models.ScheduleResponse], error) {
	filter, err := searchFilter(query)
	if err != nil {
		return pagination.Page[models.ScheduleResponse]{}, err
	}
	return s.findPage(ctx, filter, query.Request)
}

func (s *scheduleService) FindByUpdatedDateDesc(ctx context.Context, req pagination.Request) (pagination.Page[models.ScheduleResponse], error) {
	return s.findPage(ctx, repository.ScheduleFilter{}, req)
}

// FindByDate pages schedules updated on the given calendar day. A day with no
// schedules at all is DATE_NOT_FOUND.
func (s *scheduleService) FindByDate(ctx context.Context, query models.ScheduleSearchQuery) (pagination.Page[models.ScheduleResponse], error) {
	if err := validation.RequireNotBlank("updatedAt", query.UpdatedAt); err != nil {
		return pagination.Page[models.ScheduleResponse]{}, err
	}
	day, err := parseDate(query.UpdatedAt)
	if err != nil {
		return pagination.Page[models.ScheduleResponse]{}, err
	}

	page, err := s.findPage(ctx, repository.ScheduleFilter{UpdatedOn: &day}, query.Request)
	if err != nil {
		return page, err
	}
	if page.TotalElements == 0 {
		return pagination.Page[models.ScheduleResponse]{}, apperr.ErrDateNotFound
	}
	return page, nil
}

// FindDateByID returns the schedule when its field timestamp falls on date.
func (s *scheduleService) FindDateByID(ctx context.Context, id int64, field, date string) (*models.SingleDateScheduleResponse, error) {
	if field != DateFieldCreatedAt && field != DateFieldUpdatedAt && field != DateFieldDeletedAt {
		return nil, apperr.ErrInvalidDateField.WithMessage("unknown date field: " + field)
	}
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	schedule, err := s.validator.RequireExists(ctx, id)
	if err != nil {
		return nil, err
	}

	var selected *time.Time
	switch field {
	case DateFieldCreatedAt:
		selected = &schedule.CreatedAt
	case DateFieldUpdatedAt:
		selected = &schedule.UpdatedAt
	case DateFieldDeletedAt:
		selected = schedule.DeletedAt
	}
	if selected == nil || !sameDay(*selected, day) {
		return nil, apperr.ErrDateNotFound
	}

	return &models.SingleDateScheduleResponse{
		ID:           schedule.ID,
		Title:        schedule.Title,
		Author:       schedule.Author,
		SelectedDate: selected.UTC().Format(repository.DateLayout),
	}, nil
}

func (s *scheduleService) UpdateTitleAndAuthor(ctx context.Context, id int64, req models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	if err := validation.RequireNotBlank("title", req.Title); err != nil {
		return nil, err
	}
	if err := validation.RequireNotBlank("author", req.Author); err != nil {
		return nil, err
	}

	existing, err := s.validator.RequireExists(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := s.validator.PrepareUpdate(req, existing)
	if err != nil {
		log.Printf("[Schedule] update rejected id=%d: %v", id, err)
		return nil, err
	}

	n, err := s.scheduleRepo.Update(ctx, updated)
	if err != nil {
		return nil, apperr.ErrInternal.Wrap(err)
	}
	if n == 0 {
		// deleted between the read and the write
		return nil, apperr.ErrIDNotFound
	}

	return s.withMember(ctx, updated)
}

// DeleteByID hard-deletes the schedule at id. When the body names an id as
// well, it must agree with the stored record.
func (s *scheduleService) DeleteByID(ctx context.Context, id int64, req models.DeleteRequest) error {
	existing, err := s.validator.RequireExists(ctx, id)
	if err != nil {
		return err
	}
	supplied := id
	if req.ID != nil {
		supplied = *req.ID
	}
	if err := s.validator.RequireDeletable(supplied, req.Password, existing); err != nil {
		log.Printf("[Schedule] delete rejected id=%d: %v", id, err)
		return err
	}

	n, err := s.scheduleRepo.DeleteByID(ctx, id)
	if err != nil {
		return apperr.ErrInternal.Wrap(err)
	}
	if n == 0 {
		return apperr.ErrIDNotFound
	}

	log.Printf("[Schedule] deleted id=%d", id)
	return nil
}

// FindSchedulesByMemberID pages the schedules of a member. Both the member
// and the referenced schedule must exist.
func (s *scheduleService) FindSchedulesByMemberID(ctx context.Context, memberID, scheduleID int64, req pagination.Request) (pagination.Page[models.ScheduleResponse], error) {
	if _, _, err := s.validator.RequireMemberAndSchedule(ctx, memberID, scheduleID); err != nil {
		return pagination.Page[models.ScheduleResponse]{}, err
	}
	return s.findPage(ctx, repository.ScheduleFilter{MemberID: &memberID}, req)
}

// FindScheduleByMemberID returns one schedule of a member.
func (s *scheduleService) FindScheduleByMemberID(ctx context.Context, memberID, scheduleID int64) (*models.ScheduleResponse, error) {
	member, schedule, err := s.validator.RequireMemberAndSchedule(ctx, memberID, scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule.MemberID == nil || *schedule.MemberID != member.ID {
		return nil, apperr.ErrNotFound.WithMessage("schedule does not belong to member")
	}

	resp := toScheduleResponse(schedule, member)
	return &resp, nil
}

func (s *scheduleService) findPage(ctx context.Context, filter repository.ScheduleFilter, req pagination.Request) (pagination.Page[models.ScheduleResponse], error) {
	req = req.Normalize()

	rows, total, err := s.scheduleRepo.FindPaged(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return pagination.Page[models.ScheduleResponse]{}, apperr.ErrInternal.Wrap(err)
	}
	return pagination.Map(pagination.NewPage(rows, req, total), scheduleToResponse), nil
}

func searchFilter(query models.ScheduleSearchQuery) (repository.ScheduleFilter, error) {
	var filter repository.ScheduleFilter
	if strings.TrimSpace(query.UpdatedAt) != "" {
		day, err := parseDate(query.UpdatedAt)
		if err != nil {
			return filter, err
		}
		filter.UpdatedOn = &day
	}
	if author := strings.TrimSpace(query.Author); author != "" {
		filter.Author = &author
	}
	return filter, nil
}

func parseDate(value string) (time.Time, error) {
	day, err := time.Parse(repository.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, apperr.BadRequest("date must be formatted as " + repository.DateLayout).Wrap(err)
	}
	return day, nil
}

func sameDay(t, day time.Time) bool {
	return t.UTC().Format(repository.DateLayout) == day.UTC().Format(repository.DateLayout)
}
