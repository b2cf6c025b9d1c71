package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Marga-Ghale/daily-schedule-backend/internal/apperr"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/models"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/repository"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/validation"
)

func newTestServices(t *testing.T) (*Services, *repository.Repositories) {
	t.Helper()
	repos := repository.NewInMemoryRepositories()
	return NewServices(&ServiceDeps{Repos: repos}), repos
}

func TestMemberService_Create(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	created, err := svcs.Member.Create(ctx, models.MemberRequest{UserID: "u1", Password: "p1", Name: "N", Email: "e@x.com"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "u1", created.UserID)
	assert.Equal(t, "N", created.Name)
	assert.False(t, created.UpdatedAt.IsZero())

	_, err = svcs.Member.Create(ctx, models.MemberRequest{UserID: "u1", Password: "other"})
	assert.ErrorIs(t, err, apperr.ErrUserIDExist)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestMemberService_CreateRequiresFields(t *testing.T) {
	svcs, _ := newTestServices(t)

	tests := []struct {
		name string
		req  models.MemberRequest
	}{
		{name: "blank userId", req: models.MemberRequest{UserID: " ", Password: "p"}},
		{name: "blank password", req: models.MemberRequest{UserID: "u", Password: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svcs.Member.Create(context.Background(), tt.req)
			assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
		})
	}
}

func TestMemberService_Lookups(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	created, err := svcs.Member.Create(ctx, models.MemberRequest{UserID: "u1", Password: "p1", Name: "Kim"})
	require.NoError(t, err)
	_, err = svcs.Member.Create(ctx, models.MemberRequest{UserID: "u2", Password: "p2", Name: "Lee"})
	require.NoError(t, err)

	byID, err := svcs.Member.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", byID.UserID)

	byUserID, err := svcs.Member.FindByUserID(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "Lee", byUserID.Name)

	byName, err := svcs.Member.FindByName(ctx, "Kim")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	all, err := svcs.Member.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svcs.Member.FindByID(ctx, 999)
	assert.ErrorIs(t, err, apperr.ErrIDNotFound)

	_, err = svcs.Member.FindByUserID(ctx, "ghost")
	assert.ErrorIs(t, err, apperr.ErrInvalidMemberInfo)
}

func TestMemberService_Update(t *testing.T) {
	svcs, repos := newTestServices(t)
	ctx := context.Background()

	first, err := svcs.Member.Create(ctx, models.MemberRequest{UserID: "u1", Password: "p1"})
	require.NoError(t, err)
	_, err = svcs.Member.Create(ctx, models.MemberRequest{UserID: "taken", Password: "p"})
	require.NoError(t, err)

	_, err = svcs.Member.Update(ctx, first.ID, models.MemberRequest{UserID: "u1", Password: "wrong", Name: "X"})
	assert.ErrorIs(t, err, apperr.ErrPasswordIncorrect)

	_, err = svcs.Member.Update(ctx, first.ID, models.MemberRequest{UserID: "taken", Password: "p1"})
	assert.ErrorIs(t, err, apperr.ErrUserIDExist)

	updated, err := svcs.Member.Update(ctx, first.ID, models.MemberRequest{UserID: "u1b", Password: "p1", Name: "New", Email: "n@x.com"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, "u1b", updated.UserID)
	assert.Equal(t, "New", updated.Name)

	stored, err := repos.MemberRepo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "p1", stored.Password)

	_, err = svcs.Member.Update(ctx, 999, models.MemberRequest{UserID: "x", Password: "p"})
	assert.ErrorIs(t, err, apperr.ErrIDNotFound)
}

func TestMemberService_DeleteMarksSchedules(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	member, err := svcs.Member.Create(ctx, models.MemberRequest{UserID: "u1", Password: "p1"})
	require.NoError(t, err)
	schedule, err := svcs.Schedule.Create(ctx, models.CreateScheduleRequest{
		Title: "T", Author: "A", Password: "sp", MemberID: &member.ID,
	})
	require.NoError(t, err)

	err = svcs.Member.Delete(ctx, member.ID, "wrong")
	assert.ErrorIs(t, err, apperr.ErrPasswordIncorrect)

	require.NoError(t, svcs.Member.Delete(ctx, member.ID, "p1"))

	_, err = svcs.Member.FindByID(ctx, member.ID)
	assert.ErrorIs(t, err, apperr.ErrIDNotFound)

	// soft-deleted schedules stay readable
	got, err := svcs.Schedule.FindByID(ctx, schedule.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.DeletedAt)
	assert.Nil(t, got.MemberID)
	assert.Nil(t, got.Member)
}

func TestMemberService_BcryptPasswords(t *testing.T) {
	repos := repository.NewInMemoryRepositories()
	svcs := NewServices(&ServiceDeps{Repos: repos, Passwords: validation.BcryptMatcher{Cost: bcrypt.MinCost}})
	ctx := context.Background()

	created, err := svcs.Member.Create(ctx, models.MemberRequest{UserID: "u1", Password: "p1"})
	require.NoError(t, err)

	stored, err := repos.MemberRepo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "p1", stored.Password)

	_, err = svcs.Member.Update(ctx, created.ID, models.MemberRequest{UserID: "u1", Password: "p1", Name: "N"})
	assert.NoError(t, err)

	assert.ErrorIs(t, svcs.Member.Delete(ctx, created.ID, "p2"), apperr.ErrPasswordIncorrect)
	assert.NoError(t, svcs.Member.Delete(ctx, created.ID, "p1"))
}
