package service

import (
	"github.com/Marga-Ghale/daily-schedule-backend/internal/repository"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/validation"
)

// ============================================
// Services Container
// ============================================

type Services struct {
	Member   MemberService
	Schedule ScheduleService
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Repos     *repository.Repositories
	Passwords validation.PasswordMatcher
}

func NewServices(deps *ServiceDeps) *Services {
	passwords := deps.Passwords
	if passwords == nil {
		passwords = validation.PlainMatcher{}
	}

	return &Services{
		Member:   NewMemberService(deps.Repos.MemberRepo, deps.Repos.ScheduleRepo, passwords),
		Schedule: NewScheduleService(deps.Repos.ScheduleRepo, deps.Repos.MemberRepo, passwords),
	}
}
