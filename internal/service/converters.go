package service

import (
	"github.com/Marga-Ghale/daily-schedule-backend/internal/models"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/repository"
)

func toMemberResponse(m *repository.Member) models.MemberResponse {
	return models.MemberResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Email:     m.Email,
		UpdatedAt: m.UpdatedAt,
	}
}

func toMemberResponses(members []*repository.Member) []models.MemberResponse {
	out := make([]models.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	return out
}

// toScheduleResponse converts s. member may be nil.
func toScheduleResponse(s *repository.Schedule, member *repository.Member) models.ScheduleResponse {
	resp := models.ScheduleResponse{
		ID:          s.ID,
		Title:       s.Title,
		Author:      s.Author,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		DeletedAt:   s.DeletedAt,
		MemberID:    s.MemberID,
	}
	if member != nil {
		m := toMemberResponse(member)
		resp.Member = &m
	}
	return resp
}

func scheduleToResponse(s *repository.Schedule) models.ScheduleResponse {
	return toScheduleResponse(s, nil)
}
