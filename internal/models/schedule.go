package models

import (
	"time"

	"github.com/Marga-Ghale/daily-schedule-backend/internal/pagination"
)

// ============================================
// Schedule DTOs
// ============================================

// MemberRef points at an existing member either by id or by userId.
type MemberRef struct {
	ID     *int64 `json:"id,omitempty"`
	UserID string `json:"userId,omitempty"`
}

type CreateScheduleRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Author      string     `json:"author" binding:"required,max=100"`
	Password    string     `json:"password" binding:"required"`
	Description string     `json:"description"`
	MemberID    *int64     `json:"memberId,omitempty"`
	Member      *MemberRef `json:"member,omitempty"`
}

type UpdateScheduleRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Author   string `json:"author" binding:"required,max=100"`
	Password string `json:"password" binding:"required"`
}

type ScheduleResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   *time.Time      `json:"deletedAt,omitempty"`
	MemberID    *int64          `json:"memberId,omitempty"`
	Member      *MemberResponse `json:"member,omitempty"`
}

// SingleDateScheduleResponse projects one date field of a schedule.
type SingleDateScheduleResponse struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	SelectedDate string `json:"selectedDate"`
}

// ScheduleSearchQuery is bound from the query string of the paged search routes.
type ScheduleSearchQuery struct {
	UpdatedAt string `form:"updatedAt"`
	Author    string `form:"author"`
	pagination.Request
}

type DateFieldQuery struct {
	Field string `form:"field" binding:"required"`
	Date  string `form:"date" binding:"required"`
}
