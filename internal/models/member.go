package models

import "time"

// ============================================
// Member DTOs
// ============================================

type MemberRequest struct {
	UserID   string `json:"userId" binding:"required,max=50"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"max=100"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type MemberResponse struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeleteRequest carries the password gating a delete. ID, when sent, must
// name the same record as the path.
type DeleteRequest struct {
	Password string `json:"password" binding:"required"`
	ID       *int64 `json:"id,omitempty"`
}
