package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"` // "-" means this field won't be included in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type UserDetailResponse struct {
	ID      uuid.UUID        `json:"id"`
	Name    string           `json:"name"`
	Email   string           `json:"email"`
	Role    string           `json:"role"`
	Courses []CourseResponse `json:"courses"`
}

type UpdateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}
