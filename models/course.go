package models

import (
	"time"

	"github.com/google/uuid"
)

type CreateCourseRequest struct {
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description"`
	InstructorID *uuid.UUID `json:"instructor_id"` // defaults to the caller when omitted
	MediaURL     string     `json:"media_url"`
}

type UpdateCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	MediaURL    string `json:"media_url"`
}

type CourseResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	InstructorID *uuid.UUID `json:"instructor_id"`
	MediaURL     string     `json:"media_url"`
	CreatedAt    time.Time  `json:"created_at"`
}

type CourseDetailResponse struct {
	ID           uuid.UUID           `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	InstructorID *uuid.UUID          `json:"instructor_id"`
	MediaURL     string              `json:"media_url"`
	CreatedAt    time.Time           `json:"created_at"`
	Assessments  []AssessmentSummary `json:"assessments"`
	Instructor   *UserResponse       `json:"instructor,omitempty"`
}
