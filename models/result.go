package models

import (
	"time"

	"github.com/google/uuid"
)

type Result struct {
	ID           uuid.UUID `json:"id"`
	AssessmentID uuid.UUID `json:"assessment_id"`
	UserID       uuid.UUID `json:"user_id"`
	Score        int       `json:"score"`
	AttemptDate  time.Time `json:"attempt_date"`
}

type CreateResultRequest struct {
	AssessmentID uuid.UUID  `json:"assessment_id" binding:"required"`
	UserID       uuid.UUID  `json:"user_id" binding:"required"`
	Score        int        `json:"score" binding:"gte=0"`
	AttemptDate  *time.Time `json:"attempt_date"`
}
