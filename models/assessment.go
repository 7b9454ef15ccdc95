package models

import (
	"time"

	"github.com/google/uuid"
)

type Assessment struct {
	ID        uuid.UUID  `json:"id"`
	CourseID  uuid.UUID  `json:"course_id"`
	Title     string     `json:"title"`
	MaxScore  int        `json:"max_score"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"created_at"`
}

type Question struct {
	ID           uuid.UUID `json:"id"`
	AssessmentID uuid.UUID `json:"assessment_id"`
	Text         string    `json:"text"`
	Marks        int       `json:"marks"`
	Options      []Option  `json:"options"`
}

type Option struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	Text       string    `json:"text"`
	IsCorrect  bool      `json:"is_correct"`
}

type CreateAssessmentRequest struct {
	CourseID  uuid.UUID       `json:"course_id" binding:"required"`
	Title     string          `json:"title" binding:"required"`
	MaxScore  int             `json:"max_score" binding:"gte=0"`
	Questions []QuestionInput `json:"questions" binding:"dive"`
}

type UpdateAssessmentRequest struct {
	Title     string          `json:"title" binding:"required"`
	MaxScore  int             `json:"max_score" binding:"gte=0"`
	Questions []QuestionInput `json:"questions" binding:"dive"`
}

type QuestionInput struct {
	Text    string        `json:"text" binding:"required"`
	Marks   int           `json:"marks" binding:"gte=0"`
	Options []OptionInput `json:"options" binding:"dive"`
}

type OptionInput struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type AssessmentSummary struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	MaxScore int       `json:"max_score"`
}

type AssessmentDetailResponse struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	MaxScore  int             `json:"max_score"`
	Questions []Question      `json:"questions"`
	Course    *CourseResponse `json:"course,omitempty"`
}

type AnswerSubmission struct {
	QuestionID       uuid.UUID `json:"question_id" binding:"required"`
	SelectedOptionID uuid.UUID `json:"selected_option_id" binding:"required"`
}

type SubmitAttemptRequest struct {
	Answers []AnswerSubmission `json:"answers"`
}

type AttemptResponse struct {
	ResultID uuid.UUID `json:"result_id"`
	Score    int       `json:"score"`
	MaxScore int       `json:"max_score"`
}
