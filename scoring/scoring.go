package scoring

import (
	"edusync_backend/models"

	"github.com/google/uuid"
)

// Score computes a learner's score for one attempt against an assessment
// whose questions and options are fully loaded. It never mutates the
// assessment and is deterministic for identical inputs.
//
// Answers referencing an unknown question or option are ignored rather
// than rejected. Only the first answer submitted for a question counts;
// later entries for the same question are dropped, so the score is
// bounded by the sum of the question marks.
//
// maxScore is the assessment's stored field. It is reported as-is and is
// not reconciled with the sum of the question marks.
func Score(assessment *models.Assessment, answers []models.AnswerSubmission) (score, maxScore int) {
	questions := make(map[uuid.UUID]*models.Question, len(assessment.Questions))
	for i := range assessment.Questions {
		questions[assessment.Questions[i].ID] = &assessment.Questions[i]
	}

	answered := make(map[uuid.UUID]bool, len(answers))
	for _, answer := range answers {
		question, ok := questions[answer.QuestionID]
		if !ok {
			continue
		}
		if answered[answer.QuestionID] {
			continue
		}
		answered[answer.QuestionID] = true

		for _, option := range question.Options {
			if option.ID == answer.SelectedOptionID {
				if option.IsCorrect {
					score += question.Marks
				}
				break
			}
		}
	}

	return score, assessment.MaxScore
}
