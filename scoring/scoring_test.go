package scoring

import (
	"testing"

	"edusync_backend/models"

	"github.com/google/uuid"
)

// buildAssessment returns an assessment with two questions:
// Q1 (5 marks, correct option q1Correct) and Q2 (3 marks, correct
// option q2Correct plus incorrect q2Wrong). MaxScore is stored
// independently as 10.
func buildAssessment() (a *models.Assessment, q1, q2, q1Correct, q2Correct, q2Wrong uuid.UUID) {
	q1 = uuid.New()
	q2 = uuid.New()
	q1Correct = uuid.New()
	q2Correct = uuid.New()
	q2Wrong = uuid.New()

	a = &models.Assessment{
		ID:       uuid.New(),
		Title:    "Unit 1 quiz",
		MaxScore: 10,
		Questions: []models.Question{
			{
				ID:    q1,
				Text:  "What is 2+2?",
				Marks: 5,
				Options: []models.Option{
					{ID: q1Correct, QuestionID: q1, Text: "4", IsCorrect: true},
					{ID: uuid.New(), QuestionID: q1, Text: "5", IsCorrect: false},
				},
			},
			{
				ID:    q2,
				Text:  "What is the capital of France?",
				Marks: 3,
				Options: []models.Option{
					{ID: q2Correct, QuestionID: q2, Text: "Paris", IsCorrect: true},
					{ID: q2Wrong, QuestionID: q2, Text: "Lyon", IsCorrect: false},
				},
			},
		},
	}
	return
}

func TestScoreAllCorrect(t *testing.T) {
	a, q1, q2, q1Correct, q2Correct, _ := buildAssessment()

	score, maxScore := Score(a, []models.AnswerSubmission{
		{QuestionID: q1, SelectedOptionID: q1Correct},
		{QuestionID: q2, SelectedOptionID: q2Correct},
	})
	if score != 8 {
		t.Fatalf("score = %d, want 8", score)
	}
	if maxScore != 10 {
		t.Fatalf("maxScore = %d, want stored value 10", maxScore)
	}
}

func TestScorePartiallyCorrect(t *testing.T) {
	a, q1, q2, q1Correct, _, q2Wrong := buildAssessment()

	score, _ := Score(a, []models.AnswerSubmission{
		{QuestionID: q1, SelectedOptionID: q1Correct},
		{QuestionID: q2, SelectedOptionID: q2Wrong},
	})
	if score != 5 {
		t.Fatalf("score = %d, want 5", score)
	}
}

func TestScoreEmptySubmission(t *testing.T) {
	a, _, _, _, _, _ := buildAssessment()

	if score, _ := Score(a, nil); score != 0 {
		t.Fatalf("nil answers: score = %d, want 0", score)
	}
	if score, _ := Score(a, []models.AnswerSubmission{}); score != 0 {
		t.Fatalf("empty answers: score = %d, want 0", score)
	}
}

func TestScoreIgnoresUnknownIDs(t *testing.T) {
	a, q1, _, q1Correct, _, _ := buildAssessment()

	score, _ := Score(a, []models.AnswerSubmission{
		{QuestionID: uuid.New(), SelectedOptionID: q1Correct}, // unknown question
		{QuestionID: q1, SelectedOptionID: uuid.New()},        // unknown option
	})
	if score != 0 {
		t.Fatalf("score = %d, want 0", score)
	}
}

// Duplicate answers for the same question are de-duplicated: the first
// entry wins and later ones are ignored, correct or not.
func TestScoreDeduplicatesAnswersPerQuestion(t *testing.T) {
	a, q1, _, q1Correct, _, _ := buildAssessment()

	score, _ := Score(a, []models.AnswerSubmission{
		{QuestionID: q1, SelectedOptionID: q1Correct},
		{QuestionID: q1, SelectedOptionID: q1Correct},
	})
	if score != 5 {
		t.Fatalf("duplicate correct answer: score = %d, want 5", score)
	}

	wrong := a.Questions[0].Options[1].ID
	score, _ = Score(a, []models.AnswerSubmission{
		{QuestionID: q1, SelectedOptionID: wrong},
		{QuestionID: q1, SelectedOptionID: q1Correct},
	})
	if score != 0 {
		t.Fatalf("first answer wins: score = %d, want 0", score)
	}
}

func TestScoreIdempotent(t *testing.T) {
	a, q1, q2, q1Correct, q2Correct, _ := buildAssessment()
	answers := []models.AnswerSubmission{
		{QuestionID: q1, SelectedOptionID: q1Correct},
		{QuestionID: q2, SelectedOptionID: q2Correct},
	}

	s1, m1 := Score(a, answers)
	s2, m2 := Score(a, answers)
	if s1 != s2 || m1 != m2 {
		t.Fatalf("scoring not idempotent: (%d,%d) then (%d,%d)", s1, m1, s2, m2)
	}
}

func TestScoreDoesNotMutateAssessment(t *testing.T) {
	a, q1, _, q1Correct, _, _ := buildAssessment()
	marksBefore := a.Questions[0].Marks
	optionsBefore := len(a.Questions[0].Options)

	Score(a, []models.AnswerSubmission{{QuestionID: q1, SelectedOptionID: q1Correct}})

	if a.Questions[0].Marks != marksBefore || len(a.Questions[0].Options) != optionsBefore {
		t.Fatal("Score mutated the assessment")
	}
}
