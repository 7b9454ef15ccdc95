package handlers

import (
	"database/sql"
	"io"
	"log"
	"net/http"

	"edusync_backend/models"
	"edusync_backend/policy"
	"edusync_backend/scoring"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssessmentHandler struct {
	db *sql.DB
}

func NewAssessmentHandler(db *sql.DB) *AssessmentHandler {
	return &AssessmentHandler{db: db}
}

// assessmentOwner resolves the instructor owning the assessment's course.
// Returns sql.ErrNoRows when the assessment does not exist; uuid.Nil when
// the course has no instructor.
func (h *AssessmentHandler) assessmentOwner(assessmentID uuid.UUID) (uuid.UUID, error) {
	var instructorID *uuid.UUID
	err := h.db.QueryRow(`
		SELECT c.instructor_id
		FROM assessments a
		JOIN courses c ON c.id = a.course_id
		WHERE a.id = $1
	`, assessmentID).Scan(&instructorID)
	if err != nil {
		return uuid.Nil, err
	}
	if instructorID == nil {
		return uuid.Nil, nil
	}
	return *instructorID, nil
}

// loadAssessment fetches an assessment with its questions and options
// fully populated. Returns sql.ErrNoRows when the assessment is absent.
func (h *AssessmentHandler) loadAssessment(assessmentID uuid.UUID) (*models.Assessment, error) {
	var assessment models.Assessment
	err := h.db.QueryRow(`
		SELECT id, course_id, title, max_score, created_at
		FROM assessments
		WHERE id = $1
	`, assessmentID).Scan(&assessment.ID, &assessment.CourseID, &assessment.Title,
		&assessment.MaxScore, &assessment.CreatedAt)
	if err != nil {
		return nil, err
	}

	questionRows, err := h.db.Query(`
		SELECT id, assessment_id, text, marks
		FROM questions
		WHERE assessment_id = $1
		ORDER BY id
	`, assessmentID)
	if err != nil {
		return nil, err
	}
	defer questionRows.Close()

	assessment.Questions = make([]models.Question, 0)
	index := make(map[uuid.UUID]int)
	for questionRows.Next() {
		var question models.Question
		if err := questionRows.Scan(&question.ID, &question.AssessmentID,
			&question.Text, &question.Marks); err != nil {
			return nil, err
		}
		question.Options = make([]models.Option, 0)
		index[question.ID] = len(assessment.Questions)
		assessment.Questions = append(assessment.Questions, question)
	}
	if err := questionRows.Err(); err != nil {
		return nil, err
	}

	optionRows, err := h.db.Query(`
		SELECT o.id, o.question_id, o.text, o.is_correct
		FROM options o
		JOIN questions q ON q.id = o.question_id
		WHERE q.assessment_id = $1
		ORDER BY o.id
	`, assessmentID)
	if err != nil {
		return nil, err
	}
	defer optionRows.Close()

	for optionRows.Next() {
		var option models.Option
		if err := optionRows.Scan(&option.ID, &option.QuestionID,
			&option.Text, &option.IsCorrect); err != nil {
			return nil, err
		}
		if i, ok := index[option.QuestionID]; ok {
			assessment.Questions[i].Options = append(assessment.Questions[i].Options, option)
		}
	}
	if err := optionRows.Err(); err != nil {
		return nil, err
	}

	return &assessment, nil
}

// insertQuestions writes an assessment's question/option children inside
// the caller's transaction.
func insertQuestions(tx *sql.Tx, assessmentID uuid.UUID, questions []models.QuestionInput) error {
	for _, q := range questions {
		questionID := uuid.New()
		if _, err := tx.Exec(`
			INSERT INTO questions (id, assessment_id, text, marks)
			VALUES ($1, $2, $3, $4)
		`, questionID, assessmentID, q.Text, q.Marks); err != nil {
			return err
		}

		for _, o := range q.Options {
			if _, err := tx.Exec(`
				INSERT INTO options (id, question_id, text, is_correct)
				VALUES ($1, $2, $3, $4)
			`, uuid.New(), questionID, o.Text, o.IsCorrect); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *AssessmentHandler) GetAssessments(c *gin.Context) {
	courseID := c.Query("course_id")

	query := `
		SELECT id, course_id, title, max_score, created_at
		FROM assessments
	`
	args := []interface{}{}

	if courseID != "" {
		query += " WHERE course_id = $1"
		args = append(args, courseID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := h.db.Query(query, args...)
	if err != nil {
		log.Printf("Error fetching assessments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assessments"})
		return
	}
	defer rows.Close()

	assessments := make([]models.Assessment, 0)
	for rows.Next() {
		var assessment models.Assessment
		if err := rows.Scan(&assessment.ID, &assessment.CourseID, &assessment.Title,
			&assessment.MaxScore, &assessment.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan assessment"})
			return
		}
		assessment.Questions = make([]models.Question, 0)
		assessments = append(assessments, assessment)
	}

	c.JSON(http.StatusOK, assessments)
}

func (h *AssessmentHandler) GetAssessmentByID(c *gin.Context) {
	assessmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assessment id"})
		return
	}

	assessment, err := h.loadAssessment(assessmentID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assessment not found"})
		return
	} else if err != nil {
		log.Printf("Error fetching assessment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assessment"})
		return
	}

	detail := models.AssessmentDetailResponse{
		ID:        assessment.ID,
		Title:     assessment.Title,
		MaxScore:  assessment.MaxScore,
		Questions: assessment.Questions,
	}

	var course models.CourseResponse
	err = h.db.QueryRow(`
		SELECT id, title, description, instructor_id, media_url, created_at
		FROM courses
		WHERE id = $1
	`, assessment.CourseID).Scan(&course.ID, &course.Title, &course.Description,
		&course.InstructorID, &course.MediaURL, &course.CreatedAt)
	if err == nil {
		detail.Course = &course
	} else if err != sql.ErrNoRows {
		log.Printf("Error fetching course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch course"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal.Role != policy.RoleInstructor && principal.Role != policy.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only instructors and admins can create assessments"})
		return
	}

	var req models.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var instructorID *uuid.UUID
	err := h.db.QueryRow(`SELECT instructor_id FROM courses WHERE id = $1`, req.CourseID).Scan(&instructorID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusConflict, gin.H{"error": "Course not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify course"})
		return
	}

	if decision := policy.Authorize(principal, ownerOrNil(instructorID)); !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	assessmentID := uuid.New()
	_, err = tx.Exec(`
		INSERT INTO assessments (id, course_id, title, max_score)
		VALUES ($1, $2, $3, $4)
	`, assessmentID, req.CourseID, req.Title, req.MaxScore)
	if err != nil {
		log.Printf("Error creating assessment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create assessment"})
		return
	}

	if err := insertQuestions(tx, assessmentID, req.Questions); err != nil {
		log.Printf("Error creating questions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create questions"})
		return
	}

	if err = tx.Commit(); err != nil {
		log.Printf("Error committing transaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save assessment"})
		return
	}

	assessment, err := h.loadAssessment(assessmentID)
	if err != nil {
		log.Printf("Error reloading assessment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assessment"})
		return
	}

	c.JSON(http.StatusCreated, assessment)
}

func (h *AssessmentHandler) UpdateAssessment(c *gin.Context) {
	principal := currentPrincipal(c)

	assessmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assessment id"})
		return
	}

	ownerID, err := h.assessmentOwner(assessmentID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assessment not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify assessment"})
		return
	}

	if decision := policy.Authorize(principal, ownerID); !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
		return
	}

	var req models.UpdateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Full replace: row update and question-list replacement commit
	// together, so readers never observe an assessment without questions.
	tx, err := h.db.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE assessments SET title = $1, max_score = $2 WHERE id = $3
	`, req.Title, req.MaxScore, assessmentID)
	if err != nil {
		log.Printf("Error updating assessment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update assessment"})
		return
	}

	// Options cascade with their questions
	if _, err := tx.Exec(`DELETE FROM questions WHERE assessment_id = $1`, assessmentID); err != nil {
		log.Printf("Error replacing questions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replace questions"})
		return
	}

	if err := insertQuestions(tx, assessmentID, req.Questions); err != nil {
		log.Printf("Error creating questions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replace questions"})
		return
	}

	if err = tx.Commit(); err != nil {
		log.Printf("Error committing transaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save assessment"})
		return
	}

	assessment, err := h.loadAssessment(assessmentID)
	if err != nil {
		log.Printf("Error reloading assessment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assessment"})
		return
	}

	c.JSON(http.StatusOK, assessment)
}

func (h *AssessmentHandler) DeleteAssessment(c *gin.Context) {
	principal := currentPrincipal(c)

	assessmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assessment id"})
		return
	}

	ownerID, err := h.assessmentOwner(assessmentID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assessment not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify assessment"})
		return
	}

	if decision := policy.Authorize(principal, ownerID); !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
		return
	}

	// Questions and options cascade at the schema level
	if _, err := h.db.Exec(`DELETE FROM assessments WHERE id = $1`, assessmentID); err != nil {
		log.Printf("Error deleting assessment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete assessment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assessment deleted successfully"})
}

// SubmitAttempt scores a learner's answers against the assessment's
// answer key and records the outcome as a result row.
func (h *AssessmentHandler) SubmitAttempt(c *gin.Context) {
	principal := currentPrincipal(c)

	assessmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assessment id"})
		return
	}

	// A missing or empty answer list is a valid zero-score attempt
	var req models.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assessment, err := h.loadAssessment(assessmentID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assessment not found"})
		return
	} else if err != nil {
		log.Printf("Error fetching assessment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assessment"})
		return
	}

	score, maxScore := scoring.Score(assessment, req.Answers)

	resultID := uuid.New()
	_, err = h.db.Exec(`
		INSERT INTO results (id, assessment_id, user_id, score)
		VALUES ($1, $2, $3, $4)
	`, resultID, assessmentID, principal.ID, score)
	if err != nil {
		log.Printf("Error recording attempt: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record attempt"})
		return
	}

	c.JSON(http.StatusCreated, models.AttemptResponse{
		ResultID: resultID,
		Score:    score,
		MaxScore: maxScore,
	})
}
