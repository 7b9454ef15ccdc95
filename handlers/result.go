package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"edusync_backend/models"
	"edusync_backend/policy"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ResultHandler struct {
	db *sql.DB
}

func NewResultHandler(db *sql.DB) *ResultHandler {
	return &ResultHandler{db: db}
}

// canMutateResult applies the result ownership policy: admins may touch
// any result, students only their own, instructors none (their scope is
// courses and assessments).
func canMutateResult(p policy.Principal, ownerID uuid.UUID) policy.Decision {
	if p.Role == policy.RoleInstructor {
		return policy.Decision{Allowed: false, Reason: "instructors cannot manage results"}
	}
	return policy.Authorize(p, ownerID)
}

func (h *ResultHandler) GetResults(c *gin.Context) {
	principal := currentPrincipal(c)

	var rows *sql.Rows
	var err error

	if principal.Role == policy.RoleStudent {
		// Students only see their own results
		rows, err = h.db.Query(`
			SELECT id, assessment_id, user_id, score, attempt_date
			FROM results
			WHERE user_id = $1
			ORDER BY attempt_date DESC
		`, principal.ID)
	} else {
		rows, err = h.db.Query(`
			SELECT id, assessment_id, user_id, score, attempt_date
			FROM results
			ORDER BY attempt_date DESC
		`)
	}

	if err != nil {
		log.Printf("Error fetching results: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch results"})
		return
	}
	defer rows.Close()

	results := make([]models.Result, 0)
	for rows.Next() {
		var result models.Result
		if err := rows.Scan(&result.ID, &result.AssessmentID, &result.UserID,
			&result.Score, &result.AttemptDate); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan result"})
			return
		}
		results = append(results, result)
	}

	c.JSON(http.StatusOK, results)
}

func (h *ResultHandler) GetResultByID(c *gin.Context) {
	resultID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid result id"})
		return
	}

	var result models.Result
	err = h.db.QueryRow(`
		SELECT id, assessment_id, user_id, score, attempt_date
		FROM results
		WHERE id = $1
	`, resultID).Scan(&result.ID, &result.AssessmentID, &result.UserID,
		&result.Score, &result.AttemptDate)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
		return
	} else if err != nil {
		log.Printf("Error fetching result: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch result"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ResultHandler) CreateResult(c *gin.Context) {
	principal := currentPrincipal(c)

	var req models.CreateResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if decision := canMutateResult(principal, req.UserID); !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
		return
	}

	var assessmentExists bool
	if err := h.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM assessments WHERE id = $1)`, req.AssessmentID,
	).Scan(&assessmentExists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify assessment"})
		return
	}
	if !assessmentExists {
		c.JSON(http.StatusConflict, gin.H{"error": "Assessment not found"})
		return
	}

	var userExists bool
	if err := h.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, req.UserID,
	).Scan(&userExists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}
	if !userExists {
		c.JSON(http.StatusConflict, gin.H{"error": "User not found"})
		return
	}

	attemptDate := time.Now()
	if req.AttemptDate != nil {
		attemptDate = *req.AttemptDate
	}

	var result models.Result
	err := h.db.QueryRow(`
		INSERT INTO results (id, assessment_id, user_id, score, attempt_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, assessment_id, user_id, score, attempt_date
	`, uuid.New(), req.AssessmentID, req.UserID, req.Score, attemptDate).Scan(
		&result.ID, &result.AssessmentID, &result.UserID, &result.Score, &result.AttemptDate)

	if err != nil {
		log.Printf("Error creating result: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create result"})
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *ResultHandler) UpdateResult(c *gin.Context) {
	principal := currentPrincipal(c)

	resultID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid result id"})
		return
	}

	var ownerID uuid.UUID
	err = h.db.QueryRow(`SELECT user_id FROM results WHERE id = $1`, resultID).Scan(&ownerID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify result"})
		return
	}

	if decision := canMutateResult(principal, ownerID); !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
		return
	}

	var req models.CreateResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Reassignment to another user must also pass the policy
	if decision := canMutateResult(principal, req.UserID); !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
		return
	}

	attemptDate := time.Now()
	if req.AttemptDate != nil {
		attemptDate = *req.AttemptDate
	}

	var result models.Result
	err = h.db.QueryRow(`
		UPDATE results SET assessment_id = $1, user_id = $2, score = $3, attempt_date = $4
		WHERE id = $5
		RETURNING id, assessment_id, user_id, score, attempt_date
	`, req.AssessmentID, req.UserID, req.Score, attemptDate, resultID).Scan(
		&result.ID, &result.AssessmentID, &result.UserID, &result.Score, &result.AttemptDate)

	if err != nil {
		log.Printf("Error updating result: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update result"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ResultHandler) DeleteResult(c *gin.Context) {
	principal := currentPrincipal(c)

	resultID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid result id"})
		return
	}

	var ownerID uuid.UUID
	err = h.db.QueryRow(`SELECT user_id FROM results WHERE id = $1`, resultID).Scan(&ownerID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify result"})
		return
	}

	if decision := canMutateResult(principal, ownerID); !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
		return
	}

	if _, err := h.db.Exec(`DELETE FROM results WHERE id = $1`, resultID); err != nil {
		log.Printf("Error deleting result: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete result"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Result deleted successfully"})
}
