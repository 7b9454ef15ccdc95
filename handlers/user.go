package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"edusync_backend/models"
	"edusync_backend/policy"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	db *sql.DB
}

func NewUserHandler(db *sql.DB) *UserHandler {
	return &UserHandler{db: db}
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	rows, err := h.db.Query(`SELECT id, name, email, role FROM users ORDER BY created_at DESC`)
	if err != nil {
		log.Printf("Error fetching users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	defer rows.Close()

	users := make([]models.UserResponse, 0)
	for rows.Next() {
		var user models.UserResponse
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan user"})
			return
		}
		users = append(users, user)
	}

	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var user models.UserDetailResponse
	err = h.db.QueryRow(
		`SELECT id, name, email, role FROM users WHERE id = $1`, userID,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Role)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	} else if err != nil {
		log.Printf("Error fetching user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	// Courses owned by this user (relevant for instructors)
	rows, err := h.db.Query(`
		SELECT id, title, description, instructor_id, media_url, created_at
		FROM courses
		WHERE instructor_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		log.Printf("Error fetching user courses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user courses"})
		return
	}
	defer rows.Close()

	user.Courses = make([]models.CourseResponse, 0)
	for rows.Next() {
		var course models.CourseResponse
		if err := rows.Scan(&course.ID, &course.Title, &course.Description,
			&course.InstructorID, &course.MediaURL, &course.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan course"})
			return
		}
		user.Courses = append(user.Courses, course)
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	principal := currentPrincipal(c)

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var exists bool
	if err := h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Users may edit themselves; admins anyone.
	if decision := policy.Authorize(principal, userID); !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var emailTaken bool
	if err := h.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id != $2)`,
		req.Email, userID,
	).Scan(&emailTaken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email"})
		return
	}
	if emailTaken {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	// Role is immutable after creation; only name and email change.
	var user models.UserResponse
	err = h.db.QueryRow(
		`UPDATE users SET name = $1, email = $2 WHERE id = $3 RETURNING id, name, email, role`,
		req.Name, req.Email, userID,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Role)
	if err != nil {
		log.Printf("Error updating user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal.Role != policy.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can delete users"})
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	result, err := h.db.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		log.Printf("Error deleting user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify deletion"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
