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

type CourseHandler struct {
	db *sql.DB
}

func NewCourseHandler(db *sql.DB) *CourseHandler {
	return &CourseHandler{db: db}
}

// courseOwner loads a course's instructor id. Returns sql.ErrNoRows when
// the course does not exist; uuid.Nil when the course has no instructor.
func (h *CourseHandler) courseOwner(courseID uuid.UUID) (uuid.UUID, error) {
	var instructorID *uuid.UUID
	err := h.db.QueryRow(`SELECT instructor_id FROM courses WHERE id = $1`, courseID).Scan(&instructorID)
	if err != nil {
		return uuid.Nil, err
	}
	if instructorID == nil {
		return uuid.Nil, nil
	}
	return *instructorID, nil
}

func (h *CourseHandler) GetCourses(c *gin.Context) {
	principal := currentPrincipal(c)

	var rows *sql.Rows
	var err error

	if principal.Role == policy.RoleInstructor {
		// Instructors only see courses they own
		rows, err = h.db.Query(`
			SELECT id, title, description, instructor_id, media_url, created_at
			FROM courses
			WHERE instructor_id = $1
			ORDER BY created_at DESC
		`, principal.ID)
	} else {
		rows, err = h.db.Query(`
			SELECT id, title, description, instructor_id, media_url, created_at
			FROM courses
			ORDER BY created_at DESC
		`)
	}

	if err != nil {
		log.Printf("Error fetching courses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch courses"})
		return
	}
	defer rows.Close()

	courses := make([]models.CourseResponse, 0)
	for rows.Next() {
		var course models.CourseResponse
		if err := rows.Scan(&course.ID, &course.Title, &course.Description,
			&course.InstructorID, &course.MediaURL, &course.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan course"})
			return
		}
		courses = append(courses, course)
	}

	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) GetCourseByID(c *gin.Context) {
	principal := currentPrincipal(c)

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}

	var course models.CourseDetailResponse
	var instructor models.UserResponse
	var instructorName, instructorEmail, instructorRole sql.NullString
	err = h.db.QueryRow(`
		SELECT c.id, c.title, c.description, c.instructor_id, c.media_url, c.created_at,
		       u.name, u.email, u.role
		FROM courses c
		LEFT JOIN users u ON u.id = c.instructor_id
		WHERE c.id = $1
	`, courseID).Scan(&course.ID, &course.Title, &course.Description, &course.InstructorID,
		&course.MediaURL, &course.CreatedAt, &instructorName, &instructorEmail, &instructorRole)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	} else if err != nil {
		log.Printf("Error fetching course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch course"})
		return
	}

	// Instructors may only view their own courses in detail
	if principal.Role == policy.RoleInstructor {
		if decision := policy.Authorize(principal, ownerOrNil(course.InstructorID)); !decision.Allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
			return
		}
	}

	if course.InstructorID != nil {
		instructor.ID = *course.InstructorID
		instructor.Name = instructorName.String
		instructor.Email = instructorEmail.String
		instructor.Role = instructorRole.String
		course.Instructor = &instructor
	}

	rows, err := h.db.Query(`
		SELECT id, title, max_score
		FROM assessments
		WHERE course_id = $1
		ORDER BY created_at ASC
	`, courseID)
	if err != nil {
		log.Printf("Error fetching assessments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assessments"})
		return
	}
	defer rows.Close()

	course.Assessments = make([]models.AssessmentSummary, 0)
	for rows.Next() {
		var summary models.AssessmentSummary
		if err := rows.Scan(&summary.ID, &summary.Title, &summary.MaxScore); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan assessment"})
			return
		}
		course.Assessments = append(course.Assessments, summary)
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal.Role != policy.RoleInstructor && principal.Role != policy.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only instructors and admins can create courses"})
		return
	}

	var req models.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	instructorID := principal.ID
	if req.InstructorID != nil {
		instructorID = *req.InstructorID
	}

	// Instructors may only create courses assigned to themselves
	if decision := policy.Authorize(principal, instructorID); !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
		return
	}

	var instructorExists bool
	if err := h.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, instructorID,
	).Scan(&instructorExists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify instructor"})
		return
	}
	if !instructorExists {
		c.JSON(http.StatusConflict, gin.H{"error": "Instructor not found"})
		return
	}

	var course models.CourseResponse
	err := h.db.QueryRow(`
		INSERT INTO courses (id, title, description, instructor_id, media_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, description, instructor_id, media_url, created_at
	`, uuid.New(), req.Title, req.Description, instructorID, req.MediaURL).Scan(
		&course.ID, &course.Title, &course.Description, &course.InstructorID,
		&course.MediaURL, &course.CreatedAt)

	if err != nil {
		log.Printf("Error creating course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course"})
		return
	}

	c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	principal := currentPrincipal(c)

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}

	ownerID, err := h.courseOwner(courseID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify course"})
		return
	}

	if decision := policy.Authorize(principal, ownerID); !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
		return
	}

	var req models.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Full replace; instructor_id never changes on update
	var course models.CourseResponse
	err = h.db.QueryRow(`
		UPDATE courses SET title = $1, description = $2, media_url = $3
		WHERE id = $4
		RETURNING id, title, description, instructor_id, media_url, created_at
	`, req.Title, req.Description, req.MediaURL, courseID).Scan(
		&course.ID, &course.Title, &course.Description, &course.InstructorID,
		&course.MediaURL, &course.CreatedAt)

	if err != nil {
		log.Printf("Error updating course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update course"})
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	principal := currentPrincipal(c)

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}

	ownerID, err := h.courseOwner(courseID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify course"})
		return
	}

	if decision := policy.Authorize(principal, ownerID); !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
		return
	}

	if _, err := h.db.Exec(`DELETE FROM courses WHERE id = $1`, courseID); err != nil {
		log.Printf("Error deleting course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete course"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully"})
}

func ownerOrNil(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
