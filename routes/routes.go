package routes

import (
	"database/sql"

	"edusync_backend/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, db *sql.DB, jwtSecret []byte) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, jwtSecret)
	userHandler := handlers.NewUserHandler(db)
	courseHandler := handlers.NewCourseHandler(db)
	assessmentHandler := handlers.NewAssessmentHandler(db)
	resultHandler := handlers.NewResultHandler(db)
	healthHandler := handlers.NewHealthHandler(db)

	// Public routes
	r.GET("/health", healthHandler.HealthCheck)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := r.Group("/")
	protected.Use(authHandler.AuthMiddleware())
	{
		// User routes
		protected.GET("/users", userHandler.GetUsers)
		protected.GET("/users/:id", userHandler.GetUserByID)
		protected.PUT("/users/:id", userHandler.UpdateUser)
		protected.DELETE("/users/:id", userHandler.DeleteUser)

		// Course routes
		protected.POST("/courses", courseHandler.CreateCourse)
		protected.GET("/courses", courseHandler.GetCourses)
		protected.GET("/courses/:id", courseHandler.GetCourseByID)
		protected.PUT("/courses/:id", courseHandler.UpdateCourse)
		protected.DELETE("/courses/:id", courseHandler.DeleteCourse)

		// Assessment routes
		protected.POST("/assessments", assessmentHandler.CreateAssessment)
		protected.GET("/assessments", assessmentHandler.GetAssessments)
		protected.GET("/assessments/:id", assessmentHandler.GetAssessmentByID)
		protected.PUT("/assessments/:id", assessmentHandler.UpdateAssessment)
		protected.DELETE("/assessments/:id", assessmentHandler.DeleteAssessment)
		protected.POST("/assessments/:id/attempts", assessmentHandler.SubmitAttempt)

		// Result routes
		protected.POST("/results", resultHandler.CreateResult)
		protected.GET("/results", resultHandler.GetResults)
		protected.GET("/results/:id", resultHandler.GetResultByID)
		protected.PUT("/results/:id", resultHandler.UpdateResult)
		protected.DELETE("/results/:id", resultHandler.DeleteResult)

		// Logout route
		protected.POST("/logout", authHandler.Logout)

		// User info route
		protected.GET("/userinfo", authHandler.GetUserInfo)
	}
}
