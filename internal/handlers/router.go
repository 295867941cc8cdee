package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillnest-io/course-service/internal/auth"
	"github.com/skillnest-io/course-service/internal/repositories"
	"github.com/skillnest-io/course-service/internal/services"
	"github.com/skillnest-io/course-service/internal/utils"
)

type HandlerManager struct {
	authHandler       *AuthHandler
	courseHandler     *CourseHandler
	enrollmentHandler *EnrollmentHandler
	userHandler       *UserHandler
	authMiddleware    *AuthMiddleware
	repo              repositories.Repository
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	repo repositories.Repository,
	tokens *auth.TokenManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:       NewAuthHandler(serviceManager.Auth(), tokens.Lifetime(), logger),
		courseHandler:     NewCourseHandler(serviceManager.Course(), serviceManager.Report(), logger),
		enrollmentHandler: NewEnrollmentHandler(serviceManager.Enrollment(), logger),
		userHandler:       NewUserHandler(serviceManager.User(), logger),
		authMiddleware:    NewAuthMiddleware(tokens, repo.User()),
		repo:              repo,
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", hm.authHandler.Register)
			authRoutes.POST("/login", hm.authHandler.Login)
			authRoutes.POST("/logout", hm.authHandler.Logout)
			authRoutes.GET("/me", hm.authMiddleware.RequireAuth(), hm.authHandler.Me)
		}

		courses := api.Group("/courses")
		{
			courses.GET("", hm.courseHandler.ListCourses)
			courses.GET("/:id", hm.courseHandler.GetCourse)
			courses.POST("", hm.authMiddleware.RequireAuth(), hm.authMiddleware.RequireAdmin(), hm.courseHandler.CreateCourse)
			courses.PUT("/:id", hm.authMiddleware.RequireAuth(), hm.authMiddleware.RequireAdmin(), hm.courseHandler.UpdateCourse)
			courses.DELETE("/:id", hm.authMiddleware.RequireAuth(), hm.authMiddleware.RequireAdmin(), hm.courseHandler.DeleteCourse)
			courses.GET("/:id/roster/export", hm.authMiddleware.RequireAuth(), hm.authMiddleware.RequireAdmin(), hm.courseHandler.ExportRoster)
		}

		enroll := api.Group("/enroll")
		enroll.Use(hm.authMiddleware.RequireAuth())
		{
			enroll.GET("/my-enrollments", hm.enrollmentHandler.MyEnrollments)
			enroll.POST("/:courseId", hm.enrollmentHandler.Enroll)
		}

		users := api.Group("/users")
		users.Use(hm.authMiddleware.RequireAuth())
		{
			users.GET("", hm.authMiddleware.RequireAdmin(), hm.userHandler.ListUsers)
			users.PUT("/profile", hm.userHandler.UpdateProfile)
		}
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	status := http.StatusOK
	dbStatus := "up"
	if err := hm.repo.Ping(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
		dbStatus = "down"
	}

	c.JSON(status, gin.H{
		"status":    dbStatus,
		"service":   "course-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
