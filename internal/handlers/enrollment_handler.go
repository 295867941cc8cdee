package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillnest-io/course-service/internal/services"
	"github.com/skillnest-io/course-service/internal/utils"
)

type EnrollmentHandler struct {
	BaseHandler
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService services.EnrollmentService, logger utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		enrollmentService: enrollmentService,
	}
}

func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Not authorized, no token"})
		return
	}

	course, err := h.enrollmentService.Enroll(c.Request.Context(), c.Param("courseId"), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Enrolled successfully",
		"course":  course,
	})
}

func (h *EnrollmentHandler) MyEnrollments(c *gin.Context) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Not authorized, no token"})
		return
	}

	courses, err := h.enrollmentService.ListMyEnrollments(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}
