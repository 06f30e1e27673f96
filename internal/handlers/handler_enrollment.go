package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/codinglive/codinglive_app/internal/apperrors"
	portssvc "github.com/codinglive/codinglive_app/internal/core/ports/services"
	"github.com/codinglive/codinglive_app/internal/dto"
	"github.com/codinglive/codinglive_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// enrollmentHandler handles HTTP requests related to enrollments.
type enrollmentHandler struct {
	enrollmentService portssvc.EnrollmentSvcFacade
}

// newEnrollmentHandler creates a new enrollmentHandler.
func newEnrollmentHandler(es portssvc.EnrollmentSvcFacade) *enrollmentHandler {
	return &enrollmentHandler{
		enrollmentService: es,
	}
}

// registerEnrollmentRoutes registers the enrollment routes that are not
// nested under a program, plus the payment recording route.
func registerEnrollmentRoutes(rg *gin.RouterGroup, enrollmentService portssvc.EnrollmentSvcFacade, paymentService portssvc.PaymentSvcFacade) {
	eh := newEnrollmentHandler(enrollmentService)
	ph := newPaymentHandler(paymentService)

	enrollments := rg.Group("/enrollments")
	{
		enrollments.GET("/:enrollment_id", eh.getEnrollmentByID)
		enrollments.POST("/:enrollment_id/payments", ph.recordPayment)
	}
}

// createEnrollment godoc
// @Summary Enroll a student in a program
// @Description Creates an enrollment, snapshotting the program total and generating the planned tranche schedule.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param program_id path string true "Program ID"
// @Param enrollment body dto.CreateEnrollmentRequest true "Enrollment details"
// @Success 201 {object} dto.EnrollmentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Not staffed on this program"
// @Failure 404 {object} map[string]string "Program or student not found"
// @Failure 409 {object} map[string]string "Student already enrolled"
// @Security BearerAuth
// @Router /programs/{program_id}/enrollments [post]
func (h *enrollmentHandler) createEnrollment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	programID := c.Param("program_id")

	var req dto.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEnrollment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	enrollment, tranches, err := h.enrollmentService.CreateEnrollment(c.Request.Context(), programID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Program or student not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not staffed on this program"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Student is already enrolled in this program"})
		} else {
			logger.Error("Failed to create enrollment in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create enrollment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToEnrollmentResponse(enrollment, tranches))
}

// getEnrollmentByID godoc
// @Summary Get an enrollment by ID
// @Description Retrieves an enrollment together with its full tranche ledger
// @Tags enrollments
// @Produce json
// @Param enrollment_id path string true "Enrollment ID"
// @Success 200 {object} dto.EnrollmentResponse
// @Failure 403 {object} map[string]string "Not staffed on this program"
// @Failure 404 {object} map[string]string "Enrollment not found"
// @Security BearerAuth
// @Router /enrollments/{enrollment_id} [get]
func (h *enrollmentHandler) getEnrollmentByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	enrollmentID := c.Param("enrollment_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	enrollment, tranches, err := h.enrollmentService.GetEnrollmentByID(c.Request.Context(), enrollmentID, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Enrollment not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not staffed on this program"})
		} else {
			logger.Error("Failed to get enrollment from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve enrollment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEnrollmentResponse(enrollment, tranches))
}

// listEnrollmentsByProgram godoc
// @Summary List enrollments in a program
// @Description Retrieves a token-paginated list of enrollments, most recent first
// @Tags enrollments
// @Produce json
// @Param program_id path string true "Program ID"
// @Param limit query int false "Limit" default(20)
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListEnrollmentsResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 403 {object} map[string]string "Not staffed on this program"
// @Security BearerAuth
// @Router /programs/{program_id}/enrollments [get]
func (h *enrollmentHandler) listEnrollmentsByProgram(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	programID := c.Param("program_id")

	var params dto.ListEnrollmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	enrollments, nextToken, err := h.enrollmentService.ListEnrollmentsByProgram(c.Request.Context(), programID, params, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not staffed on this program"})
		} else {
			logger.Error("Failed to list enrollments from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list enrollments"})
		}
		return
	}

	resp := dto.ListEnrollmentsResponse{
		Enrollments: make([]dto.EnrollmentResponse, len(enrollments)),
		NextToken:   nextToken,
	}
	for i := range enrollments {
		resp.Enrollments[i] = dto.ToEnrollmentResponse(&enrollments[i], nil)
	}

	c.JSON(http.StatusOK, resp)
}

// listEnrollmentsByStudent godoc
// @Summary List a student's enrollments
// @Description Retrieves all enrollments of one student across programs
// @Tags enrollments
// @Produce json
// @Param student_id path string true "Student ID"
// @Success 200 {object} dto.ListEnrollmentsResponse
// @Failure 404 {object} map[string]string "Student not found"
// @Security BearerAuth
// @Router /students/{student_id}/enrollments [get]
func (h *enrollmentHandler) listEnrollmentsByStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("student_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	enrollments, err := h.enrollmentService.ListEnrollmentsByStudent(c.Request.Context(), studentID, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		} else {
			logger.Error("Failed to list student enrollments from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list enrollments"})
		}
		return
	}

	resp := dto.ListEnrollmentsResponse{
		Enrollments: make([]dto.EnrollmentResponse, len(enrollments)),
	}
	for i := range enrollments {
		resp.Enrollments[i] = dto.ToEnrollmentResponse(&enrollments[i], nil)
	}

	c.JSON(http.StatusOK, resp)
}
