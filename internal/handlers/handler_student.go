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

// studentHandler handles HTTP requests related to student records.
type studentHandler struct {
	studentService portssvc.StudentSvcFacade
}

// newStudentHandler creates a new studentHandler.
func newStudentHandler(ss portssvc.StudentSvcFacade) *studentHandler {
	return &studentHandler{
		studentService: ss,
	}
}

// registerStudentRoutes registers routes related to students, including the
// nested enrollment listing.
func registerStudentRoutes(rg *gin.RouterGroup, studentService portssvc.StudentSvcFacade, enrollmentService portssvc.EnrollmentSvcFacade) {
	h := newStudentHandler(studentService)
	eh := newEnrollmentHandler(enrollmentService)

	students := rg.Group("/students")
	{
		students.POST("", h.createStudent)
		students.GET("", h.listStudents)
		students.GET("/:student_id", h.getStudentByID)
		students.PUT("/:student_id", h.updateStudent)
		students.DELETE("/:student_id", h.deleteStudent)

		students.GET("/:student_id/enrollments", eh.listEnrollmentsByStudent)
	}
}

// createStudent godoc
// @Summary Register a new student
// @Description Creates a student record. Students are payers, not platform users.
// @Tags students
// @Accept json
// @Produce json
// @Param student body dto.CreateStudentRequest true "Student details"
// @Success 201 {object} dto.StudentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /students [post]
func (h *studentHandler) createStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateStudent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	student, err := h.studentService.CreateStudent(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create student in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create student"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToStudentResponse(student))
}

// listStudents godoc
// @Summary List students
// @Description Retrieves a paginated list of student records
// @Tags students
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListStudentsResponse
// @Failure 500 {object} map[string]string "Failed to list students"
// @Security BearerAuth
// @Router /students [get]
func (h *studentHandler) listStudents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListStudentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	students, err := h.studentService.ListStudents(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list students from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list students"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListStudentsResponse(students))
}

// getStudentByID godoc
// @Summary Get a student by ID
// @Description Retrieves a single student record
// @Tags students
// @Produce json
// @Param student_id path string true "Student ID"
// @Success 200 {object} dto.StudentResponse
// @Failure 404 {object} map[string]string "Student not found"
// @Security BearerAuth
// @Router /students/{student_id} [get]
func (h *studentHandler) getStudentByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("student_id")

	student, err := h.studentService.GetStudentByID(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		} else {
			logger.Error("Failed to get student from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve student"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentResponse(student))
}

// updateStudent godoc
// @Summary Update a student
// @Description Updates a student record's contact details
// @Tags students
// @Accept json
// @Produce json
// @Param student_id path string true "Student ID"
// @Param student body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.StudentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Student not found"
// @Security BearerAuth
// @Router /students/{student_id} [put]
func (h *studentHandler) updateStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("student_id")

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateStudent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	student, err := h.studentService.UpdateStudent(c.Request.Context(), studentID, req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update student in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update student"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentResponse(student))
}

// deleteStudent godoc
// @Summary Delete a student
// @Description Marks a student record as deleted. Enrollment and payment history is retained.
// @Tags students
// @Param student_id path string true "Student ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Student not found"
// @Security BearerAuth
// @Router /students/{student_id} [delete]
func (h *studentHandler) deleteStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("student_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.studentService.DeleteStudent(c.Request.Context(), studentID, requestingUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		} else {
			logger.Error("Failed to delete student in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete student"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
