package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/codinglive/codinglive_app/internal/apperrors"
	"github.com/codinglive/codinglive_app/internal/core/domain"
	portssvc "github.com/codinglive/codinglive_app/internal/core/ports/services"
	"github.com/codinglive/codinglive_app/internal/dto"
	"github.com/codinglive/codinglive_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// programHandler handles HTTP requests related to training programs.
type programHandler struct {
	programService portssvc.ProgramSvcFacade
}

// newProgramHandler creates a new programHandler.
func newProgramHandler(ps portssvc.ProgramSvcFacade) *programHandler {
	return &programHandler{
		programService: ps,
	}
}

// registerProgramRoutes registers program routes along with the nested
// enrollment and reporting routes that hang off a program.
func registerProgramRoutes(
	rg *gin.RouterGroup,
	programService portssvc.ProgramSvcFacade,
	enrollmentService portssvc.EnrollmentSvcFacade,
	reportingService portssvc.ReportingSvcFacade,
) {
	h := newProgramHandler(programService)
	eh := newEnrollmentHandler(enrollmentService)
	rh := newReportingHandler(reportingService)

	programs := rg.Group("/programs")
	{
		programs.POST("", h.createProgram)
		programs.GET("", h.listPrograms)
		programs.GET("/:program_id", h.getProgramByID)
		programs.PUT("/:program_id", h.updateProgram)
		programs.POST("/:program_id/teachers", h.addTeacherToProgram)

		programs.POST("/:program_id/enrollments", eh.createEnrollment)
		programs.GET("/:program_id/enrollments", eh.listEnrollmentsByProgram)
		programs.GET("/:program_id/payment-summary", rh.getProgramPaymentSummary)
	}
}

// createProgram godoc
// @Summary Create a new program
// @Description Creates a training program with its planned payment schedule. The creator becomes the program's OWNER.
// @Tags programs
// @Accept json
// @Produce json
// @Param program body dto.CreateProgramRequest true "Program details"
// @Success 201 {object} dto.ProgramResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /programs [post]
func (h *programHandler) createProgram(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProgram", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	program, err := h.programService.CreateProgram(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create program in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create program"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToProgramResponse(program))
}

// listPrograms godoc
// @Summary List programs
// @Description Retrieves a paginated list of programs
// @Tags programs
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListProgramsResponse
// @Failure 500 {object} map[string]string "Failed to list programs"
// @Security BearerAuth
// @Router /programs [get]
func (h *programHandler) listPrograms(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	programs, err := h.programService.ListPrograms(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list programs from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list programs"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListProgramsResponse(programs))
}

// getProgramByID godoc
// @Summary Get a program by ID
// @Description Retrieves a program with its tranche schedule rules
// @Tags programs
// @Produce json
// @Param program_id path string true "Program ID"
// @Success 200 {object} dto.ProgramResponse
// @Failure 404 {object} map[string]string "Program not found"
// @Security BearerAuth
// @Router /programs/{program_id} [get]
func (h *programHandler) getProgramByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	programID := c.Param("program_id")

	program, err := h.programService.GetProgramByID(c.Request.Context(), programID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Program not found"})
		} else {
			logger.Error("Failed to get program from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve program"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProgramResponse(program))
}

// updateProgram godoc
// @Summary Update a program
// @Description Updates a program's name and description. The total amount and schedule are immutable.
// @Tags programs
// @Accept json
// @Produce json
// @Param program_id path string true "Program ID"
// @Param program body dto.UpdateProgramRequest true "Fields to update"
// @Success 200 {object} dto.ProgramResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Requires OWNER role"
// @Failure 404 {object} map[string]string "Program not found"
// @Security BearerAuth
// @Router /programs/{program_id} [put]
func (h *programHandler) updateProgram(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	programID := c.Param("program_id")

	var req dto.UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateProgram", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	program, err := h.programService.UpdateProgram(c.Request.Context(), programID, req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Program not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Requires the OWNER role on this program"})
		} else {
			logger.Error("Failed to update program in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update program"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProgramResponse(program))
}

// addTeacherToProgram godoc
// @Summary Staff a teacher on a program
// @Description Adds a teacher to a program with a role (OWNER or ASSISTANT). Requires the OWNER role.
// @Tags programs
// @Accept json
// @Param program_id path string true "Program ID"
// @Param teacher body dto.AddProgramTeacherRequest true "Teacher and role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Requires OWNER role"
// @Failure 404 {object} map[string]string "Program or user not found"
// @Failure 409 {object} map[string]string "Teacher already staffed"
// @Security BearerAuth
// @Router /programs/{program_id}/teachers [post]
func (h *programHandler) addTeacherToProgram(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	programID := c.Param("program_id")

	var req dto.AddProgramTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddTeacherToProgram", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	addingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.programService.AddTeacherToProgram(c.Request.Context(), addingUserID, req.UserID, programID, domain.ProgramTeacherRole(req.Role))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Program or user not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Requires the OWNER role on this program"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Teacher is already staffed on this program"})
		} else {
			logger.Error("Failed to add teacher to program", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add teacher to program"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
