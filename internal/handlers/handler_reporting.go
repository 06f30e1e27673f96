package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/codinglive/codinglive_app/internal/apperrors"
	portssvc "github.com/codinglive/codinglive_app/internal/core/ports/services"
	"github.com/codinglive/codinglive_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for payment reports and receipts.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// getProgramPaymentSummary godoc
// @Summary Get a program's payment summary
// @Description Aggregates enrollment counts by status, collected and outstanding totals, and overdue tranche count
// @Tags reporting
// @Produce json
// @Param program_id path string true "Program ID"
// @Success 200 {object} dto.ProgramPaymentSummaryResponse
// @Failure 403 {object} map[string]string "Not staffed on this program"
// @Failure 404 {object} map[string]string "Program not found"
// @Security BearerAuth
// @Router /programs/{program_id}/payment-summary [get]
func (h *reportingHandler) getProgramPaymentSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	programID := c.Param("program_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.reportingService.GetProgramPaymentSummary(c.Request.Context(), programID, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Program not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not staffed on this program"})
		} else {
			logger.Error("Failed to get payment summary from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build payment summary"})
		}
		return
	}

	c.JSON(http.StatusOK, summary)
}

// getTrancheReceipt godoc
// @Summary Download a tranche receipt
// @Description Renders a PDF receipt for a paid tranche
// @Tags reporting
// @Produce application/pdf
// @Param tranche_id path string true "Tranche ID"
// @Success 200 {file} file "PDF receipt"
// @Failure 400 {object} map[string]string "No payment recorded on this tranche"
// @Failure 403 {object} map[string]string "Not staffed on this program"
// @Failure 404 {object} map[string]string "Tranche not found"
// @Security BearerAuth
// @Router /tranches/{tranche_id}/receipt [get]
func (h *reportingHandler) getTrancheReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	trancheID := c.Param("tranche_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	pdf, err := h.reportingService.RenderTrancheReceipt(c.Request.Context(), trancheID, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tranche not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not staffed on this program"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to render receipt", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render receipt"})
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="receipt-`+trancheID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
