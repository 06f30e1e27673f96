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

// paymentHandler handles HTTP requests that mutate the payment ledger.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{
		paymentService: ps,
	}
}

// registerTrancheRoutes registers routes addressed by tranche ID.
func registerTrancheRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade, reportingService portssvc.ReportingSvcFacade) {
	ph := newPaymentHandler(paymentService)
	rh := newReportingHandler(reportingService)

	tranches := rg.Group("/tranches")
	{
		tranches.POST("/:tranche_id/excuse-decision", ph.decideExcuse)
		tranches.GET("/:tranche_id/receipt", rh.getTrancheReceipt)
	}
}

// recordPayment godoc
// @Summary Record a payment
// @Description Applies a payment to an enrollment. With a trancheID the payment fills that planned tranche; without one an ad-hoc tranche is created. The enrollment's paid amount and status are recomputed atomically.
// @Tags payments
// @Accept json
// @Produce json
// @Param enrollment_id path string true "Enrollment ID"
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.RecordPaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Not staffed on this program"
// @Failure 404 {object} map[string]string "Enrollment or tranche not found"
// @Security BearerAuth
// @Router /enrollments/{enrollment_id}/payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	enrollmentID := c.Param("enrollment_id")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tranche, totalPaid, status, err := h.paymentService.RecordPayment(c.Request.Context(), enrollmentID, req, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Enrollment or tranche not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not staffed on this program"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record payment in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToRecordPaymentResponse(tranche, totalPaid, status))
}

// decideExcuse godoc
// @Summary Decide a tranche excuse
// @Description Approves or rejects a pending excuse on a tranche. This records the decision only; payment facts and the enrollment status are untouched.
// @Tags payments
// @Accept json
// @Produce json
// @Param tranche_id path string true "Tranche ID"
// @Param decision body dto.DecideExcuseRequest true "Decision"
// @Success 200 {object} dto.TrancheResponse
// @Failure 400 {object} map[string]string "Invalid input or no excuse to decide"
// @Failure 404 {object} map[string]string "Tranche not found"
// @Security BearerAuth
// @Router /tranches/{tranche_id}/excuse-decision [post]
func (h *paymentHandler) decideExcuse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	trancheID := c.Param("tranche_id")

	var req dto.DecideExcuseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DecideExcuse", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tranche, err := h.paymentService.DecideExcuse(c.Request.Context(), trancheID, req, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tranche not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not staffed on this program"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to decide excuse in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decide excuse"})
		}
		return
	}

	resp := dto.ToTrancheResponse(tranche)
	c.JSON(http.StatusOK, resp)
}
