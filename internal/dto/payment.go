package dto

import (
	"github.com/shopspring/decimal"

	"github.com/codinglive/codinglive_app/internal/core/domain"
)

// RecordPaymentRequest defines data for applying a payment to an enrollment.
// TrancheID targets an existing planned tranche; when omitted an ad-hoc
// tranche is created for the paid amount.
type RecordPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	TrancheID     *string         `json:"trancheID"`
	PaymentMethod string          `json:"paymentMethod"`
	Reference     string          `json:"reference"`
	ReceivedBy    string          `json:"receivedBy"`
	Notes         string          `json:"notes"`
	HasExcuse     bool            `json:"hasExcuse"`
	ExcuseReason  string          `json:"excuseReason"`
}

// RecordPaymentResponse is returned after a payment is applied.
type RecordPaymentResponse struct {
	Tranche   TrancheResponse `json:"tranche"`
	TotalPaid decimal.Decimal `json:"totalPaid"`
	Status    string          `json:"status"`
}

// ToRecordPaymentResponse builds the payment workflow result DTO.
func ToRecordPaymentResponse(t *domain.Tranche, totalPaid decimal.Decimal, status domain.EnrollmentStatus) RecordPaymentResponse {
	return RecordPaymentResponse{
		Tranche:   ToTrancheResponse(t),
		TotalPaid: totalPaid,
		Status:    string(status),
	}
}

// DecideExcuseRequest defines data for resolving a pending excuse on a tranche.
// Approved uses a pointer so "false" (reject) is distinguishable from omitted.
type DecideExcuseRequest struct {
	Approved *bool  `json:"approved" binding:"required"`
	Notes    string `json:"notes"`
}
