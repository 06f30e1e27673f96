package services

import (
	"context"

	"github.com/codinglive/codinglive_app/internal/dto"
)

// ReportingSvcFacade defines payment reporting operations.
type ReportingSvcFacade interface {
	// GetProgramPaymentSummary aggregates the payment state of a program.
	GetProgramPaymentSummary(ctx context.Context, programID string, requestingUserID string) (*dto.ProgramPaymentSummaryResponse, error)

	// RenderTrancheReceipt renders a PDF receipt for a paid tranche.
	RenderTrancheReceipt(ctx context.Context, trancheID string, requestingUserID string) ([]byte, error)
}
