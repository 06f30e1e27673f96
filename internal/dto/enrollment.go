package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/codinglive/codinglive_app/internal/core/domain"
)

// CreateEnrollmentRequest defines data for enrolling a student in a program.
type CreateEnrollmentRequest struct {
	StudentID string `json:"studentID" binding:"required"`
}

// ListEnrollmentsParams defines query parameters for listing enrollments.
type ListEnrollmentsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// TrancheResponse defines data returned for a tranche.
type TrancheResponse struct {
	TrancheID       string           `json:"trancheID"`
	EnrollmentID    string           `json:"enrollmentID"`
	ExpectedAmount  decimal.Decimal  `json:"expectedAmount"`
	ExpectedPercent decimal.Decimal  `json:"expectedPercent"`
	DueDate         time.Time        `json:"dueDate"`
	ActualAmount    *decimal.Decimal `json:"actualAmount,omitempty"`
	PaidAt          *time.Time       `json:"paidAt,omitempty"`
	PaymentMethod   string           `json:"paymentMethod,omitempty"`
	Reference       string           `json:"reference,omitempty"`
	ReceivedBy      string           `json:"receivedBy,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	HasExcuse       bool             `json:"hasExcuse"`
	ExcuseReason    string           `json:"excuseReason,omitempty"`
	ExcuseStatus    string           `json:"excuseStatus,omitempty"`
}

// ToTrancheResponse converts a domain.Tranche to DTO.
func ToTrancheResponse(t *domain.Tranche) TrancheResponse {
	return TrancheResponse{
		TrancheID:       t.TrancheID,
		EnrollmentID:    t.EnrollmentID,
		ExpectedAmount:  t.ExpectedAmount,
		ExpectedPercent: t.ExpectedPercent,
		DueDate:         t.DueDate,
		ActualAmount:    t.ActualAmount,
		PaidAt:          t.PaidAt,
		PaymentMethod:   t.PaymentMethod,
		Reference:       t.Reference,
		ReceivedBy:      t.ReceivedBy,
		Notes:           t.Notes,
		HasExcuse:       t.HasExcuse,
		ExcuseReason:    t.ExcuseReason,
		ExcuseStatus:    string(t.ExcuseStatus),
	}
}

// EnrollmentResponse defines data returned for an enrollment.
type EnrollmentResponse struct {
	EnrollmentID string            `json:"enrollmentID"`
	StudentID    string            `json:"studentID"`
	ProgramID    string            `json:"programID"`
	TotalAmount  decimal.Decimal   `json:"totalAmount"`
	PaidAmount   decimal.Decimal   `json:"paidAmount"`
	Status       string            `json:"status"`
	EnrolledAt   time.Time         `json:"enrolledAt"`
	Tranches     []TrancheResponse `json:"tranches,omitempty"`
}

// ToEnrollmentResponse converts a domain.Enrollment (plus optional tranches) to DTO.
func ToEnrollmentResponse(e *domain.Enrollment, tranches []domain.Tranche) EnrollmentResponse {
	resp := EnrollmentResponse{
		EnrollmentID: e.EnrollmentID,
		StudentID:    e.StudentID,
		ProgramID:    e.ProgramID,
		TotalAmount:  e.TotalAmount,
		PaidAmount:   e.PaidAmount,
		Status:       string(e.Status),
		EnrolledAt:   e.EnrolledAt,
	}
	if len(tranches) > 0 {
		resp.Tranches = make([]TrancheResponse, len(tranches))
		for i := range tranches {
			resp.Tranches[i] = ToTrancheResponse(&tranches[i])
		}
	}
	return resp
}

// ListEnrollmentsResponse wraps a token-paginated list of enrollments.
type ListEnrollmentsResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
	NextToken   *string              `json:"nextToken,omitempty"`
}
