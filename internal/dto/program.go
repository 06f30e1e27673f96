package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/codinglive/codinglive_app/internal/core/domain"
)

// TrancheRuleRequest defines one planned-schedule line on program creation.
type TrancheRuleRequest struct {
	Percent decimal.Decimal `json:"percent" binding:"required"`
	DueWeek int             `json:"dueWeek" binding:"min=0"`
}

// CreateProgramRequest defines data for creating a new training program.
type CreateProgramRequest struct {
	Name         string               `json:"name" binding:"required"`
	Description  string               `json:"description"`
	TotalAmount  decimal.Decimal      `json:"totalAmount" binding:"required"`
	CurrencyCode string               `json:"currencyCode" binding:"required,iso4217"`
	StartDate    time.Time            `json:"startDate" binding:"required"`
	TrancheRules []TrancheRuleRequest `json:"trancheRules"`
}

// UpdateProgramRequest defines the fields that may be changed on a program.
// The total amount and schedule are immutable once enrollments may exist.
type UpdateProgramRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AddProgramTeacherRequest defines data for staffing a teacher on a program.
type AddProgramTeacherRequest struct {
	UserID string `json:"userID" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=OWNER ASSISTANT"`
}

// TrancheRuleResponse defines data returned for one schedule line.
type TrancheRuleResponse struct {
	RuleID  string          `json:"ruleID"`
	Percent decimal.Decimal `json:"percent"`
	DueWeek int             `json:"dueWeek"`
}

// ProgramResponse defines data returned for a program.
type ProgramResponse struct {
	ProgramID    string                `json:"programID"`
	Name         string                `json:"name"`
	Description  string                `json:"description,omitempty"`
	TotalAmount  decimal.Decimal       `json:"totalAmount"`
	CurrencyCode string                `json:"currencyCode"`
	StartDate    time.Time             `json:"startDate"`
	TrancheRules []TrancheRuleResponse `json:"trancheRules,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	CreatedBy    string                `json:"createdBy"`
}

// ToProgramResponse converts a domain.Program to DTO.
func ToProgramResponse(p *domain.Program) ProgramResponse {
	rules := make([]TrancheRuleResponse, len(p.TrancheRules))
	for i, r := range p.TrancheRules {
		rules[i] = TrancheRuleResponse{RuleID: r.RuleID, Percent: r.Percent, DueWeek: r.DueWeek}
	}
	return ProgramResponse{
		ProgramID:    p.ProgramID,
		Name:         p.Name,
		Description:  p.Description,
		TotalAmount:  p.TotalAmount,
		CurrencyCode: p.CurrencyCode,
		StartDate:    p.StartDate,
		TrancheRules: rules,
		CreatedAt:    p.CreatedAt,
		CreatedBy:    p.CreatedBy,
	}
}

// ListProgramsResponse wraps a list of programs.
type ListProgramsResponse struct {
	Programs []ProgramResponse `json:"programs"`
}

// ToListProgramsResponse converts a slice of domain.Program to DTO.
func ToListProgramsResponse(ps []domain.Program) ListProgramsResponse {
	list := make([]ProgramResponse, len(ps))
	for i := range ps {
		list[i] = ToProgramResponse(&ps[i])
	}
	return ListProgramsResponse{Programs: list}
}

// ProgramTeacherResponse defines data returned about a program staffing entry.
type ProgramTeacherResponse struct {
	UserID    string    `json:"userID"`
	ProgramID string    `json:"programID"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// ToProgramTeacherResponse converts a domain.ProgramTeacher to DTO.
func ToProgramTeacherResponse(pt *domain.ProgramTeacher) ProgramTeacherResponse {
	return ProgramTeacherResponse{
		UserID:    pt.UserID,
		ProgramID: pt.ProgramID,
		Role:      string(pt.Role),
		JoinedAt:  pt.JoinedAt,
	}
}
