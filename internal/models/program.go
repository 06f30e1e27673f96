package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Program represents a training program row.
type Program struct {
	ProgramID    string          `json:"programID" db:"program_id"`
	Name         string          `json:"name" db:"name"`
	Description  string          `json:"description" db:"description"`
	TotalAmount  decimal.Decimal `json:"totalAmount" db:"total_amount"`
	CurrencyCode string          `json:"currencyCode" db:"currency_code"`
	StartDate    time.Time       `json:"startDate" db:"start_date"`
	AuditFields
}

// TrancheRule represents one planned-schedule row of a program.
type TrancheRule struct {
	RuleID    string          `json:"ruleID" db:"rule_id"`
	ProgramID string          `json:"programID" db:"program_id"`
	Percent   decimal.Decimal `json:"percent" db:"percent"`
	DueWeek   int             `json:"dueWeek" db:"due_week"`
}

// ProgramTeacherRole mirrors domain.ProgramTeacherRole.
type ProgramTeacherRole string

// ProgramTeacher represents a program staffing row.
type ProgramTeacher struct {
	UserID    string             `json:"userID" db:"user_id"`
	ProgramID string             `json:"programID" db:"program_id"`
	Role      ProgramTeacherRole `json:"role" db:"role"`
	JoinedAt  time.Time          `json:"joinedAt" db:"joined_at"`
}
