package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Program represents a training program students can enroll in.
type Program struct {
	ProgramID    string          `json:"programID"` // Primary Key (UUID)
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	TotalAmount  decimal.Decimal `json:"totalAmount"` // Tuition due per enrollment (must be > 0)
	CurrencyCode string          `json:"currencyCode"`
	StartDate    time.Time       `json:"startDate"` // Anchor for planned tranche due dates
	TrancheRules []TrancheRule   `json:"trancheRules,omitempty"`
	AuditFields
}

// TrancheRule defines one line of a program's planned payment schedule.
// At enrollment time each rule produces one planned tranche:
// expectedAmount = totalAmount * percent / 100, dueDate = startDate + dueWeek weeks.
type TrancheRule struct {
	RuleID    string          `json:"ruleID"`
	ProgramID string          `json:"programID"`
	Percent   decimal.Decimal `json:"percent"` // Percent of the program total, (0, 100]
	DueWeek   int             `json:"dueWeek"` // Weeks after program start
}

// ProgramTeacherRole describes a teacher's role within a program.
type ProgramTeacherRole string

const (
	ProgramRoleOwner     ProgramTeacherRole = "OWNER"
	ProgramRoleAssistant ProgramTeacherRole = "ASSISTANT"
)

// ProgramTeacher links a teacher user to a program with a role.
type ProgramTeacher struct {
	UserID    string             `json:"userID"`
	ProgramID string             `json:"programID"`
	Role      ProgramTeacherRole `json:"role"`
	JoinedAt  time.Time          `json:"joinedAt"`
}
