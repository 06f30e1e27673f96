package mapping

import (
	"github.com/codinglive/codinglive_app/internal/core/domain"
	"github.com/codinglive/codinglive_app/internal/models"
)

// ToModelProgram converts a domain Program to a model Program
func ToModelProgram(d domain.Program) models.Program {
	return models.Program{
		ProgramID:    d.ProgramID,
		Name:         d.Name,
		Description:  d.Description,
		TotalAmount:  d.TotalAmount,
		CurrencyCode: d.CurrencyCode,
		StartDate:    d.StartDate,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProgram converts a model Program (plus its rules) to a domain Program
func ToDomainProgram(m models.Program, rules []models.TrancheRule) domain.Program {
	d := domain.Program{
		ProgramID:    m.ProgramID,
		Name:         m.Name,
		Description:  m.Description,
		TotalAmount:  m.TotalAmount,
		CurrencyCode: m.CurrencyCode,
		StartDate:    m.StartDate,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if len(rules) > 0 {
		d.TrancheRules = make([]domain.TrancheRule, len(rules))
		for i, r := range rules {
			d.TrancheRules[i] = ToDomainTrancheRule(r)
		}
	}
	return d
}

// ToModelTrancheRule converts a domain TrancheRule to a model TrancheRule
func ToModelTrancheRule(d domain.TrancheRule) models.TrancheRule {
	return models.TrancheRule{
		RuleID:    d.RuleID,
		ProgramID: d.ProgramID,
		Percent:   d.Percent,
		DueWeek:   d.DueWeek,
	}
}

// ToDomainTrancheRule converts a model TrancheRule to a domain TrancheRule
func ToDomainTrancheRule(m models.TrancheRule) domain.TrancheRule {
	return domain.TrancheRule{
		RuleID:    m.RuleID,
		ProgramID: m.ProgramID,
		Percent:   m.Percent,
		DueWeek:   m.DueWeek,
	}
}

// ToDomainProgramTeacher converts a model ProgramTeacher to a domain ProgramTeacher
func ToDomainProgramTeacher(m models.ProgramTeacher) domain.ProgramTeacher {
	return domain.ProgramTeacher{
		UserID:    m.UserID,
		ProgramID: m.ProgramID,
		Role:      domain.ProgramTeacherRole(m.Role),
		JoinedAt:  m.JoinedAt,
	}
}
