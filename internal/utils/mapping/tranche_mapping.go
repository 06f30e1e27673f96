package mapping

import (
	"github.com/codinglive/codinglive_app/internal/core/domain"
	"github.com/codinglive/codinglive_app/internal/models"
)

// ToModelTranche converts a domain Tranche to a model Tranche
func ToModelTranche(d domain.Tranche) models.Tranche {
	return models.Tranche{
		TrancheID:       d.TrancheID,
		EnrollmentID:    d.EnrollmentID,
		ExpectedAmount:  d.ExpectedAmount,
		ExpectedPercent: d.ExpectedPercent,
		DueDate:         d.DueDate,
		ActualAmount:    d.ActualAmount,
		PaidAt:          d.PaidAt,
		PaymentMethod:   d.PaymentMethod,
		Reference:       d.Reference,
		ReceivedBy:      d.ReceivedBy,
		Notes:           d.Notes,
		HasExcuse:       d.HasExcuse,
		ExcuseReason:    d.ExcuseReason,
		ExcuseStatus:    models.ExcuseStatus(d.ExcuseStatus),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTranche converts a model Tranche to a domain Tranche
func ToDomainTranche(m models.Tranche) domain.Tranche {
	return domain.Tranche{
		TrancheID:       m.TrancheID,
		EnrollmentID:    m.EnrollmentID,
		ExpectedAmount:  m.ExpectedAmount,
		ExpectedPercent: m.ExpectedPercent,
		DueDate:         m.DueDate,
		ActualAmount:    m.ActualAmount,
		PaidAt:          m.PaidAt,
		PaymentMethod:   m.PaymentMethod,
		Reference:       m.Reference,
		ReceivedBy:      m.ReceivedBy,
		Notes:           m.Notes,
		HasExcuse:       m.HasExcuse,
		ExcuseReason:    m.ExcuseReason,
		ExcuseStatus:    domain.ExcuseStatus(m.ExcuseStatus),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTrancheSlice converts a slice of model Tranches to domain Tranches
func ToDomainTrancheSlice(ms []models.Tranche) []domain.Tranche {
	ds := make([]domain.Tranche, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTranche(m)
	}
	return ds
}
