package mapping

import (
	"github.com/codinglive/codinglive_app/internal/core/domain"
	"github.com/codinglive/codinglive_app/internal/models"
)

// ToModelEnrollment converts a domain Enrollment to a model Enrollment
func ToModelEnrollment(d domain.Enrollment) models.Enrollment {
	return models.Enrollment{
		EnrollmentID: d.EnrollmentID,
		StudentID:    d.StudentID,
		ProgramID:    d.ProgramID,
		TotalAmount:  d.TotalAmount,
		PaidAmount:   d.PaidAmount,
		Status:       models.EnrollmentStatus(d.Status),
		EnrolledAt:   d.EnrolledAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEnrollment converts a model Enrollment to a domain Enrollment
func ToDomainEnrollment(m models.Enrollment) domain.Enrollment {
	return domain.Enrollment{
		EnrollmentID: m.EnrollmentID,
		StudentID:    m.StudentID,
		ProgramID:    m.ProgramID,
		TotalAmount:  m.TotalAmount,
		PaidAmount:   m.PaidAmount,
		Status:       domain.EnrollmentStatus(m.Status),
		EnrolledAt:   m.EnrolledAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEnrollmentSlice converts a slice of model Enrollments to domain Enrollments
func ToDomainEnrollmentSlice(ms []models.Enrollment) []domain.Enrollment {
	ds := make([]domain.Enrollment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEnrollment(m)
	}
	return ds
}
