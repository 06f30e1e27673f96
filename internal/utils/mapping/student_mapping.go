package mapping

import (
	"github.com/codinglive/codinglive_app/internal/core/domain"
	"github.com/codinglive/codinglive_app/internal/models"
)

// ToModelStudent converts a domain Student to a model Student
func ToModelStudent(d domain.Student) models.Student {
	return models.Student{
		StudentID:   d.StudentID,
		FullName:    d.FullName,
		Email:       d.Email,
		Phone:       d.Phone,
		AuditFields: ToModelAuditFields(d.AuditFields),
		DeletedAt:   d.DeletedAt,
	}
}

// ToDomainStudent converts a model Student to a domain Student
func ToDomainStudent(m models.Student) domain.Student {
	return domain.Student{
		StudentID:   m.StudentID,
		FullName:    m.FullName,
		Email:       m.Email,
		Phone:       m.Phone,
		AuditFields: ToDomainAuditFields(m.AuditFields),
		DeletedAt:   m.DeletedAt,
	}
}

// ToDomainStudentSlice converts a slice of model Students to domain Students
func ToDomainStudentSlice(ms []models.Student) []domain.Student {
	ds := make([]domain.Student, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStudent(m)
	}
	return ds
}
