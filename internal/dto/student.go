package dto

import (
	"time"

	"github.com/codinglive/codinglive_app/internal/core/domain"
)

// CreateStudentRequest defines data for registering a new student record.
type CreateStudentRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
}

// UpdateStudentRequest defines the fields that may be changed on a student.
type UpdateStudentRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
}

// ListStudentsParams defines query parameters for listing students.
type ListStudentsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// StudentResponse defines data returned for a student.
type StudentResponse struct {
	StudentID string    `json:"studentID"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToStudentResponse converts a domain.Student to a StudentResponse DTO.
func ToStudentResponse(s *domain.Student) StudentResponse {
	return StudentResponse{
		StudentID: s.StudentID,
		FullName:  s.FullName,
		Email:     s.Email,
		Phone:     s.Phone,
		CreatedAt: s.CreatedAt,
	}
}

// ListStudentsResponse wraps a list of students.
type ListStudentsResponse struct {
	Students []StudentResponse `json:"students"`
}

// ToListStudentsResponse converts a slice of domain.Student to DTO.
func ToListStudentsResponse(students []domain.Student) ListStudentsResponse {
	list := make([]StudentResponse, len(students))
	for i := range students {
		list[i] = ToStudentResponse(&students[i])
	}
	return ListStudentsResponse{Students: list}
}
