package services

import (
	"context"

	"github.com/codinglive/codinglive_app/internal/core/domain"
	"github.com/codinglive/codinglive_app/internal/dto"
)

// ProgramReaderSvc defines read operations for program data
type ProgramReaderSvc interface {
	// GetProgramByID retrieves a program with its tranche rules.
	GetProgramByID(ctx context.Context, programID string) (*domain.Program, error)

	// ListPrograms retrieves a paginated list of programs.
	ListPrograms(ctx context.Context, limit, offset int) ([]domain.Program, error)
}

// ProgramWriterSvc defines write operations for program data
type ProgramWriterSvc interface {
	// CreateProgram creates a new program; the creator becomes its OWNER teacher.
	CreateProgram(ctx context.Context, req dto.CreateProgramRequest, creatorUserID string) (*domain.Program, error)

	// UpdateProgram updates a program's mutable details.
	UpdateProgram(ctx context.Context, programID string, req dto.UpdateProgramRequest, requestingUserID string) (*domain.Program, error)
}

// ProgramStaffingSvc defines operations for managing program teachers
type ProgramStaffingSvc interface {
	// AddTeacherToProgram staffs a teacher on a program with a role.
	AddTeacherToProgram(ctx context.Context, addingUserID, targetUserID, programID string, role domain.ProgramTeacherRole) error
}

// ProgramAuthorizerSvc checks whether a user may act on a program.
type ProgramAuthorizerSvc interface {
	// AuthorizeTeacherAction verifies that the user is a platform admin or is
	// staffed on the program with at least the required role.
	// Returns apperrors.ErrForbidden or apperrors.ErrNotFound on failure.
	AuthorizeTeacherAction(ctx context.Context, userID, programID string, requiredRole domain.ProgramTeacherRole) error
}

// ProgramSvcFacade combines all program-related service interfaces
type ProgramSvcFacade interface {
	ProgramReaderSvc
	ProgramWriterSvc
	ProgramStaffingSvc
	ProgramAuthorizerSvc
}
