package repositories

import (
	"context"

	"github.com/codinglive/codinglive_app/internal/core/domain"
)

// ProgramReader defines read operations for program data
type ProgramReader interface {
	// FindProgramByID retrieves a program with its tranche rules.
	FindProgramByID(ctx context.Context, programID string) (*domain.Program, error)

	// ListPrograms retrieves a paginated list of programs.
	ListPrograms(ctx context.Context, limit int, offset int) ([]domain.Program, error)

	// ListProgramsByTeacher retrieves all programs a teacher is staffed on.
	ListProgramsByTeacher(ctx context.Context, userID string) ([]domain.Program, error)
}

// ProgramWriter defines write operations for program data
type ProgramWriter interface {
	// SaveProgram persists a new program and its tranche rules atomically.
	SaveProgram(ctx context.Context, program domain.Program) error

	// UpdateProgram updates a program's mutable details.
	UpdateProgram(ctx context.Context, program domain.Program) error
}

// ProgramStaffingManager defines operations for managing program teachers
type ProgramStaffingManager interface {
	// AddTeacherToProgram staffs a teacher on a program with a role.
	AddTeacherToProgram(ctx context.Context, staffing domain.ProgramTeacher) error

	// FindProgramTeacherRole retrieves the staffing entry of a user on a program.
	FindProgramTeacherRole(ctx context.Context, userID, programID string) (*domain.ProgramTeacher, error)
}

// ProgramRepositoryFacade combines all program-related repository interfaces
type ProgramRepositoryFacade interface {
	ProgramReader
	ProgramWriter
	ProgramStaffingManager
}
