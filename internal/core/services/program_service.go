package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/codinglive/codinglive_app/internal/apperrors"
	"github.com/codinglive/codinglive_app/internal/core/domain"
	portsrepo "github.com/codinglive/codinglive_app/internal/core/ports/repositories"
	portssvc "github.com/codinglive/codinglive_app/internal/core/ports/services"
	"github.com/codinglive/codinglive_app/internal/dto"
)

var oneHundred = decimal.NewFromInt(100)

// programService implements the ProgramSvcFacade interface
type programService struct {
	BaseService
	programRepo  portsrepo.ProgramRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	userRepo     portsrepo.UserReader
}

// NewProgramService creates a new program service with the provided dependencies
func NewProgramService(
	programRepo portsrepo.ProgramRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
	userRepo portsrepo.UserReader,
) portssvc.ProgramSvcFacade {
	return &programService{
		programRepo:  programRepo,
		currencyRepo: currencyRepo,
		userRepo:     userRepo,
	}
}

// Ensure programService implements the ProgramSvcFacade interface
var _ portssvc.ProgramSvcFacade = (*programService)(nil)

// CreateProgram creates a new training program. The creator is staffed on the
// program as its OWNER.
func (s *programService) CreateProgram(ctx context.Context, req dto.CreateProgramRequest, creatorUserID string) (*domain.Program, error) {
	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}
	if err := validateTrancheRules(req.TrancheRules); err != nil {
		return nil, err
	}

	// Currency must exist before a program can price in it
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown currency code %s", apperrors.ErrValidation, req.CurrencyCode)
		}
		return nil, err
	}

	now := time.Now()
	programID := uuid.NewString()
	program := domain.Program{
		ProgramID:    programID,
		Name:         req.Name,
		Description:  req.Description,
		TotalAmount:  req.TotalAmount,
		CurrencyCode: req.CurrencyCode,
		StartDate:    req.StartDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	for _, rule := range req.TrancheRules {
		program.TrancheRules = append(program.TrancheRules, domain.TrancheRule{
			RuleID:    uuid.NewString(),
			ProgramID: programID,
			Percent:   rule.Percent,
			DueWeek:   rule.DueWeek,
		})
	}

	if err := s.programRepo.SaveProgram(ctx, program); err != nil {
		s.LogError(ctx, err, "Failed to save new program")
		return nil, err
	}

	staffing := domain.ProgramTeacher{
		UserID:    creatorUserID,
		ProgramID: programID,
		Role:      domain.ProgramRoleOwner,
		JoinedAt:  now,
	}
	if err := s.programRepo.AddTeacherToProgram(ctx, staffing); err != nil {
		s.LogError(ctx, err, "Failed to staff creator on new program", slog.String("program_id", programID))
		return nil, err
	}

	s.LogInfo(ctx, "Program created", slog.String("program_id", programID))
	return &program, nil
}

// validateTrancheRules checks that every percent is in (0, 100] and the sum
// does not exceed 100, so a fully paid schedule can never overshoot the total.
func validateTrancheRules(rules []dto.TrancheRuleRequest) error {
	sum := decimal.Zero
	for _, rule := range rules {
		if !rule.Percent.IsPositive() || rule.Percent.GreaterThan(oneHundred) {
			return fmt.Errorf("%w: tranche rule percent must be in (0, 100]", apperrors.ErrValidation)
		}
		if rule.DueWeek < 0 {
			return fmt.Errorf("%w: tranche rule due week must not be negative", apperrors.ErrValidation)
		}
		sum = sum.Add(rule.Percent)
	}
	if sum.GreaterThan(oneHundred) {
		return fmt.Errorf("%w: tranche rule percents sum to more than 100", apperrors.ErrValidation)
	}
	return nil
}

// GetProgramByID retrieves a program with its tranche rules
func (s *programService) GetProgramByID(ctx context.Context, programID string) (*domain.Program, error) {
	program, err := s.programRepo.FindProgramByID(ctx, programID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find program by ID", slog.String("program_id", programID))
		}
		return nil, err
	}
	return program, nil
}

// ListPrograms retrieves a paginated list of programs
func (s *programService) ListPrograms(ctx context.Context, limit, offset int) ([]domain.Program, error) {
	programs, err := s.programRepo.ListPrograms(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list programs")
		return nil, err
	}
	if programs == nil {
		return []domain.Program{}, nil
	}
	return programs, nil
}

// UpdateProgram updates a program's name and description. The total amount and
// schedule are immutable because existing enrollments snapshot them.
func (s *programService) UpdateProgram(ctx context.Context, programID string, req dto.UpdateProgramRequest, requestingUserID string) (*domain.Program, error) {
	if err := s.AuthorizeTeacherAction(ctx, requestingUserID, programID, domain.ProgramRoleOwner); err != nil {
		return nil, err
	}

	program, err := s.programRepo.FindProgramByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		program.Name = *req.Name
	}
	if req.Description != nil {
		program.Description = *req.Description
	}
	program.LastUpdatedAt = time.Now()
	program.LastUpdatedBy = requestingUserID

	if err := s.programRepo.UpdateProgram(ctx, *program); err != nil {
		s.LogError(ctx, err, "Failed to update program", slog.String("program_id", programID))
		return nil, err
	}

	return program, nil
}

// AddTeacherToProgram staffs another teacher on a program. Only an OWNER (or
// a platform admin) may staff teachers.
func (s *programService) AddTeacherToProgram(ctx context.Context, addingUserID, targetUserID, programID string, role domain.ProgramTeacherRole) error {
	if err := s.AuthorizeTeacherAction(ctx, addingUserID, programID, domain.ProgramRoleOwner); err != nil {
		return err
	}

	// The target must be an existing, non-deleted staff account
	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		return err
	}

	staffing := domain.ProgramTeacher{
		UserID:    targetUserID,
		ProgramID: programID,
		Role:      role,
		JoinedAt:  time.Now(),
	}
	if err := s.programRepo.AddTeacherToProgram(ctx, staffing); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to add teacher to program", slog.String("program_id", programID))
		}
		return err
	}

	s.LogInfo(ctx, "Teacher staffed on program",
		slog.String("program_id", programID),
		slog.String("user_id", targetUserID),
		slog.String("role", string(role)))
	return nil
}

// AuthorizeTeacherAction verifies that the user is a platform admin or staffed
// on the program with at least the required role. ASSISTANT is satisfied by
// any staffing entry; OWNER requires the OWNER role.
func (s *programService) AuthorizeTeacherAction(ctx context.Context, userID, programID string, requiredRole domain.ProgramTeacherRole) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		return err
	}
	if user.Role == domain.RoleAdmin {
		return nil
	}

	staffing, err := s.programRepo.FindProgramTeacherRole(ctx, userID, programID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		return err
	}

	if requiredRole == domain.ProgramRoleOwner && staffing.Role != domain.ProgramRoleOwner {
		return apperrors.ErrForbidden
	}

	return nil
}
