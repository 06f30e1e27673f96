package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/codinglive/codinglive_app/internal/apperrors"
	"github.com/codinglive/codinglive_app/internal/core/domain"
	portsrepo "github.com/codinglive/codinglive_app/internal/core/ports/repositories"
	portssvc "github.com/codinglive/codinglive_app/internal/core/ports/services"
	"github.com/codinglive/codinglive_app/internal/dto"
	"github.com/codinglive/codinglive_app/internal/utils/receipts"
)

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	reportingRepo  portsrepo.ReportingRepository
	programRepo    portsrepo.ProgramReader
	enrollmentRepo portsrepo.EnrollmentRepositoryFacade
	studentRepo    portsrepo.StudentReader
	currencyRepo   portsrepo.CurrencyReader
}

// NewReportingService creates a new reporting service with the provided dependencies
func NewReportingService(
	reportingRepo portsrepo.ReportingRepository,
	programRepo portsrepo.ProgramReader,
	enrollmentRepo portsrepo.EnrollmentRepositoryFacade,
	studentRepo portsrepo.StudentReader,
	currencyRepo portsrepo.CurrencyReader,
	programAuthorizer portssvc.ProgramAuthorizerSvc,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		BaseService:    BaseService{ProgramAuthorizer: programAuthorizer},
		reportingRepo:  reportingRepo,
		programRepo:    programRepo,
		enrollmentRepo: enrollmentRepo,
		studentRepo:    studentRepo,
		currencyRepo:   currencyRepo,
	}
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetProgramPaymentSummary aggregates the payment state of a program
func (s *reportingService) GetProgramPaymentSummary(ctx context.Context, programID string, requestingUserID string) (*dto.ProgramPaymentSummaryResponse, error) {
	if err := s.AuthorizeTeacher(ctx, requestingUserID, programID, domain.ProgramRoleAssistant); err != nil {
		return nil, err
	}

	program, err := s.programRepo.FindProgramByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	aggregate, err := s.reportingRepo.GetProgramPaymentAggregate(ctx, programID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute payment aggregate", slog.String("program_id", programID))
		return nil, err
	}

	statusCounts := make(map[string]int, len(aggregate.StatusCounts))
	for status, count := range aggregate.StatusCounts {
		statusCounts[string(status)] = count
	}

	return &dto.ProgramPaymentSummaryResponse{
		ProgramID:        programID,
		CurrencyCode:     program.CurrencyCode,
		EnrollmentCount:  aggregate.EnrollmentCount,
		TotalExpected:    aggregate.TotalExpected,
		TotalCollected:   aggregate.TotalCollected,
		TotalOutstanding: aggregate.TotalExpected.Sub(aggregate.TotalCollected),
		StatusCounts:     statusCounts,
		OverdueTranches:  aggregate.OverdueTranches,
		GeneratedAt:      now,
	}, nil
}

// RenderTrancheReceipt renders a PDF receipt for a paid tranche
func (s *reportingService) RenderTrancheReceipt(ctx context.Context, trancheID string, requestingUserID string) ([]byte, error) {
	tranche, err := s.enrollmentRepo.FindTrancheByID(ctx, trancheID)
	if err != nil {
		return nil, err
	}
	if !tranche.IsPaid() {
		return nil, fmt.Errorf("%w: no payment recorded on this tranche", apperrors.ErrValidation)
	}

	enrollment, err := s.enrollmentRepo.FindEnrollmentByID(ctx, tranche.EnrollmentID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeTeacher(ctx, requestingUserID, enrollment.ProgramID, domain.ProgramRoleAssistant); err != nil {
		return nil, err
	}

	program, err := s.programRepo.FindProgramByID(ctx, enrollment.ProgramID)
	if err != nil {
		return nil, err
	}
	student, err := s.studentRepo.FindStudentByID(ctx, enrollment.StudentID)
	if err != nil {
		// A deleted student still has a valid payment history
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		student = &domain.Student{StudentID: enrollment.StudentID, FullName: "(removed student)"}
	}
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, program.CurrencyCode)
	if err != nil {
		return nil, err
	}

	pdf, err := receipts.RenderTrancheReceipt(receipts.ReceiptData{
		Tranche:     *tranche,
		Enrollment:  *enrollment,
		Program:     *program,
		Student:     *student,
		Currency:    *currency,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to render receipt", slog.String("tranche_id", trancheID))
		return nil, err
	}

	return pdf, nil
}
