package pgsql

import (
	portsrepo "github.com/codinglive/codinglive_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	studentRepo := newPgxStudentRepository(dbPool)
	currencyRepo := newPgxCurrencyRepository(dbPool)
	programRepo := newPgxProgramRepository(dbPool)
	enrollmentRepo := newPgxEnrollmentRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:       userRepo,
		StudentRepo:    studentRepo,
		CurrencyRepo:   currencyRepo,
		ProgramRepo:    programRepo,
		EnrollmentRepo: enrollmentRepo,
		ReportingRepo:  reportingRepo,
	}
}
