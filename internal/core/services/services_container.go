package services

import (
	portsrepo "github.com/codinglive/codinglive_app/internal/core/ports/repositories"
	portssvc "github.com/codinglive/codinglive_app/internal/core/ports/services"
	"github.com/codinglive/codinglive_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Student = NewStudentService(repos.StudentRepo)
	container.Currency = NewCurrencyService(repos.CurrencyRepo)

	// Program service first since the others depend on its authorizer
	container.Program = NewProgramService(repos.ProgramRepo, repos.CurrencyRepo, repos.UserRepo)
	programAuthorizer := container.Program.(portssvc.ProgramAuthorizerSvc)

	container.Enrollment = NewEnrollmentService(repos.EnrollmentRepo, repos.ProgramRepo, repos.StudentRepo, programAuthorizer)
	container.Payment = NewPaymentService(repos.EnrollmentRepo, programAuthorizer)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.ProgramRepo, repos.EnrollmentRepo, repos.StudentRepo, repos.CurrencyRepo, programAuthorizer)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}

// Compile-time interface implementation checks
var (
	_ portssvc.UserSvcFacade       = (*userService)(nil)
	_ portssvc.ProgramSvcFacade    = (*programService)(nil)
	_ portssvc.EnrollmentSvcFacade = (*enrollmentService)(nil)
	_ portssvc.PaymentSvcFacade    = (*paymentService)(nil)
)
