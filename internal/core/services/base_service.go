package services

import (
	"context"
	"log/slog"

	"github.com/codinglive/codinglive_app/internal/core/domain"
	portssvc "github.com/codinglive/codinglive_app/internal/core/ports/services"
	"github.com/codinglive/codinglive_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	ProgramAuthorizer portssvc.ProgramAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// AuthorizeTeacher checks that the user may act on the program with the
// required staffing role.
func (s *BaseService) AuthorizeTeacher(ctx context.Context, userID, programID string, requiredRole domain.ProgramTeacherRole) error {
	if s.ProgramAuthorizer != nil {
		return s.ProgramAuthorizer.AuthorizeTeacherAction(ctx, userID, programID, requiredRole)
	}
	s.LogDebug(ctx, "No program authorizer provided, access granted by default",
		slog.String("user_id", userID),
		slog.String("program_id", programID),
		slog.String("required_role", string(requiredRole)))
	return nil
}
