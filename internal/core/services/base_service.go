package services

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hotelnest/shift_ledger_app/internal/apperrors"
	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
	portsrepo "github.com/hotelnest/shift_ledger_app/internal/core/ports/repositories"
	"github.com/hotelnest/shift_ledger_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	BranchRepo portsrepo.BranchRepositoryFacade
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
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

// ResolveBranch applies the actor's branch scope to a requested branch code
// and loads the branch row. Front-desk staff are pinned to their active
// branch; other roles must name one explicitly.
func (s *BaseService) ResolveBranch(ctx context.Context, actor domain.Actor, requested string) (*domain.Branch, error) {
	scoped, ok := actor.BranchScope(requested)
	if !ok {
		return nil, apperrors.NewAppError(http.StatusForbidden, "branch outside the caller's scope", apperrors.ErrForbidden)
	}
	if scoped == "" {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "branch is required", apperrors.ErrValidation)
	}
	branch, err := s.BranchRepo.FindBranchByCode(ctx, scoped)
	if err != nil {
		return nil, err
	}
	return branch, nil
}

// ScopeBranchFilter resolves the branch filter for listing and reporting
// calls. Unlike ResolveBranch an empty result is allowed for roles that may
// look across branches.
func (s *BaseService) ScopeBranchFilter(actor domain.Actor, requested string) (string, error) {
	scoped, ok := actor.BranchScope(requested)
	if !ok {
		return "", apperrors.NewAppError(http.StatusForbidden, "branch outside the caller's scope", apperrors.ErrForbidden)
	}
	return scoped, nil
}
