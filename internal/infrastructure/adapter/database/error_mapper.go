package database

import (
	"context"
	"errors"
	"fmt"

	errs "github.com/amirhossein-jamali/boardstore/internal/domain/error"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/repository"
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct {
	classifier *repository.ErrorClassifier
}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{classifier: repository.NewErrorClassifier()}
}

// MapError maps a database error to a domain error for the named target
func (m *ErrorMapper) MapError(err error, target string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		m.classifier.IsConnectionError(err),
		m.classifier.IsTransientError(err):
		return errs.NewConnectionError(target, err)
	case m.classifier.IsMissingTable(err):
		return fmt.Errorf("%w: %v", errs.ErrTableNotFound, err)
	default:
		return fmt.Errorf("%w: %v", errs.ErrInternal, err)
	}
}

// IsRetryable reports whether opening the database may succeed on another attempt
func (m *ErrorMapper) IsRetryable(err error) bool {
	return m.classifier.IsConnectionError(err) || m.classifier.IsTransientError(err)
}
