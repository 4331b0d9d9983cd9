package service

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/edusync-api/internal/repository"
	appErrors "github.com/noah-isme/edusync-api/pkg/errors"
)

// storageError maps a backend failure onto the typed error returned to
// clients. Connectivity failures become 503; anything else is internal.
func storageError(err error, message string) error {
	if errors.Is(err, repository.ErrConnectivity) {
		return appErrors.Wrap(err, appErrors.ErrServiceUnavailable.Code, appErrors.ErrServiceUnavailable.Status, message)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func notFound(entity string) error {
	return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
}

// found turns a storage lookup into a record or a typed error.
func found[T any](record *T, err error, entity string) (*T, error) {
	if err != nil {
		return nil, storageError(err, "failed to load "+entity)
	}
	if record == nil {
		return nil, notFound(entity)
	}
	return record, nil
}

// listed wraps a storage list result.
func listed[T any](items []T, err error, entity string) ([]T, error) {
	if err != nil {
		return nil, storageError(err, "failed to list "+entity)
	}
	return items, nil
}

// removed turns a delete result into nil or a typed error.
func removed(ok bool, err error, entity string) error {
	if err != nil {
		return storageError(err, "failed to delete "+entity)
	}
	if !ok {
		return notFound(entity)
	}
	return nil
}

func newValidator(v *validator.Validate) *validator.Validate {
	if v == nil {
		return validator.New()
	}
	return v
}
