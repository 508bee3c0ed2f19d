package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrDuplicateCredential = errors.New("credential already registered")
	// ErrInvalidCredentials одинакова для неизвестного логина и неверного пароля
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("you do not own this trail")
	ErrNotFound           = errors.New("trail not found")
	ErrInternal           = errors.New("internal error")
)

// DuplicateCredentialError сообщает, какое поле уже занято
type DuplicateCredentialError struct {
	Field string
}

func (e *DuplicateCredentialError) Error() string {
	if e.Field == "" {
		return ErrDuplicateCredential.Error()
	}
	return fmt.Sprintf("%s already exists", e.Field)
}

func (e *DuplicateCredentialError) Is(target error) bool {
	return target == ErrDuplicateCredential
}

// internal прячет причину от вызывающего, оставляя её в тексте для логов
func internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}
