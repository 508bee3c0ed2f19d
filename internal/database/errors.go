package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound - запись отсутствует или мягко удалена
var ErrNotFound = errors.New("record not found")

const uniqueViolation = "23505"

// DuplicateKeyError - нарушение уникального индекса при вставке
type DuplicateKeyError struct {
	Field      string
	Constraint string
}

func (e *DuplicateKeyError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("duplicate key violates %q", e.Constraint)
	}
	return fmt.Sprintf("duplicate %s", e.Field)
}

var constraintFields = map[string]string{
	"idx_users_username": "username",
	"idx_users_email":    "email",
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &DuplicateKeyError{
			Field:      constraintFields[pgErr.ConstraintName],
			Constraint: pgErr.ConstraintName,
		}
	}
	return err
}
