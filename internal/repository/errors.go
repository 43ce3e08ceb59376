package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// Sentinel errors returned by every repository. Callers match them with
// errors.Is; the driver error stays in the chain for logging.
var (
	ErrNotFound           = errors.New("registro no encontrado")
	ErrUniqueViolation    = errors.New("violación de unicidad")
	ErrReferenceViolation = errors.New("violación de integridad referencial")
)

// PostgreSQL SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps driver and GORM errors onto the sentinels above.
func translate(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUniqueViolation), errors.Is(err, ErrReferenceViolation):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrUniqueViolation, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", ErrReferenceViolation, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %w", ErrUniqueViolation, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %w", ErrReferenceViolation, err)
		}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %w", ErrUniqueViolation, err)
		case sqlite3.ErrConstraintForeignKey, sqlite3.ErrConstraintTrigger:
			// RESTRICT blocking a delete reports the trigger code (1811).
			return fmt.Errorf("%w: %w", ErrReferenceViolation, err)
		}
		if liteErr.Code == sqlite3.ErrConstraint && strings.Contains(liteErr.Error(), "FOREIGN KEY constraint failed") {
			return fmt.Errorf("%w: %w", ErrReferenceViolation, err)
		}
	}

	return err
}

// updated turns a zero-row update into ErrNotFound.
func updated(res *gorm.DB) error {
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// deleted turns a zero-row delete into ErrNotFound.
func deleted(res *gorm.DB) error {
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
