package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/Taichi-iskw/followban/internal/errors"
)

// handlePostgreSQLError converts PostgreSQL-specific errors to appropriate AppError codes
func handlePostgreSQLError(err error, operation string) *apperrors.AppError {
	if err == nil {
		return nil
	}

	// Anything that is not a server-side error means the store could not be reached
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return apperrors.Wrap(err, apperrors.CodeUnavailable, operation)
	}

	switch pgErr.Code {
	case "23505": // UNIQUE_VIOLATION
		return handleUniqueViolation(pgErr)

	case "23502": // NOT_NULL_VIOLATION
		return apperrors.Wrap(err, apperrors.CodeInvalidArg, "required field is missing")

	case "23514": // CHECK_VIOLATION
		return apperrors.Wrap(err, apperrors.CodeInvalidArg, "data violates check constraint")

	case "42P01": // UNDEFINED_TABLE
		return apperrors.Wrap(err, apperrors.CodeUnavailable, "database schema error: table not found, run 'followban migrate up'")

	case "42703": // UNDEFINED_COLUMN
		return apperrors.Wrap(err, apperrors.CodeUnavailable, "database schema error: column not found")

	case "08000", "08003", "08006": // CONNECTION_EXCEPTION variants
		return apperrors.Wrap(err, apperrors.CodeUnavailable, "database connection error")

	case "53300": // TOO_MANY_CONNECTIONS
		return apperrors.Wrap(err, apperrors.CodeUnavailable, "database connection limit reached")

	case "57P01", "57P03": // ADMIN_SHUTDOWN, CANNOT_CONNECT_NOW
		return apperrors.Wrap(err, apperrors.CodeUnavailable, "database is shutting down or starting up")

	default:
		message := operation + " (PostgreSQL code: " + pgErr.Code + ")"
		return apperrors.Wrap(err, apperrors.CodeUnavailable, message)
	}
}

// handleUniqueViolation names the constraint that was hit
func handleUniqueViolation(pgErr *pgconn.PgError) *apperrors.AppError {
	switch constraintName := pgErr.ConstraintName; {
	case strings.Contains(constraintName, "pkey"):
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, "channel with this ID already exists")
	case strings.Contains(constraintName, "username"):
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, "channel with this username already exists")
	default:
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, "channel already exists")
	}
}
