package postgresql

import (
	"errors"

	"github.com/cmlabs-hris/attendance-desk/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// isUniqueViolation reports whether err comes from a unique constraint
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// validID reports whether id can be bound to a uuid column. Anything else cannot
// match a stored row and is treated as not found instead of reaching the database.
func validID(id string) bool {
	return validator.IsValidUUID(id)
}
