package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/menuplanner/backend/internal/domain"
)

const uniqueViolation = "23505"

// mapError translates driver errors into domain errors. subject names the row
// involved and is only used in the message.
func mapError(err error, subject string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, subject)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateName, subject)
	}

	return fmt.Errorf("%w: %s: %v", domain.ErrStorage, subject, err)
}
