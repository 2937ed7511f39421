package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/kardex-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // unique_violation
}

// mapLockError traduce la expiración de lock_timeout (55P03) al error de
// dominio reintentable. Cualquier otro error pasa sin cambio: un timeout de
// bloqueo jamás debe confundirse con stock insuficiente.
func mapLockError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "55P03" { // lock_not_available
		return domain.ErrLockTimeout
	}
	return err
}
