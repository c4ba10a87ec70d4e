// Package postgres implements the repositories over sqlx. Writes that must
// land together run inside one transaction; reads that feed the movement
// detector come back from a single query so they see one point in time.
package postgres

import (
	"database/sql"
	"errors"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
