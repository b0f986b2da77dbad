package repository

import "github.com/pkg/errors"

// ErrDatabaseUnavailable is returned by writes when no database handle is
// configured. Reads on a missing handle return empty results instead.
var ErrDatabaseUnavailable = errors.New("database not available")

type rowScanner interface {
	Scan(dest ...any) error
}
