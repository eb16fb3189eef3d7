package storage

import (
	"errors"
	"fmt"

	"github.com/ncruces/go-sqlite3"
)

// Business failures callers are expected to branch on.
var (
	// ErrConflict reports a uniqueness violation or an update to immutable history.
	ErrConflict = errors.New("conflict")
	// ErrNotFound reports a missing entity, observation or run.
	ErrNotFound = errors.New("not found")
	// ErrConstraint reports a value the schema rejects, such as an unknown run status.
	ErrConstraint = errors.New("constraint violation")
)

// classify maps SQLite constraint failures onto the sentinel errors.
// Anything else is returned unchanged.
func classify(err error) error {
	var serr *sqlite3.Error
	if !errors.As(err, &serr) {
		return err
	}
	switch serr.ExtendedCode() {
	case sqlite3.CONSTRAINT_UNIQUE, sqlite3.CONSTRAINT_PRIMARYKEY:
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case sqlite3.CONSTRAINT_CHECK, sqlite3.CONSTRAINT_NOTNULL:
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	case sqlite3.CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
