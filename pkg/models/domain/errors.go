package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the loading and aggregation pipeline. Callers
// match them with errors.Is to decide how to respond.
var (
	// ErrSourceNotFound means no dataset exists at the given location:
	// a missing file, an HTTP 404 or an absent object key.
	ErrSourceNotFound = errors.New("source not found")

	// ErrSourceUnreachable means the location could not be reached at
	// all: DNS failure, refused connection or a timeout.
	ErrSourceUnreachable = errors.New("source unreachable")

	// ErrBadFormat means the payload could not be parsed as a
	// delimited table.
	ErrBadFormat = errors.New("malformed dataset")

	// ErrEmptyInput means no records were left after filtering.
	ErrEmptyInput = errors.New("no records in selection")
)

// SchemaMismatchError reports the required logical fields a dataset
// header does not cover under the active schema profile.
type SchemaMismatchError struct {
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("dataset is missing required columns: %s", strings.Join(e.Missing, ", "))
}
