package tournamentdb

import "errors"

// ErrNotFound is returned when a tournament or event row does not exist.
var ErrNotFound = errors.New("not found")
