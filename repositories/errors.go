package repositories

import "errors"

// ErrNotFound is returned when a lookup by id matches no row. Controllers map
// it to a 404 response.
var ErrNotFound = errors.New("record not found")
