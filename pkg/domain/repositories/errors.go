package repositories

import "errors"

// ErrNotFound is returned when a record id has no match in a repository
var ErrNotFound = errors.New("not found")
