package repository

import "errors"

// ErrNotFound is returned by all repositories when no row matches.
var ErrNotFound = errors.New("not found")
