package database

import "errors"

// ErrNotReady is returned when the connection is used before startup completes.
var ErrNotReady = errors.New("database not ready")
