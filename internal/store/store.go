// Package store holds the key/value data that native modules save and
// restore through the get_data and set_data host imports.
package store

import (
	"context"
	"fmt"
)

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Store is a key/value store. Get reports ok=false for a missing key.
// Implementations are safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte) error
	Close() error
}

// UnknownDriverError is returned by Open for an unsupported driver name.
type UnknownDriverError struct {
	Driver string
}

func (e *UnknownDriverError) Error() string {
	return fmt.Sprintf("unknown store driver '%s' (want %s or %s)", e.Driver, DriverMemory, DriverSQLite)
}

// Open returns the store for driver. path is only used by the SQLite driver.
func Open(driver, path string) (Store, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite:
		return OpenSQLite(path)
	default:
		return nil, &UnknownDriverError{Driver: driver}
	}
}
