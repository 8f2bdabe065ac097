package storage

import "errors"

var (
	// ErrNotFound marks an absent category, tracker or record. Providers
	// wrap it with entity context ("tracker abc...: not found").
	ErrNotFound = errors.New("not found")

	// ErrDecode marks a persisted row with a malformed required field
	// (color, schedule, timestamp). Listings skip and log such rows rather
	// than failing the whole query.
	ErrDecode = errors.New("malformed record")
)
