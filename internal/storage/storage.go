package storage

import (
	"net/url"
	"strings"
)

// IsPostgresTarget reports whether the config value names a PostgreSQL
// database rather than a sqlite file path.
func IsPostgresTarget(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password inline. Inline credentials are rejected; the keyring
// or libpq's own mechanisms hold them instead.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}
