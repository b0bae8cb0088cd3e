package db

import "strings"

// IsUniqueViolation reports whether err looks like a unique-constraint
// failure. With a constraintName it matches that constraint specifically;
// otherwise it recognizes the generic Postgres and sqlite phrasings, which
// keeps the check working against the sqlite test databases.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	for _, marker := range []string{"duplicate key value", "UNIQUE constraint failed"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
