// internal/app/system/normalize/normalize.go

// Package normalize provides small helpers that canonicalize user-entered
// strings before they are stored or compared. Every write path should pass
// through these so lookups behave consistently.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a person's name; case is preserved.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// AuthMethod lowercases and trims an auth method ("password", "orcid").
func AuthMethod(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims a status label.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
