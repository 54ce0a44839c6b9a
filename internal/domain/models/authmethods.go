// internal/domain/models/authmethods.go
package models

// Supported authentication methods, stored in User.AuthMethod.
const (
	AuthMethodPassword = "password"
	AuthMethodORCID    = "orcid"
)
