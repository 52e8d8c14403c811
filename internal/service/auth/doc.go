// Package auth issues and validates the JWT access and refresh tokens
// that guard the profile and reading endpoints, and verifies bcrypt
// password hashes at login.
package auth
