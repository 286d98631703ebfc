// Package paths resolves front end page paths handed to the backend, e.g. the
// page a password-recovery email links to.
package paths

import "strings"

// NewPasswordCreation is the page where a recovery token is exchanged for a new password.
const NewPasswordCreation = "/auth/create-new-password/"

// NewPasswordCreationPagePathForBackend returns the recovery page path the
// backend appends the recovery token to.
func NewPasswordCreationPagePathForBackend() string {
	return NewPasswordCreation
}

// Join prefixes path with a public base (e.g. https://sale.example.com), keeping a single slash.
func Join(base, path string) string {
	if base == "" {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
