package auth

import "errors"

// ErrMissingParameters is returned when a required collaborator is not supplied.
var ErrMissingParameters = errors.New("required parameters are missing")

// ErrNoToken is returned by Token.Token when the session is not authenticated.
var ErrNoToken = errors.New("no authentication token")
