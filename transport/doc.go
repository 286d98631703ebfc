// Package transport implements an http.RoundTripper that authorizes requests
// with the session credential and reacts to the backend rejecting it with
// `401 Unauthorized`.
package transport
