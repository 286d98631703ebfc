// Package api defines the token-sale backend contract consumed by the auth
// store and a JSON-over-HTTP implementation of it.
//
// Every operation either returns a Response whose Data carries the decoded
// body, or an *Error holding the HTTP status and whatever structured payload
// (field errors, reason, generic errors) the backend sent back.
package api
