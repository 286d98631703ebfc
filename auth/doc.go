// Package auth holds the client side session of the token sale: the
// persisted credential (Token) and the Store coordinating login,
// registration and password recovery requests with local state.
//
// Store applies each server reply to its state as one batch, then runs the
// standing reactions that mirror email and id into storage and finally
// notifies subscribers with a consistent State snapshot. Request failures
// never surface as Go errors; they become field level or common messages in
// State.Errors.
package auth
