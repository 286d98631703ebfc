// Package storage provides the persistent key/value layer for the session client.
//
// Storage is the minimal key/value contract the auth package needs to keep the
// session credential, email and user id across restarts. The package ships an
// in-memory implementation for tests and short-lived processes, a snapshot
// store that writes a JSON document to any viant/afs URL (local file or mem://),
// a Redis store and a SQLite store. Open picks one from a URL.
package storage
