// Package mock provides an in-memory token-sale backend served over
// httptest, so the api client, transport and auth store can be exercised
// without a real server.
//
// Default handlers implement login, registration and password recovery with
// the same payload shapes as the production backend; any handler can be
// replaced to script a specific failure.
package mock
