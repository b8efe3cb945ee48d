// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Bearer token authentication, request tracing, access logging and
// response compression are handled in this package before requests are
// delegated to the service layer. Every JSON endpoint answers with the
// [models.APIResponse] envelope.
package http
