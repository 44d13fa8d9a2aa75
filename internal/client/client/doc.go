// Package client is the HTTP client for the review backend used by the CLI.
//
// Errors: connection failures are reported as ErrUnavailable, 401/403 as
// ErrUnauthorized. Any other non-2xx reply becomes an *APIError carrying the
// server's {"error": ...} message.
package client
