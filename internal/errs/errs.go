// Package errs defines the error types returned to API clients.
//
// Every handler error funnels into an *HTTPError so clients always
// receive the same JSON shape: a machine code, a human message, the
// HTTP status, optional field-level validation errors, and an optional
// client action hint (e.g. redirect).
package errs
