// Package middleware holds the HTTP middleware stack: CORS, request
// logging, panic recovery, secure headers, request IDs, Clerk
// authentication, request-scoped logger enrichment, New Relic tracing,
// and the global error handler that turns every error into the API's
// JSON error shape.
package middleware
