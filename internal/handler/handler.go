// Package handler is the HTTP layer.
//
// Handlers parse and validate requests, resolve the authenticated
// caller, call the service layer, and shape responses. All endpoints
// run through the generic pipeline in base.go, which centralizes
// binding, validation, logging, and tracing.
package handler
