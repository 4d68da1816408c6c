// Package validation binds and validates incoming request payloads.
//
// Request types carry go-playground/validator struct tags and implement
// Validatable; BindAndValidate turns any failure into a 400 HTTPError
// with per-field messages the frontend can render next to form inputs.
package validation

import "github.com/go-playground/validator/v10"

// validate is the shared validator instance. validator caches struct
// metadata, so a single instance is both safe and faster.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct runs tag-based validation on a request payload. Request types
// call this from their Validate method, adding custom cross-field
// checks of their own where tags cannot express the rule.
func Struct(v any) error {
	return validate.Struct(v)
}
