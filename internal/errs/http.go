package errs

import "strings"

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType enumerates the client instructions an error can carry.
type ActionType string

const (
	// ActionTypeRedirect tells the client to navigate somewhere;
	// Value holds the target URL or route.
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional "what the client should do next" instruction,
// mostly used by auth flows.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the canonical API error. It implements error and is
// serialized directly as the JSON response body.
//
// Override tells the frontend whether Message is safe to show verbatim.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors carries field-level validation errors, when present.
	Errors []FieldError `json:"errors"`

	// Action is an optional client instruction.
	Action *Action `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is lets errors.Is match any *HTTPError regardless of code or status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy with only Message replaced, leaving the
// receiver untouched.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
	}
}

// MakeUpperCaseWithUnderscores turns HTTP status text into a stable
// machine code, e.g. "Bad Request" -> "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
