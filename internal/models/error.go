package models

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// Error codes
const (
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeInvalidVibe       = "INVALID_VIBE"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeCommandNotFound   = "COMMAND_NOT_FOUND"
	ErrCodeMissingDependency = "MISSING_DEPENDENCY"
	ErrCodeSpecialistFailed  = "SPECIALIST_FAILED"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)
