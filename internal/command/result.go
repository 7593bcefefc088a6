package command

// Status is the outcome of one command execution. A three-way union instead
// of a bare boolean so downstream consumers handle degraded outcomes.
type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusFailure Status = "failure"
)

// Result is the uniform command return value. Success mirrors Status for
// consumers that only understand booleans; Data carries command-specific
// payload fields.
type Result struct {
	Status  Status                 `json:"status"`
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// NewResult builds a result with Success derived from the status.
func NewResult(status Status, message string, data map[string]interface{}) *Result {
	return &Result{
		Status:  status,
		Success: status == StatusSuccess,
		Message: message,
		Data:    data,
	}
}
