package cli

import "fmt"

// Exit codes. The fetch contract is deliberately coarse: 0 for the
// success variant, 1 for any failure variant, so shell scripts can
// branch without parsing JSON.
const (
	exitSuccess = 0
	exitFailure = 1
)

// ExitError is an error that carries a specific process exit code.
// Cobra's RunE returns this to signal the desired exit code to main.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// exitError creates a new ExitError with the given code and formatted message.
func exitError(code int, format string, args ...any) *ExitError {
	return &ExitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
