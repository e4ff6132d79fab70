package receiver

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrAlreadyRunning = errors.New("routego/receiver: already running")
	ErrNotRunning     = errors.New("routego/receiver: not running")
	ErrTokenRequired  = errors.New("routego/receiver: bot token required")
)

// APIError represents a Telegram API error.
type APIError struct {
	Code        int
	Description string
	Err         error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("telegram API error %d: %s: %v", e.Code, e.Description, e.Err)
	}
	return fmt.Sprintf("telegram API error %d: %s", e.Code, e.Description)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
