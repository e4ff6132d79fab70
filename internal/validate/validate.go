// Package validate checks credential formats before any network call.
package validate

import (
	"fmt"
	"strings"
)

// Error represents a validation error.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation: %s - %s", e.Field, e.Message)
}

// New creates a new validation error.
func New(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

// Token validates a Telegram bot token format.
// Format: {bot_id}:{secret} where bot_id is numeric.
func Token(token string) error {
	if token == "" {
		return New("token", "cannot be empty")
	}

	parts := strings.SplitN(token, ":", 2)
	if len(parts) != 2 {
		return New("token", "invalid format, expected {bot_id}:{secret}")
	}

	botID := parts[0]
	secret := parts[1]

	for _, c := range botID {
		if c < '0' || c > '9' {
			return New("token", "bot_id must be numeric")
		}
	}

	if secret == "" {
		return New("token", "secret cannot be empty")
	}

	return nil
}
