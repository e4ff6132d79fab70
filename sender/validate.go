package sender

import (
	"fmt"

	"github.com/prilive-com/routego/tg"
)

// validateChatID validates a ChatID value.
// Returns nil if valid, error if invalid.
func validateChatID(id tg.ChatID) error {
	if id == nil {
		return fmt.Errorf("routego: chat_id is required")
	}
	switch v := id.(type) {
	case int64:
		if v == 0 {
			return fmt.Errorf("routego: chat_id cannot be zero")
		}
		return nil
	case int:
		if v == 0 {
			return fmt.Errorf("routego: chat_id cannot be zero")
		}
		return nil
	case string:
		if v == "" {
			return fmt.Errorf("routego: chat_id cannot be empty string")
		}
		return nil
	default:
		return fmt.Errorf("routego: chat_id must be int64, int, or string, got %T", id)
	}
}
