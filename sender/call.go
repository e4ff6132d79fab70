package sender

import (
	"context"
	"encoding/json"
	"fmt"
)

// callJSON is the unified internal helper for API calls that do not
// need retry. It wraps executeRequest() and provides consistent JSON
// decoding; pass a nil out for methods that return bool/void.
func (c *Client) callJSON(ctx context.Context, method string, payload any, out any, chatIDs ...string) error {
	resp, err := c.executeRequest(ctx, method, payload, chatIDs...)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("routego: %s: failed to parse response: %w", method, err)
	}
	return nil
}
