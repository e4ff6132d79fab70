package sender

import (
	"context"

	"github.com/prilive-com/routego/tg"
)

// AnswerInlineQueryRequest represents an answerInlineQuery request.
type AnswerInlineQueryRequest struct {
	InlineQueryID string                 `json:"inline_query_id"`
	Results       []tg.InlineQueryResult `json:"results"`
	CacheTime     int                    `json:"cache_time,omitempty"`
	IsPersonal    bool                   `json:"is_personal,omitempty"`
	NextOffset    string                 `json:"next_offset,omitempty"`
}

// AnswerInlineQuery sends answers to an inline query. Telegram accepts
// at most one answer per query; a second answer fails at the API. An
// empty result set is valid and clears the result panel.
func (c *Client) AnswerInlineQuery(ctx context.Context, req AnswerInlineQueryRequest) error {
	if req.InlineQueryID == "" {
		return tg.NewValidationError("inline_query_id", "required")
	}
	if req.Results == nil {
		req.Results = []tg.InlineQueryResult{}
	}

	return c.callJSON(ctx, "answerInlineQuery", req, nil)
}
