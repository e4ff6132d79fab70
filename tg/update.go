package tg

// Update represents an incoming update from Telegram.
// At most one of the optional fields is present in any given update.
type Update struct {
	UpdateID          int                 `json:"update_id"`
	Message           *Message            `json:"message,omitempty"`
	EditedMessage     *Message            `json:"edited_message,omitempty"`
	ChannelPost       *Message            `json:"channel_post,omitempty"`
	EditedChannelPost *Message            `json:"edited_channel_post,omitempty"`
	CallbackQuery     *CallbackQuery      `json:"callback_query,omitempty"`
	InlineQuery       *InlineQuery        `json:"inline_query,omitempty"`
	ChosenInlineResult *ChosenInlineResult `json:"chosen_inline_result,omitempty"`
}

// CallbackQuery represents an incoming callback query from an inline keyboard.
type CallbackQuery struct {
	ID              string   `json:"id"`
	From            *User    `json:"from"`
	Message         *Message `json:"message,omitempty"`
	InlineMessageID string   `json:"inline_message_id,omitempty"`
	ChatInstance    string   `json:"chat_instance"`
	Data            string   `json:"data,omitempty"`
	GameShortName   string   `json:"game_short_name,omitempty"`
}

// MessageSig implements Editable.
func (c *CallbackQuery) MessageSig() (string, int64) {
	if c == nil {
		return "", 0
	}
	if c.InlineMessageID != "" {
		return c.InlineMessageID, 0
	}
	if c.Message != nil {
		return c.Message.MessageSig()
	}
	return "", 0
}

var _ Editable = (*CallbackQuery)(nil)

// SenderID returns the ID of the user who pressed the button. Zero when unknown.
func (c *CallbackQuery) SenderID() int64 {
	if c == nil || c.From == nil {
		return 0
	}
	return c.From.ID
}

// ChatID returns the ID of the chat the pressed button's message lives in,
// or zero for callbacks originating from inline-mode messages.
func (c *CallbackQuery) ChatID() int64 {
	if c == nil || c.Message == nil || c.Message.Chat == nil {
		return 0
	}
	return c.Message.Chat.ID
}

// InlineQuery represents an incoming inline query.
type InlineQuery struct {
	ID       string `json:"id"`
	From     *User  `json:"from"`
	Query    string `json:"query"`
	Offset   string `json:"offset"`
	ChatType string `json:"chat_type,omitempty"`
}

// SenderID returns the ID of the user typing the query. Zero when unknown.
func (q *InlineQuery) SenderID() int64 {
	if q == nil || q.From == nil {
		return 0
	}
	return q.From.ID
}

// ChosenInlineResult represents a result chosen by a user.
type ChosenInlineResult struct {
	ResultID        string `json:"result_id"`
	From            *User  `json:"from"`
	InlineMessageID string `json:"inline_message_id,omitempty"`
	Query           string `json:"query"`
}
