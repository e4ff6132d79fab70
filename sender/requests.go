package sender

import (
	"github.com/prilive-com/routego/tg"
)

// SendMessageRequest represents a request to send a text message.
type SendMessageRequest struct {
	ChatID                tg.ChatID    `json:"chat_id"`
	Text                  string       `json:"text"`
	ParseMode             tg.ParseMode `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool         `json:"disable_web_page_preview,omitempty"`
	DisableNotification   bool         `json:"disable_notification,omitempty"`
	ProtectContent        bool         `json:"protect_content,omitempty"`
	ReplyToMessageID      int          `json:"reply_to_message_id,omitempty"`
	ReplyMarkup           any          `json:"reply_markup,omitempty"`
}

// EditMessageTextRequest represents a request to edit message text.
type EditMessageTextRequest struct {
	ChatID                tg.ChatID    `json:"chat_id,omitempty"`
	MessageID             int          `json:"message_id,omitempty"`
	InlineMessageID       string       `json:"inline_message_id,omitempty"`
	Text                  string       `json:"text"`
	ParseMode             tg.ParseMode `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool         `json:"disable_web_page_preview,omitempty"`
	ReplyMarkup           any          `json:"reply_markup,omitempty"`
}

// DeleteMessageRequest represents a request to delete a message.
type DeleteMessageRequest struct {
	ChatID    tg.ChatID `json:"chat_id"`
	MessageID int       `json:"message_id"`
}

// AnswerCallbackQueryRequest represents a request to answer a callback query.
type AnswerCallbackQueryRequest struct {
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
	ShowAlert       bool   `json:"show_alert,omitempty"`
	URL             string `json:"url,omitempty"`
	CacheTime       int    `json:"cache_time,omitempty"`
}
