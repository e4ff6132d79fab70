package tg

import "strconv"

// ChatID represents a Telegram chat identifier.
// Valid types: int64 (numeric ID) or string (channel username like "@channelusername")
type ChatID = any

// Editable represents anything that can be edited (message, callback, stored reference).
// Implement this interface to edit messages stored in your database.
type Editable interface {
	// MessageSig returns message identifier and chat ID.
	// For inline messages: return (inline_message_id, 0)
	// For regular messages: return (message_id as string, chat_id)
	MessageSig() (messageID string, chatID int64)
}

// StoredMessage is a minimal Editable for message references kept in a
// database. Store the message and chat IDs, edit later without the full Message.
type StoredMessage struct {
	MsgID  int   `json:"message_id"`
	ChatID int64 `json:"chat_id"`
}

// MessageSig implements Editable.
func (s StoredMessage) MessageSig() (string, int64) {
	return strconv.Itoa(s.MsgID), s.ChatID
}

var _ Editable = StoredMessage{}

// InlineMessage is an Editable for messages sent via inline mode, which are
// addressed by inline_message_id alone.
type InlineMessage struct {
	InlineMessageID string `json:"inline_message_id"`
}

// MessageSig implements Editable.
func (i InlineMessage) MessageSig() (string, int64) {
	return i.InlineMessageID, 0
}

var _ Editable = InlineMessage{}

// Message represents a Telegram message.
type Message struct {
	MessageID       int                   `json:"message_id"`
	MessageThreadID int                   `json:"message_thread_id,omitempty"`
	From            *User                 `json:"from,omitempty"`
	SenderChat      *Chat                 `json:"sender_chat,omitempty"`
	Date            int64                 `json:"date"`
	Chat            *Chat                 `json:"chat"`
	ReplyToMessage  *Message              `json:"reply_to_message,omitempty"`
	ViaBot          *User                 `json:"via_bot,omitempty"`
	EditDate        int64                 `json:"edit_date,omitempty"`
	Text            string                `json:"text,omitempty"`
	Entities        []MessageEntity       `json:"entities,omitempty"`
	Caption         string                `json:"caption,omitempty"`
	CaptionEntities []MessageEntity       `json:"caption_entities,omitempty"`
	ReplyMarkup     *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// MessageSig implements Editable.
func (m *Message) MessageSig() (string, int64) {
	if m == nil {
		return "", 0
	}
	var chatID int64
	if m.Chat != nil {
		chatID = m.Chat.ID
	}
	return strconv.Itoa(m.MessageID), chatID
}

var _ Editable = (*Message)(nil)

// SenderID returns the sending user's ID, or the sender chat's ID for
// channel posts and anonymous group admins. Zero when unknown.
func (m *Message) SenderID() int64 {
	if m == nil {
		return 0
	}
	if m.From != nil {
		return m.From.ID
	}
	if m.SenderChat != nil {
		return m.SenderChat.ID
	}
	return 0
}

// ChatType returns the type of the chat this message was sent in.
func (m *Message) ChatType() ChatType {
	if m == nil || m.Chat == nil {
		return ""
	}
	return ChatType(m.Chat.Type)
}

// MessageID represents a unique message identifier.
type MessageID struct {
	MessageID int `json:"message_id"`
}

// User represents a Telegram user or bot.
type User struct {
	ID                    int64  `json:"id"`
	IsBot                 bool   `json:"is_bot"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name,omitempty"`
	Username              string `json:"username,omitempty"`
	LanguageCode          string `json:"language_code,omitempty"`
	IsPremium             bool   `json:"is_premium,omitempty"`
	SupportsInlineQueries bool   `json:"supports_inline_queries,omitempty"`
}

// Chat represents a Telegram chat.
type Chat struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsForum   bool   `json:"is_forum,omitempty"`
}

// MessageEntity represents a special entity in a text message.
type MessageEntity struct {
	Type          string `json:"type"`
	Offset        int    `json:"offset"`
	Length        int    `json:"length"`
	URL           string `json:"url,omitempty"`
	User          *User  `json:"user,omitempty"`
	Language      string `json:"language,omitempty"`
	CustomEmojiID string `json:"custom_emoji_id,omitempty"`
}

// ParseMode defines the text formatting mode for messages.
type ParseMode string

// Supported parse modes.
const (
	ParseModeHTML       ParseMode = "HTML"
	ParseModeMarkdown   ParseMode = "Markdown"
	ParseModeMarkdownV2 ParseMode = "MarkdownV2"
)

// String returns the parse mode string value.
func (p ParseMode) String() string {
	return string(p)
}

// IsValid returns true if the parse mode is supported by Telegram.
func (p ParseMode) IsValid() bool {
	switch p {
	case ParseModeHTML, ParseModeMarkdown, ParseModeMarkdownV2, "":
		return true
	default:
		return false
	}
}

// ChatType represents the type of a Telegram chat.
type ChatType string

// Supported chat types.
const (
	ChatTypePrivate    ChatType = "private"
	ChatTypeGroup      ChatType = "group"
	ChatTypeSupergroup ChatType = "supergroup"
	ChatTypeChannel    ChatType = "channel"
)

// String returns the chat type string value.
func (c ChatType) String() string {
	return string(c)
}

// IsPrivate returns true for one-to-one conversations.
func (c ChatType) IsPrivate() bool {
	return c == ChatTypePrivate
}

// IsGroup returns true if the chat type is a group or supergroup.
func (c ChatType) IsGroup() bool {
	return c == ChatTypeGroup || c == ChatTypeSupergroup
}

// IsPublic returns true for group, supergroup, and channel chats.
func (c ChatType) IsPublic() bool {
	return c.IsGroup() || c == ChatTypeChannel
}
