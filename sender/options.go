package sender

import "github.com/prilive-com/routego/tg"

// SendOption configures send requests.
type SendOption func(*SendMessageRequest)

// WithParseMode sets the parse mode for sending.
func WithParseMode(mode tg.ParseMode) SendOption {
	return func(r *SendMessageRequest) {
		r.ParseMode = mode
	}
}

// WithKeyboard attaches an inline keyboard.
func WithKeyboard(kb *tg.InlineKeyboardMarkup) SendOption {
	return func(r *SendMessageRequest) {
		r.ReplyMarkup = kb
	}
}

// WithReplyTo quotes another message.
func WithReplyTo(messageID int) SendOption {
	return func(r *SendMessageRequest) {
		r.ReplyToMessageID = messageID
	}
}

// Silent disables the notification sound.
func Silent() SendOption {
	return func(r *SendMessageRequest) {
		r.DisableNotification = true
	}
}

// Protected protects content from forwarding and saving.
func Protected() SendOption {
	return func(r *SendMessageRequest) {
		r.ProtectContent = true
	}
}

// NoWebPreview disables link previews.
func NoWebPreview() SendOption {
	return func(r *SendMessageRequest) {
		r.DisableWebPagePreview = true
	}
}

// EditOption configures edit requests.
type EditOption func(*EditMessageTextRequest)

// WithEditParseMode sets the parse mode for editing.
func WithEditParseMode(mode tg.ParseMode) EditOption {
	return func(r *EditMessageTextRequest) {
		r.ParseMode = mode
	}
}

// WithEditKeyboard sets the reply markup for editing.
func WithEditKeyboard(kb *tg.InlineKeyboardMarkup) EditOption {
	return func(r *EditMessageTextRequest) {
		r.ReplyMarkup = kb
	}
}

// WithDisableWebPreview disables web page preview.
func WithDisableWebPreview(disable bool) EditOption {
	return func(r *EditMessageTextRequest) {
		r.DisableWebPagePreview = disable
	}
}

// AnswerOption configures callback answer requests.
type AnswerOption func(*AnswerCallbackQueryRequest)

// AnswerText sets the text for callback answer.
func AnswerText(text string) AnswerOption {
	return func(r *AnswerCallbackQueryRequest) {
		r.Text = text
	}
}

// Alert shows the answer as an alert.
func Alert() AnswerOption {
	return func(r *AnswerCallbackQueryRequest) {
		r.ShowAlert = true
	}
}

// WithAnswerURL sets URL to open.
func WithAnswerURL(url string) AnswerOption {
	return func(r *AnswerCallbackQueryRequest) {
		r.URL = url
	}
}

// WithAnswerCacheTime sets how long to cache the answer.
func WithAnswerCacheTime(seconds int) AnswerOption {
	return func(r *AnswerCallbackQueryRequest) {
		r.CacheTime = seconds
	}
}

// InlineOption configures inline query answers.
type InlineOption func(*AnswerInlineQueryRequest)

// WithCacheTime sets how long Telegram may cache the results.
func WithCacheTime(seconds int) InlineOption {
	return func(r *AnswerInlineQueryRequest) {
		r.CacheTime = seconds
	}
}

// Personal marks results as specific to the querying user.
func Personal() InlineOption {
	return func(r *AnswerInlineQueryRequest) {
		r.IsPersonal = true
	}
}

// WithNextOffset sets the pagination offset for the next query.
func WithNextOffset(offset string) InlineOption {
	return func(r *AnswerInlineQueryRequest) {
		r.NextOffset = offset
	}
}
