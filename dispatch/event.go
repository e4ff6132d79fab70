package dispatch

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/prilive-com/routego/sender"
	"github.com/prilive-com/routego/tg"
)

// Transport is the outbound surface events need to act on the chat.
// *sender.Client satisfies it; tests substitute a recorder.
type Transport interface {
	SendMessage(ctx context.Context, req sender.SendMessageRequest) (*tg.Message, error)
	EditMessageText(ctx context.Context, req sender.EditMessageTextRequest) (*tg.Message, error)
	DeleteMessage(ctx context.Context, req sender.DeleteMessageRequest) error
	AnswerCallbackQuery(ctx context.Context, req sender.AnswerCallbackQueryRequest) error
	AnswerInlineQuery(ctx context.Context, req sender.AnswerInlineQueryRequest) error
}

// MessageEvent is delivered to NewMessage handlers. It wraps the matched
// message together with any regex capture groups.
type MessageEvent struct {
	// Message is the matched message.
	Message *tg.Message

	// Groups holds the regex submatches when the matcher carried a
	// pattern. Groups[0] is the whole match. Nil for pattern-less
	// matchers.
	Groups []string

	client Transport
}

// Text returns the message text.
func (e *MessageEvent) Text() string { return e.Message.Text }

// SenderID returns the sender's user ID, or the chat ID for anonymous
// channel posts.
func (e *MessageEvent) SenderID() int64 { return e.Message.SenderID() }

// ChatID returns the ID of the chat the message arrived in.
func (e *MessageEvent) ChatID() int64 {
	if e.Message.Chat == nil {
		return 0
	}
	return e.Message.Chat.ID
}

// Respond sends a new message to the same chat.
func (e *MessageEvent) Respond(ctx context.Context, text string, opts ...sender.SendOption) (*tg.Message, error) {
	req := sender.SendMessageRequest{ChatID: e.ChatID(), Text: text}
	for _, opt := range opts {
		opt(&req)
	}
	return e.client.SendMessage(ctx, req)
}

// Reply sends a new message to the same chat quoting the matched one.
func (e *MessageEvent) Reply(ctx context.Context, text string, opts ...sender.SendOption) (*tg.Message, error) {
	req := sender.SendMessageRequest{
		ChatID:           e.ChatID(),
		Text:             text,
		ReplyToMessageID: e.Message.MessageID,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return e.client.SendMessage(ctx, req)
}

// Edit rewrites the matched message's text. Only messages the bot sent
// itself can be edited.
func (e *MessageEvent) Edit(ctx context.Context, text string, opts ...sender.EditOption) (*tg.Message, error) {
	req := sender.EditMessageTextRequest{
		ChatID:    e.ChatID(),
		MessageID: e.Message.MessageID,
		Text:      text,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return e.client.EditMessageText(ctx, req)
}

// Delete removes the matched message.
func (e *MessageEvent) Delete(ctx context.Context) error {
	return e.client.DeleteMessage(ctx, sender.DeleteMessageRequest{
		ChatID:    e.ChatID(),
		MessageID: e.Message.MessageID,
	})
}

// CommandEvent is delivered to Command handlers. It is a MessageEvent
// plus the parsed command name and argument tail.
type CommandEvent struct {
	*MessageEvent

	// Command is the matched name, lowercased, without prefix or
	// @mention.
	Command string

	// Args is the raw text after the command token, leading
	// whitespace stripped. Empty when the command stands alone.
	Args string
}

// Argv splits Args on whitespace. Returns nil for an empty tail.
func (e *CommandEvent) Argv() []string {
	if e.Args == "" {
		return nil
	}
	return strings.Fields(e.Args)
}

// CallbackEvent is delivered to CallbackQuery handlers.
type CallbackEvent struct {
	// Query is the raw callback query.
	Query *tg.CallbackQuery

	// Base is the matcher's Data the payload matched against. Empty
	// for a match-all registration.
	Base string

	// Parts holds the payload segments after the matched base when the
	// matcher uses split mode. Empty when the payload equals the base
	// exactly; nil in exact mode.
	Parts []string

	client   Transport
	answered atomic.Bool
}

// Data returns the raw callback payload.
func (e *CallbackEvent) Data() string { return e.Query.Data }

// SenderID returns the ID of the user who pressed the button.
func (e *CallbackEvent) SenderID() int64 { return e.Query.SenderID() }

// Answer dismisses the client-side spinner, optionally with a toast or
// alert. Telegram accepts one answer per query; repeat calls are no-ops
// so cleanup paths can answer unconditionally.
func (e *CallbackEvent) Answer(ctx context.Context, opts ...sender.AnswerOption) error {
	if !e.answered.CompareAndSwap(false, true) {
		return nil
	}
	req := sender.AnswerCallbackQueryRequest{CallbackQueryID: e.Query.ID}
	for _, opt := range opts {
		opt(&req)
	}
	return e.client.AnswerCallbackQuery(ctx, req)
}

// Edit rewrites the message the pressed button was attached to. It
// answers the query first so the spinner never outlives the edit.
func (e *CallbackEvent) Edit(ctx context.Context, text string, opts ...sender.EditOption) (*tg.Message, error) {
	if err := e.Answer(ctx); err != nil {
		return nil, err
	}
	req := sender.EditMessageTextRequest{Text: text}
	if e.Query.InlineMessageID != "" {
		req.InlineMessageID = e.Query.InlineMessageID
	} else {
		req.ChatID = e.Query.ChatID()
		req.MessageID = e.messageID()
	}
	for _, opt := range opts {
		opt(&req)
	}
	return e.client.EditMessageText(ctx, req)
}

// Respond answers the query and sends a new message to the chat the
// button lives in.
func (e *CallbackEvent) Respond(ctx context.Context, text string, opts ...sender.SendOption) (*tg.Message, error) {
	if err := e.Answer(ctx); err != nil {
		return nil, err
	}
	req := sender.SendMessageRequest{ChatID: e.Query.ChatID(), Text: text}
	for _, opt := range opts {
		opt(&req)
	}
	return e.client.SendMessage(ctx, req)
}

// Delete answers the query and removes the message the button was
// attached to.
func (e *CallbackEvent) Delete(ctx context.Context) error {
	if err := e.Answer(ctx); err != nil {
		return err
	}
	return e.client.DeleteMessage(ctx, sender.DeleteMessageRequest{
		ChatID:    e.Query.ChatID(),
		MessageID: e.messageID(),
	})
}

func (e *CallbackEvent) messageID() int {
	if e.Query.Message == nil {
		return 0
	}
	return e.Query.Message.MessageID
}

// InlineEvent is delivered to InlineQuery handlers.
type InlineEvent struct {
	// Query is the raw inline query.
	Query *tg.InlineQuery

	client   Transport
	answered atomic.Bool
}

// Text returns the query text the user has typed so far.
func (e *InlineEvent) Text() string { return e.Query.Query }

// Offset returns the pagination offset from a previous answer.
func (e *InlineEvent) Offset() string { return e.Query.Offset }

// SenderID returns the ID of the querying user.
func (e *InlineEvent) SenderID() int64 { return e.Query.SenderID() }

// Answer delivers results for the query. Telegram accepts one answer
// per query; repeat calls are no-ops.
func (e *InlineEvent) Answer(ctx context.Context, results []tg.InlineQueryResult, opts ...sender.InlineOption) error {
	if !e.answered.CompareAndSwap(false, true) {
		return nil
	}
	req := sender.AnswerInlineQueryRequest{
		InlineQueryID: e.Query.ID,
		Results:       results,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return e.client.AnswerInlineQuery(ctx, req)
}
