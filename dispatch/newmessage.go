package dispatch

import (
	"context"
	"fmt"
	"regexp"

	"github.com/prilive-com/routego/tg"
)

// NewMessage matches plain message updates. The zero value matches
// every message in every chat, both directions.
type NewMessage struct {
	// Pattern is an optional RE2 expression tested against the message
	// text. The match is unanchored; anchor with ^ and $ explicitly
	// when the whole text must match. Empty matches any text.
	Pattern string

	// Incoming restricts to messages sent by others. Outgoing restricts
	// to messages the bot itself sent. Setting both, or neither, accepts
	// either direction.
	Incoming bool
	Outgoing bool

	// Private restricts to one-on-one chats. Public restricts to
	// groups, supergroups, and channels. Setting both, or neither,
	// accepts any chat.
	Private bool
	Public  bool
}

type newMessageBinding struct {
	spec    NewMessage
	pattern *regexp.Regexp // nil when no pattern given
	handler func(context.Context, *MessageEvent) error
}

func newNewMessageBinding(spec NewMessage, handler func(context.Context, *MessageEvent) error) (*newMessageBinding, error) {
	if handler == nil {
		return nil, tg.NewValidationError("handler", "required")
	}
	b := &newMessageBinding{spec: spec, handler: handler}
	if spec.Pattern != "" {
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, tg.NewValidationError("pattern", fmt.Sprintf("invalid regex: %v", err))
		}
		b.pattern = re
	}
	return b, nil
}

func (b *newMessageBinding) kind() Kind    { return KindMessage }
func (b *newMessageBinding) label() string { return "new_message" }

func (b *newMessageBinding) match(d *Dispatcher, v *view) (func(context.Context) error, bool) {
	if !directionOK(b.spec.Incoming, b.spec.Outgoing, v.outgoing) {
		return nil, false
	}
	if !scopeOK(b.spec.Private, b.spec.Public, v.chatType) {
		return nil, false
	}

	var groups []string
	if b.pattern != nil {
		groups = b.pattern.FindStringSubmatch(v.content)
		if groups == nil {
			return nil, false
		}
	}

	ev := &MessageEvent{Message: v.msg, Groups: groups, client: d.transport}
	return func(ctx context.Context) error { return b.handler(ctx, ev) }, true
}

// directionOK applies the Incoming/Outgoing filter. Selecting both or
// neither accepts any direction.
func directionOK(incoming, outgoing, isOutgoing bool) bool {
	if incoming == outgoing {
		return true
	}
	return outgoing == isOutgoing
}

// scopeOK applies the Private/Public filter. Selecting both or neither
// accepts any chat type.
func scopeOK(private, public bool, ct tg.ChatType) bool {
	if private == public {
		return true
	}
	if private {
		return ct.IsPrivate()
	}
	return ct.IsPublic()
}
