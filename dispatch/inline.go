package dispatch

import (
	"context"
	"fmt"
	"regexp"

	"github.com/prilive-com/routego/tg"
)

// InlineQuery matches inline-mode queries, the "@bot query" box users
// type into any chat. The zero value matches every query.
type InlineQuery struct {
	// Pattern is an optional unanchored RE2 expression tested against
	// the query text. Empty matches any query, including the empty one
	// sent when the user has typed nothing yet.
	Pattern string
}

type inlineBinding struct {
	spec    InlineQuery
	pattern *regexp.Regexp
	handler func(context.Context, *InlineEvent) error
}

func newInlineBinding(spec InlineQuery, handler func(context.Context, *InlineEvent) error) (*inlineBinding, error) {
	if handler == nil {
		return nil, tg.NewValidationError("handler", "required")
	}
	b := &inlineBinding{spec: spec, handler: handler}
	if spec.Pattern != "" {
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, tg.NewValidationError("pattern", fmt.Sprintf("invalid regex: %v", err))
		}
		b.pattern = re
	}
	return b, nil
}

func (b *inlineBinding) kind() Kind    { return KindInline }
func (b *inlineBinding) label() string { return "inline_query" }

func (b *inlineBinding) match(d *Dispatcher, v *view) (func(context.Context) error, bool) {
	if b.pattern != nil && !b.pattern.MatchString(v.content) {
		return nil, false
	}
	ev := &InlineEvent{Query: v.inline, client: d.transport}
	return func(ctx context.Context) error { return b.handler(ctx, ev) }, true
}
