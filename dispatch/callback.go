package dispatch

import (
	"context"
	"strings"

	"github.com/prilive-com/routego/tg"
)

// CallbackQuery matches inline keyboard button presses by their
// callback payload.
//
// With an empty Split the payload must equal Data exactly. With a
// Split the payload must be Data alone or Data followed by
// Split-delimited segments, which are delivered as Parts on the event.
// This pairs with the payloads tg.Pagination and tg.Confirm produce.
type CallbackQuery struct {
	// Data is the payload (exact mode) or payload base (split mode).
	// Empty matches every callback query.
	Data string

	// Split is the segment delimiter. Empty selects exact mode.
	Split string

	// MaxSplits caps the number of segments in split mode. Zero means
	// unlimited. Requires Split.
	MaxSplits int
}

type callbackBinding struct {
	spec    CallbackQuery
	handler func(context.Context, *CallbackEvent) error
}

func newCallbackBinding(spec CallbackQuery, handler func(context.Context, *CallbackEvent) error) (*callbackBinding, error) {
	if handler == nil {
		return nil, tg.NewValidationError("handler", "required")
	}
	if spec.MaxSplits < 0 {
		return nil, tg.NewValidationError("max_splits", "must not be negative")
	}
	if spec.MaxSplits > 0 && spec.Split == "" {
		return nil, tg.NewValidationError("max_splits", "requires a split delimiter")
	}
	return &callbackBinding{spec: spec, handler: handler}, nil
}

func (b *callbackBinding) kind() Kind    { return KindCallback }
func (b *callbackBinding) label() string { return "callback_query" }

func (b *callbackBinding) match(d *Dispatcher, v *view) (func(context.Context) error, bool) {
	parts, ok := b.matchData(v.content)
	if !ok {
		return nil, false
	}
	ev := &CallbackEvent{Query: v.callback, Base: b.spec.Data, Parts: parts, client: d.transport}
	return func(ctx context.Context) error { return b.handler(ctx, ev) }, true
}

func (b *callbackBinding) matchData(payload string) ([]string, bool) {
	if b.spec.Data == "" {
		return nil, true
	}
	if b.spec.Split == "" {
		return nil, payload == b.spec.Data
	}
	if payload == b.spec.Data {
		return []string{}, true
	}
	rest, found := strings.CutPrefix(payload, b.spec.Data+b.spec.Split)
	if !found {
		return nil, false
	}
	parts := strings.Split(rest, b.spec.Split)
	if b.spec.MaxSplits > 0 && len(parts) > b.spec.MaxSplits {
		return nil, false
	}
	return parts, true
}
