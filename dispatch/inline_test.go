package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/routego/tg"
)

func TestInlineQuery_Match(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		query   string
		wantHit bool
	}{
		{"empty pattern matches anything", "", "search terms", true},
		{"empty pattern matches empty query", "", "", true},
		{"pattern matches", `^\d+$`, "12345", true},
		{"pattern rejects", `^\d+$`, "abc", false},
		{"unanchored substring", "gif", "funny gif please", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDispatcher(t)

			var got *InlineEvent
			require.NoError(t, d.OnInline(InlineQuery{Pattern: tt.pattern}, func(_ context.Context, ev *InlineEvent) error {
				got = ev
				return nil
			}))

			u := inlineUpdate(1, 7, tt.query)
			d.Dispatch(context.Background(), &u)

			if !tt.wantHit {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.query, got.Text())
			assert.Equal(t, int64(7), got.SenderID())
		})
	}
}

func TestInlineQuery_MalformedPatternFailsFast(t *testing.T) {
	d := newTestDispatcher(t)

	err := d.OnInline(InlineQuery{Pattern: "(("}, func(_ context.Context, _ *InlineEvent) error { return nil })
	require.Error(t, err)

	var verr *tg.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, d.HandlerCount())
}

func TestInlineEvent_AnswerOnce(t *testing.T) {
	transport := &recordingTransport{}
	d := newTestDispatcher(t, WithTransport(transport))

	results := []tg.InlineQueryResult{
		tg.Article("1", "First", "first result"),
	}

	require.NoError(t, d.OnInline(InlineQuery{}, func(ctx context.Context, ev *InlineEvent) error {
		if err := ev.Answer(ctx, results); err != nil {
			return err
		}
		// Second answer is a no-op, not an API error.
		return ev.Answer(ctx, results)
	}))

	u := inlineUpdate(1, 7, "query")
	d.Dispatch(context.Background(), &u)

	require.Len(t, transport.inline, 1)
	assert.Equal(t, "iq-1", transport.inline[0].InlineQueryID)
	assert.Len(t, transport.inline[0].Results, 1)
}
