package sender_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/routego/internal/testutil"
	"github.com/prilive-com/routego/sender"
	"github.com/prilive-com/routego/tg"
)

func TestAnswerInlineQuery(t *testing.T) {
	server := testutil.NewMockServer(t)
	server.On("/bot"+testutil.TestToken+"/answerInlineQuery", func(w http.ResponseWriter, r *http.Request) {
		testutil.ReplyOK(w, true)
	})

	client := testutil.NewTestClient(t, server.BaseURL())
	err := client.AnswerInlineQuery(context.Background(), sender.AnswerInlineQueryRequest{
		InlineQueryID: "query_123",
		Results: []tg.InlineQueryResult{
			tg.Article("1", "Test", "hi"),
		},
	})
	require.NoError(t, err)

	capture := server.LastCapture()
	require.NotNil(t, capture)
	capture.AssertJSONField(t, "inline_query_id", "query_123")
}

func TestAnswerInlineQuery_EmptyResults(t *testing.T) {
	server := testutil.NewMockServer(t)
	server.On("/bot"+testutil.TestToken+"/answerInlineQuery", func(w http.ResponseWriter, r *http.Request) {
		testutil.ReplyOK(w, true)
	})

	// An empty result set is a valid answer: it clears the panel
	client := testutil.NewTestClient(t, server.BaseURL())
	err := client.AnswerInlineQuery(context.Background(), sender.AnswerInlineQueryRequest{
		InlineQueryID: "query_123",
	})
	require.NoError(t, err)

	capture := server.LastCapture()
	require.NotNil(t, capture)
	capture.AssertJSONFieldExists(t, "results")
}

func TestAnswerInlineQuery_Validation(t *testing.T) {
	server := testutil.NewMockServer(t)
	client := testutil.NewTestClient(t, server.BaseURL())

	err := client.AnswerInlineQuery(context.Background(), sender.AnswerInlineQueryRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inline_query_id")
	assert.Equal(t, 0, server.CaptureCount())
}

func TestAnswerInlineQuery_Options(t *testing.T) {
	server := testutil.NewMockServer(t)
	server.On("/bot"+testutil.TestToken+"/answerInlineQuery", func(w http.ResponseWriter, r *http.Request) {
		testutil.ReplyOK(w, true)
	})

	client := testutil.NewTestClient(t, server.BaseURL())

	req := sender.AnswerInlineQueryRequest{
		InlineQueryID: "query_123",
		Results: []tg.InlineQueryResult{
			tg.Article("1", "Test", "hi"),
		},
	}
	for _, opt := range []sender.InlineOption{
		sender.WithCacheTime(30),
		sender.Personal(),
		sender.WithNextOffset("page2"),
	} {
		opt(&req)
	}

	err := client.AnswerInlineQuery(context.Background(), req)
	require.NoError(t, err)

	capture := server.LastCapture()
	require.NotNil(t, capture)
	capture.AssertJSONField(t, "cache_time", float64(30))
	capture.AssertJSONField(t, "is_personal", true)
	capture.AssertJSONField(t, "next_offset", "page2")
}
