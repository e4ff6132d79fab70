package receiver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/routego/receiver"
	"github.com/prilive-com/routego/tg"
)

func TestDeleteWebhook_Success(t *testing.T) {
	var capturedPath string
	var capturedQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": true})
	}))
	defer server.Close()

	err := receiver.DeleteWebhook(context.Background(), server.Client(), server.URL+"/bot", tg.SecretToken("test:token"), true)
	require.NoError(t, err)

	assert.Equal(t, "/bottest:token/deleteWebhook", capturedPath)
	assert.Contains(t, capturedQuery, "drop_pending_updates=true")
}

func TestDeleteWebhook_NoDropPending(t *testing.T) {
	var capturedQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": true})
	}))
	defer server.Close()

	err := receiver.DeleteWebhook(context.Background(), server.Client(), server.URL+"/bot", tg.SecretToken("test:token"), false)
	require.NoError(t, err)

	assert.Contains(t, capturedQuery, "drop_pending_updates=false")
}

func TestDeleteWebhook_TelegramError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"ok":          false,
			"error_code":  401,
			"description": "Unauthorized",
		})
	}))
	defer server.Close()

	err := receiver.DeleteWebhook(context.Background(), server.Client(), server.URL+"/bot", tg.SecretToken("bad:token"), false)
	require.Error(t, err)

	var apiErr *receiver.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Code)
	assert.Equal(t, "Unauthorized", apiErr.Description)
}

func TestDeleteWebhook_NilClient_UsesDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": true})
	}))
	defer server.Close()

	err := receiver.DeleteWebhook(context.Background(), nil, server.URL+"/bot", tg.SecretToken("test:token"), false)
	require.NoError(t, err)
}

func TestDeleteWebhook_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": true})
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := receiver.DeleteWebhook(ctx, server.Client(), server.URL+"/bot", tg.SecretToken("test:token"), false)
	require.Error(t, err)
}
