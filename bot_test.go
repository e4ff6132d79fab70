package routego_test

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	routego "github.com/prilive-com/routego"
	"github.com/prilive-com/routego/dispatch"
	"github.com/prilive-com/routego/internal/testutil"
	"github.com/prilive-com/routego/receiver"
	"github.com/prilive-com/routego/tg"
)

func TestNew_EmptyToken(t *testing.T) {
	_, err := routego.New("")
	assert.ErrorIs(t, err, receiver.ErrTokenRequired)
}

func TestNew_MalformedToken(t *testing.T) {
	_, err := routego.New("not-a-token")
	assert.ErrorIs(t, err, tg.ErrInvalidToken)
}

func TestNew_WithOptions(t *testing.T) {
	bot, err := routego.New(testutil.TestToken,
		routego.WithPolling(10, 50),
		routego.WithRetries(2),
		routego.WithRateLimit(20, 5),
		routego.WithPollingMaxErrors(3),
		routego.WithAllowedUpdates("message", "callback_query"),
		routego.WithDeleteWebhook(true),
		routego.WithUpdateBufferSize(64),
	)
	require.NoError(t, err)
	defer bot.Close()

	require.NotNil(t, bot.Sender())
	require.NotNil(t, bot.Dispatcher())
}

func TestBot_HandlerRegistration(t *testing.T) {
	bot, err := routego.New(testutil.TestToken)
	require.NoError(t, err)
	defer bot.Close()

	err = bot.OnCommand(dispatch.Command{Commands: []string{"start"}}, func(ctx context.Context, ev *dispatch.CommandEvent) error {
		return nil
	})
	require.NoError(t, err)

	err = bot.OnNewMessage(dispatch.NewMessage{Pattern: "([bad"}, func(ctx context.Context, ev *dispatch.MessageEvent) error {
		return nil
	})
	require.Error(t, err)

	assert.Equal(t, 1, bot.Dispatcher().HandlerCount())
}

func TestBot_EndToEnd_CommandRoundTrip(t *testing.T) {
	var pollCount atomic.Int32

	server := testutil.NewMockServer(t)
	server.On("/bot"+testutil.TestToken+"/getMe", func(w http.ResponseWriter, r *http.Request) {
		testutil.ReplyUser(w)
	})
	server.OnMethod(http.MethodGet, "/bot"+testutil.TestToken+"/getUpdates", func(w http.ResponseWriter, r *http.Request) {
		if pollCount.Add(1) == 1 {
			testutil.ReplyUpdates(w, []map[string]any{
				testutil.MessageUpdateJSON(1, 700, "/start now"),
			})
			return
		}
		testutil.ReplyEmptyUpdates(w)
	})
	server.On("/bot"+testutil.TestToken+"/sendMessage", func(w http.ResponseWriter, r *http.Request) {
		testutil.ReplyMessage(w, 42)
	})

	bot, err := routego.New(testutil.TestToken,
		routego.WithAPIURL(server.BaseURL()),
		routego.WithPolling(1, 100),
		routego.WithRetries(0),
	)
	require.NoError(t, err)
	defer bot.Close()

	var gotArgs atomic.Value
	err = bot.OnCommand(dispatch.Command{Commands: []string{"start"}}, func(ctx context.Context, ev *dispatch.CommandEvent) error {
		gotArgs.Store(ev.Args)
		_, err := ev.Respond(ctx, "welcome")
		return err
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		bot.Start(ctx)
	}()

	// The command lands, the handler replies, the reply reaches the API
	assert.Eventually(t, func() bool {
		args, _ := gotArgs.Load().(string)
		return args == "now"
	}, 3*time.Second, 20*time.Millisecond)

	assert.Eventually(t, func() bool {
		for _, c := range server.Captures() {
			if strings.HasSuffix(c.Path, "/sendMessage") {
				return true
			}
		}
		return false
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("bot did not stop after context cancel")
	}
}

func TestBot_IsHealthy_BeforeStart(t *testing.T) {
	bot, err := routego.New(testutil.TestToken)
	require.NoError(t, err)
	defer bot.Close()

	assert.False(t, bot.IsHealthy())
}
