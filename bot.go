package routego

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prilive-com/routego/dispatch"
	"github.com/prilive-com/routego/receiver"
	"github.com/prilive-com/routego/sender"
	"github.com/prilive-com/routego/tg"
)

// Bot wires the long-polling receiver, the update dispatcher, and the
// sending client into one unit. Register handlers, then Start.
type Bot struct {
	token      tg.SecretToken
	logger     *slog.Logger
	sender     *sender.Client
	receiver   *receiver.PollingClient
	dispatcher *dispatch.Dispatcher
	updates    chan tg.Update
}

type botConfig struct {
	pollingTimeout   int
	pollingLimit     int
	pollingMaxErrors int
	deleteWebhook    bool
	allowedUpdates   []string
	updateBufferSize int

	senderConfig   sender.Config
	receiverConfig receiver.Config
	dispatchConfig dispatch.Config

	logger *slog.Logger
}

// Option configures the Bot.
type Option func(*botConfig)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *botConfig) {
		c.logger = logger
	}
}

// WithPolling sets the long-polling timeout (seconds) and batch limit.
func WithPolling(timeout, limit int) Option {
	return func(c *botConfig) {
		c.pollingTimeout = timeout
		c.pollingLimit = limit
	}
}

// WithRetries sets max retry attempts for outbound calls.
func WithRetries(max int) Option {
	return func(c *botConfig) {
		c.senderConfig.MaxRetries = max
	}
}

// WithRateLimit sets outbound rate limiting.
func WithRateLimit(globalRPS float64, burst int) Option {
	return func(c *botConfig) {
		c.senderConfig.GlobalRPS = globalRPS
		c.senderConfig.GlobalBurst = burst
	}
}

// WithPollingMaxErrors sets max consecutive polling errors before stopping.
func WithPollingMaxErrors(max int) Option {
	return func(c *botConfig) {
		c.pollingMaxErrors = max
	}
}

// WithAllowedUpdates filters which update types Telegram delivers.
func WithAllowedUpdates(types ...string) Option {
	return func(c *botConfig) {
		c.allowedUpdates = types
	}
}

// WithDeleteWebhook deletes any leftover webhook before polling starts.
func WithDeleteWebhook(delete bool) Option {
	return func(c *botConfig) {
		c.deleteWebhook = delete
	}
}

// WithUpdateBufferSize sets the updates channel buffer size.
func WithUpdateBufferSize(size int) Option {
	return func(c *botConfig) {
		c.updateBufferSize = size
	}
}

// WithAPIURL points the bot at a different API base URL, e.g. a local
// Bot API server.
func WithAPIURL(url string) Option {
	return func(c *botConfig) {
		c.senderConfig.BaseURL = url
		c.receiverConfig.BaseURL = url + "/bot"
	}
}

// WithDispatchConfig replaces the dispatcher configuration, covering
// the duplicate-suppression window and the worker pool size.
func WithDispatchConfig(cfg dispatch.Config) Option {
	return func(c *botConfig) {
		c.dispatchConfig = cfg
	}
}

// New creates a Bot from a token and options.
func New(token string, opts ...Option) (*Bot, error) {
	if token == "" {
		return nil, receiver.ErrTokenRequired
	}

	cfg := botConfig{
		pollingTimeout:   30,
		pollingLimit:     100,
		pollingMaxErrors: 10,
		updateBufferSize: 100,
		senderConfig:     sender.DefaultConfig(),
		receiverConfig:   receiver.DefaultConfig(),
		dispatchConfig:   dispatch.DefaultConfig(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	secretToken := tg.SecretToken(token)
	cfg.senderConfig.Token = secretToken
	cfg.receiverConfig.Token = secretToken
	cfg.receiverConfig.PollingTimeout = cfg.pollingTimeout
	cfg.receiverConfig.PollingLimit = cfg.pollingLimit
	cfg.receiverConfig.PollingMaxErrors = cfg.pollingMaxErrors
	cfg.receiverConfig.DeleteWebhookFirst = cfg.deleteWebhook
	cfg.receiverConfig.AllowedUpdates = cfg.allowedUpdates

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	senderClient, err := sender.NewFromConfig(cfg.senderConfig, sender.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	dispatcher, err := dispatch.New(cfg.dispatchConfig,
		dispatch.WithLogger(logger),
		dispatch.WithTransport(senderClient),
	)
	if err != nil {
		senderClient.Close()
		return nil, err
	}

	updates := make(chan tg.Update, cfg.updateBufferSize)

	bot := &Bot{
		token:      secretToken,
		logger:     logger,
		sender:     senderClient,
		dispatcher: dispatcher,
		updates:    updates,
	}

	bot.receiver = receiver.NewPollingClient(
		secretToken,
		updates,
		logger,
		cfg.receiverConfig,
	)

	return bot, nil
}

// OnNewMessage registers a handler for plain messages.
func (b *Bot) OnNewMessage(spec dispatch.NewMessage, handler func(context.Context, *dispatch.MessageEvent) error) error {
	return b.dispatcher.OnNewMessage(spec, handler)
}

// OnCommand registers a handler for bot commands.
func (b *Bot) OnCommand(spec dispatch.Command, handler func(context.Context, *dispatch.CommandEvent) error) error {
	return b.dispatcher.OnCommand(spec, handler)
}

// OnCallback registers a handler for callback queries.
func (b *Bot) OnCallback(spec dispatch.CallbackQuery, handler func(context.Context, *dispatch.CallbackEvent) error) error {
	return b.dispatcher.OnCallback(spec, handler)
}

// OnInline registers a handler for inline queries.
func (b *Bot) OnInline(spec dispatch.InlineQuery, handler func(context.Context, *dispatch.InlineEvent) error) error {
	return b.dispatcher.OnInline(spec, handler)
}

// Start resolves the bot identity, begins polling, and dispatches
// updates until ctx is cancelled. It blocks; run it from a goroutine
// if the caller has other work.
func (b *Bot) Start(ctx context.Context) error {
	me, err := b.sender.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("resolve bot identity: %w", err)
	}
	b.dispatcher.SetSelf(me.ID, me.Username)
	b.logger.Info("bot identity resolved", "id", me.ID, "username", me.Username)

	if err := b.receiver.Start(ctx); err != nil {
		return err
	}
	defer b.receiver.Stop()

	return b.dispatcher.Run(ctx, b.updates)
}

// Stop halts polling. In-flight handlers finish via Start's Run return.
func (b *Bot) Stop() {
	b.receiver.Stop()
}

// Close releases all resources.
func (b *Bot) Close() error {
	b.Stop()
	return b.sender.Close()
}

// IsHealthy reports receiver health for liveness probes.
func (b *Bot) IsHealthy() bool {
	return b.receiver.IsHealthy()
}

// SendMessage sends a text message outside of any handler context.
func (b *Bot) SendMessage(ctx context.Context, chatID tg.ChatID, text string, opts ...sender.SendOption) (*tg.Message, error) {
	req := sender.SendMessageRequest{
		ChatID: chatID,
		Text:   text,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return b.sender.SendMessage(ctx, req)
}

// Edit edits a message text.
func (b *Bot) Edit(ctx context.Context, e tg.Editable, text string, opts ...sender.EditOption) (*tg.Message, error) {
	return b.sender.Edit(ctx, e, text, opts...)
}

// Delete deletes a message.
func (b *Bot) Delete(ctx context.Context, e tg.Editable) error {
	return b.sender.Delete(ctx, e)
}

// Answer answers a callback query.
func (b *Bot) Answer(ctx context.Context, cb *tg.CallbackQuery, opts ...sender.AnswerOption) error {
	return b.sender.Answer(ctx, cb, opts...)
}

// Acknowledge silently acknowledges a callback query.
func (b *Bot) Acknowledge(ctx context.Context, cb *tg.CallbackQuery) error {
	return b.sender.Acknowledge(ctx, cb)
}

// Sender returns the underlying sending client for advanced usage.
func (b *Bot) Sender() *sender.Client {
	return b.sender
}

// Dispatcher returns the underlying dispatcher for advanced usage.
func (b *Bot) Dispatcher() *dispatch.Dispatcher {
	return b.dispatcher
}
