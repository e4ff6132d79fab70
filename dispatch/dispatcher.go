package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prilive-com/routego/tg"
)

// binding is a compiled matcher spec bound to its handler.
type binding interface {
	kind() Kind
	label() string
	match(d *Dispatcher, v *view) (func(context.Context) error, bool)
}

// Dispatcher routes incoming updates to registered handlers. Handlers
// are tried in registration order and the first match wins; updates
// that look like rapid duplicates are dropped before matching.
//
// Registration is not safe concurrently with Run; register everything
// first, then start.
type Dispatcher struct {
	cfg       Config
	logger    *slog.Logger
	transport Transport
	gate      *gate

	selfID       int64
	selfUsername string

	now     func() time.Time
	errHook func(*tg.Update, error)

	mu       sync.RWMutex
	bindings []binding
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithTransport sets the outbound client events use to reply, edit,
// and answer. Without one, handlers still run but event helpers fail.
func WithTransport(t Transport) Option {
	return func(d *Dispatcher) {
		d.transport = t
	}
}

// WithSelf identifies the bot's own account. The ID drives the
// Incoming/Outgoing distinction; the username (without @) lets Command
// reject "/cmd@otherbot" addressed elsewhere.
func WithSelf(id int64, username string) Option {
	return func(d *Dispatcher) {
		d.selfID = id
		d.selfUsername = username
	}
}

// WithClock overrides the time source for the duplicate gate.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// WithErrorHook installs a callback invoked after a handler returns an
// error or panics. The update that triggered the handler is passed
// alongside. The hook runs on the dispatching goroutine.
func WithErrorHook(hook func(*tg.Update, error)) Option {
	return func(d *Dispatcher) {
		d.errHook = hook
	}
}

// New creates a Dispatcher with the given configuration.
func New(cfg Config, opts ...Option) (*Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &Dispatcher{
		cfg:    cfg,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	if !cfg.SpamDisabled {
		d.gate = newGate(cfg.SpamTTL, cfg.SpamMaxEntries, d.now)
	}
	return d, nil
}

// OnNewMessage registers a handler for plain messages matching spec.
// Returns a *tg.ValidationError for an invalid pattern.
func (d *Dispatcher) OnNewMessage(spec NewMessage, handler func(context.Context, *MessageEvent) error) error {
	b, err := newNewMessageBinding(spec, handler)
	if err != nil {
		return err
	}
	d.register(b)
	return nil
}

// OnCommand registers a handler for bot commands matching spec.
func (d *Dispatcher) OnCommand(spec Command, handler func(context.Context, *CommandEvent) error) error {
	b, err := newCommandBinding(spec, handler)
	if err != nil {
		return err
	}
	d.register(b)
	return nil
}

// OnCallback registers a handler for callback queries matching spec.
func (d *Dispatcher) OnCallback(spec CallbackQuery, handler func(context.Context, *CallbackEvent) error) error {
	b, err := newCallbackBinding(spec, handler)
	if err != nil {
		return err
	}
	d.register(b)
	return nil
}

// OnInline registers a handler for inline queries matching spec.
func (d *Dispatcher) OnInline(spec InlineQuery, handler func(context.Context, *InlineEvent) error) error {
	b, err := newInlineBinding(spec, handler)
	if err != nil {
		return err
	}
	d.register(b)
	return nil
}

// SetSelf records the bot's own identity after the fact, for callers
// that learn it from getMe at startup. Call before Run.
func (d *Dispatcher) SetSelf(id int64, username string) {
	d.selfID = id
	d.selfUsername = username
}

func (d *Dispatcher) register(b binding) {
	d.mu.Lock()
	d.bindings = append(d.bindings, b)
	d.mu.Unlock()
}

// HandlerCount returns the number of registered handlers.
func (d *Dispatcher) HandlerCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.bindings)
}

// Run consumes updates until ctx is cancelled or the channel closes.
// Each update is handled on its own goroutine; PoolSize > 0 caps how
// many run at once, with intake blocking when the pool is full. Run
// waits for in-flight handlers before returning.
func (d *Dispatcher) Run(ctx context.Context, updates <-chan tg.Update) error {
	var sem chan struct{}
	if d.cfg.PoolSize > 0 {
		sem = make(chan struct{}, d.cfg.PoolSize)
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	d.logger.Info("dispatcher started",
		"handlers", d.HandlerCount(),
		"pool_size", d.cfg.PoolSize,
		"spam_gate", !d.cfg.SpamDisabled)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("dispatcher stopped: context cancelled")
			return ctx.Err()
		case u, ok := <-updates:
			if !ok {
				d.logger.Info("dispatcher stopped: updates channel closed")
				return nil
			}
			if sem != nil {
				select {
				case sem <- struct{}{}:
				case <-ctx.Done():
					d.logger.Info("dispatcher stopped: context cancelled")
					return ctx.Err()
				}
			}
			wg.Go(func() {
				if sem != nil {
					defer func() { <-sem }()
				}
				d.Dispatch(ctx, &u)
			})
		}
	}
}

// Dispatch routes a single update synchronously. It is what Run calls
// per update; call it directly when updates arrive by other means.
func (d *Dispatcher) Dispatch(ctx context.Context, u *tg.Update) {
	v, ok := d.normalize(u)
	if !ok {
		d.logger.Debug("update ignored: unrouted kind", "update_id", u.UpdateID)
		return
	}

	if d.gate != nil {
		fp := fingerprint{
			sender:  v.senderID,
			chat:    v.chatID,
			kind:    v.kind,
			content: v.content,
		}
		if d.gate.shouldSuppress(fp.key(d.cfg.SpamGranularity)) {
			d.logger.Debug("update suppressed: duplicate burst",
				"update_id", u.UpdateID,
				"kind", v.kind.String(),
				"sender_id", v.senderID)
			return
		}
	}

	d.mu.RLock()
	bindings := d.bindings
	d.mu.RUnlock()

	for _, b := range bindings {
		if b.kind() != v.kind {
			continue
		}
		task, ok := b.match(d, &v)
		if !ok {
			continue
		}
		d.invoke(ctx, u, b, task)
		return
	}

	d.logger.Debug("update dropped: no matching handler",
		"update_id", u.UpdateID,
		"kind", v.kind.String())
}

// invoke runs one handler, containing errors and panics so a bad
// handler cannot take the dispatcher down.
func (d *Dispatcher) invoke(ctx context.Context, u *tg.Update, b binding, task func(context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("handler panic: %v", r)
			d.logger.Error("handler panicked",
				"update_id", u.UpdateID,
				"matcher", b.label(),
				"panic", r)
			if d.errHook != nil {
				d.errHook(u, err)
			}
		}
	}()

	if err := task(ctx); err != nil {
		d.logger.Error("handler failed",
			"update_id", u.UpdateID,
			"matcher", b.label(),
			"error", err)
		if d.errHook != nil {
			d.errHook(u, err)
		}
	}
}
