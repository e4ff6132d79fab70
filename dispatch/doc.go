// Package dispatch matches incoming Telegram updates against registered
// handlers and invokes the first registration that matches.
//
// Four matcher kinds are supported:
//
//   - NewMessage: free-text messages, optionally filtered by a regular
//     expression, direction (incoming/outgoing), and chat scope.
//   - Command: prefix commands such as "/start arg1 arg2", with
//     case-insensitive name sets, @botusername stripping, chat-scope and
//     owner restrictions.
//   - CallbackQuery: inline-button payloads, matched exactly or by a
//     prefix + split rule so one registration can serve a callback-data
//     namespace ("panel/first", "panel/second", ...).
//   - InlineQuery: inline queries, optionally filtered by a pattern.
//
// Registrations are evaluated in registration order for each update and
// the first match wins. Before any matching, every update passes a spam
// gate: a bounded LRU cache of recently seen fingerprints with a sliding
// TTL window that silently drops bursts of identical activity.
//
// Updates are processed concurrently, one goroutine per update (or a
// sized worker pool), so handlers must not assume serialized delivery.
// A handler error or panic is contained, logged, and never affects other
// updates.
//
// Text patterns use Go's regexp package (RE2 syntax). Patterns are not
// anchored; authors anchor with ^ and $ as needed. Case sensitivity is
// as authored.
//
//	d, err := dispatch.New(dispatch.DefaultConfig(),
//		dispatch.WithTransport(client),
//	)
//	err = d.OnCommand(dispatch.Command{Commands: []string{"start"}},
//		func(ctx context.Context, ev *dispatch.CommandEvent) error {
//			_, err := ev.Respond(ctx, "hello "+ev.Args)
//			return err
//		})
//	err = d.Run(ctx, updates)
package dispatch
