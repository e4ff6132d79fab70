// Package routego routes Telegram updates to handlers.
//
// It combines three layers: a long-polling receiver that pulls updates,
// a dispatcher that matches each update against registered handlers and
// suppresses rapid duplicates, and a sending client with retries, rate
// limits, and a circuit breaker.
//
//	bot, err := routego.New(token,
//	    routego.WithPolling(30, 100),
//	    routego.WithRetries(3),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bot.Close()
//
//	bot.OnCommand(dispatch.Command{Commands: []string{"start"}}, func(ctx context.Context, ev *dispatch.CommandEvent) error {
//	    _, err := ev.Respond(ctx, "hello")
//	    return err
//	})
//
//	if err := bot.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Packages
//
// Use the subpackages directly for finer control:
//
//	import "github.com/prilive-com/routego/dispatch" // matching and dispatch
//	import "github.com/prilive-com/routego/receiver" // long polling
//	import "github.com/prilive-com/routego/sender"   // outbound API calls
//	import "github.com/prilive-com/routego/tg"       // shared types
package routego
