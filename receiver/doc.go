// Package receiver pulls updates from Telegram via getUpdates long polling
// and delivers them to an update channel.
//
//	updates := make(chan tg.Update, 100)
//	client := receiver.NewPollingClient(token, updates, logger, receiver.DefaultConfig())
//	if err := client.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Stop()
//
// # Features
//
//   - Circuit breaker around the Telegram API
//   - Exponential backoff with jitter on fetch errors
//   - Configurable delivery policy when the update channel is full
//   - Health probe via IsHealthy
//   - Graceful shutdown, restartable after Stop
package receiver
