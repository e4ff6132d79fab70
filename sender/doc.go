// Package sender provides the outbound Telegram Bot API client.
//
// The client wraps every call with global and per-chat rate limiting,
// a circuit breaker, and retry with exponential backoff that honors
// Telegram's retry_after hints. It exposes the message, callback, and
// inline-query methods the dispatch layer acts through.
//
// Basic usage:
//
//	client, err := sender.New(token)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	msg, err := client.SendMessage(ctx, sender.SendMessageRequest{
//	    ChatID: chatID,
//	    Text:   "hello",
//	})
package sender
