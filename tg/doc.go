// Package tg provides core Telegram types shared by the receiver, sender,
// and dispatch packages.
//
// This package contains:
//   - The incoming update types the dispatch layer routes on
//     (Message, CallbackQuery, InlineQuery)
//   - Error types and sentinel errors
//   - SecretToken for safe token handling
//   - Keyboard and inline-result builders
//
// # Usage
//
//	import "github.com/prilive-com/routego/tg"
//
//	var msg tg.Message
//	var err tg.APIError
//	token := tg.SecretToken("123:ABC...")
package tg
