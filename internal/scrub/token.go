// Package scrub removes bot tokens from error text before it reaches logs.
package scrub

import (
	"strings"

	"github.com/prilive-com/routego/tg"
)

// TokenFromError replaces the bot token in an error's message with
// [REDACTED]. http.Client.Do reports the request URL, token included, in
// its error strings. The error chain stays intact for errors.Is/As.
func TokenFromError(err error, token tg.SecretToken) error {
	if err == nil {
		return nil
	}
	tokenVal := token.Value()
	if tokenVal == "" {
		return err
	}
	msg := err.Error()
	if strings.Contains(msg, tokenVal) {
		return &scrubbedError{
			msg: strings.ReplaceAll(msg, tokenVal, "[REDACTED]"),
			err: err,
		}
	}
	return err
}

type scrubbedError struct {
	msg string
	err error
}

func (e *scrubbedError) Error() string { return e.msg }
func (e *scrubbedError) Unwrap() error { return e.err }
