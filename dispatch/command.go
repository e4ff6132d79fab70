package dispatch

import (
	"context"
	"strings"

	"github.com/prilive-com/routego/tg"
)

// Command matches bot commands like "/start" or "/ban 12345". Matching
// is case-insensitive on the command name and tolerates an @botname
// suffix addressed to this bot, as group clients append one.
type Command struct {
	// Commands are the names to match, with or without the prefix.
	// At least one is required.
	Commands []string

	// Prefix is the leading marker, "/" when empty.
	Prefix string

	// Incoming, Outgoing, Private, and Public filter direction and
	// chat scope the same way NewMessage does.
	Incoming bool
	Outgoing bool
	Private  bool
	Public   bool

	// OwnerID, when non-zero, restricts the command to one user. A
	// non-owner invocation is silently ignored.
	OwnerID int64
}

type commandBinding struct {
	spec    Command
	prefix  string
	names   map[string]struct{} // lowercased, prefix stripped
	handler func(context.Context, *CommandEvent) error
}

func newCommandBinding(spec Command, handler func(context.Context, *CommandEvent) error) (*commandBinding, error) {
	if handler == nil {
		return nil, tg.NewValidationError("handler", "required")
	}
	if len(spec.Commands) == 0 {
		return nil, tg.NewValidationError("commands", "at least one command required")
	}

	prefix := spec.Prefix
	if prefix == "" {
		prefix = "/"
	}

	names := make(map[string]struct{}, len(spec.Commands))
	for _, c := range spec.Commands {
		name := strings.ToLower(strings.TrimPrefix(c, prefix))
		if name == "" {
			return nil, tg.NewValidationError("commands", "empty command name")
		}
		names[name] = struct{}{}
	}

	return &commandBinding{spec: spec, prefix: prefix, names: names, handler: handler}, nil
}

func (b *commandBinding) kind() Kind    { return KindMessage }
func (b *commandBinding) label() string { return "command" }

func (b *commandBinding) match(d *Dispatcher, v *view) (func(context.Context) error, bool) {
	if !directionOK(b.spec.Incoming, b.spec.Outgoing, v.outgoing) {
		return nil, false
	}
	if !scopeOK(b.spec.Private, b.spec.Public, v.chatType) {
		return nil, false
	}
	if b.spec.OwnerID != 0 && v.senderID != b.spec.OwnerID {
		return nil, false
	}

	name, mention, args, ok := parseCommand(v.content, b.prefix)
	if !ok {
		return nil, false
	}
	if _, ok := b.names[strings.ToLower(name)]; !ok {
		return nil, false
	}
	if mention != "" && d.selfUsername != "" && !strings.EqualFold(mention, d.selfUsername) {
		return nil, false
	}

	ev := &CommandEvent{
		MessageEvent: &MessageEvent{Message: v.msg, client: d.transport},
		Command:      strings.ToLower(name),
		Args:         args,
	}
	return func(ctx context.Context) error { return b.handler(ctx, ev) }, true
}

// parseCommand splits "/name@bot arg tail" into its pieces. ok is false
// when the text does not start with prefix, the name is empty, the name
// contains characters outside [A-Za-z0-9_], or an @ is present with an
// empty mention.
func parseCommand(text, prefix string) (name, mention, args string, ok bool) {
	rest, found := strings.CutPrefix(text, prefix)
	if !found {
		return "", "", "", false
	}

	i := 0
	for i < len(rest) && isCommandChar(rest[i]) {
		i++
	}
	if i == 0 {
		return "", "", "", false
	}
	name, rest = rest[:i], rest[i:]

	if strings.HasPrefix(rest, "@") {
		rest = rest[1:]
		j := 0
		for j < len(rest) && isCommandChar(rest[j]) {
			j++
		}
		if j == 0 {
			return "", "", "", false
		}
		mention, rest = rest[:j], rest[j:]
	}

	// anything other than whitespace glued to the token is not a command
	if rest != "" && !isSpace(rest[0]) {
		return "", "", "", false
	}

	return name, mention, strings.TrimLeft(rest, " \t\r\n"), true
}

func isCommandChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
