package dispatch

import "github.com/prilive-com/routego/tg"

// Kind tags the update kinds the dispatcher routes on.
type Kind int

const (
	KindMessage Kind = iota + 1
	KindCallback
	KindInline
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindCallback:
		return "callback_query"
	case KindInline:
		return "inline_query"
	default:
		return "unknown"
	}
}

// view is the normalized, kind-tagged projection of a raw update that
// matchers test against. It borrows from the update for one dispatch
// pass and is never retained.
type view struct {
	kind     Kind
	senderID int64
	chatID   int64
	content  string // message text, callback payload, or query text

	// message kind
	msg      *tg.Message
	chatType tg.ChatType
	outgoing bool

	// callback kind
	callback *tg.CallbackQuery

	// inline kind
	inline *tg.InlineQuery
}

// normalize projects a raw update into the matcher view. The second
// return is false for update kinds this layer does not route (edits,
// chosen inline results, and anything newer).
func (d *Dispatcher) normalize(u *tg.Update) (view, bool) {
	switch {
	case u.Message != nil:
		return d.messageView(u.Message), true
	case u.ChannelPost != nil:
		return d.messageView(u.ChannelPost), true
	case u.CallbackQuery != nil:
		cb := u.CallbackQuery
		return view{
			kind:     KindCallback,
			senderID: cb.SenderID(),
			chatID:   cb.ChatID(),
			content:  cb.Data,
			callback: cb,
		}, true
	case u.InlineQuery != nil:
		iq := u.InlineQuery
		return view{
			kind:     KindInline,
			senderID: iq.SenderID(),
			chatID:   iq.SenderID(), // inline queries have no chat yet
			content:  iq.Query,
			inline:   iq,
		}, true
	default:
		return view{}, false
	}
}

func (d *Dispatcher) messageView(m *tg.Message) view {
	senderID := m.SenderID()
	return view{
		kind:     KindMessage,
		senderID: senderID,
		chatID:   chatIDOf(m),
		content:  m.Text,
		msg:      m,
		chatType: m.ChatType(),
		outgoing: d.selfID != 0 && senderID == d.selfID,
	}
}

func chatIDOf(m *tg.Message) int64 {
	if m.Chat == nil {
		return 0
	}
	return m.Chat.ID
}
