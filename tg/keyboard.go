package tg

import (
	"encoding/json"
	"iter"
	"strconv"
)

// InlineKeyboardMarkup represents an inline keyboard attached to a message.
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// InlineKeyboardButton represents a button in an inline keyboard.
type InlineKeyboardButton struct {
	Text                         string `json:"text"`
	URL                          string `json:"url,omitempty"`
	CallbackData                 string `json:"callback_data,omitempty"`
	SwitchInlineQuery            string `json:"switch_inline_query,omitempty"`
	SwitchInlineQueryCurrentChat string `json:"switch_inline_query_current_chat,omitempty"`
}

// Button constructors

// Btn creates a callback button (most common type).
func Btn(text, callbackData string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, CallbackData: callbackData}
}

// BtnURL creates a URL button.
func BtnURL(text, url string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, URL: url}
}

// BtnSwitch creates an inline query switch button.
func BtnSwitch(text, query string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, SwitchInlineQuery: query}
}

// BtnSwitchCurrent creates an inline query switch button for the current chat.
func BtnSwitchCurrent(text, query string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, SwitchInlineQueryCurrentChat: query}
}

// Keyboard builds inline keyboards fluently.
type Keyboard struct {
	rows [][]InlineKeyboardButton
}

// NewKeyboard creates a new keyboard builder.
func NewKeyboard() *Keyboard {
	return &Keyboard{rows: make([][]InlineKeyboardButton, 0, 4)}
}

// Row adds a row of buttons.
func (k *Keyboard) Row(buttons ...InlineKeyboardButton) *Keyboard {
	if len(buttons) > 0 {
		k.rows = append(k.rows, buttons)
	}
	return k
}

// Add appends buttons to the last row, starting one if the keyboard is empty.
func (k *Keyboard) Add(buttons ...InlineKeyboardButton) *Keyboard {
	if len(buttons) == 0 {
		return k
	}
	if len(k.rows) == 0 {
		k.rows = append(k.rows, buttons)
		return k
	}
	last := len(k.rows) - 1
	k.rows[last] = append(k.rows[last], buttons...)
	return k
}

// Build returns the completed InlineKeyboardMarkup.
func (k *Keyboard) Build() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: k.rows}
}

// Inline is an alias for Build.
func (k *Keyboard) Inline() *InlineKeyboardMarkup {
	return k.Build()
}

// Empty reports whether the keyboard has no rows.
func (k *Keyboard) Empty() bool {
	return len(k.rows) == 0
}

// RowCount returns the number of rows added so far.
func (k *Keyboard) RowCount() int {
	return len(k.rows)
}

// Rows iterates over the keyboard's rows.
func (k *Keyboard) Rows() iter.Seq[[]InlineKeyboardButton] {
	return func(yield func([]InlineKeyboardButton) bool) {
		for _, row := range k.rows {
			if !yield(row) {
				return
			}
		}
	}
}

// AllButtons iterates over every button in row order.
func (k *Keyboard) AllButtons() iter.Seq[InlineKeyboardButton] {
	return func(yield func(InlineKeyboardButton) bool) {
		for _, row := range k.rows {
			for _, btn := range row {
				if !yield(btn) {
					return
				}
			}
		}
	}
}

// MarshalJSON marshals the builder as its completed markup.
func (k *Keyboard) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.Build())
}

// Quick keyboard builders

// InlineKeyboard creates a keyboard from rows of buttons.
func InlineKeyboard(rows ...[]InlineKeyboardButton) *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

// Row creates a row of buttons (for use with InlineKeyboard).
func Row(buttons ...InlineKeyboardButton) []InlineKeyboardButton {
	return buttons
}

// Pagination creates a pagination keyboard whose callback data follows the
// "prefix:page" convention, pairing with a split-rule callback registration.
func Pagination(current, total int, prefix string) *InlineKeyboardMarkup {
	var buttons []InlineKeyboardButton

	if current > 1 {
		buttons = append(buttons, Btn("« Prev", prefix+":"+strconv.Itoa(current-1)))
	}

	buttons = append(buttons, Btn(strconv.Itoa(current)+"/"+strconv.Itoa(total), prefix+":current"))

	if current < total {
		buttons = append(buttons, Btn("Next »", prefix+":"+strconv.Itoa(current+1)))
	}

	return NewKeyboard().Row(buttons...).Build()
}

// Confirm creates a Yes/No confirmation keyboard.
func Confirm(yesData, noData string) *InlineKeyboardMarkup {
	return ConfirmCustom("Yes", yesData, "No", noData)
}

// ConfirmCustom creates a two-button confirmation keyboard with custom labels.
func ConfirmCustom(yesLabel, yesData, noLabel, noData string) *InlineKeyboardMarkup {
	return NewKeyboard().
		Row(Btn(yesLabel, yesData), Btn(noLabel, noData)).
		Build()
}

// Grid lays items out as buttons in rows of cols columns.
func Grid[T any](items []T, cols int, fn func(T) InlineKeyboardButton) *InlineKeyboardMarkup {
	if cols < 1 {
		cols = 1
	}
	k := NewKeyboard()
	var row []InlineKeyboardButton
	for _, item := range items {
		row = append(row, fn(item))
		if len(row) == cols {
			k.Row(row...)
			row = nil
		}
	}
	if len(row) > 0 {
		k.Row(row...)
	}
	return k.Build()
}
