package tg

// InlineQueryResult represents one result of an inline query.
// Telegram has 20+ result types; the article variant covers the common
// text-answer case and anything else can be supplied as a custom type
// implementing this interface.
type InlineQueryResult interface {
	inlineQueryResultTag()
	GetType() string
}

// InlineQueryResultArticle represents a link to an article or web page.
type InlineQueryResultArticle struct {
	Type                string                `json:"type"` // Always "article"
	ID                  string                `json:"id"`
	Title               string                `json:"title"`
	InputMessageContent InputMessageContent   `json:"input_message_content"`
	ReplyMarkup         *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
	URL                 string                `json:"url,omitempty"`
	Description         string                `json:"description,omitempty"`
	ThumbnailURL        string                `json:"thumbnail_url,omitempty"`
}

func (InlineQueryResultArticle) inlineQueryResultTag() {}
func (InlineQueryResultArticle) GetType() string       { return "article" }

// Article builds a text-answer inline result, the most common kind.
func Article(id, title, text string) InlineQueryResultArticle {
	return InlineQueryResultArticle{
		Type:                "article",
		ID:                  id,
		Title:               title,
		InputMessageContent: InputTextMessageContent{MessageText: text},
	}
}

// InputMessageContent represents the content of a message to be sent
// as a result of an inline query.
type InputMessageContent interface {
	inputMessageContentTag()
}

// InputTextMessageContent represents text content for an inline query result.
type InputTextMessageContent struct {
	MessageText string          `json:"message_text"`
	ParseMode   string          `json:"parse_mode,omitempty"`
	Entities    []MessageEntity `json:"entities,omitempty"`
}

func (InputTextMessageContent) inputMessageContentTag() {}
