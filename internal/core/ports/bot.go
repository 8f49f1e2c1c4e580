package ports

import (
	"context"

	"uybor/internal/core/domain"
)

// --- Bot Message Structures ---

// Button represents a single button in a keyboard.
type Button struct {
	Text string
	Data string // For callbacks
	URL  string // For URL buttons
}

// ReplyMarkup represents any kind of keyboard markup.
type ReplyMarkup struct {
	Buttons  [][]Button
	IsInline bool // Differentiates between Inline and Reply keyboards
}

// SendMessageParams holds all possible options for sending a message.
type SendMessageParams struct {
	ChatID         int64
	Text           string
	ParseMode      string // e.g. "HTML"
	ReplyMarkup    *ReplyMarkup
	RemoveKeyboard bool
}

// SendPhotoParams sends a single photo with an optional caption.
type SendPhotoParams struct {
	ChatID      int64
	FileID      string
	Caption     string
	ParseMode   string
	ReplyMarkup *ReplyMarkup
}

// SendMediaGroupParams sends several photos as one album. The caption is
// attached to the first photo.
type SendMediaGroupParams struct {
	ChatID    int64
	FileIDs   []string
	Caption   string
	ParseMode string
}

// EditMessageParams edits an existing message (usually to retire inline
// keyboards after a decision).
type EditMessageParams struct {
	ChatID      int64
	MessageID   int
	Text        string
	ParseMode   string
	ReplyMarkup *ReplyMarkup
}

// AnswerCallbackParams answers a callback query (stops the button spinner).
type AnswerCallbackParams struct {
	CallbackQueryID string
	Text            string
	ShowAlert       bool
}

// --- Bot Client Port (Outbound) ---

// BotClient defines the interface for sending messages to Telegram. Send
// methods return the resulting message id.
type BotClient interface {
	SendMessage(ctx context.Context, params SendMessageParams) (int, error)
	SendPhoto(ctx context.Context, params SendPhotoParams) (int, error)
	SendMediaGroup(ctx context.Context, params SendMediaGroupParams) (int, error)
	EditMessageText(ctx context.Context, params EditMessageParams) error
	AnswerCallbackQuery(ctx context.Context, params AnswerCallbackParams) error
	SetMenuCommands(ctx context.Context) error
}

// --- Bot Handler Port (Inbound) ---

// PhotoInfo describes the largest size of an uploaded photo.
type PhotoInfo struct {
	FileID   string
	FileSize int
}

// BotUpdate represents a simplified, generic update.
type BotUpdate struct {
	MessageID       int
	ChatID          int64
	UserID          int64
	Username        string
	FirstName       string
	LastName        string
	Text            string
	Command         string
	CallbackQueryID string
	CallbackData    *string
	Photo           *PhotoInfo
	MediaGroupID    string
}

// Action is a decoded callback payload: a verb plus its argument. Callback
// data is encoded/decoded by exactly one codec pair so the state machine
// matches on variants, not string prefixes.
type Action struct {
	Verb string
	Arg  string
}

// CommandHandler handles a bot command (e.g. "/start") or a main-menu
// button, which the router resolves to a stable menu key. user is nil when
// the sender has never interacted before.
type CommandHandler interface {
	Command() string
	Handle(ctx context.Context, update *BotUpdate, user *domain.User) error
}

// CallbackHandler handles decoded callback actions for its verb set.
type CallbackHandler interface {
	Verbs() []string
	Handle(ctx context.Context, update *BotUpdate, action Action, user *domain.User) error
}

// MessageHandler is the single free-form message handler; it dispatches on
// the user's conversation step.
type MessageHandler interface {
	Handle(ctx context.Context, update *BotUpdate, user *domain.User) error
}
