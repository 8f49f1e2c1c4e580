package messages

import "uybor/internal/core/ports"

// Builder helps construct complex SendMessageParams.
type Builder struct {
	params ports.SendMessageParams
}

// NewBuilder creates a new message builder. Plain text by default; listing
// cards opt into HTML where needed.
func NewBuilder(chatID int64) *Builder {
	return &Builder{
		params: ports.SendMessageParams{
			ChatID: chatID,
		},
	}
}

// WithText sets the message text.
func (b *Builder) WithText(text string) *Builder {
	b.params.Text = text
	return b
}

// WithHTML switches the message to HTML parse mode.
func (b *Builder) WithHTML() *Builder {
	b.params.ParseMode = "HTML"
	return b
}

// WithRemoveKeyboard adds a flag to remove the reply keyboard.
func (b *Builder) WithRemoveKeyboard() *Builder {
	b.params.RemoveKeyboard = true
	b.params.ReplyMarkup = nil
	return b
}

// WithInlineButtons adds a set of inline buttons.
func (b *Builder) WithInlineButtons(buttons [][]ports.Button) *Builder {
	b.params.RemoveKeyboard = false
	b.params.ReplyMarkup = &ports.ReplyMarkup{
		IsInline: true,
		Buttons:  buttons,
	}
	return b
}

// WithInlineGrid arranges buttons into rows of the given width. Used for
// region and district pickers, which come as flat localized lists.
func (b *Builder) WithInlineGrid(buttons []ports.Button, columns int) *Builder {
	if columns < 1 {
		columns = 1
	}
	var rows [][]ports.Button
	for len(buttons) > columns {
		rows = append(rows, buttons[:columns])
		buttons = buttons[columns:]
	}
	if len(buttons) > 0 {
		rows = append(rows, buttons)
	}
	return b.WithInlineButtons(rows)
}

// WithReplyButtons adds a persistent reply keyboard with the given rows.
func (b *Builder) WithReplyButtons(rows [][]string) *Builder {
	var buttons [][]ports.Button
	for _, row := range rows {
		var btnRow []ports.Button
		for _, text := range row {
			btnRow = append(btnRow, ports.Button{Text: text})
		}
		buttons = append(buttons, btnRow)
	}

	b.params.RemoveKeyboard = false
	b.params.ReplyMarkup = &ports.ReplyMarkup{
		IsInline: false,
		Buttons:  buttons,
	}
	return b
}

// Build returns the final SendMessageParams struct.
func (b *Builder) Build() ports.SendMessageParams {
	return b.params
}
