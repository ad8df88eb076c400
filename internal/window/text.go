package window

import "strings"

// Text displays a static body
type Text struct {
	Base
	body string
}

// NewText creates a text window body
func NewText(name, body string) *Text {
	return &Text{
		Base: NewBase(name),
		body: body,
	}
}

// SetBody replaces the text
func (t *Text) SetBody(body string) {
	t.body = body
}

// View renders the text
func (t *Text) View(width, height int) string {
	return fit(strings.Split(t.body, "\n"), width, height)
}
