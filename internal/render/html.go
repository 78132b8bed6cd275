package render

import (
	htmlpkg "html"
	"strings"

	"github.com/aaronzipp/spyfall-chat/internal/models"
)

// HTML renders a notice as an htmx fragment for the browser client.
// Choices become buttons posting to the chat's action endpoint.
func HTML(chatID, ref string, n models.Notice) string {
	var b strings.Builder
	b.WriteString(`<div class="message message-`)
	b.WriteString(string(n.Kind))
	b.WriteString(`" id="msg-`)
	b.WriteString(htmlpkg.EscapeString(ref))
	b.WriteString(`"><p>`)
	b.WriteString(strings.ReplaceAll(htmlpkg.EscapeString(Text(n)), "\n", "<br>"))
	b.WriteString(`</p>`)
	if len(n.Choices) > 0 {
		b.WriteString(Choices(chatID, n.Choices))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// Choices renders buttons for a notice's choices
func Choices(chatID string, choices []models.Choice) string {
	chat := htmlpkg.EscapeString(chatID)
	var b strings.Builder
	b.WriteString(`<div class="button-stack">`)
	for _, c := range choices {
		b.WriteString(`<form hx-post="/chats/`)
		b.WriteString(chat)
		b.WriteString(`/actions/`)
		b.WriteString(htmlpkg.EscapeString(c.Action))
		b.WriteString(`" hx-swap="none">`)
		if c.Value != "" {
			b.WriteString(`<input type="hidden" name="value" value="`)
			b.WriteString(htmlpkg.EscapeString(c.Value))
			b.WriteString(`">`)
		}
		b.WriteString(`<button type="submit" class="btn btn-primary">`)
		b.WriteString(htmlpkg.EscapeString(c.Label))
		b.WriteString(`</button></form>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}
