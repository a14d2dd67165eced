package core

import "strings"

// maxTitleLength is the longest card title kept as-is. Longer titles are cut
// to truncatedTitleLength runes and suffixed with an ellipsis.
const (
	maxTitleLength       = 180
	truncatedTitleLength = 177
	ellipsis             = "…"
)

// decorativeMarkers are status glyphs authors sprinkle over headings and
// checklist items. They carry no meaning on a card.
var decorativeMarkers = []string{
	"✅", "⚠️", "🔴", "🟡", "🟠", "🔒", "📊", "📈", "📅", "🚀", "🐛", "📋", "🛡️",
}

// CleanText strips strike-through and bold markup and the decorative marker
// glyphs, then collapses whitespace runs to single spaces and trims the ends.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "~~", "")
	text = strings.ReplaceAll(text, "**", "")
	for _, marker := range decorativeMarkers {
		text = strings.ReplaceAll(text, marker, "")
	}
	return strings.Join(strings.Fields(text), " ")
}

// BuildCardTitle cleans item text and truncates it for display as a card name.
func BuildCardTitle(text string) string {
	base := CleanText(text)
	runes := []rune(base)
	if len(runes) > maxTitleLength {
		return string(runes[:truncatedTitleLength]) + ellipsis
	}
	return base
}
