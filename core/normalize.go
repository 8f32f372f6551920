package chat

import "strings"

// Normalizer rewrites ephemeral status text before it is surfaced. The run
// state machine applies it to status, thought and action events only; token
// and end content pass through untouched.
type Normalizer func(string) string

// phaseGlyphs are the decorative markers the agent prefixes to its progress
// messages to signal which phase it is in.
var phaseGlyphs = []string{"🔍", "🧠", "🎯", "🤖", "⭐", "✍️", "💾"}

// NormalizeStatusText strips the agent's phase glyphs and trims whitespace.
// It is the default normalizer.
func NormalizeStatusText(text string) string {
	for _, glyph := range phaseGlyphs {
		text = strings.ReplaceAll(text, glyph, "")
	}
	return strings.TrimSpace(text)
}
