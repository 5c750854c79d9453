package textutil

import (
	"strings"

	"github.com/rivo/uniseg"
)

// TruncateToWidth cuts text so it fits within width terminal columns,
// appending an ellipsis when something was dropped. Grapheme clusters are
// kept whole so combining marks never split from their base rune.
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}

	const ellipsis = "…"
	if width <= 1 {
		return ellipsis
	}

	target := width - 1
	var builder strings.Builder
	current := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		w := DisplayWidth(cluster)
		if w <= 0 {
			w = 1
		}
		if current+w > target {
			break
		}
		builder.WriteString(cluster)
		current += w
	}
	builder.WriteString(ellipsis)
	return builder.String()
}
