// Package textutil provides display-width aware text primitives used when
// laying out picker entries and measuring preview lines. Widths are terminal
// cell counts, not byte or rune counts.
package textutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Ellipsis is appended to truncated descriptions.
const Ellipsis = "…"

// Width returns the rendered width of s in terminal cells.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// PadRight appends spaces to s until its display width reaches width.
// Strings already at or beyond the target width are returned unchanged.
func PadRight(s string, width int) string {
	gap := width - Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// Truncate cuts s to at most maxChars grapheme clusters and appends an
// ellipsis. It is idempotent: truncating an already-truncated string is a
// no-op.
func Truncate(s string, maxChars int) string {
	count := uniseg.GraphemeClusterCount(s)
	if count <= maxChars {
		return s
	}
	// A previous pass leaves maxChars clusters plus the ellipsis marker.
	if count == maxChars+1 && strings.HasSuffix(s, Ellipsis) {
		return s
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < maxChars && g.Next(); i++ {
		b.WriteString(g.Str())
	}
	return b.String() + Ellipsis
}

// StripANSI removes ANSI escape sequences from s. Use it for matching and
// width computation only; callers keep the styled original around when the
// styling must survive.
func StripANSI(s string) string {
	return ansi.Strip(s)
}
