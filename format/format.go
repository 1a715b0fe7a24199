// Package format turns vcs records into aligned, optionally styled picker
// entries. Alignment is display-width based so wide glyphs in descriptions
// and change ids do not break columns.
package format

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/revpick/textutil"
	"github.com/gerunddev/revpick/vcs"
)

const (
	descMaxChars = 40
	descColWidth = 43
)

// Segment is one styled run of an entry for renderers that support
// per-segment styling.
type Segment struct {
	Text  string
	Style lipgloss.Style
}

// Item is one display-ready picker entry.
type Item struct {
	CommitID string
	Text     string    // plain, alignment-padded single line
	Segments []Segment // nil for plain (git) entries
}

// Styles tags the jj entry columns. The zero value renders everything
// unstyled, which is what the plain selector uses.
type Styles struct {
	Current     lipgloss.Style
	Immutable   lipgloss.Style
	Normal      lipgloss.Style
	Description lipgloss.Style
	ChangeID    lipgloss.Style
	Age         lipgloss.Style
}

// DefaultStyles approximates the jj log palette.
func DefaultStyles() Styles {
	return Styles{
		Current:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Immutable:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Normal:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Description: lipgloss.NewStyle(),
		ChangeID:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		Age:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Items formats a whole listing. jj records get styled segments; git records
// are plain text. The change-id column width is shared across the batch.
func Items(records []vcs.Record, backend string, styles Styles) []Item {
	if backend == "jj" {
		return jjItems(records, styles)
	}
	return gitItems(records)
}

func gitItems(records []vcs.Record) []Item {
	items := make([]Item, len(records))
	for i, r := range records {
		text := r.ShortID + "  " + r.Age + "  " + r.Description
		if r.Staged {
			text = r.Description
		}
		items[i] = Item{CommitID: r.CommitID, Text: text}
	}
	return items
}

func jjItems(records []vcs.Record, styles Styles) []Item {
	idWidth := 0
	for _, r := range records {
		if w := textutil.Width(r.ShortID); w > idWidth {
			idWidth = w
		}
	}

	items := make([]Item, len(records))
	for i, r := range records {
		desc := r.Description
		if desc == "" {
			desc = "(no description set)"
		}
		desc = textutil.PadRight(textutil.Truncate(desc, descMaxChars), descColWidth)
		changeID := textutil.PadRight(r.ShortID, idWidth)

		icon, iconStyle := "○", styles.Normal
		switch r.Kind {
		case vcs.KindCurrent:
			icon, iconStyle = "@", styles.Current
		case vcs.KindImmutable:
			icon, iconStyle = "◆", styles.Immutable
		}

		items[i] = Item{
			CommitID: r.CommitID,
			Text:     icon + " " + desc + " " + changeID + " " + r.Age,
			Segments: []Segment{
				{Text: icon, Style: iconStyle},
				{Text: " " + desc, Style: styles.Description},
				{Text: " " + changeID, Style: styles.ChangeID},
				{Text: " " + r.Age, Style: styles.Age},
			},
		}
	}
	return items
}

// Render joins an item's segments with their styles applied, falling back to
// the plain text when there are no segments.
func (it Item) Render() string {
	if len(it.Segments) == 0 {
		return it.Text
	}
	out := ""
	for _, seg := range it.Segments {
		out += seg.Style.Render(seg.Text)
	}
	return out
}
