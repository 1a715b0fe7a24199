package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/x/ansi"
	"github.com/gerunddev/revpick/preview"
)

// mark is one placed overlay primitive.
type mark struct {
	line     int
	pattern  string // match tier only
	startCol int    // span tier only
	endCol   int
}

// PreviewPane shows backend log output in a viewport and implements
// preview.Surface. Overlays are kept as data and injected into the styled
// text at render time, so the underlying content never changes and repeated
// draws stay stable.
type PreviewPane struct {
	key    preview.Key
	view   viewport.Model
	lines  []string // styled content, without overlay injection
	closed bool
	ready  bool

	nextID  int
	spans   map[int]mark
	matches map[int]mark
	gutters map[int]mark
}

// NewPreviewPane returns an empty pane for the given surface key.
func NewPreviewPane(key preview.Key) *PreviewPane {
	return &PreviewPane{
		key:     key,
		spans:   make(map[int]mark),
		matches: make(map[int]mark),
		gutters: make(map[int]mark),
	}
}

// SetContent replaces the preview text. Existing overlays keep their line
// numbers; the renderer redraws right after a content change anyway.
func (p *PreviewPane) SetContent(content string) {
	p.lines = strings.Split(strings.TrimRight(content, "\n"), "\n")
	p.refresh()
}

// SetSize resizes the pane's viewport.
func (p *PreviewPane) SetSize(width, height int) {
	if !p.ready {
		p.view = viewport.New(width, height)
		p.ready = true
	} else {
		p.view.Width = width
		p.view.Height = height
	}
	p.refresh()
}

// Close invalidates the pane. Any highlight update still in flight becomes a
// no-op.
func (p *PreviewPane) Close() {
	p.closed = true
}

func (p *PreviewPane) Key() preview.Key { return p.key }

func (p *PreviewPane) Valid() bool { return p != nil && !p.closed }

func (p *PreviewPane) Lines() []string { return p.lines }

func (p *PreviewPane) PlaceSpan(line, startCol, endCol int) int {
	return p.place(p.spans, mark{line: line, startCol: startCol, endCol: endCol})
}

func (p *PreviewPane) ClearSpan(id int) { delete(p.spans, id) }

func (p *PreviewPane) PlaceMatch(line int, pattern string) int {
	return p.place(p.matches, mark{line: line, pattern: pattern})
}

func (p *PreviewPane) ClearMatch(id int) { delete(p.matches, id) }

func (p *PreviewPane) PlaceGutter(line int) int {
	return p.place(p.gutters, mark{line: line})
}

func (p *PreviewPane) ClearGutter(id int) { delete(p.gutters, id) }

// CenterOn scrolls the viewport so line sits in the middle.
func (p *PreviewPane) CenterOn(line int) {
	if !p.ready {
		return
	}
	offset := line - 1 - p.view.Height/2
	if offset < 0 {
		offset = 0
	}
	p.view.SetYOffset(offset)
}

func (p *PreviewPane) place(marks map[int]mark, m mark) int {
	p.nextID++
	marks[p.nextID] = m
	return p.nextID
}

// Refresh re-renders the viewport content with current overlays applied.
// Callers invoke it after a batch of overlay changes.
func (p *PreviewPane) Refresh() {
	p.refresh()
}

func (p *PreviewPane) refresh() {
	if !p.ready {
		return
	}
	p.view.SetContent(p.render())
}

// render injects the three overlay tiers into the styled lines: a gutter
// marker column, a background span, and an underline over the matched
// pattern. All tiers are honored on a terminal surface.
func (p *PreviewPane) render() string {
	spanned := make(map[int]mark, len(p.spans))
	for _, m := range p.spans {
		spanned[m.line] = m
	}
	matched := lineSet(p.matches)
	guttered := lineSet(p.gutters)

	rendered := make([]string, len(p.lines))
	for i, line := range p.lines {
		n := i + 1
		if matched[n] {
			line = matchStart + line + matchEnd
		}
		if m, ok := spanned[n]; ok {
			line = injectSpan(line, m.startCol, m.endCol)
		}
		gutter := " "
		if guttered[n] {
			gutter = gutterStyle.Render(gutterMark)
		}
		rendered[i] = gutter + line
	}
	return strings.Join(rendered, "\n")
}

// injectSpan wraps the [startCol, endCol) display columns of a styled line
// in the span background. Text outside the bounds stays untouched; the cuts
// are made on display width so wide runes and escape sequences survive.
func injectSpan(line string, startCol, endCol int) string {
	head := ansi.Truncate(line, startCol, "")
	mid := ansi.TruncateLeft(ansi.Truncate(line, endCol, ""), startCol, "")
	tail := ansi.TruncateLeft(line, endCol, "")
	return head + spanBgStart + mid + spanBgEnd + tail
}

func lineSet(marks map[int]mark) map[int]bool {
	set := make(map[int]bool, len(marks))
	for _, m := range marks {
		set[m.line] = true
	}
	return set
}

// View renders the viewport.
func (p *PreviewPane) View() string {
	if !p.ready {
		return "Loading preview..."
	}
	return p.view.View()
}
