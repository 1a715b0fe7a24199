// Package ui implements the full-screen picker: a revision list beside a
// live preview pane whose hover highlight follows the selection.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/revpick/format"
	"github.com/gerunddev/revpick/picker"
	"github.com/gerunddev/revpick/preview"
	"github.com/gerunddev/revpick/vcs"
)

// Picker runs the TUI selection flow. It satisfies picker.Selector, so the
// orchestration code cannot tell it apart from the plain huh list.
type Picker struct {
	Run         vcs.Runner
	PreviewArgs []string
}

var _ picker.Selector = (*Picker)(nil)

// NewPicker returns a picker that renders its preview by running
// previewArgs through run.
func NewPicker(run vcs.Runner, previewArgs []string) *Picker {
	return &Picker{Run: run, PreviewArgs: previewArgs}
}

// Pick presents items full-screen and blocks until the user confirms or
// cancels.
func (p *Picker) Pick(title string, items []format.Item) (string, error) {
	model := newPickModel(title, items, p.Run, p.PreviewArgs)
	prog := tea.NewProgram(model, tea.WithAltScreen())
	final, err := prog.Run()
	if err != nil {
		return "", err
	}
	m := final.(*pickModel)
	if m.cancelled || m.choice == "" {
		return "", picker.ErrCancelled
	}
	return m.choice, nil
}

// previewContentMsg delivers the finished preview render. It may arrive
// after the pane it was meant for has been closed; the highlight path
// tolerates that.
type previewContentMsg struct {
	content string
	err     error
}

type pickModel struct {
	title string
	items []format.Item

	cursor   int
	list     viewport.Model
	pane     *PreviewPane
	renderer *preview.Renderer

	run         vcs.Runner
	previewArgs []string

	keys   KeyMap
	help   help.Model
	width  int
	height int
	ready  bool

	choice    string
	cancelled bool
}

func newPickModel(title string, items []format.Item, run vcs.Runner, previewArgs []string) *pickModel {
	return &pickModel{
		title:       title,
		items:       items,
		pane:        NewPreviewPane(preview.Key{Buffer: 1, Viewport: 1}),
		renderer:    preview.NewRenderer(),
		run:         run,
		previewArgs: previewArgs,
		keys:        DefaultKeyMap(),
		help:        help.New(),
	}
}

func (m *pickModel) Init() tea.Cmd {
	return m.fetchPreview()
}

// fetchPreview renders the preview text off the update loop.
func (m *pickModel) fetchPreview() tea.Cmd {
	run, args := m.run, m.previewArgs
	return func() tea.Msg {
		output, err := run(args)
		return previewContentMsg{content: string(output), err: err}
	}
}

func (m *pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.applyHighlight()
		return m, nil

	case previewContentMsg:
		if msg.err != nil {
			m.pane.SetContent("Error rendering preview: " + msg.err.Error())
		} else {
			m.pane.SetContent(msg.content)
		}
		// Render completion re-applies the highlight for the current
		// selection; clear-before-draw keeps this idempotent.
		m.applyHighlight()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.PageUp):
			m.moveCursor(-m.list.Height)
		case key.Matches(msg, m.keys.PageDown):
			m.moveCursor(m.list.Height)
		case key.Matches(msg, m.keys.Home):
			m.setCursor(0)
		case key.Matches(msg, m.keys.End):
			m.setCursor(len(m.items) - 1)
		case key.Matches(msg, m.keys.Refresh):
			return m, m.fetchPreview()
		case key.Matches(msg, m.keys.Confirm):
			if len(m.items) > 0 {
				m.choice = m.items[m.cursor].CommitID
			}
			m.pane.Close()
			m.renderer.Release(m.pane.Key())
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
			m.cancelled = true
			m.pane.Close()
			m.renderer.Release(m.pane.Key())
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m *pickModel) moveCursor(delta int) {
	m.setCursor(m.cursor + delta)
}

func (m *pickModel) setCursor(index int) {
	if len(m.items) == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(m.items) {
		index = len(m.items) - 1
	}
	m.cursor = index
	if m.ready {
		m.list.SetContent(m.renderList())
		m.ensureCursorVisible()
	}
	// Selection change moves the hover highlight.
	m.applyHighlight()
}

// applyHighlight repositions the hover highlight for the current selection.
// Safe to call from any event: it clears before drawing and no-ops on a
// closed pane.
func (m *pickModel) applyHighlight() {
	if len(m.items) == 0 {
		return
	}
	m.renderer.Highlight(m.pane, m.items[m.cursor].CommitID)
	m.pane.Refresh()
}

func (m *pickModel) ensureCursorVisible() {
	top := m.list.YOffset
	bottom := top + m.list.Height
	if m.cursor < top {
		m.list.SetYOffset(m.cursor)
	}
	if m.cursor >= bottom {
		m.list.SetYOffset(m.cursor - m.list.Height + 1)
	}
}

func (m *pickModel) renderList() string {
	lines := make([]string, len(m.items))
	for i, it := range m.items {
		line := it.Render()
		if i == m.cursor {
			line = spanBgStart + line + spanBgEnd
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func (m *pickModel) layout() {
	// Two panes side by side, borders cost two cells each way, one line for
	// the title and one for help.
	contentHeight := m.height - 4
	if contentHeight < 1 {
		contentHeight = 1
	}
	listWidth := m.width/2 - 2
	paneWidth := m.width - (listWidth + 2) - 2
	if listWidth < 1 {
		listWidth = 1
	}
	if paneWidth < 1 {
		paneWidth = 1
	}

	if !m.ready {
		m.list = viewport.New(listWidth, contentHeight)
	} else {
		m.list.Width = listWidth
		m.list.Height = contentHeight
	}
	m.list.SetContent(m.renderList())
	m.ensureCursorVisible()
	m.pane.SetSize(paneWidth, contentHeight)
}

func (m *pickModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := titleStyle.Render(m.title)
	if len(m.items) == 0 {
		header = titleStyle.Render(fmt.Sprintf("%s (no entries)", m.title))
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		focusedBorder.Render(m.list.View()),
		unfocusedBorder.Render(m.pane.View()),
	)
	footer := helpStyle.Render(m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
