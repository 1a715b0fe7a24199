package preview

import (
	"github.com/gerunddev/revpick/logging"
	"github.com/gerunddev/revpick/textutil"
)

// Key identifies one (buffer, viewport) pair a highlight is drawn into.
type Key struct {
	Buffer   int
	Viewport int
}

// Surface is the rendering host for one preview pane. Not every surface
// honors all three primitives; each draw fans out to all of them so the
// highlight survives whichever the active surface actually renders.
//
// A surface may be invalidated at any time between an event firing and the
// renderer running (the pane may have been closed or replaced); Valid
// reports whether the handle still refers to a live pane.
type Surface interface {
	Key() Key
	Valid() bool

	// Lines returns the current preview text, styled, ordered top to bottom.
	Lines() []string

	// PlaceSpan draws an inline highlight over [startCol, endCol) of the
	// 1-based line and returns a handle for clearing it.
	PlaceSpan(line, startCol, endCol int) int
	ClearSpan(id int)

	// PlaceMatch registers a viewport-local pattern match on the line.
	PlaceMatch(line int, pattern string) int
	ClearMatch(id int)

	// PlaceGutter puts a marker in the gutter of the line.
	PlaceGutter(line int) int
	ClearGutter(id int)

	// CenterOn moves the cursor to the line and recenters the viewport.
	CenterOn(line int)
}

// overlayState tracks the marks the renderer owns on one surface.
type overlayState struct {
	spans   []int
	matches []int
	gutters []int
}

// Renderer owns the hover highlight across all live preview surfaces. At
// most one highlight is active per surface; every draw clears the previous
// one first, which also makes rapid re-invocation safe.
type Renderer struct {
	states map[Key]*overlayState
}

func NewRenderer() *Renderer {
	return &Renderer{states: make(map[Key]*overlayState)}
}

// Highlight locates revision in the surface's current text and draws the
// hover highlight over it. When the revision is not found the previous
// highlight is cleared and nothing else happens. Stale surfaces are a
// silent no-op.
func (r *Renderer) Highlight(s Surface, revision string) {
	if !s.Valid() {
		logging.Debug("highlight skipped, stale surface")
		return
	}
	target, ok := Locate(s.Lines(), revision)
	if !ok {
		r.Clear(s)
		return
	}
	r.Apply(s, target)
}

// Apply draws the highlight for target, replacing whatever this renderer
// drew on the surface before.
func (r *Renderer) Apply(s Surface, target Target) {
	if !s.Valid() {
		return
	}
	r.Clear(s)

	lines := s.Lines()
	state := &overlayState{}
	for _, line := range target.Lines() {
		if line < 1 || line > len(lines) {
			continue
		}
		stripped := textutil.StripANSI(lines[line-1])
		endCol := max(textutil.Width(stripped), 1)
		state.spans = append(state.spans, s.PlaceSpan(line, 0, endCol))
		state.matches = append(state.matches, s.PlaceMatch(line, stripped))
		state.gutters = append(state.gutters, s.PlaceGutter(line))
	}
	r.states[s.Key()] = state

	s.CenterOn(target.Primary)
}

// Clear removes any highlight this renderer drew on the surface. Safe to
// call when none exists. An invalid surface still gets its registry entry
// dropped: its marks died with the pane, and a later surface reusing the key
// must not inherit stale mark ids.
func (r *Renderer) Clear(s Surface) {
	state, ok := r.states[s.Key()]
	if !ok {
		return
	}
	delete(r.states, s.Key())
	if !s.Valid() {
		return
	}
	for _, id := range state.spans {
		s.ClearSpan(id)
	}
	for _, id := range state.matches {
		s.ClearMatch(id)
	}
	for _, id := range state.gutters {
		s.ClearGutter(id)
	}
}

// Release drops the registry entry for a surface that has been torn down.
// The surface's own marks die with it; only the bookkeeping remains.
func (r *Renderer) Release(key Key) {
	delete(r.states, key)
}
