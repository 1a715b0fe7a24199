package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSurface records placed marks so tests can observe renderer behavior.
type fakeSurface struct {
	key    Key
	valid  bool
	lines  []string
	nextID int

	spans    map[int]int    // id -> line
	matches  map[int]string // id -> pattern
	gutters  map[int]int    // id -> line
	centered []int
}

func newFakeSurface(lines ...string) *fakeSurface {
	return &fakeSurface{
		key:     Key{Buffer: 7, Viewport: 3},
		valid:   true,
		lines:   lines,
		spans:   make(map[int]int),
		matches: make(map[int]string),
		gutters: make(map[int]int),
	}
}

func (f *fakeSurface) Key() Key        { return f.key }
func (f *fakeSurface) Valid() bool     { return f.valid }
func (f *fakeSurface) Lines() []string { return f.lines }

func (f *fakeSurface) PlaceSpan(line, startCol, endCol int) int {
	f.nextID++
	f.spans[f.nextID] = line
	return f.nextID
}
func (f *fakeSurface) ClearSpan(id int) { delete(f.spans, id) }

func (f *fakeSurface) PlaceMatch(line int, pattern string) int {
	f.nextID++
	f.matches[f.nextID] = pattern
	return f.nextID
}
func (f *fakeSurface) ClearMatch(id int) { delete(f.matches, id) }

func (f *fakeSurface) PlaceGutter(line int) int {
	f.nextID++
	f.gutters[f.nextID] = line
	return f.nextID
}
func (f *fakeSurface) ClearGutter(id int) { delete(f.gutters, id) }

func (f *fakeSurface) CenterOn(line int) { f.centered = append(f.centered, line) }

func TestHighlightDrawsAllTiers(t *testing.T) {
	s := newFakeSurface(
		"○ abc... 9023e373",
		"│  (no description set)",
		"○ def... 484bfb04",
	)
	r := NewRenderer()
	r.Highlight(s, "9023e373aaaaaaaa")

	assert.Len(t, s.spans, 2)
	assert.Len(t, s.matches, 2)
	assert.Len(t, s.gutters, 2)
	assert.Equal(t, []int{1}, s.centered)
}

func TestHighlightTwiceLeavesOneSet(t *testing.T) {
	s := newFakeSurface(
		"○ abc... 9023e373",
		"○ def... 484bfb04",
	)
	r := NewRenderer()
	r.Highlight(s, "9023e373aaaaaaaa")
	r.Highlight(s, "484bfb04bbbbbbbb")

	require.Len(t, s.spans, 1)
	require.Len(t, s.gutters, 1)
	for _, line := range s.spans {
		assert.Equal(t, 2, line)
	}
	assert.Equal(t, []int{1, 2}, s.centered)
}

func TestHighlightNoMatchClearsOnly(t *testing.T) {
	s := newFakeSurface("○ abc... 9023e373")
	r := NewRenderer()
	r.Highlight(s, "9023e373aaaaaaaa")
	require.NotEmpty(t, s.spans)

	r.Highlight(s, "ffffffffffffffff")
	assert.Empty(t, s.spans)
	assert.Empty(t, s.matches)
	assert.Empty(t, s.gutters)
	// No draw means no recenter either.
	assert.Equal(t, []int{1}, s.centered)
}

func TestHighlightStaleSurfaceNoOp(t *testing.T) {
	s := newFakeSurface("○ abc... 9023e373")
	s.valid = false

	r := NewRenderer()
	r.Highlight(s, "9023e373aaaaaaaa")
	assert.Empty(t, s.spans)
	assert.Empty(t, s.centered)
}

func TestClearWithoutHighlightIsSafe(t *testing.T) {
	s := newFakeSurface("○ abc... 9023e373")
	r := NewRenderer()
	assert.NotPanics(t, func() { r.Clear(s) })
}

func TestReleaseDropsState(t *testing.T) {
	s := newFakeSurface("○ abc... 9023e373")
	r := NewRenderer()
	r.Highlight(s, "9023e373aaaaaaaa")

	r.Release(s.Key())
	// State is gone; a clear after release has nothing to remove.
	r.Clear(s)
	assert.NotEmpty(t, s.spans)
}

func TestApplyMatchPatternIsStrippedText(t *testing.T) {
	s := newFakeSurface("\x1b[35m○ styled 9023e373\x1b[0m")
	r := NewRenderer()
	r.Highlight(s, "9023e373aaaaaaaa")

	require.Len(t, s.matches, 1)
	for _, pattern := range s.matches {
		assert.Equal(t, "○ styled 9023e373", pattern)
	}
}

func TestClearInvalidSurfaceDropsState(t *testing.T) {
	s := newFakeSurface("○ abc... 9023e373")
	r := NewRenderer()
	r.Highlight(s, "9023e373aaaaaaaa")
	require.Contains(t, r.states, s.Key())

	s.valid = false
	r.Clear(s)

	// The bookkeeping is gone even though the dead surface's marks were
	// never cleared; a replacement pane reusing the key starts fresh.
	assert.NotContains(t, r.states, s.Key())
	assert.NotEmpty(t, s.spans)
}
