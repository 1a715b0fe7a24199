// Package preview finds the line(s) describing a revision inside preview
// text and paints a hover highlight over them. The preview text comes from
// an external renderer (raw log output), so entry boundaries are recovered
// heuristically from the shape of header and separator lines.
package preview

import (
	"regexp"
	"strings"

	"github.com/gerunddev/revpick/textutil"
)

// MatchKeyLen is how much of the revision id is searched for in the preview.
// Backends must render at least this many id characters per entry; git's
// dynamic default abbreviation can be shorter, so the git adapter pins its
// preview --abbrev to this.
const MatchKeyLen = 8

// headerPattern matches a line whose right-trimmed text ends with exactly
// eight hex characters, the shape of a log entry header.
var headerPattern = regexp.MustCompile(`(^|[^0-9a-f])[0-9a-f]{8}$`)

// Target names the preview lines to highlight. Lines are 1-based;
// Continuation is 0 when the entry is a single line.
type Target struct {
	Primary      int
	Continuation int
}

// Lines returns the targeted line numbers in order.
func (t Target) Lines() []int {
	if t.Continuation == 0 {
		return []int{t.Primary}
	}
	return []int{t.Primary, t.Continuation}
}

// Locate scans lines top to bottom for the first one containing the leading
// eight characters of revision, then decides whether the following line
// continues the same entry. ok is false when no line matches; the caller
// must clear any stale highlight and stop.
func Locate(lines []string, revision string) (Target, bool) {
	key := revision
	if len(key) > MatchKeyLen {
		key = key[:MatchKeyLen]
	}
	if key == "" {
		return Target{}, false
	}

	for i, line := range lines {
		if !strings.Contains(textutil.StripANSI(line), key) {
			continue
		}
		target := Target{Primary: i + 1}
		if i+1 < len(lines) && continuesEntry(lines[i+1]) {
			target.Continuation = i + 2
		}
		return target, true
	}
	return Target{}, false
}

// continuesEntry reports whether line extends the entry above it rather than
// starting a new one. Filler lines (fzf pads the preview window with runs of
// "~") and header-shaped lines start fresh entries.
func continuesEntry(line string) bool {
	stripped := textutil.StripANSI(line)
	if stripped == "" {
		return false
	}
	if strings.Trim(stripped, "~") == "" {
		return false
	}
	return !looksLikeHeader(stripped)
}

func looksLikeHeader(stripped string) bool {
	return headerPattern.MatchString(strings.TrimRight(stripped, " \t"))
}
