// Package picker composes revision listings and a selection widget into the
// two flows the tool exposes: picking a single revision and picking a
// revision range.
package picker

import (
	"errors"
	"fmt"

	"github.com/gerunddev/revpick/format"
	"github.com/gerunddev/revpick/vcs"
)

var (
	// ErrCancelled means the user backed out of a selection.
	ErrCancelled = errors.New("selection cancelled")

	// ErrNoRangeCandidates means no revision can serve as a start for the
	// chosen end. A warning, not an error: the flow just cannot proceed.
	ErrNoRangeCandidates = errors.New("no candidate revisions for range start")
)

// Options narrows a picking flow.
type Options struct {
	Limit         int
	Filter        string // revspec (git) or revset (jj)
	IncludeStaged bool   // git only
}

// Selector is the consumed list-widget contract: present items, block until
// the user confirms one, return its commit id. Cancellation surfaces as
// ErrCancelled.
type Selector interface {
	Pick(title string, items []format.Item) (string, error)
}

// PickOne lists revisions and returns the chosen commit id.
func PickOne(sel Selector, backend vcs.Adapter, opts Options) (string, error) {
	items, err := listItems(backend, vcs.ListOptions{
		Limit:         opts.Limit,
		Filter:        opts.Filter,
		IncludeStaged: opts.IncludeStaged,
	})
	if err != nil {
		return "", err
	}
	return sel.Pick("Select revision", items)
}

// PickRange runs two sequential selections: the range end first, then a
// start constrained to valid candidates for that end. For git any other
// revision qualifies; for jj candidates are ancestors of the end that are
// also descendants of trunk.
func PickRange(sel Selector, backend vcs.Adapter, opts Options) (start, end string, err error) {
	// The staged pseudo-record cannot bound a range.
	endItems, err := listItems(backend, vcs.ListOptions{Limit: opts.Limit})
	if err != nil {
		return "", "", err
	}
	end, err = sel.Pick("Select end revision (newest)", endItems)
	if err != nil {
		return "", "", err
	}

	startOpts := backend.StartCandidates(end)
	startOpts.Limit = opts.Limit
	startItems, err := listItems(backend, startOpts)
	if err != nil {
		if errors.Is(err, vcs.ErrNoRevisions) {
			return "", "", fmt.Errorf("%w: end %s", ErrNoRangeCandidates, end)
		}
		return "", "", err
	}
	start, err = sel.Pick(fmt.Sprintf("Select start revision (oldest, range ends at %.8s)", end), startItems)
	if err != nil {
		return "", "", err
	}
	return start, end, nil
}

func listItems(backend vcs.Adapter, opts vcs.ListOptions) ([]format.Item, error) {
	records, err := backend.ListRevisions(opts)
	if err != nil {
		return nil, err
	}
	return format.Items(records, backend.Name(), format.DefaultStyles()), nil
}
