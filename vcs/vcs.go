// Package vcs invokes git or jj and parses their log output into revision
// records. All backend access goes through a Runner so the adapters can be
// tested without the real binaries.
package vcs

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"

	"github.com/gerunddev/revpick/logging"
)

// Kind classifies a jj revision by its log icon.
type Kind int

const (
	KindNormal Kind = iota
	KindCurrent
	KindImmutable
)

// StagedID is the pseudo-revision id for the git staging area.
const StagedID = "--staged"

// Record is one parsed log entry. Fields are fixed once parsed.
type Record struct {
	CommitID    string // full backend-native identifier
	ShortID     string // abbreviated hash (git) or shortest change id (jj)
	Description string
	Age         string // short date (git) or relative age (jj)
	Kind        Kind   // jj only
	Staged      bool   // git "--staged" pseudo-record
}

// ListOptions narrows a log listing.
type ListOptions struct {
	Limit         int
	Filter        string // revspec (git) or revset (jj)
	Exclude       string // drop the record with this commit id
	IncludeStaged bool   // git only: prepend the staged pseudo-record
}

// Adapter lists revisions from one backend.
type Adapter interface {
	// Name returns the backend binary name ("git" or "jj").
	Name() string
	// ListRevisions returns parsed records, newest first. A failing backend
	// process yields ErrBackendUnavailable; an empty listing yields
	// ErrNoRevisions.
	ListRevisions(opts ListOptions) ([]Record, error)
	// PreviewArgs returns the argv used to render the preview pane text.
	PreviewArgs(limit int) []string
	// StartCandidates returns the listing constraint for valid range starts
	// once end has been chosen.
	StartCandidates(end string) ListOptions
}

// Runner executes a backend command and returns its stdout. Implementations
// must fail (non-nil error) when the process exits non-zero.
type Runner func(argv []string) ([]byte, error)

var (
	// ErrBackendUnavailable marks a backend process that exited non-zero or
	// is not installed. Callers surface it as an error, not an empty list.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrNoRevisions marks a listing that parsed successfully but produced
	// zero records. Informational, not an error condition for the user.
	ErrNoRevisions = errors.New("no revisions")
)

// ExecRunner returns a Runner that executes name in dir.
func ExecRunner(name, dir string) Runner {
	return func(argv []string) ([]byte, error) {
		done := logging.Op("run", "cmd", name, "args", fmt.Sprint(argv))
		c := exec.Command(name, argv...)
		c.Dir = dir
		output, err := c.Output()
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				err = fmt.Errorf("%w: %s: %s", ErrBackendUnavailable, name, bytes.TrimSpace(exitErr.Stderr))
			} else {
				err = fmt.Errorf("%w: %s: %v", ErrBackendUnavailable, name, err)
			}
			done(err)
			return nil, err
		}
		done(nil)
		return output, nil
	}
}
