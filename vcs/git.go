package vcs

import (
	"strconv"
	"strings"

	"github.com/gerunddev/revpick/logging"
	"github.com/gerunddev/revpick/preview"
)

// gitLogFormat is the tab-delimited --pretty format parsed by ListRevisions:
// full hash, abbreviated hash, short date, subject.
const gitLogFormat = "--pretty=format:%H%x09%h%x09%ad%x09%s"

// Git lists revisions via the git CLI.
type Git struct {
	Run Runner
}

// NewGit returns a git adapter rooted at dir.
func NewGit(dir string) *Git {
	return &Git{Run: ExecRunner("git", dir)}
}

func (g *Git) Name() string { return "git" }

// ListRevisions runs git log with a fixed tab-delimited format and parses
// one record per line. Malformed lines are dropped.
func (g *Git) ListRevisions(opts ListOptions) ([]Record, error) {
	args := []string{"log", "--date=short", gitLogFormat, "-n", strconv.Itoa(opts.Limit)}
	if opts.Filter != "" {
		args = append(args, opts.Filter)
	}
	output, err := g.Run(args)
	if err != nil {
		return nil, err
	}

	records := parseGitLog(string(output), opts.Exclude)
	if opts.IncludeStaged && g.stagedDirty() {
		records = append([]Record{{
			CommitID:    StagedID,
			Description: "(STAGED)",
			Staged:      true,
		}}, records...)
	}
	if len(records) == 0 {
		return nil, ErrNoRevisions
	}
	return records, nil
}

// PreviewArgs renders a decorated one-line log for the preview pane. The
// abbreviation is pinned to the highlight match key length: git's dynamic
// default is often 7 characters, one short of what the locator searches for.
func (g *Git) PreviewArgs(limit int) []string {
	return []string{
		"log", "--oneline", "--decorate", "--color=always",
		"--abbrev=" + strconv.Itoa(preview.MatchKeyLen),
		"-n", strconv.Itoa(limit),
	}
}

// StartCandidates returns the listing constraint for picking a range start
// once end is chosen. For git any other revision may serve as a start.
func (g *Git) StartCandidates(end string) ListOptions {
	return ListOptions{Exclude: end}
}

// stagedDirty reports whether the index differs from HEAD. git diff --quiet
// exits 1 when there are staged changes, which the runner reports as an
// error.
func (g *Git) stagedDirty() bool {
	_, err := g.Run([]string{"diff", "--cached", "--quiet"})
	return err != nil
}

func parseGitLog(output, exclude string) []Record {
	var records []Record
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 4 {
			logging.Debug("skipping malformed git log line", "line", line)
			continue
		}
		if fields[0] == exclude {
			continue
		}
		records = append(records, Record{
			CommitID:    fields[0],
			ShortID:     fields[1],
			Age:         fields[2],
			Description: fields[3],
		})
	}
	return records
}
