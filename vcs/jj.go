package vcs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gerunddev/revpick/logging"
)

// jjLogTemplate emits one tab-delimited line per revision: working-copy icon,
// first description line, shortest change id, relative age, full commit id.
const jjLogTemplate = `if(current_working_copy, "@", if(immutable, "◆", "○")) ++ "\t" ++ description.first_line() ++ "\t" ++ change_id.shortest() ++ "\t" ++ committer.timestamp().ago() ++ "\t" ++ commit_id ++ "\n"`

// JJ lists revisions via the jj CLI.
type JJ struct {
	Run Runner

	// BaseRevset is ANDed with any caller-supplied filter when non-empty.
	BaseRevset string
	// Trunk is the revset naming the stable mainline, used to bound range
	// starts. Defaults to trunk().
	Trunk string
}

// NewJJ returns a jj adapter rooted at dir.
func NewJJ(dir string) *JJ {
	return &JJ{Run: ExecRunner("jj", dir), Trunk: "trunk()"}
}

func (j *JJ) Name() string { return "jj" }

// ListRevisions runs jj log with a structured template and parses one record
// per line. Malformed lines are dropped.
func (j *JJ) ListRevisions(opts ListOptions) ([]Record, error) {
	args := []string{"log", "--no-graph", "-n", strconv.Itoa(opts.Limit)}
	if revset := j.revset(opts.Filter); revset != "" {
		args = append(args, "-r", revset)
	}
	args = append(args, "-T", jjLogTemplate)

	output, err := j.Run(args)
	if err != nil {
		return nil, err
	}
	records := parseJJLog(string(output), opts.Exclude)
	if len(records) == 0 {
		return nil, ErrNoRevisions
	}
	return records, nil
}

// PreviewArgs renders the regular graph log for the preview pane.
func (j *JJ) PreviewArgs(limit int) []string {
	args := []string{"log", "--color", "always", "-n", strconv.Itoa(limit)}
	if j.BaseRevset != "" {
		args = append(args, "-r", j.BaseRevset)
	}
	return args
}

// StartCandidates constrains range starts to ancestors of end that are also
// descendants of trunk, so an immutable ancestor below the trunk point is
// never proposed.
func (j *JJ) StartCandidates(end string) ListOptions {
	return ListOptions{
		Filter:  fmt.Sprintf("(::%s) & (%s::)", end, j.Trunk),
		Exclude: end,
	}
}

// revset combines the caller filter with the configured base revset. Both
// present means a logical AND of the two.
func (j *JJ) revset(filter string) string {
	switch {
	case filter != "" && j.BaseRevset != "":
		return fmt.Sprintf("(%s) & (%s)", filter, j.BaseRevset)
	case filter != "":
		return filter
	default:
		return j.BaseRevset
	}
}

func parseJJLog(output, exclude string) []Record {
	var records []Record
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 5 {
			logging.Debug("skipping malformed jj log line", "line", line)
			continue
		}
		if fields[4] == exclude {
			continue
		}
		kind := KindNormal
		switch fields[0] {
		case "@":
			kind = KindCurrent
		case "◆":
			kind = KindImmutable
		}
		records = append(records, Record{
			CommitID:    fields[4],
			ShortID:     fields[2],
			Description: fields[1],
			Age:         fields[3],
			Kind:        kind,
		})
	}
	return records
}
