package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gerunddev/revpick/config"
	"github.com/gerunddev/revpick/picker"
	"github.com/gerunddev/revpick/ui"
	"github.com/gerunddev/revpick/vcs"
)

func main() {
	backendName := flag.String("vcs", "", "backend to use: git or jj (default: auto-detect)")
	limit := flag.Int("n", 0, "maximum number of revisions to list")
	filter := flag.String("r", "", "revspec (git) or revset (jj) to restrict the listing")
	staged := flag.Bool("staged", false, "include the staged-changes entry (git only)")
	pickRange := flag.Bool("range", false, "pick a start and end revision instead of one")
	plain := flag.Bool("plain", false, "use a plain list without the preview pane")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *limit <= 0 {
		*limit = cfg.Limit
	}

	backend, err := newBackend(*backendName, ".", cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var sel picker.Selector = picker.HuhSelector{}
	if !*plain && !cfg.Plain {
		sel = ui.NewPicker(vcs.ExecRunner(backend.Name(), "."), backend.PreviewArgs(*limit))
	}

	opts := picker.Options{Limit: *limit, Filter: *filter, IncludeStaged: *staged}
	if *pickRange {
		start, end, err := picker.PickRange(sel, backend, opts)
		if err != nil {
			exit(err)
		}
		fmt.Printf("%s %s\n", start, end)
		return
	}

	revision, err := picker.PickOne(sel, backend, opts)
	if err != nil {
		exit(err)
	}
	fmt.Println(revision)
}

// newBackend builds the requested adapter, detecting the backend from the
// working directory when none is named. A .jj directory wins over .git since
// colocated repositories serve both.
func newBackend(name, dir string, cfg config.Config) (vcs.Adapter, error) {
	if name == "" {
		name = detectBackend(dir)
	}
	switch name {
	case "jj":
		jj := vcs.NewJJ(dir)
		jj.BaseRevset = cfg.JJ.BaseRevset
		jj.Trunk = cfg.JJ.Trunk
		return jj, nil
	case "git":
		return vcs.NewGit(dir), nil
	default:
		return nil, fmt.Errorf("unsupported vcs %q (want git or jj)", name)
	}
}

func detectBackend(dir string) string {
	if _, err := os.Stat(filepath.Join(dir, ".jj")); err == nil {
		return "jj"
	}
	return "git"
}

// exit maps the error taxonomy onto process results. Empty listings and
// empty range candidates are messages, not failures; cancellation uses the
// conventional interrupt status.
func exit(err error) {
	switch {
	case errors.Is(err, picker.ErrCancelled):
		os.Exit(130)
	case errors.Is(err, vcs.ErrNoRevisions):
		fmt.Fprintln(os.Stderr, "No revisions to pick from.")
		os.Exit(0)
	case errors.Is(err, picker.ErrNoRangeCandidates):
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
