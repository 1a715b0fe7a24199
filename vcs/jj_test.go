package vcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jjLogOutput = "" +
	"@\tworking on parser\tqkn\t2 hours ago\t9023e373000000000000000000000000\n" +
	"◆\trelease v1.2\tzmx\t3 days ago\t484bfb04000000000000000000000000\n" +
	"garbage line without enough fields\n" +
	"○\t\tvpr\t5 days ago\tcafe1234000000000000000000000000\n"

func TestJJListRevisionsParsesTemplateOutput(t *testing.T) {
	runner := &scriptedRunner{replies: map[string]string{"log": jjLogOutput}}
	j := &JJ{Run: runner.run, Trunk: "trunk()"}

	records, err := j.ListRevisions(ListOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, records, 3)

	want := []Record{
		{CommitID: "9023e373000000000000000000000000", ShortID: "qkn", Description: "working on parser", Age: "2 hours ago", Kind: KindCurrent},
		{CommitID: "484bfb04000000000000000000000000", ShortID: "zmx", Description: "release v1.2", Age: "3 days ago", Kind: KindImmutable},
		{CommitID: "cafe1234000000000000000000000000", ShortID: "vpr", Description: "", Age: "5 days ago", Kind: KindNormal},
	}
	assert.Equal(t, want, records)
}

func TestJJListRevisionsArgv(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		base   string
		want   []string
	}{
		{
			name: "no revset",
			want: []string{"log", "--no-graph", "-n", "10", "-T", jjLogTemplate},
		},
		{
			name:   "filter only",
			filter: "mine()",
			want:   []string{"log", "--no-graph", "-n", "10", "-r", "mine()", "-T", jjLogTemplate},
		},
		{
			name: "base only",
			base: "::main",
			want: []string{"log", "--no-graph", "-n", "10", "-r", "::main", "-T", jjLogTemplate},
		},
		{
			name:   "filter and base combine as AND",
			filter: "mine()",
			base:   "::main",
			want:   []string{"log", "--no-graph", "-n", "10", "-r", "(mine()) & (::main)", "-T", jjLogTemplate},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &scriptedRunner{replies: map[string]string{"log": jjLogOutput}}
			j := &JJ{Run: runner.run, BaseRevset: tt.base, Trunk: "trunk()"}
			_, err := j.ListRevisions(ListOptions{Limit: 10, Filter: tt.filter})
			require.NoError(t, err)
			require.NotEmpty(t, runner.calls)
			assert.Equal(t, tt.want, runner.calls[0])
		})
	}
}

func TestJJListRevisionsExcludes(t *testing.T) {
	runner := &scriptedRunner{replies: map[string]string{"log": jjLogOutput}}
	j := &JJ{Run: runner.run, Trunk: "trunk()"}

	records, err := j.ListRevisions(ListOptions{
		Limit:   10,
		Exclude: "484bfb04000000000000000000000000",
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.NotEqual(t, "484bfb04000000000000000000000000", r.CommitID)
	}
}

func TestJJListRevisionsBackendUnavailable(t *testing.T) {
	runner := &scriptedRunner{
		fails: map[string]error{"log": ErrBackendUnavailable},
	}
	j := &JJ{Run: runner.run, Trunk: "trunk()"}

	_, err := j.ListRevisions(ListOptions{Limit: 10})
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestJJListRevisionsEmpty(t *testing.T) {
	runner := &scriptedRunner{replies: map[string]string{"log": "\n"}}
	j := &JJ{Run: runner.run, Trunk: "trunk()"}

	_, err := j.ListRevisions(ListOptions{Limit: 10})
	assert.ErrorIs(t, err, ErrNoRevisions)
}

func TestJJStartCandidates(t *testing.T) {
	j := &JJ{Trunk: "trunk()"}
	opts := j.StartCandidates("abc123")
	assert.Equal(t, "(::abc123) & (trunk()::)", opts.Filter)
	assert.Equal(t, "abc123", opts.Exclude)
}

func TestJJStartCandidatesCombinesWithBase(t *testing.T) {
	j := &JJ{Trunk: "trunk()", BaseRevset: "::main"}
	opts := j.StartCandidates("abc123")
	// The base revset is ANDed in when the listing runs.
	assert.Equal(t, "((::abc123) & (trunk()::)) & (::main)", j.revset(opts.Filter))
}
