package format

import (
	"strings"
	"testing"

	"github.com/gerunddev/revpick/textutil"
	"github.com/gerunddev/revpick/vcs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitItems(t *testing.T) {
	records := []vcs.Record{
		{CommitID: "aaaa000", ShortID: "aaaa000", Age: "2026-08-01", Description: "first subject"},
		{CommitID: vcs.StagedID, Description: "(STAGED)", Staged: true},
	}
	items := Items(records, "git", DefaultStyles())
	require.Len(t, items, 2)

	assert.Equal(t, "aaaa000  2026-08-01  first subject", items[0].Text)
	assert.Nil(t, items[0].Segments, "git entries are plain")

	assert.Equal(t, "(STAGED)", items[1].Text)
	assert.Equal(t, vcs.StagedID, items[1].CommitID)
}

func TestJJItemsAlignment(t *testing.T) {
	records := []vcs.Record{
		{CommitID: "c1", ShortID: "qk", Description: "short one", Age: "2 hours ago", Kind: vcs.KindCurrent},
		{CommitID: "c2", ShortID: "zmxwv", Description: strings.Repeat("long description ", 5), Age: "3 days ago", Kind: vcs.KindImmutable},
		{CommitID: "c3", ShortID: "v", Description: "", Age: "5 days ago"},
	}
	items := Items(records, "jj", DefaultStyles())
	require.Len(t, items, 3)

	assert.True(t, strings.HasPrefix(items[0].Text, "@ "))
	assert.True(t, strings.HasPrefix(items[1].Text, "◆ "))
	assert.True(t, strings.HasPrefix(items[2].Text, "○ "))

	// Missing descriptions get the placeholder.
	assert.Contains(t, items[2].Text, "(no description set)")

	// Long descriptions are cut with an ellipsis.
	assert.Contains(t, items[1].Text, textutil.Ellipsis)

	// The change-id column is padded to the widest id in the batch, so the
	// age column starts at the same offset everywhere.
	offsets := make(map[int]bool)
	for i, it := range items {
		prefix := strings.TrimSuffix(it.Text, records[i].Age)
		require.NotEqual(t, it.Text, prefix)
		offsets[textutil.Width(prefix)] = true
	}
	assert.Len(t, offsets, 1, "age column must align across the batch")
}

func TestJJItemsSegments(t *testing.T) {
	records := []vcs.Record{
		{CommitID: "c1", ShortID: "qk", Description: "subject", Age: "2 hours ago", Kind: vcs.KindCurrent},
	}
	items := Items(records, "jj", DefaultStyles())
	require.Len(t, items, 1)
	require.Len(t, items[0].Segments, 4)

	// Concatenated segment text equals the plain text, so renderers without
	// segment support lose nothing but styling.
	var joined string
	for _, seg := range items[0].Segments {
		joined += seg.Text
	}
	assert.Equal(t, items[0].Text, joined)
}

func TestItemRenderFallsBackToPlainText(t *testing.T) {
	it := Item{CommitID: "c", Text: "plain entry"}
	assert.Equal(t, "plain entry", it.Render())
}
