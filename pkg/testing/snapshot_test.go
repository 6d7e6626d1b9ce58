package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/piet/pkg/graphics"
	"github.com/go-drift/piet/pkg/platform"
)

func TestCaptureSnapshotStructure(t *testing.T) {
	snap := CaptureSnapshot(buildTree(t))
	root := snap.ViewTree
	require.NotNil(t, root)
	assert.Equal(t, "linear_vertical#0", root.ID)
	require.Len(t, root.Children, 3)
	assert.Equal(t, "text#0", root.Children[0].ID)
	assert.Equal(t, "Title", root.Children[0].Properties["text"])
	assert.Equal(t, "text#1", root.Children[1].Children[0].ID)
	assert.Equal(t, "a.png", root.Children[1].Children[1].Properties["src"])
	assert.Equal(t, "wrap", root.Layout["width"])

	assert.Nil(t, CaptureSnapshot(nil).ViewTree)
}

func TestSnapshotDiff(t *testing.T) {
	root := buildTree(t)
	a := CaptureSnapshot(root)
	assert.Empty(t, a.Diff(CaptureSnapshot(root)))

	Find(root, ByText("Footer")).First().(platform.TextView).SetText("Changed")
	diff := CaptureSnapshot(root).Diff(a)
	assert.Contains(t, diff, "--- expected\n+++ actual\n")
	assert.Regexp(t, `(?m)^-\s+"text": "Footer",?$`, diff)
	assert.Regexp(t, `(?m)^\+\s+"text": "Changed",?$`, diff)
}

func TestSnapshotFileRoundTrip(t *testing.T) {
	root := buildTree(t)
	red := graphics.RGB(255, 0, 0)
	root.SetBackground(platform.Background{Color: &red})
	root.SetPadding(graphics.EdgeInsets{Start: 1, Top: 2, End: 3, Bottom: 4})
	root.SetAlpha(0.5)

	path := filepath.Join(t.TempDir(), "nested", "tree.snapshot.json")
	snap := CaptureSnapshot(root)
	require.NoError(t, snap.UpdateFile(path))

	rec := &fatalRecorder{}
	snap.MatchesFile(rec, path)
	assert.Empty(t, rec.fatals)

	Find(root, ByText("Title")).First().(platform.TextView).SetText("Other")
	CaptureSnapshot(root).MatchesFile(rec, path)
	require.Len(t, rec.fatals, 1)
	assert.Contains(t, rec.fatals[0], "snapshot mismatch")
}

func TestSnapshotMissingFile(t *testing.T) {
	rec := &fatalRecorder{}
	CaptureSnapshot(buildTree(t)).MatchesFile(rec, filepath.Join(t.TempDir(), "missing.json"))
	require.Len(t, rec.fatals, 1)
	assert.Contains(t, rec.fatals[0], "snapshot file missing")
}

func TestSnapshotUpdateEnv(t *testing.T) {
	t.Setenv("PIET_UPDATE_SNAPSHOTS", "1")
	path := filepath.Join(t.TempDir(), "new.json")
	rec := &fatalRecorder{}
	CaptureSnapshot(buildTree(t)).MatchesFile(rec, path)
	assert.Empty(t, rec.fatals)
	_, err := os.Stat(path)
	assert.NoError(t, err)
}
