package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/piet/pkg/graphics"
	"github.com/go-drift/piet/pkg/platform"
)

// Snapshot captures the structure of a view tree.
type Snapshot struct {
	ViewTree *ViewNode `json:"viewTree"`
}

// ViewNode represents a view in the serialized tree. IDs are assigned per
// view type in traversal order so snapshots do not depend on registry ids.
type ViewNode struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Visibility string         `json:"visibility,omitempty"`
	Layout     map[string]any `json:"layout,omitempty"`
	Properties map[string]any `json:"props,omitempty"`
	Children   []*ViewNode    `json:"children,omitempty"`
}

// CaptureSnapshot captures the tree under root.
func CaptureSnapshot(root platform.View) *Snapshot {
	snap := &Snapshot{}
	if root != nil {
		snap.ViewTree = captureViewNode(root, &typeCounter{})
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When PIET_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("PIET_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: PIET_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: PIET_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a unified diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

// --- Internal ---

// typeCounter assigns stable IDs like "text#0", "text#1".
type typeCounter struct {
	counts map[string]int
}

func (c *typeCounter) next(typeName string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[typeName]
	c.counts[typeName] = n + 1
	return fmt.Sprintf("%s#%d", typeName, n)
}

func captureViewNode(v platform.View, counter *typeCounter) *ViewNode {
	typeName := strings.TrimPrefix(v.ViewType(), "piet/")
	node := &ViewNode{
		ID:   counter.next(typeName),
		Type: typeName,
	}
	if v.Visibility() != platform.Visible {
		node.Visibility = v.Visibility().String()
	}
	node.Layout = captureLayout(v.LayoutParams())
	if props := captureProperties(v); len(props) > 0 {
		node.Properties = props
	}

	if g, ok := v.(platform.ViewGroup); ok {
		for i := 0; i < g.ChildCount(); i++ {
			node.Children = append(node.Children, captureViewNode(g.ChildAt(i), counter))
		}
	}
	return node
}

func captureLayout(lp platform.LayoutParams) map[string]any {
	m := map[string]any{
		"width":  sizeValue(lp.Width),
		"height": sizeValue(lp.Height),
	}
	if lp.Weight > 0 {
		m["weight"] = lp.Weight
	}
	if lp.Gravity != platform.GravityNone {
		m["gravity"] = int(lp.Gravity)
	}
	if !lp.Margins.IsZero() {
		m["margins"] = insets(lp.Margins)
	}
	if lp.Collapsible {
		m["collapsible"] = true
	}
	return m
}

func sizeValue(px int) any {
	switch px {
	case platform.MatchParent:
		return "match"
	case platform.WrapContent:
		return "wrap"
	default:
		return px
	}
}

// insets serializes as [start, top, end, bottom] so a loaded snapshot
// marshals back identically.
func insets(e graphics.EdgeInsets) []int {
	return []int{e.Start, e.Top, e.End, e.Bottom}
}

func captureProperties(v platform.View) map[string]any {
	props := make(map[string]any)
	if bg := v.Background(); bg.Color != nil {
		props["background"] = bg.Color.String()
	} else if len(bg.Stops) > 0 {
		props["gradient"] = len(bg.Stops)
	}
	if p := v.Padding(); !p.IsZero() {
		props["padding"] = insets(p)
	}
	if r := v.CornerRadius(); r != 0 {
		props["cornerRadius"] = r
	}
	if a := v.Alpha(); a != 1 {
		props["alpha"] = a
	}
	if d := v.ContentDescription(); d != "" {
		props["description"] = d
	}
	if v.IsAccessibilityHeading() {
		props["heading"] = true
	}
	if v.HasOnClickListener() {
		props["clickable"] = true
	}
	switch tv := v.(type) {
	case platform.TextView:
		props["text"] = tv.Text()
		if n := len(tv.Spans()); n > 0 {
			props["spans"] = n
		}
		if tf := tv.Typeface(); tf != nil {
			props["typeface"] = tf.Name
		}
	case platform.ImageView:
		if d := tv.Drawable(); d != nil {
			props["src"] = d.URI
		}
		if s := tv.ScaleType(); s != "" {
			props["scale"] = s
		}
		if ph := tv.Placeholder(); ph.Color != nil {
			props["placeholder"] = ph.Color.String()
		}
	}
	return props
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := max(len(expectedLines), len(actualLines))
	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
