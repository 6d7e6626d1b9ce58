package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/piet/pkg/platform"
)

// Finder locates views in a view tree.
type Finder interface {
	// Evaluate returns all matching views under root (depth-first pre-order).
	Evaluate(root platform.View) []platform.View
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	views  []platform.View
	finder Finder
}

// Find evaluates finder against root.
func Find(root platform.View, finder Finder) FinderResult {
	var views []platform.View
	if root != nil {
		views = finder.Evaluate(root)
	}
	return FinderResult{views: views, finder: finder}
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() platform.View {
	if len(r.views) == 0 {
		panic(fmt.Sprintf("Finder found no views: %s", r.description()))
	}
	return r.views[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() platform.View {
	if len(r.views) == 0 {
		return nil
	}
	return r.views[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) platform.View {
	if index < 0 || index >= len(r.views) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.views), r.description()))
	}
	return r.views[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []platform.View {
	return r.views
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.views)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.views) > 0
}

// Texts returns the text of every matched text view.
func (r FinderResult) Texts() []string {
	var out []string
	for _, v := range r.views {
		if tv, ok := v.(platform.TextView); ok {
			out = append(out, tv.Text())
		}
	}
	return out
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// --- Concrete finders ---

// predicateFinder matches views satisfying a predicate.
type predicateFinder struct {
	fn   func(platform.View) bool
	desc string
}

func (f *predicateFinder) Evaluate(root platform.View) []platform.View {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches views satisfying fn.
func ByPredicate(fn func(platform.View) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// ByViewType returns a finder that matches views of the given registry
// type, such as [platform.ViewTypeText].
func ByViewType(viewType string) Finder {
	return &predicateFinder{
		fn:   func(v platform.View) bool { return v.ViewType() == viewType },
		desc: fmt.Sprintf("ByViewType(%q)", viewType),
	}
}

// ByText returns a finder that matches text views with exact text.
func ByText(text string) Finder {
	return &predicateFinder{
		fn: func(v platform.View) bool {
			tv, ok := v.(platform.TextView)
			return ok && tv.Text() == text
		},
		desc: fmt.Sprintf("ByText(%q)", text),
	}
}

// ByTextContaining returns a finder that matches text views containing
// substring.
func ByTextContaining(substring string) Finder {
	return &predicateFinder{
		fn: func(v platform.View) bool {
			tv, ok := v.(platform.TextView)
			return ok && strings.Contains(tv.Text(), substring)
		},
		desc: fmt.Sprintf("ByTextContaining(%q)", substring),
	}
}

// ByContentDescription returns a finder that matches views with the
// given accessibility description.
func ByContentDescription(desc string) Finder {
	return &predicateFinder{
		fn:   func(v platform.View) bool { return v.ContentDescription() == desc },
		desc: fmt.Sprintf("ByContentDescription(%q)", desc),
	}
}

// ByImageURI returns a finder that matches image views showing uri.
func ByImageURI(uri string) Finder {
	return &predicateFinder{
		fn: func(v platform.View) bool {
			iv, ok := v.(platform.ImageView)
			return ok && iv.Drawable() != nil && iv.Drawable().URI == uri
		},
		desc: fmt.Sprintf("ByImageURI(%q)", uri),
	}
}

// shownFinder narrows another finder to views that are shown.
type shownFinder struct {
	finder Finder
}

func (f *shownFinder) Evaluate(root platform.View) []platform.View {
	var results []platform.View
	for _, v := range f.finder.Evaluate(root) {
		if v.IsShown() {
			results = append(results, v)
		}
	}
	return results
}

func (f *shownFinder) Description() string {
	return fmt.Sprintf("Shown(%s)", f.finder.Description())
}

// Shown narrows finder to views that are visible along with all their
// ancestors.
func Shown(finder Finder) Finder {
	return &shownFinder{finder: finder}
}

// descendantFinder finds views matching 'matching' that are descendants
// of views matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root platform.View) []platform.View {
	var results []platform.View
	seen := make(map[platform.View]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		g, ok := ancestor.(platform.ViewGroup)
		if !ok {
			continue
		}
		// Search within each ancestor's subtree, skipping the ancestor.
		for i := 0; i < g.ChildCount(); i++ {
			for _, match := range f.matching.Evaluate(g.ChildAt(i)) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches views satisfying 'matching'
// that are descendants of views matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// collectMatches performs depth-first pre-order traversal, collecting
// views that satisfy the predicate.
func collectMatches(root platform.View, predicate func(platform.View) bool) []platform.View {
	var results []platform.View
	walkTree(root, func(v platform.View) {
		if predicate(v) {
			results = append(results, v)
		}
	})
	return results
}

// walkTree performs a depth-first pre-order traversal of the view tree.
func walkTree(root platform.View, visitor func(platform.View)) {
	visitor(root)
	if g, ok := root.(platform.ViewGroup); ok {
		for i := 0; i < g.ChildCount(); i++ {
			walkTree(g.ChildAt(i), visitor)
		}
	}
}
