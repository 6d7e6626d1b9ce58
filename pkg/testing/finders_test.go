package testing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/piet/pkg/platform"
)

// buildTree returns list[text "Title", row[text "a", image], text "Footer"].
func buildTree(t *testing.T) platform.ViewGroup {
	t.Helper()
	r := platform.NewMemoryRegistry()
	create := func(viewType string) platform.View {
		v, err := r.Create(viewType)
		require.NoError(t, err)
		return v
	}
	text := func(s string) platform.View {
		v := create(platform.ViewTypeText)
		v.(platform.TextView).SetText(s)
		return v
	}

	root := create(platform.ViewTypeList).(platform.ViewGroup)
	row := create(platform.ViewTypeRow).(platform.ViewGroup)
	img := create(platform.ViewTypeImage)
	img.SetContentDescription("avatar")
	img.(platform.ImageView).SetDrawable(&platform.Drawable{URI: "a.png"})

	root.AddView(text("Title"))
	row.AddView(text("a"))
	row.AddView(img)
	root.AddView(row)
	root.AddView(text("Footer"))
	return root
}

func TestFindByText(t *testing.T) {
	root := buildTree(t)
	result := Find(root, ByText("Title"))
	assert.Equal(t, 1, result.Count())
	assert.Equal(t, []string{"Title"}, result.Texts())
	assert.False(t, Find(root, ByText("Tit")).Exists())
	assert.Equal(t, []string{"Title"}, Find(root, ByTextContaining("Tit")).Texts())
}

func TestFindByViewTypeIsPreOrder(t *testing.T) {
	root := buildTree(t)
	assert.Equal(t, []string{"Title", "a", "Footer"}, Find(root, ByViewType(platform.ViewTypeText)).Texts())
}

func TestFindByContentDescriptionAndImage(t *testing.T) {
	root := buildTree(t)
	byDesc := Find(root, ByContentDescription("avatar")).First()
	assert.Same(t, byDesc, Find(root, ByImageURI("a.png")).First())
}

func TestFindDescendant(t *testing.T) {
	root := buildTree(t)
	inRow := Find(root, Descendant(ByViewType(platform.ViewTypeRow), ByViewType(platform.ViewTypeText)))
	assert.Equal(t, []string{"a"}, inRow.Texts())
}

func TestFindShown(t *testing.T) {
	root := buildTree(t)
	row := Find(root, ByViewType(platform.ViewTypeRow)).First()
	row.SetVisibility(platform.Gone)

	assert.Equal(t, []string{"Title", "Footer"}, Find(root, Shown(ByViewType(platform.ViewTypeText))).Texts())
	assert.Equal(t, "Shown(ByViewType(\"piet/text\"))", Shown(ByViewType(platform.ViewTypeText)).Description())
}

func TestFinderResultAccessors(t *testing.T) {
	root := buildTree(t)
	none := Find(root, ByText("nope"))
	assert.Nil(t, none.FirstOrNil())
	assert.PanicsWithValue(t, `Finder found no views: ByText("nope")`, func() { none.First() })
	assert.Panics(t, func() { Find(root, ByText("Title")).At(1) })
	assert.Equal(t, 0, Find(nil, ByText("Title")).Count())
}

func TestTap(t *testing.T) {
	root := buildTree(t)
	clicks := 0
	Find(root, ByText("Title")).First().SetOnClickListener(func() { clicks++ })

	require.NoError(t, Tap(root, ByText("Title")))
	assert.Equal(t, 1, clicks)
	assert.Error(t, Tap(root, ByText("Footer")))
	assert.Error(t, Tap(root, ByText("nope")))
	assert.Error(t, LongPress(root, ByText("Title")))
}

func TestTapSpan(t *testing.T) {
	root := buildTree(t)
	title := Find(root, ByText("Title")).First()
	tapped := false
	title.(platform.TextView).SetSpans([]platform.Span{{Start: 0, End: 2}, {Start: 2, End: 5, OnClick: func() { tapped = true }}})

	assert.Error(t, TapSpan(title, 0))
	require.NoError(t, TapSpan(title, 3))
	assert.True(t, tapped)
	assert.Error(t, TapSpan(root, 0))
}

func TestLayout(t *testing.T) {
	root := buildTree(t)
	Layout(root, 100, 10)

	// Title, row(a, image), Footer: four leaves of 10px.
	assert.Equal(t, 40, root.Bounds().Height())
	row := Find(root, ByViewType(platform.ViewTypeRow)).First()
	assert.Equal(t, 10, row.Bounds().Top)
	assert.Equal(t, 20, row.Bounds().Height())
	assert.Equal(t, 30, Find(root, ByText("Footer")).First().Bounds().Top)
}
