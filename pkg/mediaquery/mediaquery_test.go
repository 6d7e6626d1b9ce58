package mediaquery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-drift/piet/pkg/model"
)

func TestNewConvertsToDp(t *testing.T) {
	h := New(1080, 2.5, model.OrientationPortrait, false)
	assert.Equal(t, 432, h.FrameWidthDp)
	assert.Equal(t, 300, New(300, 0, model.OrientationPortrait, false).FrameWidthDp)
}

func TestFrameWidthConditions(t *testing.T) {
	h := Helper{FrameWidthDp: 400}
	tests := []struct {
		name string
		cond model.FrameWidthCondition
		want bool
	}{
		{"equals", model.FrameWidthCondition{Width: 400, Condition: model.ComparisonEquals}, true},
		{"not equals", model.FrameWidthCondition{Width: 400, Condition: model.ComparisonNotEquals}, false},
		{"greater", model.FrameWidthCondition{Width: 300, Condition: model.ComparisonGreaterThan}, true},
		{"greater boundary", model.FrameWidthCondition{Width: 400, Condition: model.ComparisonGreaterThan}, false},
		{"less", model.FrameWidthCondition{Width: 500, Condition: model.ComparisonLessThan}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.AreMediaQueriesMet([]model.MediaQueryCondition{tt.cond}))
		})
	}
}

func TestAllConditionsMustHold(t *testing.T) {
	h := Helper{FrameWidthDp: 600, Orientation: model.OrientationLandscape, DarkTheme: true}

	assert.True(t, h.AreMediaQueriesMet(nil))
	assert.True(t, h.AreMediaQueriesMet([]model.MediaQueryCondition{
		model.OrientationCondition{Orientation: model.OrientationLandscape},
		model.DarkLightCondition{Mode: model.DarkLightDark},
	}))
	assert.False(t, h.AreMediaQueriesMet([]model.MediaQueryCondition{
		model.OrientationCondition{Orientation: model.OrientationLandscape},
		model.DarkLightCondition{Mode: model.DarkLightLight},
	}))
	assert.False(t, h.AreMediaQueriesMet([]model.MediaQueryCondition{nil}))
}

func TestHelperIsComparable(t *testing.T) {
	a := New(800, 2, model.OrientationPortrait, true)
	b := New(800, 2, model.OrientationPortrait, true)
	assert.True(t, a == b)
	m := map[Helper]int{a: 1}
	assert.Equal(t, 1, m[b])
}
