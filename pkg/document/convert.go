package document

import (
	"fmt"
	"slices"
	"strings"

	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/graphics"
	"github.com/go-drift/piet/pkg/model"
)

// path locates a node for error messages, e.g. frame.contents[2].element.
type path string

func (p path) key(k string) path {
	if p == "" {
		return path(k)
	}
	return path(string(p) + "." + k)
}

func (p path) at(i int) path {
	return path(fmt.Sprintf("%s[%d]", p, i))
}

func (p path) errorf(format string, args ...any) error {
	return &ParseError{Path: string(p), Msg: fmt.Sprintf(format, args...)}
}

type variant struct {
	name string
	set  bool
}

// pickOne returns the single variant that is set. With optional, no
// variant at all yields "".
func pickOne(p path, optional bool, vs ...variant) (string, error) {
	var set []string
	for _, v := range vs {
		if v.set {
			set = append(set, v.name)
		}
	}
	switch {
	case len(set) == 1:
		return set[0], nil
	case len(set) > 1:
		return "", p.errorf("only one of %s may be set", strings.Join(set, ", "))
	case optional:
		return "", nil
	}
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.name
	}
	return "", p.errorf("one of %s is required", strings.Join(names, ", "))
}

func lookup[T any](p path, value string, table map[string]T) (T, error) {
	v, ok := table[strings.ToUpper(strings.TrimSpace(value))]
	if !ok {
		var zero T
		keys := make([]string, 0, len(table))
		for k := range table {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return zero, p.errorf("unknown value %q (want one of %s)", value, strings.Join(keys, ", "))
	}
	return v, nil
}

func lookupPtr[T any](p path, value *string, table map[string]T) (*T, error) {
	if value == nil {
		return nil, nil
	}
	v, err := lookup(p, *value, table)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

var (
	comparisons = map[string]model.Comparison{
		"EQUALS":       model.ComparisonEquals,
		"NOT_EQUALS":   model.ComparisonNotEquals,
		"GREATER_THAN": model.ComparisonGreaterThan,
		"LESS_THAN":    model.ComparisonLessThan,
	}
	orientations = map[string]model.Orientation{
		"PORTRAIT":  model.OrientationPortrait,
		"LANDSCAPE": model.OrientationLandscape,
	}
	darkLightModes = map[string]model.DarkLightMode{
		"DARK":  model.DarkLightDark,
		"LIGHT": model.DarkLightLight,
	}
	horizontalGravities = map[string]model.GravityHorizontal{
		"START":  model.GravityStart,
		"CENTER": model.GravityCenter,
		"END":    model.GravityEnd,
	}
	verticalGravities = map[string]model.GravityVertical{
		"TOP":    model.GravityTop,
		"MIDDLE": model.GravityMiddle,
		"BOTTOM": model.GravityBottom,
	}
	horizontalAlignments = map[string]model.TextAlignmentHorizontal{
		"START":  model.TextAlignmentStart,
		"CENTER": model.TextAlignmentCenter,
		"END":    model.TextAlignmentEnd,
	}
	verticalAlignments = map[string]model.TextAlignmentVertical{
		"TOP":    model.TextAlignmentTop,
		"MIDDLE": model.TextAlignmentMiddle,
		"BOTTOM": model.TextAlignmentBottom,
	}
	scaleTypes = map[string]model.ScaleType{
		"FIT":         model.ScaleTypeFit,
		"CROP_CENTER": model.ScaleTypeCropCenter,
		"STRETCH":     model.ScaleTypeStretch,
	}
	fontWeights = map[string]model.FontWeight{
		"LIGHT":   model.FontWeightLight,
		"REGULAR": model.FontWeightRegular,
		"MEDIUM":  model.FontWeightMedium,
		"BOLD":    model.FontWeightBold,
	}
	visibilities = map[string]model.Visibility{
		"VISIBLE":   model.VisibilityVisible,
		"INVISIBLE": model.VisibilityInvisible,
		"GONE":      model.VisibilityGone,
	}
	roles = map[string]model.AccessibilityRole{
		"HEADER": model.AccessibilityRoleHeader,
	}
)

func convertSharedState(p path, d *sharedStateDTO) (*model.SharedState, error) {
	s := &model.SharedState{}
	if d == nil {
		return s, nil
	}
	for i, ss := range d.Stylesheets {
		sheet, err := convertStylesheet(p.key("stylesheets").at(i), ss)
		if err != nil {
			return nil, err
		}
		s.Stylesheets = append(s.Stylesheets, sheet)
	}
	for i, td := range d.Templates {
		t, err := convertTemplate(p.key("templates").at(i), td)
		if err != nil {
			return nil, err
		}
		s.Templates = append(s.Templates, t)
	}
	return s, nil
}

func convertFrame(p path, d *frameDTO) (*model.Frame, error) {
	f := &model.Frame{Tag: d.Tag}
	var err error
	if f.StyleReferences, err = convertStyleRefs(p.key("styleReferences"), d.StyleReferences); err != nil {
		return nil, err
	}
	if f.Stylesheets, err = convertStylesheets(p.key("stylesheets"), d.Stylesheets); err != nil {
		return nil, err
	}
	for i, td := range d.Templates {
		t, err := convertTemplate(p.key("templates").at(i), td)
		if err != nil {
			return nil, err
		}
		f.Templates = append(f.Templates, t)
	}
	if f.Contents, err = convertContents(p.key("contents"), d.Contents); err != nil {
		return nil, err
	}
	if f.Actions, err = convertActions(p.key("actions"), d.Actions); err != nil {
		return nil, err
	}
	return f, nil
}

func convertTemplate(p path, d *templateDTO) (*model.Template, error) {
	if d == nil {
		return nil, p.errorf("template is empty")
	}
	if d.ID == "" {
		return nil, p.key("id").errorf("template id is required")
	}
	t := &model.Template{TemplateID: d.ID}
	var err error
	if t.Stylesheets, err = convertStylesheets(p.key("stylesheets"), d.Stylesheets); err != nil {
		return nil, err
	}
	if t.Conditions, err = convertConditions(p.key("conditions"), d.Conditions); err != nil {
		return nil, err
	}
	if d.Element == nil {
		return nil, p.key("element").errorf("template element is required")
	}
	if t.Element, err = convertElement(p.key("element"), d.Element); err != nil {
		return nil, err
	}
	return t, nil
}

func convertStylesheets(p path, d *stylesheetsDTO) (model.Stylesheets, error) {
	var s model.Stylesheets
	if d == nil {
		return s, nil
	}
	s.StylesheetIDs = d.IDs
	for i, sd := range d.Inline {
		sheet, err := convertStylesheet(p.key("inline").at(i), sd)
		if err != nil {
			return s, err
		}
		s.Stylesheets = append(s.Stylesheets, sheet)
	}
	return s, nil
}

func convertStylesheet(p path, d *stylesheetDTO) (*model.Stylesheet, error) {
	if d == nil {
		return nil, p.errorf("stylesheet is empty")
	}
	s := &model.Stylesheet{StylesheetID: d.ID}
	var err error
	if s.Conditions, err = convertConditions(p.key("conditions"), d.Conditions); err != nil {
		return nil, err
	}
	for i, sd := range d.Styles {
		style, err := convertStyle(p.key("styles").at(i), sd)
		if err != nil {
			return nil, err
		}
		s.Styles = append(s.Styles, style)
	}
	return s, nil
}

func convertConditions(p path, ds []*conditionDTO) ([]model.MediaQueryCondition, error) {
	var out []model.MediaQueryCondition
	for i, d := range ds {
		cp := p.at(i)
		if d == nil {
			return nil, cp.errorf("condition is empty")
		}
		kind, err := pickOne(cp, false,
			variant{"frameWidth", d.FrameWidth != nil},
			variant{"orientation", d.Orientation != ""},
			variant{"mode", d.Mode != ""})
		if err != nil {
			return nil, err
		}
		switch kind {
		case "frameWidth":
			cmp := model.ComparisonEquals
			if d.FrameWidth.Condition != "" {
				if cmp, err = lookup(cp.key("frameWidth").key("condition"), d.FrameWidth.Condition, comparisons); err != nil {
					return nil, err
				}
			}
			out = append(out, model.FrameWidthCondition{Width: d.FrameWidth.Width, Condition: cmp})
		case "orientation":
			o, err := lookup(cp.key("orientation"), d.Orientation, orientations)
			if err != nil {
				return nil, err
			}
			out = append(out, model.OrientationCondition{Orientation: o})
		case "mode":
			m, err := lookup(cp.key("mode"), d.Mode, darkLightModes)
			if err != nil {
				return nil, err
			}
			out = append(out, model.DarkLightCondition{Mode: m})
		}
	}
	return out, nil
}

func convertRef(d *refDTO) *model.BindingRef {
	if d == nil {
		return nil
	}
	return &model.BindingRef{BindingID: d.ID, IsOptional: d.Optional}
}

func requireRef(p path, d *refDTO) (model.BindingRef, error) {
	if d == nil || d.ID == "" {
		return model.BindingRef{}, p.errorf("binding id is required")
	}
	return *convertRef(d), nil
}

func convertStyleRefs(p path, d *styleRefsDTO) (model.StyleIdsStack, error) {
	var s model.StyleIdsStack
	if d == nil {
		return s, nil
	}
	s.StyleIDs = d.IDs
	if d.Binding != nil {
		ref, err := requireRef(p.key("binding"), d.Binding)
		if err != nil {
			return s, err
		}
		s.StyleBinding = &ref
	}
	return s, nil
}

func convertColor(p path, s *string) (*graphics.Color, error) {
	if s == nil {
		return nil, nil
	}
	c, err := ParseColor(*s)
	if err != nil {
		return nil, p.errorf("%v", err)
	}
	return &c, nil
}

func convertFill(p path, d *fillDTO) (*model.Fill, error) {
	if d == nil {
		return nil, nil
	}
	if _, err := pickOne(p, false, variant{"color", d.Color != nil}, variant{"gradient", d.Gradient != nil}); err != nil {
		return nil, err
	}
	f := &model.Fill{}
	var err error
	if f.Color, err = convertColor(p.key("color"), d.Color); err != nil {
		return nil, err
	}
	if g := d.Gradient; g != nil {
		lg := &model.LinearGradient{DirectionDeg: g.Direction}
		for i, stop := range g.Stops {
			c, err := ParseColor(stop.Color)
			if err != nil {
				return nil, p.key("gradient").key("stops").at(i).key("color").errorf("%v", err)
			}
			lg.Stops = append(lg.Stops, model.ColorStop{Color: c, Position: stop.Position})
		}
		f.LinearGradient = lg
	}
	return f, nil
}

func convertEdges(d *edgesDTO) *model.EdgeWidths {
	if d == nil {
		return nil
	}
	return &model.EdgeWidths{Start: d.Start, Top: d.Top, End: d.End, Bottom: d.Bottom}
}

func convertStyle(p path, d *styleDTO) (*model.Style, error) {
	if d == nil {
		return nil, p.errorf("style is empty")
	}
	s := &model.Style{
		StyleID:   d.ID,
		Padding:   convertEdges(d.Padding),
		Margins:   convertEdges(d.Margins),
		MaxLines:  d.MaxLines,
		MinHeight: d.MinHeight,
		Height:    d.Height,
		Width:     d.Width,
		Opacity:   d.Opacity,
	}
	var err error
	if s.Color, err = convertColor(p.key("color"), d.Color); err != nil {
		return nil, err
	}
	if s.Background, err = convertFill(p.key("background"), d.Background); err != nil {
		return nil, err
	}
	if s.PreLoadFill, err = convertFill(p.key("preLoadFill"), d.PreLoadFill); err != nil {
		return nil, err
	}
	if b := d.Borders; b != nil {
		s.Borders = &model.Borders{Width: b.Width, Bitmask: b.Bitmask}
		if s.Borders.Color, err = convertColor(p.key("borders").key("color"), b.Color); err != nil {
			return nil, err
		}
	}
	if r := d.RoundedCorners; r != nil {
		s.RoundedCorners = &model.RoundedCorners{Radius: r.Radius, Bitmask: r.Bitmask}
	}
	if sh := d.Shadow; sh != nil {
		s.Shadow = &model.Shadow{Elevation: sh.Elevation}
		if s.Shadow.Color, err = convertColor(p.key("shadow").key("color"), sh.Color); err != nil {
			return nil, err
		}
	}
	if s.Font, err = convertFont(p.key("font"), d.Font); err != nil {
		return nil, err
	}
	if s.GravityHorizontal, err = lookupPtr(p.key("gravityHorizontal"), d.GravityHorizontal, horizontalGravities); err != nil {
		return nil, err
	}
	if s.GravityVertical, err = lookupPtr(p.key("gravityVertical"), d.GravityVertical, verticalGravities); err != nil {
		return nil, err
	}
	if s.TextAlignmentHorizontal, err = lookupPtr(p.key("textAlignmentHorizontal"), d.TextAlignmentHorizontal, horizontalAlignments); err != nil {
		return nil, err
	}
	if s.TextAlignmentVertical, err = lookupPtr(p.key("textAlignmentVertical"), d.TextAlignmentVertical, verticalAlignments); err != nil {
		return nil, err
	}
	if s.ScaleType, err = lookupPtr(p.key("scaleType"), d.ScaleType, scaleTypes); err != nil {
		return nil, err
	}
	return s, nil
}

func convertFont(p path, d *fontDTO) (*model.Font, error) {
	if d == nil {
		return nil, nil
	}
	f := &model.Font{
		Size:            d.Size,
		Italic:          d.Italic,
		LineHeight:      d.LineHeight,
		LetterSpacingDp: d.LetterSpacing,
	}
	var err error
	if f.Weight, err = lookupPtr(p.key("weight"), d.Weight, fontWeights); err != nil {
		return nil, err
	}
	for _, tf := range d.Typefaces {
		f.Typeface = append(f.Typeface, model.Typeface{CommonTypeface: tf.Common, CustomTypeface: tf.Custom})
	}
	return f, nil
}

func convertBoundStyle(p path, d *boundStyleDTO) (*model.BoundStyle, error) {
	s := &model.BoundStyle{Opacity: d.Opacity}
	var err error
	if s.Color, err = convertColor(p.key("color"), d.Color); err != nil {
		return nil, err
	}
	if s.Background, err = convertFill(p.key("background"), d.Background); err != nil {
		return nil, err
	}
	if s.ScaleType, err = lookupPtr(p.key("scaleType"), d.ScaleType, scaleTypes); err != nil {
		return nil, err
	}
	return s, nil
}

func convertAction(p path, d *actionDTO) (*model.Action, error) {
	if d == nil {
		return nil, nil
	}
	if d.Name == "" {
		return nil, p.key("name").errorf("action name is required")
	}
	return &model.Action{Name: d.Name, Payload: d.Payload}, nil
}

func convertActions(p path, d *actionsDTO) (*model.Actions, error) {
	if d == nil {
		return nil, nil
	}
	a := &model.Actions{}
	var err error
	if a.OnClickAction, err = convertAction(p.key("onClick"), d.OnClick); err != nil {
		return nil, err
	}
	if a.OnLongClickAction, err = convertAction(p.key("onLongClick"), d.OnLongClick); err != nil {
		return nil, err
	}
	if a.OnViewActions, err = convertVisibilityActions(p.key("onView"), d.OnView); err != nil {
		return nil, err
	}
	if a.OnHideActions, err = convertVisibilityActions(p.key("onHide"), d.OnHide); err != nil {
		return nil, err
	}
	return a, nil
}

func convertVisibilityActions(p path, ds []visibilityActionDTO) ([]*model.VisibilityAction, error) {
	var out []*model.VisibilityAction
	for i, d := range ds {
		vp := p.at(i)
		if d.Proportion < 0 || d.Proportion > 1 {
			return nil, vp.key("proportion").errorf("proportion %v is outside [0, 1]", d.Proportion)
		}
		if d.Action == nil {
			return nil, vp.key("action").errorf("action is required")
		}
		action, err := convertAction(vp.key("action"), d.Action)
		if err != nil {
			return nil, err
		}
		out = append(out, &model.VisibilityAction{ProportionVisible: d.Proportion, Action: action})
	}
	return out, nil
}

func convertContents(p path, ds []*contentDTO) ([]model.Content, error) {
	var out []model.Content
	for i, d := range ds {
		c, err := convertContent(p.at(i), d)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func convertContent(p path, d *contentDTO) (model.Content, error) {
	if d == nil {
		return model.Content{}, p.errorf("content is empty")
	}
	kind, err := pickOne(p, false,
		variant{"element", d.Element != nil},
		variant{"templateInvocation", d.TemplateInvocation != nil},
		variant{"boundElement", d.BoundElement != nil},
		variant{"templateBinding", d.TemplateBinding != nil})
	if err != nil {
		return model.Content{}, err
	}
	switch kind {
	case "element":
		el, err := convertElement(p.key("element"), d.Element)
		if err != nil {
			return model.Content{}, err
		}
		return model.ElementContentOf(el), nil
	case "templateInvocation":
		inv, err := convertInvocation(p.key("templateInvocation"), d.TemplateInvocation)
		if err != nil {
			return model.Content{}, err
		}
		return model.TemplateContentOf(inv), nil
	case "boundElement":
		ref, err := requireRef(p.key("boundElement"), d.BoundElement)
		if err != nil {
			return model.Content{}, err
		}
		return model.BoundElementOf(ref), nil
	default:
		ref, err := requireRef(p.key("templateBinding"), d.TemplateBinding)
		if err != nil {
			return model.Content{}, err
		}
		return model.TemplateBindingOf(ref), nil
	}
}

func convertInvocation(p path, d *invocationDTO) (*model.TemplateInvocation, error) {
	if d.TemplateID == "" {
		return nil, p.key("templateId").errorf("template id is required")
	}
	inv := &model.TemplateInvocation{TemplateID: d.TemplateID}
	for i, values := range d.BindingContexts {
		cp := p.key("bindingContexts").at(i)
		bc := &model.BindingContext{}
		for j, vd := range values {
			v, err := convertBindingValue(cp.at(j), vd)
			if err != nil {
				return nil, err
			}
			bc.BindingValues = append(bc.BindingValues, v)
		}
		if err := bc.Validate(); err != nil {
			return nil, cp.errorf("%s", pieterrors.MessageOf(err))
		}
		inv.BindingContexts = append(inv.BindingContexts, bc)
	}
	return inv, nil
}
