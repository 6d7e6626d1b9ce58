package document

import (
	"gopkg.in/yaml.v3"
)

type documentDTO struct {
	Version      string            `yaml:"version"`
	SharedStates []*sharedStateDTO `yaml:"sharedStates"`
	Frame        *frameDTO         `yaml:"frame"`
}

type sharedStateDTO struct {
	Stylesheets []*stylesheetDTO `yaml:"stylesheets"`
	Templates   []*templateDTO   `yaml:"templates"`
}

type frameDTO struct {
	Tag             string          `yaml:"tag"`
	StyleReferences *styleRefsDTO   `yaml:"styleReferences"`
	Stylesheets     *stylesheetsDTO `yaml:"stylesheets"`
	Templates       []*templateDTO  `yaml:"templates"`
	Contents        []*contentDTO   `yaml:"contents"`
	Actions         *actionsDTO     `yaml:"actions"`
}

type templateDTO struct {
	ID          string          `yaml:"id"`
	Stylesheets *stylesheetsDTO `yaml:"stylesheets"`
	Conditions  []*conditionDTO `yaml:"conditions"`
	Element     *elementDTO     `yaml:"element"`
}

type stylesheetsDTO struct {
	IDs    []string         `yaml:"ids"`
	Inline []*stylesheetDTO `yaml:"inline"`
}

type stylesheetDTO struct {
	ID         string          `yaml:"id"`
	Conditions []*conditionDTO `yaml:"conditions"`
	Styles     []*styleDTO     `yaml:"styles"`
}

type conditionDTO struct {
	FrameWidth  *frameWidthDTO `yaml:"frameWidth"`
	Orientation string         `yaml:"orientation"`
	Mode        string         `yaml:"mode"`
}

type frameWidthDTO struct {
	Width     int    `yaml:"width"`
	Condition string `yaml:"condition"`
}

// refDTO is a binding reference. The scalar form `id` is shorthand for a
// required reference.
type refDTO struct {
	ID       string `yaml:"id"`
	Optional bool   `yaml:"optional"`
}

func (r *refDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		r.ID = node.Value
		return nil
	}
	type plain refDTO
	return node.Decode((*plain)(r))
}

type styleRefsDTO struct {
	IDs     []string `yaml:"ids"`
	Binding *refDTO  `yaml:"binding"`
}

// UnmarshalYAML accepts a bare list of ids.
func (s *styleRefsDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&s.IDs)
	}
	type plain styleRefsDTO
	return node.Decode((*plain)(s))
}

type styleDTO struct {
	ID                      string             `yaml:"id"`
	Color                   *string            `yaml:"color"`
	Background              *fillDTO           `yaml:"background"`
	PreLoadFill             *fillDTO           `yaml:"preLoadFill"`
	Borders                 *bordersDTO        `yaml:"borders"`
	RoundedCorners          *roundedCornersDTO `yaml:"roundedCorners"`
	Padding                 *edgesDTO          `yaml:"padding"`
	Margins                 *edgesDTO          `yaml:"margins"`
	Font                    *fontDTO           `yaml:"font"`
	MaxLines                *int               `yaml:"maxLines"`
	MinHeight               *int               `yaml:"minHeight"`
	Height                  *int               `yaml:"height"`
	Width                   *int               `yaml:"width"`
	GravityHorizontal       *string            `yaml:"gravityHorizontal"`
	GravityVertical         *string            `yaml:"gravityVertical"`
	TextAlignmentHorizontal *string            `yaml:"textAlignmentHorizontal"`
	TextAlignmentVertical   *string            `yaml:"textAlignmentVertical"`
	Shadow                  *shadowDTO         `yaml:"shadow"`
	Opacity                 *float32           `yaml:"opacity"`
	ScaleType               *string            `yaml:"scaleType"`
}

type boundStyleDTO struct {
	Color      *string  `yaml:"color"`
	Background *fillDTO `yaml:"background"`
	Opacity    *float32 `yaml:"opacity"`
	ScaleType  *string  `yaml:"scaleType"`
}

// fillDTO is a solid colour or a gradient. A scalar is a colour.
type fillDTO struct {
	Color    *string      `yaml:"color"`
	Gradient *gradientDTO `yaml:"gradient"`
}

func (f *fillDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		c := node.Value
		f.Color = &c
		return nil
	}
	type plain fillDTO
	return node.Decode((*plain)(f))
}

type gradientDTO struct {
	Stops     []colorStopDTO `yaml:"stops"`
	Direction *int           `yaml:"direction"`
}

type colorStopDTO struct {
	Color    string  `yaml:"color"`
	Position float32 `yaml:"position"`
}

type bordersDTO struct {
	Width   *int    `yaml:"width"`
	Color   *string `yaml:"color"`
	Bitmask *uint32 `yaml:"bitmask"`
}

type roundedCornersDTO struct {
	Radius  *int    `yaml:"radius"`
	Bitmask *uint32 `yaml:"bitmask"`
}

type edgesDTO struct {
	Start  *int `yaml:"start"`
	Top    *int `yaml:"top"`
	End    *int `yaml:"end"`
	Bottom *int `yaml:"bottom"`
}

// UnmarshalYAML accepts a single number for all four edges.
func (e *edgesDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var all int
		if err := node.Decode(&all); err != nil {
			return err
		}
		e.Start, e.Top, e.End, e.Bottom = &all, &all, &all, &all
		return nil
	}
	type plain edgesDTO
	return node.Decode((*plain)(e))
}

type fontDTO struct {
	Size          *float32      `yaml:"size"`
	Weight        *string       `yaml:"weight"`
	Italic        *bool         `yaml:"italic"`
	LineHeight    *float32      `yaml:"lineHeight"`
	LetterSpacing *float32      `yaml:"letterSpacing"`
	Typefaces     []typefaceDTO `yaml:"typefaces"`
}

type typefaceDTO struct {
	Common string `yaml:"common"`
	Custom string `yaml:"custom"`
}

type shadowDTO struct {
	Elevation *int    `yaml:"elevation"`
	Color     *string `yaml:"color"`
}

type actionsDTO struct {
	OnClick     *actionDTO            `yaml:"onClick"`
	OnLongClick *actionDTO            `yaml:"onLongClick"`
	OnView      []visibilityActionDTO `yaml:"onView"`
	OnHide      []visibilityActionDTO `yaml:"onHide"`
}

type actionDTO struct {
	Name    string            `yaml:"name"`
	Payload map[string]string `yaml:"payload"`
}

// UnmarshalYAML accepts a bare action name.
func (a *actionDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		a.Name = node.Value
		return nil
	}
	type plain actionDTO
	return node.Decode((*plain)(a))
}

type visibilityActionDTO struct {
	Proportion float32    `yaml:"proportion"`
	Action     *actionDTO `yaml:"action"`
}

type visibilityDTO struct {
	Default string  `yaml:"default"`
	Binding *refDTO `yaml:"binding"`
}

type accessibilityDTO struct {
	Description        *string  `yaml:"description"`
	DescriptionBinding *refDTO  `yaml:"descriptionBinding"`
	Roles              []string `yaml:"roles"`
}

type elementDTO struct {
	StyleReferences *styleRefsDTO     `yaml:"styleReferences"`
	Visibility      *visibilityDTO    `yaml:"visibility"`
	Actions         *actionsDTO       `yaml:"actions"`
	ActionsBinding  *refDTO           `yaml:"actionsBinding"`
	Accessibility   *accessibilityDTO `yaml:"accessibility"`
	LogData         map[string]string `yaml:"logData"`
	LogDataBinding  *refDTO           `yaml:"logDataBinding"`

	Text        *textDTO        `yaml:"text"`
	ChunkedText *chunkedTextDTO `yaml:"chunkedText"`
	Image       *imageElemDTO   `yaml:"image"`
	List        *containerDTO   `yaml:"list"`
	Stack       *containerDTO   `yaml:"stack"`
	GridRow     *gridRowDTO     `yaml:"gridRow"`
	Custom      *customDTO      `yaml:"custom"`
}

// textDTO is inline text or a text binding. A scalar is inline text.
type textDTO struct {
	Value   *string `yaml:"value"`
	Binding *refDTO `yaml:"binding"`
}

func (t *textDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		v := node.Value
		t.Value = &v
		return nil
	}
	type plain textDTO
	return node.Decode((*plain)(t))
}

type chunkedTextDTO struct {
	Chunks  []*chunkDTO `yaml:"chunks"`
	Binding *refDTO     `yaml:"binding"`
}

type chunkDTO struct {
	Text    *textChunkDTO  `yaml:"text"`
	Image   *imageChunkDTO `yaml:"image"`
	Actions *actionsDTO    `yaml:"actions"`
}

type textChunkDTO struct {
	Value           string        `yaml:"value"`
	StyleReferences *styleRefsDTO `yaml:"styleReferences"`
}

type imageChunkDTO struct {
	Image           *imageDTO     `yaml:"image"`
	Binding         *refDTO       `yaml:"binding"`
	StyleReferences *styleRefsDTO `yaml:"styleReferences"`
}

type imageDTO struct {
	Sources     []*imageSourceDTO `yaml:"sources"`
	Description string            `yaml:"description"`
}

type imageSourceDTO struct {
	URL        string          `yaml:"url"`
	WidthPx    int             `yaml:"widthPx"`
	HeightPx   int             `yaml:"heightPx"`
	Conditions []*conditionDTO `yaml:"conditions"`
}

// UnmarshalYAML accepts a bare URL.
func (s *imageSourceDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.URL = node.Value
		return nil
	}
	type plain imageSourceDTO
	return node.Decode((*plain)(s))
}

type imageElemDTO struct {
	Sources     []*imageSourceDTO `yaml:"sources"`
	Description string            `yaml:"description"`
	Binding     *refDTO           `yaml:"binding"`
}

type containerDTO struct {
	Contents []*contentDTO `yaml:"contents"`
}

type gridRowDTO struct {
	Cells []*gridCellDTO `yaml:"cells"`
}

type gridCellDTO struct {
	Content      *contentDTO   `yaml:"content"`
	Width        *cellWidthDTO `yaml:"width"`
	WidthBinding *refDTO       `yaml:"widthBinding"`
}

type cellWidthDTO struct {
	Dp          *int  `yaml:"dp"`
	Weight      *int  `yaml:"weight"`
	Content     *bool `yaml:"content"`
	Collapsible bool  `yaml:"collapsible"`
}

type customDTO struct {
	Kind    string         `yaml:"kind"`
	Data    map[string]any `yaml:"data"`
	Binding *refDTO        `yaml:"binding"`
}

type contentDTO struct {
	Element            *elementDTO    `yaml:"element"`
	TemplateInvocation *invocationDTO `yaml:"templateInvocation"`
	BoundElement       *refDTO        `yaml:"boundElement"`
	TemplateBinding    *refDTO        `yaml:"templateBinding"`
}

type invocationDTO struct {
	TemplateID      string               `yaml:"templateId"`
	BindingContexts [][]*bindingValueDTO `yaml:"bindingContexts"`
}

type bindingValueDTO struct {
	ID                       string            `yaml:"id"`
	Visibility               string            `yaml:"visibility"`
	HostData                 map[string]string `yaml:"hostData"`
	FromTranscludingTemplate string            `yaml:"fromTranscludingTemplate"`

	Text               *string           `yaml:"text"`
	ChunkedText        *chunkedTextDTO   `yaml:"chunkedText"`
	Image              *imageDTO         `yaml:"image"`
	Element            *elementDTO       `yaml:"element"`
	Actions            *actionsDTO       `yaml:"actions"`
	Style              *boundStyleDTO    `yaml:"style"`
	CellWidth          *cellWidthDTO     `yaml:"cellWidth"`
	LogData            map[string]string `yaml:"logData"`
	Custom             *customDTO        `yaml:"custom"`
	TemplateInvocation *invocationDTO    `yaml:"templateInvocation"`
}
