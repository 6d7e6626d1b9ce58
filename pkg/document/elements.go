package document

import (
	"github.com/go-drift/piet/pkg/model"
)

func convertElement(p path, d *elementDTO) (*model.Element, error) {
	el := &model.Element{}
	var err error
	if el.StyleReferences, err = convertStyleRefs(p.key("styleReferences"), d.StyleReferences); err != nil {
		return nil, err
	}
	if v := d.Visibility; v != nil {
		if v.Default != "" {
			if el.Visibility.DefaultVisibility, err = lookup(p.key("visibility").key("default"), v.Default, visibilities); err != nil {
				return nil, err
			}
		}
		el.Visibility.OverridingBoundVisibility = convertRef(v.Binding)
	}
	if el.Actions, err = convertActions(p.key("actions"), d.Actions); err != nil {
		return nil, err
	}
	el.ActionsBinding = convertRef(d.ActionsBinding)
	if a := d.Accessibility; a != nil {
		acc := &model.Accessibility{DescriptionBinding: convertRef(a.DescriptionBinding)}
		if a.Description != nil {
			acc.Description = &model.ParameterizedText{Text: *a.Description}
		}
		for i, r := range a.Roles {
			role, err := lookup(p.key("accessibility").key("roles").at(i), r, roles)
			if err != nil {
				return nil, err
			}
			acc.Roles = append(acc.Roles, role)
		}
		el.Accessibility = acc
	}
	if d.LogData != nil {
		el.LogData = &model.LogData{Fields: d.LogData}
	}
	el.LogDataBinding = convertRef(d.LogDataBinding)

	kind, err := pickOne(p, false,
		variant{"text", d.Text != nil},
		variant{"chunkedText", d.ChunkedText != nil},
		variant{"image", d.Image != nil},
		variant{"list", d.List != nil},
		variant{"stack", d.Stack != nil},
		variant{"gridRow", d.GridRow != nil},
		variant{"custom", d.Custom != nil})
	if err != nil {
		return nil, err
	}

	switch kind {
	case "text":
		el.Body, err = convertText(p.key("text"), d.Text)
	case "chunkedText":
		el.Body, err = convertChunkedTextElement(p.key("chunkedText"), d.ChunkedText)
	case "image":
		el.Body, err = convertImageElement(p.key("image"), d.Image)
	case "list":
		var contents []model.Content
		contents, err = convertContents(p.key("list").key("contents"), d.List.Contents)
		el.Body = &model.ElementList{Contents: contents}
	case "stack":
		var contents []model.Content
		contents, err = convertContents(p.key("stack").key("contents"), d.Stack.Contents)
		el.Body = &model.ElementStack{Contents: contents}
	case "gridRow":
		el.Body, err = convertGridRow(p.key("gridRow"), d.GridRow)
	case "custom":
		el.Body, err = convertCustom(p.key("custom"), d.Custom)
	}
	if err != nil {
		return nil, err
	}
	return el, nil
}

func convertText(p path, d *textDTO) (*model.TextElement, error) {
	kind, err := pickOne(p, false, variant{"value", d.Value != nil}, variant{"binding", d.Binding != nil})
	if err != nil {
		return nil, err
	}
	if kind == "value" {
		return &model.TextElement{Content: model.ParameterizedTextContent{
			Text: &model.ParameterizedText{Text: *d.Value},
		}}, nil
	}
	ref, err := requireRef(p.key("binding"), d.Binding)
	if err != nil {
		return nil, err
	}
	return &model.TextElement{Content: model.ParameterizedTextBindingContent{Binding: ref}}, nil
}

func convertChunkedTextElement(p path, d *chunkedTextDTO) (*model.TextElement, error) {
	kind, err := pickOne(p, false, variant{"chunks", d.Chunks != nil}, variant{"binding", d.Binding != nil})
	if err != nil {
		return nil, err
	}
	if kind == "binding" {
		ref, err := requireRef(p.key("binding"), d.Binding)
		if err != nil {
			return nil, err
		}
		return &model.TextElement{Content: model.ChunkedTextBindingContent{Binding: ref}}, nil
	}
	ct, err := convertChunks(p.key("chunks"), d.Chunks)
	if err != nil {
		return nil, err
	}
	return &model.TextElement{Content: model.ChunkedTextContent{Text: ct}}, nil
}

func convertChunks(p path, ds []*chunkDTO) (*model.ChunkedText, error) {
	ct := &model.ChunkedText{}
	for i, d := range ds {
		cp := p.at(i)
		if d == nil {
			return nil, cp.errorf("chunk is empty")
		}
		kind, err := pickOne(cp, false, variant{"text", d.Text != nil}, variant{"image", d.Image != nil})
		if err != nil {
			return nil, err
		}
		chunk := &model.TextChunk{}
		if chunk.Actions, err = convertActions(cp.key("actions"), d.Actions); err != nil {
			return nil, err
		}
		if kind == "text" {
			refs, err := convertStyleRefs(cp.key("text").key("styleReferences"), d.Text.StyleReferences)
			if err != nil {
				return nil, err
			}
			chunk.Text = &model.StyledTextChunk{
				ParameterizedText: &model.ParameterizedText{Text: d.Text.Value},
				StyleReferences:   refs,
			}
		} else {
			ip := cp.key("image")
			if _, err := pickOne(ip, false, variant{"image", d.Image.Image != nil}, variant{"binding", d.Image.Binding != nil}); err != nil {
				return nil, err
			}
			refs, err := convertStyleRefs(ip.key("styleReferences"), d.Image.StyleReferences)
			if err != nil {
				return nil, err
			}
			img, err := convertImage(ip.key("image"), d.Image.Image)
			if err != nil {
				return nil, err
			}
			chunk.Image = &model.StyledImageChunk{
				Image:           img,
				ImageBinding:    convertRef(d.Image.Binding),
				StyleReferences: refs,
			}
		}
		ct.Chunks = append(ct.Chunks, chunk)
	}
	return ct, nil
}

func convertImage(p path, d *imageDTO) (*model.Image, error) {
	if d == nil {
		return nil, nil
	}
	return convertImageSources(p, d.Sources, d.Description)
}

func convertImageSources(p path, sources []*imageSourceDTO, description string) (*model.Image, error) {
	if len(sources) == 0 {
		return nil, p.key("sources").errorf("at least one image source is required")
	}
	img := &model.Image{ContentDescription: description}
	for i, s := range sources {
		sp := p.key("sources").at(i)
		if s == nil || s.URL == "" {
			return nil, sp.key("url").errorf("image url is required")
		}
		conds, err := convertConditions(sp.key("conditions"), s.Conditions)
		if err != nil {
			return nil, err
		}
		img.Sources = append(img.Sources, &model.ImageSource{
			URL:        s.URL,
			WidthPx:    s.WidthPx,
			HeightPx:   s.HeightPx,
			Conditions: conds,
		})
	}
	return img, nil
}

func convertImageElement(p path, d *imageElemDTO) (*model.ImageElement, error) {
	kind, err := pickOne(p, false, variant{"sources", d.Sources != nil}, variant{"binding", d.Binding != nil})
	if err != nil {
		return nil, err
	}
	if kind == "binding" {
		ref, err := requireRef(p.key("binding"), d.Binding)
		if err != nil {
			return nil, err
		}
		return &model.ImageElement{Binding: &ref}, nil
	}
	img, err := convertImageSources(p, d.Sources, d.Description)
	if err != nil {
		return nil, err
	}
	return &model.ImageElement{Image: img}, nil
}

func convertGridRow(p path, d *gridRowDTO) (*model.GridRow, error) {
	row := &model.GridRow{}
	for i, cd := range d.Cells {
		cp := p.key("cells").at(i)
		if cd == nil || cd.Content == nil {
			return nil, cp.key("content").errorf("cell content is required")
		}
		content, err := convertContent(cp.key("content"), cd.Content)
		if err != nil {
			return nil, err
		}
		cell := &model.GridCell{Content: content, WidthBinding: convertRef(cd.WidthBinding)}
		if cd.Width != nil {
			if cell.Width, err = convertCellWidth(cp.key("width"), cd.Width); err != nil {
				return nil, err
			}
		}
		row.Cells = append(row.Cells, cell)
	}
	return row, nil
}

func convertCellWidth(p path, d *cellWidthDTO) (*model.GridCellWidth, error) {
	kind, err := pickOne(p, false,
		variant{"dp", d.Dp != nil},
		variant{"weight", d.Weight != nil},
		variant{"content", d.Content != nil})
	if err != nil {
		return nil, err
	}
	w := &model.GridCellWidth{IsCollapsible: d.Collapsible}
	switch kind {
	case "dp":
		w.Kind, w.Dp = model.GridCellWidthDp, *d.Dp
	case "weight":
		w.Kind, w.Weight = model.GridCellWidthWeight, *d.Weight
	case "content":
		w.Kind = model.GridCellWidthContent
		if *d.Content {
			w.ContentWidth = model.ContentWidthContentWidth
		}
	}
	return w, nil
}

func convertCustom(p path, d *customDTO) (*model.CustomElement, error) {
	kind, err := pickOne(p, false, variant{"kind", d.Kind != ""}, variant{"binding", d.Binding != nil})
	if err != nil {
		return nil, err
	}
	if kind == "binding" {
		return &model.CustomElement{Binding: convertRef(d.Binding)}, nil
	}
	return &model.CustomElement{Data: &model.CustomElementData{Kind: d.Kind, Data: d.Data}}, nil
}

func convertBindingValue(p path, d *bindingValueDTO) (*model.BindingValue, error) {
	if d == nil || d.ID == "" {
		return nil, p.key("id").errorf("binding value id is required")
	}
	v := &model.BindingValue{BindingID: d.ID, FromTranscludingTemplate: d.FromTranscludingTemplate}
	if d.Visibility != "" {
		vis, err := lookup(p.key("visibility"), d.Visibility, visibilities)
		if err != nil {
			return nil, err
		}
		v.Visibility = &vis
	}
	if d.HostData != nil {
		v.HostBindingData = &model.HostBindingData{Data: d.HostData}
	}

	kind, err := pickOne(p, true,
		variant{"text", d.Text != nil},
		variant{"chunkedText", d.ChunkedText != nil},
		variant{"image", d.Image != nil},
		variant{"element", d.Element != nil},
		variant{"actions", d.Actions != nil},
		variant{"style", d.Style != nil},
		variant{"cellWidth", d.CellWidth != nil},
		variant{"logData", d.LogData != nil},
		variant{"custom", d.Custom != nil},
		variant{"templateInvocation", d.TemplateInvocation != nil})
	if err != nil {
		return nil, err
	}

	switch kind {
	case "text":
		v.Value = model.ParameterizedTextValue{Text: &model.ParameterizedText{Text: *d.Text}}
	case "chunkedText":
		ct, err := convertChunks(p.key("chunkedText").key("chunks"), d.ChunkedText.Chunks)
		if err != nil {
			return nil, err
		}
		v.Value = model.ChunkedTextValue{Text: ct}
	case "image":
		img, err := convertImage(p.key("image"), d.Image)
		if err != nil {
			return nil, err
		}
		v.Value = model.ImageValue{Image: img}
	case "element":
		el, err := convertElement(p.key("element"), d.Element)
		if err != nil {
			return nil, err
		}
		v.Value = model.ElementValue{Element: el}
	case "actions":
		a, err := convertActions(p.key("actions"), d.Actions)
		if err != nil {
			return nil, err
		}
		v.Value = model.ActionsValue{Actions: a}
	case "style":
		s, err := convertBoundStyle(p.key("style"), d.Style)
		if err != nil {
			return nil, err
		}
		v.Value = model.BoundStyleValue{Style: s}
	case "cellWidth":
		w, err := convertCellWidth(p.key("cellWidth"), d.CellWidth)
		if err != nil {
			return nil, err
		}
		v.Value = model.CellWidthValue{Width: w}
	case "logData":
		v.Value = model.LogDataValue{LogData: &model.LogData{Fields: d.LogData}}
	case "custom":
		if d.Custom.Kind == "" {
			return nil, p.key("custom").key("kind").errorf("custom element kind is required")
		}
		v.Value = model.CustomElementValue{Data: &model.CustomElementData{Kind: d.Custom.Kind, Data: d.Custom.Data}}
	case "templateInvocation":
		inv, err := convertInvocation(p.key("templateInvocation"), d.TemplateInvocation)
		if err != nil {
			return nil, err
		}
		v.Value = model.TemplateInvocationValue{Invocation: inv}
	}
	return v, nil
}
