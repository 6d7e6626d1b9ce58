package frame

import (
	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/model"
)

func (fc *FrameContext) lookup(kind string, ref model.BindingRef) (*model.BindingValue, error) {
	if fc.bindings == nil {
		return nil, pieterrors.Fatalf(pieterrors.ErrNoBindingValues,
			"no BindingValues defined; required for %s binding %s", kind, ref.BindingID)
	}
	return fc.bindings[ref.BindingID], nil
}

// contentBinding applies the lookup policy shared by content-bearing
// bindings: a missing value or one without content is fatal unless the
// reference is optional, in which case the empty value is returned.
func (fc *FrameContext) contentBinding(
	kind string,
	ref model.BindingRef,
	hostValue func(*model.BindingValue) *model.BindingValue,
	hasContent func(*model.BindingValue) bool,
) (*model.BindingValue, error) {
	v, err := fc.lookup(kind, ref)
	if err != nil {
		return nil, err
	}
	if v == nil {
		if ref.IsOptional {
			return &model.BindingValue{}, nil
		}
		return nil, pieterrors.Fatalf(pieterrors.ErrMissingBindingValue,
			"%s binding not found for %s", kind, ref.BindingID)
	}
	if v.HostBindingData != nil {
		v = hostValue(v)
	}
	if v == nil || !hasContent(v) {
		if ref.IsOptional {
			return &model.BindingValue{}, nil
		}
		return nil, pieterrors.Fatalf(pieterrors.ErrMissingBindingContent,
			"%s binding %s had no content", kind, ref.BindingID)
	}
	return v, nil
}

func hiddenByBinding(v *model.BindingValue) bool {
	return v.Visibility != nil && *v.Visibility == model.VisibilityGone
}

// ParameterizedTextBindingValue resolves a parameterized text binding.
func (fc *FrameContext) ParameterizedTextBindingValue(ref model.BindingRef) (*model.BindingValue, error) {
	return fc.contentBinding("Parameterized text", ref,
		fc.opts.Providers.Bindings.ParameterizedTextBindingValue,
		func(v *model.BindingValue) bool { return v.ParameterizedText() != nil })
}

// ChunkedTextBindingValue resolves a chunked text binding.
func (fc *FrameContext) ChunkedTextBindingValue(ref model.BindingRef) (*model.BindingValue, error) {
	return fc.contentBinding("Chunked text", ref,
		fc.opts.Providers.Bindings.ChunkedTextBindingValue,
		func(v *model.BindingValue) bool { return v.ChunkedText() != nil })
}

// ImageBindingValue resolves an image binding.
func (fc *FrameContext) ImageBindingValue(ref model.BindingRef) (*model.BindingValue, error) {
	return fc.contentBinding("Image", ref,
		fc.opts.Providers.Bindings.ImageBindingValue,
		func(v *model.BindingValue) bool { return v.Image() != nil })
}

// CustomElementBindingValue resolves a custom element binding.
func (fc *FrameContext) CustomElementBindingValue(ref model.BindingRef) (*model.BindingValue, error) {
	return fc.contentBinding("Custom element", ref,
		fc.opts.Providers.Bindings.CustomElementBindingValue,
		func(v *model.BindingValue) bool { return v.CustomElementData() != nil })
}

// ElementBindingValue resolves an element binding. A value that only sets
// GONE visibility counts as content.
func (fc *FrameContext) ElementBindingValue(ref model.BindingRef) (*model.BindingValue, error) {
	return fc.contentBinding("Element", ref,
		fc.opts.Providers.Bindings.ElementBindingValue,
		func(v *model.BindingValue) bool { return v.Element() != nil || hiddenByBinding(v) })
}

// TemplateInvocationBindingValue resolves a template binding. A value that
// only sets GONE visibility counts as content.
func (fc *FrameContext) TemplateInvocationBindingValue(ref model.BindingRef) (*model.BindingValue, error) {
	return fc.contentBinding("Template", ref,
		fc.opts.Providers.Bindings.TemplateBindingValue,
		func(v *model.BindingValue) bool { return v.TemplateInvocation() != nil || hiddenByBinding(v) })
}

// VisibilityFromBinding returns the bound visibility, or nil when the
// binding or its visibility is absent.
func (fc *FrameContext) VisibilityFromBinding(ref model.BindingRef) (*model.Visibility, error) {
	v, err := fc.lookup("Visibility", ref)
	if err != nil || v == nil {
		return nil, err
	}
	if v.HostBindingData != nil {
		if v = fc.opts.Providers.Bindings.VisibilityBindingValue(v); v == nil {
			return nil, nil
		}
	}
	return v.Visibility, nil
}

// ActionsFromBinding returns the bound actions, or empty actions when the
// binding is absent.
func (fc *FrameContext) ActionsFromBinding(ref model.BindingRef) (*model.Actions, error) {
	v, err := fc.lookup("Actions", ref)
	if err != nil {
		return nil, err
	}
	if v != nil && v.HostBindingData != nil {
		v = fc.opts.Providers.Bindings.ActionsBindingValue(v)
	}
	if a := v.Actions(); a != nil {
		return a, nil
	}
	return &model.Actions{}, nil
}

// StyleFromBinding returns the bound style, or an empty style when the
// binding is absent.
func (fc *FrameContext) StyleFromBinding(ref model.BindingRef) (*model.BoundStyle, error) {
	v, err := fc.lookup("Style", ref)
	if err != nil {
		return nil, err
	}
	if v != nil && v.HostBindingData != nil {
		v = fc.opts.Providers.Bindings.StyleBindingValue(v)
	}
	if s := v.BoundStyle(); s != nil {
		return s, nil
	}
	return &model.BoundStyle{}, nil
}

// GridCellWidthFromBinding returns the bound cell width, or nil.
func (fc *FrameContext) GridCellWidthFromBinding(ref model.BindingRef) (*model.GridCellWidth, error) {
	v, err := fc.lookup("Grid cell width", ref)
	if err != nil || v == nil {
		return nil, err
	}
	if v.HostBindingData != nil {
		v = fc.opts.Providers.Bindings.GridCellWidthBindingValue(v)
	}
	return v.CellWidth(), nil
}

// LogDataFromBinding returns the bound log data, or nil.
func (fc *FrameContext) LogDataFromBinding(ref model.BindingRef) (*model.LogData, error) {
	v, err := fc.lookup("Log data", ref)
	if err != nil || v == nil {
		return nil, err
	}
	if v.HostBindingData != nil {
		v = fc.opts.Providers.Bindings.LogDataBindingValue(v)
	}
	return v.LogData(), nil
}
