package host

import "github.com/go-drift/piet/pkg/model"

// BindingProvider supplies content for binding values marked with
// HostBindingData. Each method receives the declared value and returns the
// value to use; the returned value keeps the declared binding id.
type BindingProvider interface {
	CustomElementBindingValue(v *model.BindingValue) *model.BindingValue
	ChunkedTextBindingValue(v *model.BindingValue) *model.BindingValue
	ParameterizedTextBindingValue(v *model.BindingValue) *model.BindingValue
	ImageBindingValue(v *model.BindingValue) *model.BindingValue
	ActionsBindingValue(v *model.BindingValue) *model.BindingValue
	ElementBindingValue(v *model.BindingValue) *model.BindingValue
	VisibilityBindingValue(v *model.BindingValue) *model.BindingValue
	GridCellWidthBindingValue(v *model.BindingValue) *model.BindingValue
	LogDataBindingValue(v *model.BindingValue) *model.BindingValue
	TemplateBindingValue(v *model.BindingValue) *model.BindingValue
	StyleBindingValue(v *model.BindingValue) *model.BindingValue
}

// DefaultBindingProvider has no host data of its own: it drops the host
// marker and returns the declared content unchanged.
type DefaultBindingProvider struct{}

func clearHostData(v *model.BindingValue) *model.BindingValue {
	if v == nil {
		return nil
	}
	c := *v
	c.HostBindingData = nil
	return &c
}

func (DefaultBindingProvider) CustomElementBindingValue(v *model.BindingValue) *model.BindingValue {
	return clearHostData(v)
}

func (DefaultBindingProvider) ChunkedTextBindingValue(v *model.BindingValue) *model.BindingValue {
	return clearHostData(v)
}

func (DefaultBindingProvider) ParameterizedTextBindingValue(v *model.BindingValue) *model.BindingValue {
	return clearHostData(v)
}

func (DefaultBindingProvider) ImageBindingValue(v *model.BindingValue) *model.BindingValue {
	return clearHostData(v)
}

func (DefaultBindingProvider) ActionsBindingValue(v *model.BindingValue) *model.BindingValue {
	return clearHostData(v)
}

func (DefaultBindingProvider) ElementBindingValue(v *model.BindingValue) *model.BindingValue {
	return clearHostData(v)
}

func (DefaultBindingProvider) VisibilityBindingValue(v *model.BindingValue) *model.BindingValue {
	return clearHostData(v)
}

func (DefaultBindingProvider) GridCellWidthBindingValue(v *model.BindingValue) *model.BindingValue {
	return clearHostData(v)
}

func (DefaultBindingProvider) LogDataBindingValue(v *model.BindingValue) *model.BindingValue {
	return clearHostData(v)
}

func (DefaultBindingProvider) TemplateBindingValue(v *model.BindingValue) *model.BindingValue {
	return clearHostData(v)
}

func (DefaultBindingProvider) StyleBindingValue(v *model.BindingValue) *model.BindingValue {
	return clearHostData(v)
}
