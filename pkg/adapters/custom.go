package adapters

import (
	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/frame"
	"github.com/go-drift/piet/pkg/host"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
)

// customAdapter hosts a view created by the host's custom element
// provider inside a container view. The host view lives for one bind.
type customAdapter struct {
	lifecycle
	group    platform.ViewGroup
	provider host.CustomElementProvider
	child    platform.View
	data     *model.CustomElementData
}

func newCustomAdapter(f *Factory, view platform.ViewGroup) *customAdapter {
	a := &customAdapter{group: view}
	a.lifecycle = newLifecycle(f, KindCustom, view, a)
	return a
}

func (a *customAdapter) checkModel(el *model.Element) error {
	if el.CustomElement() == nil {
		return pieterrors.Fatalf(pieterrors.ErrMissingElementContents, "Missing CustomElement; has %s", el.Kind())
	}
	return nil
}

func (a *customAdapter) onCreate(*model.Element, *frame.FrameContext) error { return nil }

func (a *customAdapter) onBind(el *model.Element, fc *frame.FrameContext) error {
	ce := el.CustomElement()
	data := ce.Data
	if ce.Binding != nil {
		v, err := fc.CustomElementBindingValue(*ce.Binding)
		if err != nil {
			return err
		}
		data = v.CustomElementData()
	}
	if data == nil {
		return nil
	}

	provider := fc.Providers().CustomElements
	child, err := provider.CreateCustomElement(data)
	if err != nil {
		return pieterrors.WithOp("custom element "+data.Kind,
			pieterrors.Fatalf(pieterrors.ErrUnsupportedFeature, "%v", err))
	}
	if child == nil {
		return nil
	}
	a.provider = provider
	a.child = child
	a.data = data
	a.group.AddView(child)
	return nil
}

func (a *customAdapter) onUnbind() {
	if a.child == nil {
		return
	}
	a.group.RemoveView(a.child)
	a.provider.ReleaseCustomView(a.child, a.data)
	a.child = nil
	a.data = nil
	a.provider = nil
}

func (a *customAdapter) onRelease() {}
