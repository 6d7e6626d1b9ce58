package adapters

import (
	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/frame"
	"github.com/go-drift/piet/pkg/model"
)

// TemplateKey identifies adapters built for one template under one set of
// shared states, media query environment and frame templates. Pooled
// template adapters are only reused for the same key, so their created
// structure, nested invocations included, still matches.
type TemplateKey struct {
	Template  *model.Template
	StylesKey uint64
	// FrameTemplatesKey is the creating frame's FrameContext.TemplatesKey.
	FrameTemplatesKey uint64
}

// TemplateBinder instantiates templates, reusing pooled instances.
type TemplateBinder struct {
	factory *Factory
	pool    *KeyedRecyclerPool[TemplateKey, Adapter]
}

// CreateTemplateAdapter returns a created, unbound adapter for one
// instance of tmpl with bindings bc.
func (b *TemplateBinder) CreateTemplateAdapter(tmpl *model.Template, bc *model.BindingContext, fc *frame.FrameContext) (Adapter, error) {
	childFC, err := fc.CreateTemplateContext(tmpl, bc)
	if err != nil {
		return nil, err
	}
	return b.acquire(tmpl, childFC)
}

// CreateAndBindTemplateAdapter returns an adapter for one instance of
// tmpl bound to bc. On failure nothing is left bound.
func (b *TemplateBinder) CreateAndBindTemplateAdapter(tmpl *model.Template, bc *model.BindingContext, fc *frame.FrameContext) (Adapter, error) {
	childFC, err := fc.CreateTemplateContext(tmpl, bc)
	if err != nil {
		return nil, err
	}
	a, err := b.acquire(tmpl, childFC)
	if err != nil {
		return nil, err
	}
	if err := a.BindModel(tmpl.Element, childFC); err != nil {
		b.factory.ReleaseAdapter(a)
		return nil, err
	}
	return a, nil
}

func (b *TemplateBinder) acquire(tmpl *model.Template, childFC *frame.FrameContext) (Adapter, error) {
	if tmpl.Element == nil {
		return nil, pieterrors.Fatalf(pieterrors.ErrMissingElementContents, "Template %s has no element", tmpl.TemplateID)
	}
	key := TemplateKey{
		Template:          tmpl,
		StylesKey:         childFC.StylesHelper().Key(),
		FrameTemplatesKey: childFC.TemplatesKey(),
	}
	if a, ok := b.pool.Get(key); ok {
		return a, nil
	}
	a, err := b.factory.CreateAdapterForElement(tmpl.Element, childFC)
	if err != nil {
		return nil, err
	}
	a.core().templateKey = &key
	return a, nil
}
