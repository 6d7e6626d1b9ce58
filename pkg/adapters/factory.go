package adapters

import (
	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/frame"
	"github.com/go-drift/piet/pkg/logging"
	"github.com/go-drift/piet/pkg/metrics"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
)

// Pool sizes used when Options leaves them zero.
const (
	DefaultMaxPoolKeys   = 64
	DefaultMaxPoolPerKey = 8
)

// Options configures a Factory.
type Options struct {
	Logger  *logging.Logger
	Metrics *metrics.Recorder
	// MaxPoolKeys bounds the number of recycler keys held per pool.
	MaxPoolKeys int
	// MaxPoolPerKey bounds the adapters held per recycler key.
	MaxPoolPerKey int
}

// Factory creates adapters for elements and recycles released ones. It
// owns the recycler pools for one session.
type Factory struct {
	registry  *platform.Registry
	logger    *logging.Logger
	metrics   *metrics.Recorder
	pool      *KeyedRecyclerPool[RecyclerKey, Adapter]
	templates *TemplateBinder
}

// NewFactory returns a factory creating views through registry.
func NewFactory(registry *platform.Registry, opts Options) *Factory {
	if opts.MaxPoolKeys <= 0 {
		opts.MaxPoolKeys = DefaultMaxPoolKeys
	}
	if opts.MaxPoolPerKey <= 0 {
		opts.MaxPoolPerKey = DefaultMaxPoolPerKey
	}
	f := &Factory{
		registry: registry,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}
	f.pool = NewKeyedRecyclerPool[RecyclerKey, Adapter]("element", opts.MaxPoolKeys, opts.MaxPoolPerKey, f.discard, opts.Metrics)
	f.templates = &TemplateBinder{
		factory: f,
		pool:    NewKeyedRecyclerPool[TemplateKey, Adapter]("template", opts.MaxPoolKeys, opts.MaxPoolPerKey, f.discard, opts.Metrics),
	}
	return f
}

// Templates returns the binder for template instances.
func (f *Factory) Templates() *TemplateBinder { return f.templates }

// Registry returns the view registry.
func (f *Factory) Registry() *platform.Registry { return f.registry }

// CreateAdapterForElement returns a created adapter for el, reusing a
// pooled adapter with the same recycler key when one exists.
func (f *Factory) CreateAdapterForElement(el *model.Element, fc *frame.FrameContext) (Adapter, error) {
	kind, key, err := f.recyclerKeyFor(el, fc)
	if err != nil {
		return nil, err
	}
	a, ok := f.pool.Get(key)
	if !ok {
		if a, err = f.newAdapter(kind); err != nil {
			return nil, err
		}
		a.core().recyclerKey = key
	}
	if err := a.CreateAdapter(el, fc); err != nil {
		f.ReleaseAdapter(a)
		return nil, err
	}
	return a, nil
}

func (f *Factory) recyclerKeyFor(el *model.Element, fc *frame.FrameContext) (Kind, RecyclerKey, error) {
	var kind Kind
	switch el.Kind() {
	case model.ElementKindCustom:
		kind = KindCustom
	case model.ElementKindText:
		kind = KindParameterizedText
		if el.TextElement().IsChunked() {
			kind = KindChunkedText
		}
		// Text adapters are pooled per font so loaded typefaces are reused.
		style, err := fc.MakeStyleFor(el.StyleReferences)
		if err != nil {
			return KindUnknown, nil, err
		}
		return kind, textRecyclerKey{kind: kind, font: style.TextRecyclerKey()}, nil
	case model.ElementKindImage:
		kind = KindImage
	case model.ElementKindGridRow:
		kind = KindGridRow
	case model.ElementKindList:
		kind = KindList
	case model.ElementKindStack:
		kind = KindStack
	default:
		return KindUnknown, nil, pieterrors.Fatalf(pieterrors.ErrUnsupportedFeature, "unsupported element type: %s", el.Kind())
	}
	return kind, kindKey{kind: kind}, nil
}

func (f *Factory) newAdapter(kind Kind) (Adapter, error) {
	switch kind {
	case KindParameterizedText:
		v, err := createView[platform.TextView](f.registry, platform.ViewTypeText)
		if err != nil {
			return nil, err
		}
		return newParameterizedTextAdapter(f, v), nil
	case KindChunkedText:
		v, err := createView[platform.TextView](f.registry, platform.ViewTypeText)
		if err != nil {
			return nil, err
		}
		return newChunkedTextAdapter(f, v), nil
	case KindImage:
		v, err := createView[platform.ImageView](f.registry, platform.ViewTypeImage)
		if err != nil {
			return nil, err
		}
		return newImageAdapter(f, v), nil
	case KindCustom:
		v, err := createView[platform.ViewGroup](f.registry, platform.ViewTypeContainer)
		if err != nil {
			return nil, err
		}
		return newCustomAdapter(f, v), nil
	case KindList:
		v, err := createView[platform.ViewGroup](f.registry, platform.ViewTypeList)
		if err != nil {
			return nil, err
		}
		return newListAdapter(f, v), nil
	case KindStack:
		v, err := createView[platform.ViewGroup](f.registry, platform.ViewTypeStack)
		if err != nil {
			return nil, err
		}
		return newStackAdapter(f, v), nil
	case KindGridRow:
		v, err := createView[platform.ViewGroup](f.registry, platform.ViewTypeRow)
		if err != nil {
			return nil, err
		}
		return newGridRowAdapter(f, v), nil
	}
	return nil, pieterrors.Fatalf(pieterrors.ErrUnsupportedFeature, "unsupported adapter kind: %s", kind)
}

func createView[T platform.View](r *platform.Registry, viewType string) (T, error) {
	var zero T
	v, err := r.Create(viewType)
	if err != nil {
		return zero, pieterrors.WithOp("create view "+viewType, err)
	}
	typed, ok := v.(T)
	if !ok {
		r.Dispose(v.ViewID())
		return zero, pieterrors.Fatalf(pieterrors.ErrUnsupportedFeature,
			"view type %s created %T of the wrong kind", viewType, v)
	}
	return typed, nil
}

// ReleaseAdapter returns a to its pool. Template instances are only
// unbound so their structure is reused as is; other adapters are
// released first.
func (f *Factory) ReleaseAdapter(a Adapter) {
	if a == nil {
		return
	}
	if key := a.TemplateKey(); key != nil {
		a.UnbindModel()
		f.templates.pool.Put(*key, a)
		return
	}
	a.ReleaseAdapter()
	f.pool.Put(a.RecyclerKey(), a)
}

// discard releases an adapter dropped from a pool and disposes its view.
func (f *Factory) discard(a Adapter) {
	a.ReleaseAdapter()
	f.registry.Dispose(a.View().ViewID())
}

// PurgeRecyclerPools drops every pooled adapter.
func (f *Factory) PurgeRecyclerPools() {
	templates, elements := f.templates.pool.Len(), f.pool.Len()
	// Discarded containers release their children back into the pools,
	// nested template instances included, so clear until both stay empty.
	for f.templates.pool.Len() > 0 || f.pool.Len() > 0 {
		f.templates.pool.Clear()
		f.pool.Clear()
	}
	f.metrics.PoolPurge()
	f.logger.WithFields(map[string]any{
		"templates": templates,
		"elements":  elements,
	}).Debug("recycler pools purged")
}

// PooledAdapters returns the number of pooled element and template
// adapters.
func (f *Factory) PooledAdapters() (elements, templates int) {
	return f.pool.Len(), f.templates.pool.Len()
}
