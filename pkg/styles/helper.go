package styles

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"

	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/mediaquery"
	"github.com/go-drift/piet/pkg/model"
)

// BoundStyleResolver resolves the style binding of a StyleIdsStack.
type BoundStyleResolver interface {
	StyleFromBinding(ref model.BindingRef) (*model.BoundStyle, error)
}

// StyleMap is a flattened style-id to style lookup built from a
// Stylesheets value.
type StyleMap struct {
	key    uint64
	styles map[string]*model.Style
}

// Style returns the style with id.
func (m StyleMap) Style(id string) (*model.Style, bool) {
	s, ok := m.styles[id]
	return s, ok
}

// Len returns the number of styles.
func (m StyleMap) Len() int { return len(m.styles) }

// Helper precomputes the stylesheet and template lookups for one
// combination of shared states and media query environment, and caches
// style maps and merge results derived from them.
type Helper struct {
	mq            mediaquery.Helper
	env           Env
	key           uint64
	stylesheets   map[string]*model.Stylesheet
	declaredIDs   map[string]*model.Stylesheet
	templates     map[string]*model.Template
	templateOrder []string

	mu        sync.Mutex
	styleMaps map[uint64]styleMapEntry
	merged    map[mergeKey]*Provider
	defaultP  *Provider
}

type styleMapEntry struct {
	sheets model.Stylesheets
	m      StyleMap
}

type mergeKey struct {
	mapKey uint64
	ids    string
}

// NewHelper indexes the active stylesheets and templates of shared. A
// stylesheet or template is active when all of its conditions hold; for
// stylesheets the first active definition of an id wins, while two active
// templates with the same id are a fatal error.
func NewHelper(shared []*model.SharedState, mq mediaquery.Helper, env Env) (*Helper, error) {
	h := &Helper{
		mq:          mq,
		env:         env,
		stylesheets: make(map[string]*model.Stylesheet),
		declaredIDs: make(map[string]*model.Stylesheet),
		templates:   make(map[string]*model.Template),
		styleMaps:   make(map[uint64]styleMapEntry),
		merged:      make(map[mergeKey]*Provider),
		defaultP:    DefaultProvider(env),
	}
	h.key, _ = Fingerprint(struct {
		Shared []*model.SharedState
		MQ     mediaquery.Helper
	}{shared, mq})

	for _, state := range shared {
		if state == nil {
			continue
		}
		for _, sheet := range state.Stylesheets {
			if sheet == nil {
				continue
			}
			if _, seen := h.declaredIDs[sheet.StylesheetID]; !seen {
				h.declaredIDs[sheet.StylesheetID] = sheet
			}
			if !mq.AreMediaQueriesMet(sheet.Conditions) {
				continue
			}
			if _, seen := h.stylesheets[sheet.StylesheetID]; !seen {
				h.stylesheets[sheet.StylesheetID] = sheet
			}
		}
		for _, t := range state.Templates {
			if t == nil || !mq.AreMediaQueriesMet(t.Conditions) {
				continue
			}
			if _, dup := h.templates[t.TemplateID]; dup {
				return nil, pieterrors.Fatalf(pieterrors.ErrDuplicateTemplate,
					"Template key '%s' already defined", t.TemplateID)
			}
			h.templates[t.TemplateID] = t
			h.templateOrder = append(h.templateOrder, t.TemplateID)
		}
	}
	return h, nil
}

// Key is a fingerprint of the shared states and media query environment.
func (h *Helper) Key() uint64 { return h.key }

// MediaQuery returns the environment the helper was built for.
func (h *Helper) MediaQuery() mediaquery.Helper { return h.mq }

// Env returns the display parameters used for providers.
func (h *Helper) Env() Env { return h.env }

// DefaultProvider returns the shared provider for the empty style.
func (h *Helper) DefaultProvider() *Provider { return h.defaultP }

// Template returns the active shared-state template with id.
func (h *Helper) Template(id string) (*model.Template, bool) {
	t, ok := h.templates[id]
	return t, ok
}

// TemplateIDs returns active shared-state template ids in declaration order.
func (h *Helper) TemplateIDs() []string { return h.templateOrder }

// Stylesheet returns the active shared-state stylesheet with id.
func (h *Helper) Stylesheet(id string) (*model.Stylesheet, bool) {
	s, ok := h.stylesheets[id]
	return s, ok
}

// DeclaredStylesheet returns a shared-state stylesheet with id regardless
// of whether its conditions hold.
func (h *Helper) DeclaredStylesheet(id string) (*model.Stylesheet, bool) {
	s, ok := h.declaredIDs[id]
	return s, ok
}

// MissingStylesheetIDs returns the referenced ids of sheets that no shared
// state declares.
func (h *Helper) MissingStylesheetIDs(sheets model.Stylesheets) []string {
	var missing []string
	for _, id := range sheets.StylesheetIDs {
		if _, ok := h.declaredIDs[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// StyleMap flattens the referenced active stylesheets followed by the
// active inline stylesheets of sheets. Unknown or inactive referenced ids
// are skipped. Two styles with the same id are a fatal error.
func (h *Helper) StyleMap(sheets model.Stylesheets) (StyleMap, error) {
	key, cacheable := Fingerprint(sheets)
	if cacheable {
		h.mu.Lock()
		entry, ok := h.styleMaps[key]
		h.mu.Unlock()
		if ok && reflect.DeepEqual(entry.sheets, sheets) {
			return entry.m, nil
		}
	}

	styles := make(map[string]*model.Style)
	add := func(sheet *model.Stylesheet) error {
		for _, s := range sheet.Styles {
			if s == nil {
				continue
			}
			if _, dup := styles[s.StyleID]; dup {
				return pieterrors.Fatalf(pieterrors.ErrDuplicateStyle, "Style key '%s' already defined", s.StyleID)
			}
			styles[s.StyleID] = s
		}
		return nil
	}
	for _, id := range sheets.StylesheetIDs {
		if sheet, ok := h.stylesheets[id]; ok {
			if err := add(sheet); err != nil {
				return StyleMap{}, err
			}
		}
	}
	for _, sheet := range sheets.Stylesheets {
		if sheet == nil || !h.mq.AreMediaQueriesMet(sheet.Conditions) {
			continue
		}
		if err := add(sheet); err != nil {
			return StyleMap{}, err
		}
	}

	m := StyleMap{key: key, styles: styles}
	if cacheable {
		h.mu.Lock()
		h.styleMaps[key] = styleMapEntry{sheets: sheets, m: m}
		h.mu.Unlock()
	}
	return m, nil
}

// MergeStyleIdsStack folds the styles named by stack onto base in order.
// Ids missing from m are skipped. A style binding is merged last through r;
// a stack with a style binding and no resolver is a fatal error.
func MergeStyleIdsStack(base model.Style, stack model.StyleIdsStack, m StyleMap, r BoundStyleResolver) (model.Style, error) {
	out := base
	for _, id := range stack.StyleIDs {
		if s, ok := m.Style(id); ok {
			out = MergeStyle(out, *s)
		}
	}
	if stack.StyleBinding != nil {
		if r == nil {
			return model.Style{}, pieterrors.Fatalf(pieterrors.ErrMissingFrameContext,
				"Binding style '%s' requested with no frame context", stack.StyleBinding.BindingID)
		}
		bound, err := r.StyleFromBinding(*stack.StyleBinding)
		if err != nil {
			return model.Style{}, err
		}
		out = MergeBoundStyle(out, bound)
	}
	return out, nil
}

// ProviderFor resolves stack against m on top of the default style.
// Results for stacks without a style binding are cached.
func (h *Helper) ProviderFor(stack model.StyleIdsStack, m StyleMap, r BoundStyleResolver) (*Provider, error) {
	if stack.IsEmpty() {
		return h.defaultP, nil
	}
	if stack.StyleBinding != nil {
		merged, err := MergeStyleIdsStack(model.Style{}, stack, m, r)
		if err != nil {
			return nil, err
		}
		return NewProvider(merged, h.env), nil
	}

	k := mergeKey{mapKey: m.key, ids: strings.Join(stack.StyleIDs, "\x00")}
	cacheable := m.key != 0
	if cacheable {
		h.mu.Lock()
		p, ok := h.merged[k]
		h.mu.Unlock()
		if ok {
			return p, nil
		}
	}
	merged, err := MergeStyleIdsStack(model.Style{}, stack, m, r)
	if err != nil {
		return nil, err
	}
	p := NewProvider(merged, h.env)
	if cacheable {
		h.mu.Lock()
		h.merged[k] = p
		h.mu.Unlock()
	}
	return p, nil
}

// Fingerprint hashes the JSON encoding of v. The second result is false
// when v cannot be encoded, in which case the value must not be cached.
func Fingerprint(v any) (uint64, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, false
	}
	return xxhash.Sum64(data), true
}
