package testing

import (
	"fmt"
	"sync"

	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/host"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
)

// ImageRequest is one GetImage call recorded by FakeAssets.
type ImageRequest struct {
	Image    *model.Image
	WidthPx  int
	HeightPx int

	consumer  func(*platform.Drawable)
	canceled  bool
	delivered bool
}

// URL returns the first source URL of the requested image.
func (r *ImageRequest) URL() string {
	if r.Image == nil || len(r.Image.Sources) == 0 {
		return ""
	}
	return r.Image.Sources[0].URL
}

// Canceled reports whether the requester canceled the request.
func (r *ImageRequest) Canceled() bool { return r.canceled }

// Deliver hands d to the requester even if the request was canceled, as a
// host racing a cancel would.
func (r *ImageRequest) Deliver(d *platform.Drawable) {
	r.delivered = true
	r.consumer(d)
}

// Drawable returns the drawable FakeAssets produces for the request.
func (r *ImageRequest) Drawable() *platform.Drawable {
	return &platform.Drawable{URI: r.URL(), WidthPx: r.WidthPx, HeightPx: r.HeightPx}
}

// FakeAssets is a host.AssetProvider with controllable delivery.
//
// Images are queued until DeliverImages unless Sync is set. Typefaces are
// delivered synchronously; names missing from Typefaces deliver nil.
type FakeAssets struct {
	// Sync delivers images before GetImage returns.
	Sync         bool
	Typefaces    map[string]*platform.Typeface
	DarkTheme    bool
	RtL          bool
	CornerRadius int

	mu        sync.Mutex
	images    []*ImageRequest
	typefaces []string
}

// NewFakeAssets returns assets knowing no typefaces.
func NewFakeAssets() *FakeAssets {
	return &FakeAssets{Typefaces: make(map[string]*platform.Typeface)}
}

// AddTypeface makes name loadable.
func (a *FakeAssets) AddTypeface(name string) *platform.Typeface {
	tf := &platform.Typeface{Name: name}
	a.mu.Lock()
	a.Typefaces[name] = tf
	a.mu.Unlock()
	return tf
}

func (a *FakeAssets) GetImage(img *model.Image, widthPx, heightPx int, consumer func(*platform.Drawable)) host.Cancelable {
	req := &ImageRequest{Image: img, WidthPx: widthPx, HeightPx: heightPx, consumer: consumer}
	a.mu.Lock()
	a.images = append(a.images, req)
	a.mu.Unlock()
	if a.Sync {
		req.Deliver(req.Drawable())
	}
	return host.CancelFunc(func() {
		a.mu.Lock()
		req.canceled = true
		a.mu.Unlock()
	})
}

func (a *FakeAssets) GetTypeface(name string, italic bool, consumer func(*platform.Typeface)) host.Cancelable {
	a.mu.Lock()
	a.typefaces = append(a.typefaces, name)
	tf := a.Typefaces[name]
	a.mu.Unlock()
	if tf != nil {
		c := *tf
		c.Italic = italic
		tf = &c
	}
	consumer(tf)
	return host.NoopCancel
}

func (a *FakeAssets) DefaultCornerRadius() int { return a.CornerRadius }
func (a *FakeAssets) IsDarkTheme() bool        { return a.DarkTheme }
func (a *FakeAssets) IsRtL() bool              { return a.RtL }

// ImageRequests returns every recorded image request in request order.
func (a *FakeAssets) ImageRequests() []*ImageRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*ImageRequest(nil), a.images...)
}

// TypefaceRequests returns the requested typeface names in order.
func (a *FakeAssets) TypefaceRequests() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.typefaces...)
}

// DeliverImages delivers every pending request that was not canceled and
// returns how many were delivered.
func (a *FakeAssets) DeliverImages() int {
	a.mu.Lock()
	var pending []*ImageRequest
	for _, r := range a.images {
		if !r.delivered && !r.canceled {
			pending = append(pending, r)
		}
	}
	a.mu.Unlock()
	for _, r := range pending {
		r.Deliver(r.Drawable())
	}
	return len(pending)
}

// RecordedAction is one action received by an ActionRecorder.
type RecordedAction struct {
	Action  *model.Action
	Type    model.ActionType
	Frame   *model.Frame
	View    platform.View
	LogData *model.LogData
}

// ActionRecorder is a host.ActionHandler that records what it receives.
type ActionRecorder struct {
	mu      sync.Mutex
	actions []RecordedAction
}

func (r *ActionRecorder) HandleAction(action *model.Action, actionType model.ActionType, frame *model.Frame, view platform.View, logData *model.LogData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, RecordedAction{
		Action:  action,
		Type:    actionType,
		Frame:   frame,
		View:    view,
		LogData: logData,
	})
}

// Actions returns the recorded actions in order.
func (r *ActionRecorder) Actions() []RecordedAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedAction(nil), r.actions...)
}

// Names returns the names of recorded actions of the given type.
func (r *ActionRecorder) Names(actionType model.ActionType) []string {
	var names []string
	for _, a := range r.Actions() {
		if a.Type == actionType {
			names = append(names, a.Action.Name)
		}
	}
	return names
}

// Reset forgets every recorded action.
func (r *ActionRecorder) Reset() {
	r.mu.Lock()
	r.actions = nil
	r.mu.Unlock()
}

// LogDataRecorder is a host.LogDataCallback tracking bound log data.
type LogDataRecorder struct {
	mu      sync.Mutex
	bound   []*model.LogData
	unbound []*model.LogData
}

func (r *LogDataRecorder) OnBind(logData *model.LogData, _ platform.View) {
	r.mu.Lock()
	r.bound = append(r.bound, logData)
	r.mu.Unlock()
}

func (r *LogDataRecorder) OnUnbind(logData *model.LogData, _ platform.View) {
	r.mu.Lock()
	r.unbound = append(r.unbound, logData)
	r.mu.Unlock()
}

// Bound returns the log data passed to OnBind, in order.
func (r *LogDataRecorder) Bound() []*model.LogData {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.LogData(nil), r.bound...)
}

// Unbound returns the log data passed to OnUnbind, in order.
func (r *LogDataRecorder) Unbound() []*model.LogData {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.LogData(nil), r.unbound...)
}

// Live returns the number of binds not yet matched by an unbind.
func (r *LogDataRecorder) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bound) - len(r.unbound)
}

// EventRecorder is a host.EventLogger keeping each reported batch.
type EventRecorder struct {
	mu      sync.Mutex
	batches [][]pieterrors.ErrorCode
}

func (r *EventRecorder) LogEvents(codes []pieterrors.ErrorCode) {
	r.mu.Lock()
	r.batches = append(r.batches, append([]pieterrors.ErrorCode(nil), codes...))
	r.mu.Unlock()
}

// Batches returns every reported batch in order.
func (r *EventRecorder) Batches() [][]pieterrors.ErrorCode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]pieterrors.ErrorCode(nil), r.batches...)
}

// Last returns the most recent batch, or nil.
func (r *EventRecorder) Last() []pieterrors.ErrorCode {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.batches) == 0 {
		return nil
	}
	return r.batches[len(r.batches)-1]
}

// FakeCustomElements is a host.CustomElementProvider creating plain views
// whose type is "custom/" followed by the element kind. A "description"
// payload entry becomes the view's content description.
type FakeCustomElements struct {
	// Err, when set, is returned by CreateCustomElement.
	Err error

	mu       sync.Mutex
	nextID   int64
	live     map[platform.View]*model.CustomElementData
	created  int
	released int
}

// customProps is the payload FakeCustomElements understands.
type customProps struct {
	Description string `mapstructure:"description"`
}

func (f *FakeCustomElements) CreateCustomElement(data *model.CustomElementData) (platform.View, error) {
	if f.Err != nil {
		return nil, fmt.Errorf("create %s: %w", data.Kind, f.Err)
	}
	var props customProps
	if err := data.Decode(&props); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	v := platform.NewBaseView(-f.nextID, "custom/"+data.Kind)
	v.SetContentDescription(props.Description)
	if f.live == nil {
		f.live = make(map[platform.View]*model.CustomElementData)
	}
	f.live[v] = data
	f.created++
	return v, nil
}

func (f *FakeCustomElements) ReleaseCustomView(view platform.View, _ *model.CustomElementData) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.live, view)
	f.released++
}

// Live returns the number of created views not yet released.
func (f *FakeCustomElements) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

// Counts returns the number of views created and released.
func (f *FakeCustomElements) Counts() (created, released int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created, f.released
}
