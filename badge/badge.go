// Package badge implements the quantity badge of one asset in a multi-asset
// transaction output.
//
// A Badge never writes to the asset it shows. User input and resolved
// metadata are reported through Callbacks and the owner hands a new asset
// value back with SetAsset.
package badge

import (
	"context"
	"errors"
	"sync"
	"time"

	"asset-badge/models"
	"asset-badge/resolver"
	"asset-badge/util/convert"
	"asset-badge/util/log"
)

// State of the badge icon.
type State int

// Badge states.
const (
	Loading State = iota
	Ready
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	}
	return "unknown"
}

// MetadataResolver resolves the display metadata of an asset.
type MetadataResolver interface {
	Resolve(ctx context.Context, asset *models.Asset) (models.Metadata, error)
}

// Callbacks are the badge's outputs, nil callbacks are skipped.
type Callbacks struct {
	// OnRemove is called when the user removes the row.
	OnRemove func()
	// OnInput receives every accepted keystroke verbatim.
	OnInput func(text string)
	// OnLoad is called once per asset identity with resolved metadata.
	OnLoad func(metadata models.Metadata)
}

// Option configures a Badge.
type Option func(*Badge)

// WithRetryDelay sets the pause before the single retry of a failed fetch.
func WithRetryDelay(delay time.Duration) Option {
	return func(b *Badge) {
		b.retryDelay = delay
	}
}

// WithTimeout bounds every metadata fetch attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(b *Badge) {
		b.timeout = timeout
	}
}

// WithDispatch runs metadata results on the host's event loop instead of the
// fetching goroutine.
func WithDispatch(dispatch func(func())) Option {
	return func(b *Badge) {
		if dispatch != nil {
			b.dispatch = dispatch
		}
	}
}

// Badge is the widget state of one asset row.
type Badge struct {
	resolver   MetadataResolver
	validator  *Validator
	callbacks  Callbacks
	retryDelay time.Duration
	timeout    time.Duration
	dispatch   func(func())

	mu           sync.Mutex
	asset        *models.Asset
	identity     string
	guard        *mountGuard
	state        State
	baseWidth    int
	displayWidth int
	unmounted    bool

	loads sync.WaitGroup
}

// New creates an unmounted badge, call SetAsset to mount it.
func New(r MetadataResolver, v *Validator, callbacks Callbacks, opts ...Option) *Badge {
	b := &Badge{
		resolver:   r,
		validator:  v,
		callbacks:  callbacks,
		retryDelay: 500 * time.Millisecond,
		dispatch:   func(f func()) { f() },
		state:      Loading,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// SetAsset supplies the current asset value. A new identity (unit or
// quantity) resets the widths and, unless already loaded, resolves the
// metadata again. Other changes such as Input or Loaded only replace the
// value being shown.
func (b *Badge) SetAsset(asset *models.Asset) {
	if asset == nil {
		return
	}

	b.mu.Lock()
	if b.unmounted {
		b.mu.Unlock()
		return
	}

	b.asset = asset
	identity := asset.Identity()
	if identity == b.identity {
		b.mu.Unlock()
		return
	}

	b.identity = identity
	if b.guard != nil {
		b.guard.stop()
	}
	g := newMountGuard()
	b.guard = g

	b.baseWidth = BaseWidth(asset.Quantity)
	b.displayWidth = b.baseWidth

	load := !asset.Loaded
	if load {
		b.state = Loading
		b.loads.Add(1)
	} else {
		b.state = Ready
	}
	b.mu.Unlock()

	if load {
		go b.load(g, asset)
	}

	if asset.SingleUnit() {
		b.emitInput(convert.QuantityString(asset.Quantity))
	}
}

// Input handles the field's new text after a keystroke. Malformed text and
// edits of a read-only field are dropped and false is returned, everything
// else is forwarded through OnInput even when out of range.
func (b *Badge) Input(text string) bool {
	b.mu.Lock()
	if b.unmounted || b.asset == nil || b.asset.SingleUnit() {
		b.mu.Unlock()
		return false
	}

	if res := b.validator.Validate(text, b.asset.Quantity); !res.Accepted {
		b.mu.Unlock()
		return false
	}

	b.displayWidth = DisplayWidth(b.baseWidth, len(text))
	b.mu.Unlock()

	b.emitInput(text)
	return true
}

// Remove requests the deletion of this row.
func (b *Badge) Remove() {
	b.mu.Lock()
	mounted := !b.unmounted && b.asset != nil
	b.mu.Unlock()

	if mounted && b.callbacks.OnRemove != nil {
		b.callbacks.OnRemove()
	}
}

// Unmount tears the badge down. Once it returns no result of a pending
// fetch is applied and no new OnLoad call starts. It may be called from
// within OnLoad.
func (b *Badge) Unmount() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.unmounted = true
	if b.guard != nil {
		b.guard.stop()
	}
}

// Wait blocks until every started metadata fetch has been applied or
// dropped. With WithDispatch this includes running the posted result, so
// Wait must not be called from the dispatching loop itself.
func (b *Badge) Wait() {
	b.loads.Wait()
}

// State returns the icon state.
func (b *Badge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state
}

// Mounted tells if the badge has an asset and was not unmounted.
func (b *Badge) Mounted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return !b.unmounted && b.asset != nil
}

func (b *Badge) emitInput(text string) {
	if b.callbacks.OnInput != nil {
		b.callbacks.OnInput(text)
	}
}

func (b *Badge) load(g *mountGuard, asset *models.Asset) {
	metadata, err := b.resolve(g, asset)
	if err != nil && g.Mounted() && !errors.Is(err, resolver.ErrAlreadyLoaded) {
		log.WarnWithUnit(asset.Unit).Warnf("metadata fetch failed, retrying once: %v", err)

		select {
		case <-time.After(b.retryDelay):
		case <-g.Context().Done():
			b.loads.Done()
			return
		}

		metadata, err = b.resolve(g, asset)
		if err != nil {
			log.WarnWithUnit(asset.Unit).Warnf("metadata unavailable, showing fallback: %v", err)
		}
	}

	b.dispatch(func() {
		defer b.loads.Done()
		b.apply(g, asset.Unit, metadata, err)
	})
}

func (b *Badge) resolve(g *mountGuard, asset *models.Asset) (models.Metadata, error) {
	ctx := g.Context()
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	return b.resolver.Resolve(ctx, asset)
}

// apply leaves Loading for good, a failed resolution only skips OnLoad.
// The guard is checked under mu, which Unmount and SetAsset hold while
// stopping it.
func (b *Badge) apply(g *mountGuard, unit string, metadata models.Metadata, err error) {
	b.mu.Lock()
	if !g.Mounted() {
		b.mu.Unlock()
		return
	}
	b.state = Ready
	b.mu.Unlock()

	if err != nil {
		return
	}

	log.Debugf("asset %s resolved as %q", unit, metadata.DisplayName)
	if b.callbacks.OnLoad != nil {
		b.callbacks.OnLoad(metadata)
	}
}
