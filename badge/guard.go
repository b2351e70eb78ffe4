package badge

import (
	"context"

	"go.uber.org/atomic"
)

// mountGuard is armed for one asset identity of a mounted badge.
// Async continuations check it before touching the badge; stopping it also
// cancels the context handed to the in-flight fetch, which is advisory.
type mountGuard struct {
	mounted *atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

func newMountGuard() *mountGuard {
	ctx, cancel := context.WithCancel(context.Background())

	return &mountGuard{
		mounted: atomic.NewBool(true),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (g *mountGuard) Mounted() bool {
	return g.mounted.Load()
}

func (g *mountGuard) Context() context.Context {
	return g.ctx
}

func (g *mountGuard) stop() {
	g.mounted.Store(false)
	g.cancel()
}
