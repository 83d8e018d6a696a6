package testutil

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/specialistvlad/workgraph/internal/executor"
	"github.com/specialistvlad/workgraph/internal/node"
)

// Recorder implements executor.Actions for tests. Every callback appends
// "start:<id>" and "finish:<id>" events to a single ordered log, keeps track
// of how many callbacks overlap, and performs its configured behavior.
// Only successful callbacks count as having a side effect.
type Recorder struct {
	mu      sync.Mutex
	events  []string
	effects []string
	active  int
	peak    int

	fail  map[string]error
	delay map[string]time.Duration
	hook  map[string]func(ctx context.Context)
}

var _ executor.Actions = (*Recorder)(nil)

// NewRecorder returns a recorder where every callback succeeds instantly.
func NewRecorder() *Recorder {
	return &Recorder{
		fail:  make(map[string]error),
		delay: make(map[string]time.Duration),
		hook:  make(map[string]func(ctx context.Context)),
	}
}

// Fail makes the callback of id return err without a side effect.
func (r *Recorder) Fail(id string, err error) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail[id] = err
	return r
}

// Delay makes the callback of id take at least d.
func (r *Recorder) Delay(id string, d time.Duration) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delay[id] = d
	return r
}

// DelayAll applies Delay to every id.
func (r *Recorder) DelayAll(d time.Duration, ids ...string) *Recorder {
	for _, id := range ids {
		r.Delay(id, d)
	}
	return r
}

// Hook runs fn inside the callback of id, after the start event.
func (r *Recorder) Hook(id string, fn func(ctx context.Context)) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hook[id] = fn
	return r
}

func (r *Recorder) DeployStack(ctx context.Context, n *node.StackNode) error {
	return r.do(ctx, n.ID())
}

func (r *Recorder) BuildAsset(ctx context.Context, n *node.AssetBuildNode) error {
	return r.do(ctx, n.ID())
}

func (r *Recorder) PublishAsset(ctx context.Context, n *node.AssetPublishNode) error {
	return r.do(ctx, n.ID())
}

func (r *Recorder) do(ctx context.Context, id string) error {
	r.mu.Lock()
	r.events = append(r.events, "start:"+id)
	r.active++
	r.peak = max(r.peak, r.active)
	failErr := r.fail[id]
	delay := r.delay[id]
	hook := r.hook[id]
	r.mu.Unlock()

	if hook != nil {
		hook(ctx)
	}
	if delay > 0 {
		time.Sleep(delay)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.active--
	r.events = append(r.events, "finish:"+id)
	if failErr != nil {
		return failErr
	}
	r.effects = append(r.effects, id)
	return nil
}

// Events returns the ordered start/finish log.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// Started returns the ids in the order their callbacks started.
func (r *Recorder) Started() []string {
	var out []string
	for _, ev := range r.Events() {
		if id, ok := strings.CutPrefix(ev, "start:"); ok {
			out = append(out, id)
		}
	}
	return out
}

// Effects returns the ids of successful callbacks in completion order.
func (r *Recorder) Effects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.effects)
}

// Peak returns the highest number of overlapping callbacks observed.
func (r *Recorder) Peak() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.peak
}
