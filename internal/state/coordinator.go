package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// LoadOp is one named load operation: the fetch that keeps one table's data
// consistent with the store parameters it declares.
type LoadOp struct {
	Name  string
	Table domain.LogicalTable

	// Fields are the store fields this operation reads. The operation
	// re-runs iff one of them changed since its last issued run. The global
	// refresh field is always watched in addition.
	Fields []Field

	// Init runs before the operation's first Run and is latched once it
	// succeeds, independent of later parameter changes. Used for
	// fetch-once column metadata. Optional.
	Init func(ctx context.Context) error

	// Run performs the fetch and returns an apply closure installing the
	// results into the store. The closure is invoked only when no newer run
	// of the same operation was issued meanwhile; stale results are
	// discarded whole.
	Run func(ctx context.Context) (apply func(), err error)
}

type opRun struct {
	gen  uint64
	init bool
	done chan struct{}
}

type opState struct {
	op          LoadOp
	initDone    bool
	initRunning bool
	gen         uint64           // newest issued generation
	lastSnap    map[Field]uint64 // watched versions at the newest issue; nil until first run
	lastErr     error            // outcome of the newest completed run
	inflight    *opRun           // newest issued run until it completes
}

// Coordinator keeps registered load operations consistent with the store:
// reactively (Start), synchronously on the request path (Ensure), and on a
// polling cadence (StartAutoRefresh). Failures never cross operations; each
// lands as that table's error string.
type Coordinator struct {
	store  *Store
	logger *slog.Logger

	mu    sync.Mutex
	ops   map[string]*opState
	names []string // registration order

	stopOnce sync.Once
	stop     chan struct{}
	wg       sync.WaitGroup
}

// NewCoordinator creates a Coordinator over the store.
func NewCoordinator(store *Store, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		store:  store,
		logger: logger.With("component", "coordinator"),
		ops:    make(map[string]*opState),
		stop:   make(chan struct{}),
	}
}

// Register adds a load operation. Must be called before Start.
func (c *Coordinator) Register(op LoadOp) {
	fields := make([]Field, 0, len(op.Fields)+1)
	fields = append(fields, op.Fields...)
	watchesRefresh := false
	for _, f := range fields {
		if f == FieldRefresh {
			watchesRefresh = true
			break
		}
	}
	if !watchesRefresh {
		fields = append(fields, FieldRefresh)
	}
	op.Fields = fields

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops[op.Name] = &opState{op: op}
	c.names = append(c.names, op.Name)
}

// Names returns the registered operation names in registration order.
func (c *Coordinator) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Ensure brings one operation up to date and returns its outcome: it runs
// the operation if a watched field changed since the last issued run, waits
// for an equivalent in-flight run instead of duplicating it, and is a no-op
// when the data is already fresh. The returned error is the operation's
// current failure state, also recorded on its table.
func (c *Coordinator) Ensure(ctx context.Context, name string) error {
	for {
		c.mu.Lock()
		st, ok := c.ops[name]
		if !ok {
			c.mu.Unlock()
			return fmt.Errorf("unknown load operation %q", name)
		}
		cur := c.store.Versions(st.op.Fields)
		if st.lastSnap != nil && sameVersions(cur, st.lastSnap) {
			if st.inflight != nil {
				done := st.inflight.done
				c.mu.Unlock()
				select {
				case <-done:
					continue
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			err := st.lastErr
			c.mu.Unlock()
			return err
		}
		run := c.issueLocked(st, cur)
		c.mu.Unlock()
		c.execute(ctx, st, run)
	}
}

// issueLocked stamps a new generation for the operation. Callers hold c.mu.
func (c *Coordinator) issueLocked(st *opState, snap map[Field]uint64) *opRun {
	st.gen++
	run := &opRun{gen: st.gen, done: make(chan struct{})}
	if !st.initDone && !st.initRunning {
		st.initRunning = true
		run.init = true
	}
	st.lastSnap = snap
	st.inflight = run
	c.store.SetLoading(st.op.Table, true)
	return run
}

// execute performs one issued run and applies or discards its result. A run
// superseded by a newer generation is discarded whole: its apply closure
// never executes and it leaves the loading flag to the newer run.
func (c *Coordinator) execute(ctx context.Context, st *opState, run *opRun) {
	defer close(run.done)

	var apply func()
	var err error
	if run.init && st.op.Init != nil {
		err = st.op.Init(ctx)
	}
	if err == nil {
		apply, err = st.op.Run(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if run.init {
		st.initRunning = false
		if err == nil {
			st.initDone = true
		}
	}
	if st.inflight == run {
		st.inflight = nil
	}
	if run.gen != st.gen {
		// A newer run was issued while this one was in flight.
		c.logger.Debug("discarding stale result", "op", st.op.Name, "gen", run.gen, "newest", st.gen)
		return
	}
	st.lastErr = err
	if err != nil {
		c.logger.Warn("load failed", "op", st.op.Name, "error", err)
		c.store.SetError(st.op.Table, err.Error())
	} else {
		if apply != nil {
			apply()
		}
		c.store.SetError(st.op.Table, "")
	}
	c.store.SetLoading(st.op.Table, false)
}

// Start launches the reactive loop: a store subscription over the union of
// all watched fields wakes it, and every operation whose declared fields
// intersect the dirty set is brought up to date. Unrelated mutations never
// re-run an operation.
func (c *Coordinator) Start(ctx context.Context) {
	sub := c.store.Subscribe(c.watchedFields()...)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.stop:
				return
			case <-sub.Ready():
				changed := sub.Take()
				for _, name := range c.dirtyOps(changed) {
					c.wg.Add(1)
					go func() {
						defer c.wg.Done()
						// Errors are already recorded on the table.
						_ = c.Ensure(ctx, name)
					}()
				}
			}
		}
	}()
}

// StartAutoRefresh re-runs every operation on a fixed cadence. A
// non-positive interval disables it. The ticker stops with the coordinator.
func (c *Coordinator) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.stop:
				return
			case <-ticker.C:
				c.RefreshAll(ctx)
			}
		}
	}()
}

// RefreshAll bumps the global refresh counter and brings every operation up
// to date in parallel. Individual failures stay on their tables and do not
// stop sibling operations.
func (c *Coordinator) RefreshAll(ctx context.Context) {
	c.store.Refresh()
	var g errgroup.Group
	for _, name := range c.Names() {
		g.Go(func() error {
			return c.Ensure(ctx, name)
		})
	}
	if err := g.Wait(); err != nil {
		c.logger.Warn("refresh completed with failures", "error", err)
	}
}

// Stop halts the reactive loop and any auto-refresh and waits for in-flight
// runs to settle.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
	c.wg.Wait()
}

func (c *Coordinator) watchedFields() []Field {
	c.mu.Lock()
	defer c.mu.Unlock()
	seen := make(map[Field]struct{})
	var out []Field
	for _, name := range c.names {
		for _, f := range c.ops[name].op.Fields {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}
	return out
}

func (c *Coordinator) dirtyOps(changed []Field) []string {
	changedSet := make(map[Field]struct{}, len(changed))
	for _, f := range changed {
		changedSet[f] = struct{}{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, name := range c.names {
		for _, f := range c.ops[name].op.Fields {
			if _, ok := changedSet[f]; ok {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

func sameVersions(a, b map[Field]uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for f, v := range a {
		if b[f] != v {
			return false
		}
	}
	return true
}
