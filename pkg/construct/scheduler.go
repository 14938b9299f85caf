package construct

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-drift/uipack/pkg/asset"
	uierrors "github.com/go-drift/uipack/pkg/errors"
	"github.com/go-drift/uipack/pkg/object"
)

const (
	// DefaultFrameBudget is how long one Step may build objects.
	DefaultFrameBudget = 2 * time.Millisecond
	// DefaultCheckInterval is how many nodes are built between clock reads.
	DefaultCheckInterval = 5
)

// State is the scheduling state of a Run.
type State int

const (
	// Running means the run is inside Step.
	Running State = iota
	// Suspended means the run yielded and waits for the next Step.
	Suspended
	// Done means the run finished, failed or was cancelled.
	Done
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Callback receives the root of a completed run.
type Callback func(root object.Object)

// Clock is the time source of the frame budget.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

var defaultFactory = sync.OnceValue(object.NewFactory)

// Options configures a Run. Zero fields take their defaults.
type Options struct {
	// FrameBudget bounds the time one Step spends building objects.
	FrameBudget time.Duration
	// CheckInterval is the number of nodes built between budget checks.
	CheckInterval int
	Clock         Clock
	Factory       *object.Factory
	// Metrics receives counters when set.
	Metrics *Metrics
}

func (o Options) withDefaults() Options {
	if o.FrameBudget <= 0 {
		o.FrameBudget = DefaultFrameBudget
	}
	if o.CheckInterval <= 0 {
		o.CheckInterval = DefaultCheckInterval
	}
	if o.Clock == nil {
		o.Clock = systemClock{}
	}
	if o.Factory == nil {
		o.Factory = defaultFactory()
	}
	return o
}

// Run builds the object tree of one item across as many Steps as its
// frame budget requires. A Run is driven by a single goroutine.
type Run struct {
	opts Options
	root *asset.Asset
	plan Plan
	pool pool
	done Callback

	next      int
	total     int
	state     State
	deadline  time.Time
	complete  bool
	unbounded bool
	result    object.Object
	err       error
	cbErr     error
}

// Start plans the construction of root. No object is built until the
// first Step, and done is called from a later Step than the one that
// builds the root, so it never runs inside Start or synchronously with the
// last unit of work.
func Start(res Resolver, root *asset.Asset, opts Options, done Callback) (*Run, error) {
	if root == nil {
		return nil, ErrRootNotFound
	}
	opts = opts.withDefaults()
	plan, err := Flatten(res, root)
	if err != nil {
		return nil, err
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	opts.Metrics.runStarted()
	return &Run{
		opts:     opts,
		root:     root,
		plan:     plan,
		total:    len(plan),
		done:     done,
		state:    Running,
		deadline: opts.Clock.Now().Add(opts.FrameBudget),
	}, nil
}

// Root returns the requested item.
func (r *Run) Root() *asset.Asset { return r.root }

// Plan returns the construction plan. It is dropped once the run ends.
func (r *Run) Plan() Plan { return r.plan }

// State returns the current state.
func (r *Run) State() State { return r.state }

// Err returns the error that ended the run, ErrCancelled after Cancel.
func (r *Run) Err() error { return r.err }

// CallbackErr returns the KindPanic error of a completion callback that
// panicked. The run itself still succeeded.
func (r *Run) CallbackErr() error { return r.cbErr }

// Result returns the constructed root once the run is Done.
func (r *Run) Result() object.Object { return r.result }

// Progress returns how many plan nodes were built out of the total.
func (r *Run) Progress() (built, total int) { return r.next, r.total }

// Step builds nodes until the plan is exhausted or the frame budget is
// spent. The budget is checked every CheckInterval nodes.
func (r *Run) Step() (State, error) {
	if r.state == Done {
		return Done, r.err
	}
	r.opts.Metrics.stepped()
	if r.complete {
		r.finish()
		return r.state, r.err
	}

	r.state = Running
	r.deadline = r.opts.Clock.Now().Add(r.opts.FrameBudget)
	for r.next < len(r.plan) {
		if err := r.build(r.plan[r.next]); err != nil {
			r.fail(err)
			return r.state, r.err
		}
		r.next++
		if !r.unbounded && r.next < len(r.plan) && r.next%r.opts.CheckInterval == 0 &&
			r.opts.Clock.Now().After(r.deadline) {
			r.suspend()
			return r.state, nil
		}
	}

	if r.pool.len() != 1 {
		r.fail(fmt.Errorf("%w: %d objects left after the root", ErrPoolUnderflow, r.pool.len()))
		return r.state, r.err
	}
	// Always yield once more so the callback never runs in the step that
	// built the root.
	r.complete = true
	r.suspend()
	return r.state, nil
}

func (r *Run) suspend() {
	r.state = Suspended
	r.opts.Metrics.suspended()
}

// build creates the object for n and reduces the pool.
func (r *Run) build(n Node) error {
	var obj object.Object
	if n.Asset != nil {
		obj = r.opts.Factory.NewObject(n.Asset)
		if n.Content != nil {
			object.SetContent(obj, n.Content)
		}
	} else {
		obj = r.opts.Factory.NewBare(n.Type)
	}
	r.pool.push(obj)
	r.opts.Metrics.objectCreated(obj.Type())

	switch {
	case n.Asset != nil && hasDescription(n.Asset):
		c, ok := obj.(object.Container)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotContainer, n)
		}
		start, ok := r.pool.below(n.ChildCount)
		if !ok {
			return fmt.Errorf("%w: %s", ErrPoolUnderflow, n)
		}
		if err := c.ConstructFrom(r.pool.items, start, n.ChildCount); err != nil {
			return err
		}
		r.pool.collapse(start, n.ChildCount)
	case n.Asset == nil && n.Type == asset.TypeList && n.ListItemCount > 0:
		l, ok := obj.(object.ReusePooler)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotList, n)
		}
		start, ok := r.pool.below(n.ListItemCount)
		if !ok {
			return fmt.Errorf("%w: %s", ErrPoolUnderflow, n)
		}
		l.SeedReusePool(r.pool.items, start, n.ListItemCount)
		r.pool.collapse(start, n.ListItemCount)
	}
	return nil
}

func (r *Run) finish() {
	r.result = r.pool.pop()
	r.state = Done
	r.plan = nil
	r.opts.Metrics.runEnded(r.state, nil)
	if r.done != nil {
		r.cbErr = r.notify()
	}
}

// notify calls the completion callback. A panic is reported and returned.
func (r *Run) notify() (err error) {
	defer uierrors.Recover(&err, "construct.Run.callback", packageName(r.root), r.root.Name)
	r.done(r.result)
	return nil
}

func (r *Run) fail(err error) {
	r.pool.dispose()
	r.state = Done
	r.plan = nil
	r.err = &uierrors.Error{
		Op:      "construct.Run.Step",
		Kind:    uierrors.KindConstruct,
		Package: packageName(r.root),
		Item:    r.root.Name,
		Err:     err,
	}
	r.opts.Metrics.runEnded(r.state, r.err)
}

// Cancel abandons the run. Objects built but not yet attached to a parent
// are disposed and the callback is never called. Cancelling a finished run
// has no effect.
func (r *Run) Cancel() {
	if r.state == Done {
		return
	}
	r.pool.dispose()
	r.plan = nil
	r.state = Done
	r.err = ErrCancelled
	r.opts.Metrics.runEnded(r.state, r.err)
}

// RunSync builds root to completion without regard to the frame budget
// and returns it. No callback is involved.
func RunSync(res Resolver, root *asset.Asset, opts Options) (object.Object, error) {
	r, err := Start(res, root, opts, nil)
	if err != nil {
		return nil, err
	}
	r.unbounded = true
	for {
		state, err := r.Step()
		if err != nil {
			return nil, err
		}
		if state == Done {
			return r.result, nil
		}
	}
}
