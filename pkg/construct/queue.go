package construct

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-drift/uipack/pkg/asset"
	uierrors "github.com/go-drift/uipack/pkg/errors"
)

// Queue drives independent runs for one host. Runs are started by
// CreateObject and advanced once per Tick, in the order they were created.
// CreateObject may be called from any goroutine, including completion
// callbacks; Tick must be called from one goroutine at a time.
type Queue struct {
	res  Resolver
	opts Options

	mu   sync.Mutex
	runs []*Run

	// OnError is called with every run that ends with an error other than
	// ErrCancelled.
	OnError func(r *Run, err error)
}

// NewQueue returns a queue whose runs resolve items through res.
func NewQueue(res Resolver, opts Options) *Queue {
	return &Queue{res: res, opts: opts.withDefaults()}
}

// CreateObject starts building the item at url. done is called from a
// later Tick with the root.
func (q *Queue) CreateObject(url string, done Callback) (*Run, error) {
	root, ok := q.res.ItemByURL(url)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, url)
	}
	return q.enqueue(root, done)
}

// CreateObjectByName starts building an item addressed by package and
// item name.
func (q *Queue) CreateObjectByName(pkgName, resName string, done Callback) (*Run, error) {
	return q.CreateObject(asset.NameURL(pkgName, resName), done)
}

func (q *Queue) enqueue(root *asset.Asset, done Callback) (*Run, error) {
	r, err := Start(q.res, root, q.opts, done)
	if err != nil {
		return nil, err
	}
	q.mu.Lock()
	q.runs = append(q.runs, r)
	q.mu.Unlock()
	return r, nil
}

// Pending returns the number of runs that are not Done.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.runs)
}

// Tick steps every pending run once and returns how many remain.
// Runs created during the tick are first stepped by the next one.
func (q *Queue) Tick() int {
	q.mu.Lock()
	runs := slices.Clone(q.runs)
	q.mu.Unlock()

	for _, r := range runs {
		if r.State() == Done {
			continue
		}
		if _, err := r.Step(); err != nil {
			q.report(r, err)
		}
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.runs = slices.DeleteFunc(q.runs, func(r *Run) bool {
		return r.State() == Done
	})
	return len(q.runs)
}

func (q *Queue) report(r *Run, err error) {
	if err == ErrCancelled {
		return
	}
	if e, ok := err.(*uierrors.Error); ok {
		uierrors.Report(e)
	} else {
		uierrors.Report(&uierrors.Error{
			Op:   "construct.Queue.Tick",
			Kind: uierrors.KindConstruct,
			Item: r.root.Name,
			Err:  err,
		})
	}
	if q.OnError != nil {
		q.OnError(r, err)
	}
}

// CancelAll cancels every pending run.
func (q *Queue) CancelAll() {
	q.mu.Lock()
	runs := q.runs
	q.runs = nil
	q.mu.Unlock()
	for _, r := range runs {
		r.Cancel()
	}
}

// RunUntilIdle ticks once per frame until no run is pending or ctx is done.
func (q *Queue) RunUntilIdle(ctx context.Context, frame time.Duration) error {
	if q.Pending() == 0 {
		return nil
	}
	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if q.Tick() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
