package construct

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-drift/uipack/pkg/asset"
)

// Metrics accumulates construction counters. One Metrics may be shared by
// any number of runs and read while they progress. A nil *Metrics
// discards everything.
type Metrics struct {
	runs        atomic.Int64
	completed   atomic.Int64
	cancelled   atomic.Int64
	failed      atomic.Int64
	steps       atomic.Int64
	suspensions atomic.Int64
	nodes       atomic.Int64

	mu      sync.Mutex
	created map[asset.ObjectType]int64
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Runs        int64            `json:"runs"`
	Completed   int64            `json:"completed"`
	Cancelled   int64            `json:"cancelled"`
	Failed      int64            `json:"failed"`
	Steps       int64            `json:"steps"`
	Suspensions int64            `json:"suspensions"`
	Nodes       int64            `json:"nodes"`
	Created     map[string]int64 `json:"created,omitempty"`
}

// NewMetrics returns zeroed counters.
func NewMetrics() *Metrics {
	return &Metrics{created: make(map[asset.ObjectType]int64)}
}

func (m *Metrics) add(c *atomic.Int64) {
	if m != nil {
		c.Add(1)
	}
}

func (m *Metrics) runStarted() {
	if m != nil {
		m.add(&m.runs)
	}
}

func (m *Metrics) runEnded(state State, err error) {
	if m == nil || state != Done {
		return
	}
	switch {
	case err == nil:
		m.add(&m.completed)
	case err == ErrCancelled:
		m.add(&m.cancelled)
	default:
		m.add(&m.failed)
	}
}

func (m *Metrics) stepped() {
	if m != nil {
		m.add(&m.steps)
	}
}

func (m *Metrics) suspended() {
	if m != nil {
		m.add(&m.suspensions)
	}
}

func (m *Metrics) objectCreated(t asset.ObjectType) {
	if m == nil {
		return
	}
	m.nodes.Add(1)
	m.mu.Lock()
	if m.created == nil {
		m.created = make(map[asset.ObjectType]int64)
	}
	m.created[t]++
	m.mu.Unlock()
}

// Created returns how many objects of variant t were built.
func (m *Metrics) Created(t asset.ObjectType) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created[t]
}

// Snapshot copies the counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	s := MetricsSnapshot{
		Runs:        m.runs.Load(),
		Completed:   m.completed.Load(),
		Cancelled:   m.cancelled.Load(),
		Failed:      m.failed.Load(),
		Steps:       m.steps.Load(),
		Suspensions: m.suspensions.Load(),
		Nodes:       m.nodes.Load(),
	}
	m.mu.Lock()
	if len(m.created) > 0 {
		s.Created = make(map[string]int64, len(m.created))
		for t, n := range m.created {
			s.Created[t.String()] = n
		}
	}
	m.mu.Unlock()
	return s
}

func (s MetricsSnapshot) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "runs=%d completed=%d cancelled=%d failed=%d steps=%d suspensions=%d nodes=%d",
		s.Runs, s.Completed, s.Cancelled, s.Failed, s.Steps, s.Suspensions, s.Nodes)
	for _, name := range slices.Sorted(maps.Keys(s.Created)) {
		fmt.Fprintf(&sb, " %s=%d", name, s.Created[name])
	}
	return sb.String()
}
