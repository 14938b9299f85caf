package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-drift/uipack/pkg/construct"
	"github.com/go-drift/uipack/pkg/object"
)

func init() {
	RegisterCommand(&Command{
		Name:  "build",
		Short: "Build an item and print its object tree",
		Long: `Build the object tree of an item through the construction queue, the
way a host application does: one step per frame, each step limited to the
frame budget.

Packages listed in uipack.yaml are always loaded, and its scheduler
settings provide the defaults for the flags below.

Flags:
  --pkg FILE              Load a package file or YAML source (repeatable)
  --store                 Load every package from the package store
  --branch NAME           Select a content branch
  --scale N               Select a high resolution scale level
  --budget DURATION       Time budget of one step (default: 2ms)
  --check-interval N      Objects built between budget checks (default: 5)
  --frame DURATION        Host frame period (default: 16ms)
  --json                  Print the tree and metrics as JSON`,
		Usage: "uipack build <ui://...|Package/Item> [--pkg FILE]... [--store] [--budget 2ms] [--frame 16ms]",
		Run:   runBuild,
	})
}

type buildReport struct {
	Item    string                    `json:"item"`
	Frames  int64                     `json:"frames"`
	Elapsed string                    `json:"elapsed"`
	Tree    object.Snapshot           `json:"tree"`
	Metrics construct.MetricsSnapshot `json:"metrics"`
}

func runBuild(args []string) error {
	la, reg, err := prepare(args)
	if err != nil {
		return err
	}
	item, err := resolveTarget(reg, la.target)
	if err != nil {
		return err
	}

	metrics := construct.NewMetrics()
	q := construct.NewQueue(reg, construct.Options{
		FrameBudget:   la.budget,
		CheckInterval: la.interval,
		Metrics:       metrics,
	})
	var runErr error
	q.OnError = func(_ *construct.Run, err error) { runErr = err }

	var root object.Object
	if _, err := q.CreateObject(item.URL(), func(obj object.Object) { root = obj }); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if err := q.RunUntilIdle(ctx, la.frame); err != nil {
		q.CancelAll()
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("build interrupted")
		}
		return err
	}
	elapsed := time.Since(start)
	if runErr != nil {
		return runErr
	}
	if root == nil {
		return fmt.Errorf("build of %s produced no object", item)
	}

	snap := metrics.Snapshot()
	tree := object.Capture(root)
	if la.json {
		return writeJSON(stdout, buildReport{
			Item:    item.URL(),
			Frames:  snap.Steps,
			Elapsed: elapsed.String(),
			Tree:    tree,
			Metrics: snap,
		})
	}

	st := newStyler(stdout)
	fmt.Fprint(stdout, tree.String())
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s %s: %d objects in %d frames (%s)\n",
		st.green("Built"), st.bold(item.String()), tree.Count(), snap.Steps, elapsed.Round(time.Microsecond))
	fmt.Fprintln(stdout, st.dim(snap.String()))
	return nil
}
