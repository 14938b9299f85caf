package cmd

import (
	"fmt"

	"github.com/go-drift/uipack/pkg/construct"
)

func init() {
	RegisterCommand(&Command{
		Name:  "plan",
		Short: "Print the construction plan of an item",
		Long: `Flatten an item into its construction plan without building it.

Each line is one object creation, children before their parent. Packages
listed in uipack.yaml are always loaded.

Flags:
  --pkg FILE       Load a package file or YAML source (repeatable)
  --store          Load every package from the package store
  --branch NAME    Select a content branch
  --scale N        Select a high resolution scale level`,
		Usage: "uipack plan <ui://...|Package/Item> [--pkg FILE]... [--store]",
		Run:   runPlan,
	})
}

func runPlan(args []string) error {
	la, reg, err := prepare(args)
	if err != nil {
		return err
	}
	item, err := resolveTarget(reg, la.target)
	if err != nil {
		return err
	}
	plan, err := construct.Flatten(reg, item)
	if err != nil {
		return err
	}
	if err := plan.Validate(); err != nil {
		return err
	}
	fmt.Fprint(stdout, plan.String())
	fmt.Fprintf(stdout, "%d nodes\n", len(plan))
	return nil
}
