package cmd

import (
	"fmt"
	"text/tabwriter"
)

func init() {
	RegisterCommand(&Command{
		Name:  "store",
		Short: "Manage the package store",
		Long: `Manage the packages kept in the cache directory.

Stored packages are loaded by plan and build when --store is given.

Subcommands:
  add FILE...    Store package files or YAML sources
  list           List stored packages
  rm ID...       Remove packages by id`,
		Usage: "uipack store <add|list|rm> [args]",
		Run:   runStore,
	})
}

func runStore(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand is required (add, list or rm)\n\nUsage: uipack store <add|list|rm>")
	}
	switch args[0] {
	case "add":
		return storeAdd(args[1:])
	case "list", "ls":
		return storeList()
	case "rm", "remove":
		return storeRemove(args[1:])
	default:
		return fmt.Errorf("unknown store subcommand %q (use add, list or rm)", args[0])
	}
}

func storeAdd(paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("at least one package file is required")
	}
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	for _, path := range paths {
		data, err := readPackageData(path)
		if err != nil {
			return err
		}
		pkg, err := s.Put(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintf(stdout, "Stored %s (%s)\n", pkg.Name, pkg.ID)
	}
	return nil
}

func storeList() error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	entries, err := s.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(stdout, "No stored packages")
		return nil
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", e.ID, e.Name, e.Size)
	}
	return tw.Flush()
}

func storeRemove(ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("at least one package id is required")
	}
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	for _, id := range ids {
		if err := s.Delete(id); err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}
		fmt.Fprintf(stdout, "Removed %s\n", id)
	}
	return nil
}
