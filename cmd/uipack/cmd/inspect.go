package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/go-drift/uipack/pkg/asset"
)

func init() {
	RegisterCommand(&Command{
		Name:  "inspect",
		Short: "Describe the items of a package file",
		Long: `Decode a package file (or YAML source) and list its items.

Each item is shown with its id, name, kind, object type, size and the
alternate content it provides.`,
		Usage: "uipack inspect <file>",
		Run:   runInspect,
	})
}

func runInspect(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("package file is required\n\nUsage: uipack inspect <file>")
	}
	data, err := readPackageData(args[0])
	if err != nil {
		return err
	}
	pkg, err := asset.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	st := newStyler(stdout)
	fmt.Fprintf(stdout, "%s %s\n", st.bold(pkg.Name), st.dim("("+pkg.ID+", "+pkg.Version+")"))
	fmt.Fprintf(stdout, "  strings:  %d\n", len(pkg.Strings))
	if len(pkg.Branches) > 0 {
		fmt.Fprintf(stdout, "  branches: %s\n", strings.Join(pkg.Branches, ", "))
	}
	fmt.Fprintf(stdout, "  items:    %d\n\n", len(pkg.Items()))

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tKIND\tTYPE\tSIZE\tVARIANTS")
	for _, item := range pkg.Items() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%dx%d\t%s\n",
			item.ID, item.Name, item.Kind, item.Type, item.Width, item.Height, variants(pkg, item))
	}
	return tw.Flush()
}

func variants(pkg *asset.Package, item *asset.Asset) string {
	var parts []string
	for i, id := range item.Branches {
		if id == "" || i >= len(pkg.Branches) {
			continue
		}
		parts = append(parts, pkg.Branches[i]+"="+id)
	}
	for i, id := range item.HighResolution {
		if id != "" {
			parts = append(parts, fmt.Sprintf("scale%d=%s", i+1, id))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
