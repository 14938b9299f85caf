package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/go-drift/uipack/cmd/uipack/internal/config"
	"github.com/go-drift/uipack/pkg/asset"
	"github.com/go-drift/uipack/pkg/pack"
)

// maxParallelLoads bounds concurrent package reads.
const maxParallelLoads = 8

// loadArgs are the flags shared by commands that resolve items.
type loadArgs struct {
	target   string
	packages []string
	useStore bool
	branch   string
	scale    int
	budget   time.Duration
	interval int
	frame    time.Duration
	json     bool
}

func parseLoadArgs(args []string) (loadArgs, error) {
	var la loadArgs
	la.scale = -1

	value := func(i *int, name string) (string, error) {
		arg := args[*i]
		if v, ok := strings.CutPrefix(arg, name+"="); ok {
			return v, nil
		}
		if *i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value", name)
		}
		*i++
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, _, _ := strings.Cut(arg, "=")
		switch name {
		case "--pkg":
			v, err := value(&i, name)
			if err != nil {
				return la, err
			}
			la.packages = append(la.packages, v)
		case "--store":
			la.useStore = true
		case "--json":
			la.json = true
		case "--branch":
			v, err := value(&i, name)
			if err != nil {
				return la, err
			}
			la.branch = v
		case "--scale":
			v, err := value(&i, name)
			if err != nil {
				return la, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return la, fmt.Errorf("invalid --scale %q", v)
			}
			la.scale = n
		case "--budget", "--frame":
			v, err := value(&i, name)
			if err != nil {
				return la, err
			}
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				return la, fmt.Errorf("invalid %s %q", name, v)
			}
			if name == "--budget" {
				la.budget = d
			} else {
				la.frame = d
			}
		case "--check-interval":
			v, err := value(&i, name)
			if err != nil {
				return la, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return la, fmt.Errorf("invalid --check-interval %q", v)
			}
			la.interval = n
		default:
			if strings.HasPrefix(arg, "-") {
				return la, fmt.Errorf("unknown flag %s", arg)
			}
			if la.target != "" {
				return la, fmt.Errorf("unexpected argument %q", arg)
			}
			la.target = arg
		}
	}
	return la, nil
}

// merge fills unset flags from the configuration.
func (la *loadArgs) merge(cfg *config.Resolved) {
	la.packages = append(append([]string(nil), cfg.Packages...), la.packages...)
	if la.branch == "" {
		la.branch = cfg.Branch
	}
	if la.scale < 0 {
		la.scale = cfg.ScaleLevel
	}
	if la.budget == 0 {
		la.budget = cfg.FrameBudget
	}
	if la.interval == 0 {
		la.interval = cfg.CheckInterval
	}
	if la.frame == 0 {
		la.frame = cfg.Frame
	}
}

// prepare resolves configuration from the working directory and builds the
// registry the command resolves items against.
func prepare(args []string) (loadArgs, *asset.Registry, error) {
	la, err := parseLoadArgs(args)
	if err != nil {
		return la, nil, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return la, nil, err
	}
	cfg, err := config.Resolve(wd)
	if err != nil {
		return la, nil, err
	}
	la.merge(cfg)

	reg, err := loadRegistry(la)
	if err != nil {
		return la, nil, err
	}
	return la, reg, nil
}

func loadRegistry(la loadArgs) (*asset.Registry, error) {
	if len(la.packages) == 0 && !la.useStore {
		return nil, fmt.Errorf("no packages given (use --pkg FILE or --store)")
	}

	pkgs, err := readPackages(la.packages)
	if err != nil {
		return nil, err
	}

	reg := asset.NewRegistry()
	for i, pkg := range pkgs {
		if err := reg.Add(pkg); err != nil {
			return nil, fmt.Errorf("%s: %w", la.packages[i], err)
		}
	}

	if la.useStore {
		s, err := openStore()
		if err != nil {
			return nil, err
		}
		defer s.Close()
		if _, err := s.LoadInto(reg); err != nil {
			return nil, err
		}
	}

	reg.SetBranch(la.branch)
	reg.SetScaleLevel(la.scale)
	return reg, nil
}

// readPackages reads and decodes the files concurrently. The result keeps
// the order of paths.
func readPackages(paths []string) ([]*asset.Package, error) {
	pkgs := make([]*asset.Package, len(paths))
	var g errgroup.Group
	g.SetLimit(maxParallelLoads)
	for i, path := range paths {
		g.Go(func() error {
			data, err := readPackageData(path)
			if err != nil {
				return err
			}
			pkg, err := asset.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			pkgs[i] = pkg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pkgs, nil
}

// readPackageData returns the container bytes of a package file. YAML
// sources are compiled on the fly.
func readPackageData(path string) ([]byte, error) {
	if isSource(path) {
		src, err := pack.LoadSourceFile(path)
		if err != nil {
			return nil, err
		}
		data, err := pack.Encode(src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read package: %w", err)
	}
	return data, nil
}

func isSource(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// resolveTarget looks up a ui:// address or a Package/Item name pair.
func resolveTarget(reg *asset.Registry, target string) (*asset.Asset, error) {
	if target == "" {
		return nil, fmt.Errorf("item is required (ui://... or Package/Item)")
	}
	if !strings.HasPrefix(target, asset.URLPrefix) {
		pkgName, itemName, ok := strings.Cut(target, "/")
		if !ok || pkgName == "" || itemName == "" {
			return nil, fmt.Errorf("invalid item %q (want ui://... or Package/Item)", target)
		}
		target = asset.NameURL(pkgName, itemName)
	}
	item, ok := reg.ItemByURL(target)
	if !ok {
		return nil, fmt.Errorf("item %s not found", target)
	}
	return item, nil
}
