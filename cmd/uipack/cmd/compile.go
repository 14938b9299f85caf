package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/uipack/cmd/uipack/internal/cache"
	"github.com/go-drift/uipack/pkg/pack"
	"github.com/go-drift/uipack/pkg/store"
)

func init() {
	RegisterCommand(&Command{
		Name:  "compile",
		Short: "Compile a package source to a package file",
		Long: `Compile a YAML package source into the binary package format.

The output defaults to the source path with a .uipk extension.

Flags:
  -o FILE    Write the package to FILE
  --store    Also add the package to the package store`,
		Usage: "uipack compile <source.yaml> [-o FILE] [--store]",
		Run:   runCompile,
	})
}

func runCompile(args []string) error {
	var srcPath, outPath string
	var toStore bool
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o", "--output":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a file path", args[i])
			}
			outPath = args[i+1]
			i++
		case "--store":
			toStore = true
		default:
			if strings.HasPrefix(args[i], "-") {
				return fmt.Errorf("unknown flag %s", args[i])
			}
			if srcPath != "" {
				return fmt.Errorf("unexpected argument %q", args[i])
			}
			srcPath = args[i]
		}
	}
	if srcPath == "" {
		return fmt.Errorf("source file is required\n\nUsage: uipack compile <source.yaml>")
	}
	if outPath == "" {
		outPath = strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + ".uipk"
	}

	src, err := pack.LoadSourceFile(srcPath)
	if err != nil {
		return err
	}
	data, err := pack.Encode(src)
	if err != nil {
		return fmt.Errorf("%s: %w", srcPath, err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write package: %w", err)
	}
	fmt.Fprintf(stdout, "Compiled %s (%s, %d items, %d bytes) -> %s\n",
		src.Name, src.ID, len(src.Items), len(data), outPath)

	if toStore {
		return addToStore(data)
	}
	return nil
}

func openStore() (*store.Store, error) {
	path, err := cache.StorePath()
	if err != nil {
		return nil, err
	}
	return store.Open(path)
}

func addToStore(data []byte) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	pkg, err := s.Put(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Stored %s (%s)\n", pkg.Name, pkg.ID)
	return nil
}
