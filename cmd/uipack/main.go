// Command uipack compiles, inspects and constructs UI packages.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/uipack/cmd/uipack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
