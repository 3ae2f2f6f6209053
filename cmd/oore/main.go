// Command oore runs slot resolution and state container fixtures.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/oore/cmd/oore/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
