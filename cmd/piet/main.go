// Command piet renders and validates Piet documents against in-memory
// views.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/piet/cmd/piet/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
