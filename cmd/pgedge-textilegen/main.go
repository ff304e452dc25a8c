// Package main is the entry point for pgedge-textilegen.
package main

import (
	"fmt"
	"os"

	"github.com/pgEdge/pgedge-textilegen/internal/cli"

	// Register storage backends
	_ "github.com/pgEdge/pgedge-textilegen/internal/store/postgres"
	_ "github.com/pgEdge/pgedge-textilegen/internal/store/sqlite"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
