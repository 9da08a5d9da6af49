package main

import (
	"fmt"
	"os"

	"taskman/internal/cli"
	"taskman/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	root := cli.NewRootCommand(cfg)

	// os.Exit skips deferred calls, so teardown happens explicitly on
	// both paths.
	err = root.Execute()
	root.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
