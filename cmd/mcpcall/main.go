package main

import (
	"fmt"
	"os"

	"github.com/randalmurphal/mcpcall/cli"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		// Single catch point: every failure becomes one diagnostic line
		// on stderr and exit status 1. Stdout stays empty.
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
