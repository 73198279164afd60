// Package main provides the tsinit command-line tool.
package main

import (
	"os"

	"github.com/tsinit-dev/tsinit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
