// Package main provides the entry point for routeguard-cli.
//
// routeguard-cli drives a RouteGuard session from the command line:
// login, logout, status, role and permission checks, and navigation
// simulation against the configured filter rules.
package main

import (
	"fmt"
	"os"

	"github.com/yndnr/routeguard-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
