// Package main is the entry point for the splists CLI.
package main

import (
	"os"

	"splists/cmd/splists/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
