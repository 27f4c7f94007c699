// main is the entry point for the devex CLI.
package main

import (
	"github.com/devexhq/devex/cmd"
	"github.com/devexhq/devex/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
