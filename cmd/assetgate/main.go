// Package main is the entry point for the assetgate CLI.
package main

import (
	"fmt"
	"os"

	"github.com/artpipe/assetgate/cmd"
	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/internal/iostore"
)

func main() {
	// Hand the command layer the global store manager before any command runs.
	cmd.SetStoreManager(iostore.Manager)

	err := cmd.Execute()

	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("failed to stop profiling", perr)
	}
	iostore.CloseStore()

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
