// main is a thin wrapper so `go run .` and `go install` work from the
// repository root; cmd/assetgate/main.go is the goreleaser build target.
package main

import (
	"fmt"
	"os"

	"github.com/artpipe/assetgate/cmd"
	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/internal/iostore"
)

func main() {
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
