package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of assetgate.",
	Long: `Show the build information compiled into this assetgate binary:
the release version, the git commit it was built from, the build timestamp,
and the Go runtime version.

Include this output when reporting pipeline bugs to the tools team, and
check it after an upgrade to confirm the release you expect is the one on
your PATH.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("assetgate CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
	},
}
