package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/artpipe/assetgate/core"
	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/internal/iostore"
	"github.com/artpipe/assetgate/internal/outwriter"
	"github.com/artpipe/assetgate/schema"
)

// intakeCmd runs the filesystem triage stage on its own.
var intakeCmd = &cobra.Command{
	Use:   "intake <asset-file>",
	Short: "Validate a submitted asset file before scene extraction",
	Long: `Run only the intake stage: accepted format, file existence and size
limits. No scene data is parsed, so this is cheap enough to run on every
upload before the DCC-side extractor is scheduled.

A file over the category size limit is a WARNING; a file over the hard cap
is a FAIL and exits non-zero.

Examples:
  # Triage an upload with default limits
  assetgate intake crate.fbx

  # Vehicle submission with a tighter category limit
  assetgate intake buggy.glb --category vehicle --max-size-mb 200`,
	Args:    cobra.ExactArgs(1),
	PreRunE: intakeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runIntakeCmd(); err != nil {
			contract.LogFatal("Intake failed", err)
		}
	},
}

func runIntakeCmd() error {
	start := time.Now()

	stage, meta := core.RunIntake(intakeConfigFromCfg(cfg))

	builder := core.NewReportBuilder(meta)
	builder.AddStage(stage)
	report := builder.Finalize()

	if err := outwriter.NewOutWriter().WriteReport(&report, cfg, time.Since(start)); err != nil {
		return err
	}

	if report.OverallStatus == schema.OverallFail {
		iostore.CloseStore()
		os.Exit(1)
	}
	return nil
}
