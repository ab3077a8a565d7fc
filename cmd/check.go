package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/artpipe/assetgate/core"
	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/internal/iostore"
	"github.com/artpipe/assetgate/internal/outwriter"
	"github.com/artpipe/assetgate/internal/scenejson"
	"github.com/artpipe/assetgate/schema"
)

// checkCmd runs the full QA pipeline over one scene snapshot.
var checkCmd = &cobra.Command{
	Use:   "check <scene.json> [asset-file]",
	Short: "Run all QA stages over a scene snapshot (fails build on rejection)",
	Long: `Run the full QA pipeline over a scene-facts snapshot: geometry, UV,
texture, PBR, armature and scene checks, followed by auto-remediation and
the aggregated verdict.

When the original asset file is given as a second argument, the intake stage
runs first (format, existence, size limits) and the asset is routed into the
engine drop, review queue or quarantine based on the verdict.

Exits non-zero when the asset is rejected, so it can gate submission
pipelines directly.

Examples:
  # Check a snapshot with defaults (env_prop budgets)
  assetgate check crate_scene.json

  # Check a character submission and route the source file
  assetgate check hero_scene.json hero.fbx --category character --sidecar-dir /mnt/artdrop

  # Tighten the triangle budget for one run
  assetgate check crate_scene.json --max-triangles 2000

  # Machine-readable report for CI annotations
  assetgate check crate_scene.json --output json --output-file report.json`,
	Args:    cobra.RangeArgs(1, 2),
	PreRunE: checkSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runCheck(); err != nil {
			contract.LogFatal("QA check failed", err)
		}
	},
}

// runCheck executes the pipeline: load, check, persist, route, report.
func runCheck() error {
	start := time.Now()

	scene, err := scenejson.Load(cfg.ScenePath)
	if err != nil {
		return fmt.Errorf("failed to load scene: %w", err)
	}

	// With an asset file present the intake stage mints the metadata;
	// otherwise mint it here so the report still carries an asset ID.
	var intakeStage *schema.StageResult
	var meta schema.AssetMetadata
	if cfg.AssetPath != "" {
		stage, m := core.RunIntake(intakeConfigFromCfg(cfg))
		intakeStage = &stage
		meta = m
	} else {
		now := time.Now().UTC()
		meta = schema.AssetMetadata{
			AssetID:             uuid.NewString(),
			Source:              cfg.Source,
			Category:            cfg.Category,
			Submitter:           cfg.Submitter,
			SubmissionDate:      now.Format("2006-01-02"),
			ProcessingTimestamp: now.Format(time.RFC3339),
		}
	}

	report, err := core.ExecuteAssetCheck(rootCtx, cfg, scene, meta, intakeStage)
	if err != nil {
		return err
	}

	if cfg.AssetPath != "" {
		format := strings.TrimPrefix(strings.ToLower(filepath.Ext(cfg.AssetPath)), ".")
		info := core.BuildExportInfo(format, cfg.AssetPath)
		report.Export = &info
	}

	persistRun(&report, start)

	if cfg.SidecarDir != "" {
		if err := routeOutputs(&report); err != nil {
			return err
		}
	}

	if err := outwriter.NewOutWriter().WriteReport(&report, cfg, time.Since(start)); err != nil {
		return err
	}

	if report.OverallStatus == schema.OverallFail {
		iostore.CloseStore()
		os.Exit(1)
	}
	return nil
}

// persistRun records the completed run in the report store. Persistence
// failures never block the report output.
func persistRun(report *schema.QaReport, start time.Time) {
	if storeManager == nil {
		return
	}
	store := storeManager.GetReportStore()
	if store == nil {
		return
	}

	params := map[string]any{
		"category": string(cfg.Category),
		"hero":     cfg.HeroAsset,
		"source":   cfg.Source,
	}
	if _, err := iostore.PersistReport(store, report, start, time.Now(), params); err != nil {
		contract.LogWarn("failed to persist QA run", err)
	}
}

// routeOutputs writes the sidecar manifest and copies the asset file into
// the verdict-based destination under the sidecar base directory.
func routeOutputs(report *schema.QaReport) error {
	subdir := core.RouteSubdir(report.OverallStatus, report.Metadata.Category, report.Metadata.AssetID)

	destDir := filepath.Join(cfg.SidecarDir, subdir)
	if _, err := outwriter.WriteSidecar(report, destDir); err != nil {
		return fmt.Errorf("failed to write sidecar: %w", err)
	}

	if cfg.AssetPath != "" {
		if _, err := outwriter.RouteAssetFile(cfg.AssetPath, cfg.SidecarDir, subdir); err != nil {
			return fmt.Errorf("failed to route asset file: %w", err)
		}
	}
	return nil
}

// intakeConfigFromCfg maps the resolved CLI config onto intake policy.
func intakeConfigFromCfg(cfg *contract.Config) schema.IntakeConfig {
	const mb = int64(1024 * 1024)
	return schema.IntakeConfig{
		FilePath:  cfg.AssetPath,
		Source:    cfg.Source,
		Submitter: cfg.Submitter,
		Category:  cfg.Category,
		MaxSizeBytes: map[schema.AssetCategory]int64{
			schema.WildcardCategory: int64(cfg.MaxSizeMB) * mb,
		},
		HardMaxBytes: int64(cfg.HardMaxMB) * mb,
	}
}
