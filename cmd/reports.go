package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/internal/iostore"
	"github.com/artpipe/assetgate/internal/outwriter"
	"github.com/artpipe/assetgate/schema"
)

// reportsSetup loads minimal configuration needed for report store operations.
// This is used by commands that need store access without full shared setup.
func reportsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize the store with the loaded config
	if err := iostore.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize report store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	// Output-related config values (used by status/runs/export commands)
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Output = schema.OutputMode(strings.ToLower(viper.GetString("output")))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	cfg.Precision = viper.GetInt("precision")
	if useColors, err := contract.ParseBoolString(viper.GetString("color")); err == nil {
		cfg.UseColors = useColors
	}

	return nil
}

// reportsSetupWrapper wraps reportsSetup to provide PreRunE for reports commands.
func reportsSetupWrapper(_ *cobra.Command, _ []string) error {
	return reportsSetup()
}

// reportsMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func reportsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = iostore.GetReportDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// reportsMigrateSetupWrapper wraps reportsMigrateSetup to provide PreRunE for migrate command.
func reportsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return reportsMigrateSetup()
}

// reportsCmd focused on QA run history management.
//
// Note: Reports subcommands use minimal initialization (reportsSetup) instead
// of the full sharedSetup used by check commands. This avoids snapshot loading
// and policy resolution for simple store operations.
var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Manage persisted QA run history and exports",
	Long: `Manage the historical QA run data recorded by check runs.

Every check run stores:
- Run metadata (asset ID, category, submitter, timing, configuration)
- The final verdict and performance estimates
- Every individual check result with measured value and threshold

This enables trend tracking per artist or category, rejection-rate
reporting, and data export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show report store statistics
  runs    - List persisted QA runs
  export  - Export data to Parquet for analytics
  clear   - Remove all run history
  migrate - Run database schema migrations

Examples:
  # Check store status
  assetgate reports status

  # Export for analysis in pandas/DuckDB
  assetgate reports export --output-file qa-history.parquet`,
}

// reportsStatusCmd shows report store status.
var reportsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display report store statistics and connection details",
	Long: `Show detailed information about the QA run history store.

Displays:
- Backend type and connection status
- Total number of QA runs stored
- Last and oldest run timestamps
- Total check rows across all runs
- Database table sizes

Use this to:
- Verify run tracking is enabled and working
- Monitor data accumulation over time
- Check database connection health

Examples:
  # Check report store status
  assetgate reports status`,
	PreRunE: reportsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iostore.Manager.GetReportStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get report store status", err)
		}
		if err := outwriter.NewOutWriter().WriteStoreStatus(&status, cfg); err != nil {
			contract.LogFatal("Failed to write report store status", err)
		}
	},
}

// reportsRunsCmd lists persisted QA runs.
var reportsRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted QA runs with their verdicts",
	Long: `List every QA run recorded in the report store, oldest first.

Each row shows the run ID, asset ID, category, submitter, verdict, timing
and the scene performance estimates captured at run time.

Examples:
  # List all runs as a table
  assetgate reports runs

  # Feed runs into other tooling
  assetgate reports runs --output csv --output-file runs.csv`,
	PreRunE: reportsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runs, err := iostore.Manager.GetReportStore().GetAllRuns()
		if err != nil {
			contract.LogFatal("Failed to list QA runs", err)
		}
		if err := outwriter.NewOutWriter().WriteRunRecords(runs, cfg); err != nil {
			contract.LogFatal("Failed to write QA runs", err)
		}
	},
}

// reportsClearCmd clears the run history.
var reportsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all persisted QA run history",
	Long: `Delete all stored QA runs and check results.

This removes:
- All run metadata and verdicts
- Every individual check row
- Performance estimates captured per run

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  assetgate reports export --output-file backup.parquet
  assetgate reports clear`,
	PreRunE: reportsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ClearStore(cfg.StoreBackend, iostore.GetReportDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear report data", err)
		}
		fmt.Println("Report data cleared successfully.")
	},
}

// reportsExportCmd exports run history to Parquet files.
var reportsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all stored QA data to Parquet format for use with analytics tools.

Exports two datasets:
- QA runs - metadata and verdict for each run
- Check results - every individual check with value and threshold

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all data
  assetgate reports export --output-file qa-history.parquet

  # Use with DuckDB for analysis
  assetgate reports export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.qa_runs.parquet') LIMIT 10"`,
	PreRunE: reportsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ExecuteReportExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export report data", err)
		}
	},
}

// reportsMigrateCmd runs database migrations for the report store.
var reportsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the report store.

Migrations allow:
- Upgrading to new schema versions when assetgate is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  assetgate reports migrate

  # Migrate to specific version
  assetgate reports migrate --target-version 2

  # Rollback to previous version
  assetgate reports migrate --target-version 0`,
	PreRunE: reportsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iostore.MigrateReports(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
