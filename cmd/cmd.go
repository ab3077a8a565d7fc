// Package cmd defines the command-line interface for assetgate.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(intakeCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the reports subcommands to the parent reports command
	reportsCmd.AddCommand(reportsStatusCmd)
	reportsCmd.AddCommand(reportsRunsCmd)
	reportsCmd.AddCommand(reportsClearCmd)
	reportsCmd.AddCommand(reportsExportCmd)
	reportsCmd.AddCommand(reportsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("category", string(schema.CategoryEnvProp), "Asset category: env_prop, hero_prop, character, vehicle, weapon, ui")
	rootCmd.PersistentFlags().String("source", "", "Submission source (e.g. artstation, outsourcing, internal)")
	rootCmd.PersistentFlags().String("submitter", "", "Name of the submitting artist")
	rootCmd.PersistentFlags().Bool("hero", false, "Treat the asset as a hero asset (larger texture allowance)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("sidecar-dir", "", "Base directory for sidecar manifests and routed asset files")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emoji banners in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Report store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().Int("max-size-mb", contract.DefaultMaxSizeMB, "Category file size limit in MB (intake warning)")
	rootCmd.PersistentFlags().Int("hard-max-mb", contract.DefaultHardMaxMB, "Hard file size cap in MB (intake failure)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().Int("min-triangles", 0, "Override the minimum triangle budget for the category")
	checkCmd.Flags().Int("max-triangles", 0, "Override the maximum triangle budget for the category")
	checkCmd.Flags().String("naming-pattern", "", "Regex that every scene object name must match")
	checkCmd.Flags().Bool("require-lod", false, "Require at least one LOD variant per mesh")
	checkCmd.Flags().Bool("require-collision", false, "Require a collision mesh per render mesh")
	checkCmd.Flags().Bool("require-lightmap", false, "Require a secondary lightmap UV layer")
	checkCmd.Flags().String("uv-layer", "", "Name of the primary UV layer")
	checkCmd.Flags().String("lightmap-layer", "", "Name of the lightmap UV layer")
	checkCmd.Flags().Float64("texel-density-min", 0, "Lower bound of the texel density target")
	checkCmd.Flags().Float64("texel-density-max", 0, "Upper bound of the texel density target")
	checkCmd.Flags().Int("max-resolution", 0, "Maximum texture resolution for standard assets")
	checkCmd.Flags().Int("max-textures-per-material", 0, "Maximum image textures per material")
	checkCmd.Flags().Int("max-material-slots", 0, "Maximum material slots per mesh")
	checkCmd.Flags().Int("sample-cap", 0, "Maximum pixels sampled per texture map")
	checkCmd.Flags().Int("max-bones", 0, "Maximum bone count for the category")
	checkCmd.Flags().Int("max-influences", 0, "Maximum bone influences per vertex")
	checkCmd.Flags().String("bone-pattern", "", "Regex that every bone name must match")
	checkCmd.Flags().Float64("merge-distance", 0, "Vertex merge distance used by remediation")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of reportsMigrateCmd to Viper
	reportsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(reportsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding reports migrate flags", err)
	}
}
