package contract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/artpipe/assetgate/schema"
)

// Default values for configuration.
const (
	DefaultPrecision  = 1
	DefaultMaxSizeMB  = 500
	DefaultHardMaxMB  = 1024
	DefaultResultRows = 25
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// Config holds the runtime configuration for one QA run.
// This struct remains the "final, validated" config.
type Config struct {
	ScenePath string // path to the scene-facts snapshot
	AssetPath string // path to the submitted asset file (intake)
	Source    string
	Submitter string
	Category  schema.AssetCategory
	HeroAsset bool

	Geometry    schema.GeometryConfig
	UV          schema.UVConfig
	Texture     schema.TextureConfig
	PBR         schema.PBRConfig
	Armature    schema.ArmatureConfig
	Scene       schema.SceneConfig
	Remediation schema.RemediationConfig

	MaxSizeMB int
	HardMaxMB int

	Output     schema.OutputMode
	OutputFile string
	SidecarDir string
	Precision  int
	Width      int // terminal width override (0 = auto-detect)

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	UseColors bool
	UseEmojis bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// Set manually from positional args, so no tag.
	ScenePathStr string
	AssetPathStr string

	Category       string `mapstructure:"category"`
	Source         string `mapstructure:"source"`
	Submitter      string `mapstructure:"submitter"`
	Hero           bool   `mapstructure:"hero"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	SidecarDir     string `mapstructure:"sidecar-dir"`
	Precision      int    `mapstructure:"precision"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	Emoji          string `mapstructure:"emoji"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	// Geometry / scene policy.
	MinTriangles  int    `mapstructure:"min-triangles"`
	MaxTriangles  int    `mapstructure:"max-triangles"`
	NamingPattern string `mapstructure:"naming-pattern"`
	RequireLOD    bool   `mapstructure:"require-lod"`
	RequireColl   bool   `mapstructure:"require-collision"`

	// UV policy.
	RequireLightmap bool    `mapstructure:"require-lightmap"`
	UVLayer         string  `mapstructure:"uv-layer"`
	LightmapLayer   string  `mapstructure:"lightmap-layer"`
	TexelDensityMin float64 `mapstructure:"texel-density-min"`
	TexelDensityMax float64 `mapstructure:"texel-density-max"`

	// Texture / PBR policy.
	MaxResolution int `mapstructure:"max-resolution"`
	MaxTexPerMat  int `mapstructure:"max-textures-per-material"`
	MaxMatSlots   int `mapstructure:"max-material-slots"`
	SampleCap     int `mapstructure:"sample-cap"`

	// Armature policy.
	MaxBones      int    `mapstructure:"max-bones"`
	MaxInfluences int    `mapstructure:"max-influences"`
	BonePattern   string `mapstructure:"bone-pattern"`

	// Remediation policy.
	MergeDistance float64 `mapstructure:"merge-distance"`

	// Intake policy.
	MaxSizeMB int `mapstructure:"max-size-mb"`
	HardMaxMB int `mapstructure:"hard-max-mb"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := buildStageConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-policy fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.ScenePath = input.ScenePathStr
	cfg.AssetPath = input.AssetPathStr
	cfg.Source = input.Source
	cfg.Submitter = input.Submitter
	cfg.HeroAsset = input.Hero
	cfg.OutputFile = input.OutputFile
	cfg.SidecarDir = input.SidecarDir
	cfg.Width = input.Width

	cfg.Category = schema.AssetCategory(strings.ToLower(input.Category))
	if cfg.Category == "" {
		cfg.Category = schema.CategoryEnvProp
	}
	if _, ok := schema.ValidCategories[cfg.Category]; !ok {
		return fmt.Errorf("invalid category '%s'. must be one of %v", input.Category, schema.AllCategories)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode '%s'. must be text, json, csv, parquet", input.Output)
	}

	cfg.Precision = input.Precision
	if cfg.Precision < 0 || cfg.Precision > 6 {
		return fmt.Errorf("invalid precision %d. must be between 0 and 6", input.Precision)
	}

	var err error
	if cfg.UseColors, err = ParseBoolString(defaultString(input.Color, "yes")); err != nil {
		return fmt.Errorf("invalid color value: %w", err)
	}
	if cfg.UseEmojis, err = ParseBoolString(defaultString(input.Emoji, "no")); err != nil {
		return fmt.Errorf("invalid emoji value: %w", err)
	}

	cfg.MaxSizeMB = input.MaxSizeMB
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = DefaultMaxSizeMB
	}
	cfg.HardMaxMB = input.HardMaxMB
	if cfg.HardMaxMB <= 0 {
		cfg.HardMaxMB = DefaultHardMaxMB
	}
	return nil
}

// validateBackendConfig validates the report store configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// buildStageConfigs resolves per-stage policy from raw inputs + defaults.
func buildStageConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.Geometry = schema.NewGeometryConfig(cfg.Category)
	if input.MinTriangles > 0 || input.MaxTriangles > 0 {
		budget := cfg.Geometry.Budget()
		if input.MinTriangles > 0 {
			budget.Min = input.MinTriangles
		}
		if input.MaxTriangles > 0 {
			budget.Max = input.MaxTriangles
		}
		if budget.Min > budget.Max {
			return fmt.Errorf("min-triangles %d exceeds max-triangles %d", budget.Min, budget.Max)
		}
		cfg.Geometry.TriangleBudgets[cfg.Category] = budget
	}

	cfg.UV = schema.NewUVConfig()
	cfg.UV.RequireLightmapUV2 = input.RequireLightmap
	if input.UVLayer != "" {
		cfg.UV.UVLayerName = input.UVLayer
	}
	if input.LightmapLayer != "" {
		cfg.UV.LightmapLayerName = input.LightmapLayer
	}
	if input.TexelDensityMin > 0 {
		cfg.UV.TexelDensityTarget[0] = input.TexelDensityMin
	}
	if input.TexelDensityMax > 0 {
		cfg.UV.TexelDensityTarget[1] = input.TexelDensityMax
	}
	if cfg.UV.TexelDensityTarget[0] > cfg.UV.TexelDensityTarget[1] {
		return fmt.Errorf("texel-density-min %.1f exceeds texel-density-max %.1f",
			cfg.UV.TexelDensityTarget[0], cfg.UV.TexelDensityTarget[1])
	}

	cfg.Texture = schema.NewTextureConfig()
	cfg.Texture.IsHeroAsset = cfg.HeroAsset
	if input.MaxResolution > 0 {
		cfg.Texture.MaxResolutionStandard = input.MaxResolution
	}
	if input.MaxTexPerMat > 0 {
		cfg.Texture.MaxTexturesPerMaterial = input.MaxTexPerMat
	}

	cfg.PBR = schema.NewPBRConfig()
	if input.MaxMatSlots > 0 {
		cfg.PBR.MaxMaterialSlots = input.MaxMatSlots
	}
	if input.SampleCap > 0 {
		cfg.PBR.SampleCap = input.SampleCap
	}

	cfg.Armature = schema.NewArmatureConfig(cfg.Category)
	if input.MaxBones > 0 {
		cfg.Armature.MaxBones = input.MaxBones
	}
	if input.MaxInfluences > 0 {
		cfg.Armature.MaxInfluencesPerVertex = input.MaxInfluences
	}
	if input.BonePattern != "" {
		if _, err := regexp.Compile(input.BonePattern); err != nil {
			return fmt.Errorf("invalid bone-pattern: %w", err)
		}
		cfg.Armature.BoneNamingPattern = input.BonePattern
	}

	cfg.Scene = schema.NewSceneConfig()
	cfg.Scene.RequireLOD = input.RequireLOD
	cfg.Scene.RequireCollision = input.RequireColl
	if input.NamingPattern != "" {
		if _, err := regexp.Compile(input.NamingPattern); err != nil {
			return fmt.Errorf("invalid naming-pattern: %w", err)
		}
		cfg.Scene.ObjectNamingPattern = input.NamingPattern
	}

	cfg.Remediation = schema.NewRemediationConfig()
	cfg.Remediation.HeroAsset = cfg.HeroAsset
	cfg.Remediation.MaxBoneInfluences = cfg.Armature.MaxInfluencesPerVertex
	cfg.Remediation.MaxTextureResolution = cfg.Texture.MaxResolutionStandard
	if input.MergeDistance > 0 {
		cfg.Remediation.MergeDistance = input.MergeDistance
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' or use a postgres:// URL")
		}
	}
	return nil
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
