package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpipe/assetgate/schema"
)

func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		ScenePathStr: "scene.json",
		Category:     "env_prop",
		Output:       "text",
		Precision:    1,
		StoreBackend: "sqlite",
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	input := &ConfigRawInput{ScenePathStr: "scene.json"}

	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, schema.CategoryEnvProp, cfg.Category)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
	assert.True(t, cfg.UseColors)
	assert.False(t, cfg.UseEmojis)
	assert.Equal(t, DefaultMaxSizeMB, cfg.MaxSizeMB)
	assert.Equal(t, DefaultHardMaxMB, cfg.HardMaxMB)
	assert.Equal(t, schema.TriangleBudget{Min: 500, Max: 5000}, cfg.Geometry.Budget())
	assert.Equal(t, schema.DefaultMaxBones, cfg.Armature.MaxBones)
	assert.Equal(t, schema.DefaultMaxInfluences, cfg.Remediation.MaxBoneInfluences)
}

func TestProcessAndValidateCategory(t *testing.T) {
	tests := []struct {
		name        string
		category    string
		expectError bool
		expected    schema.AssetCategory
	}{
		{"lowercase", "character", false, schema.CategoryCharacter},
		{"mixed case accepted", "Hero_Prop", false, schema.CategoryHeroProp},
		{"empty defaults to env_prop", "", false, schema.CategoryEnvProp},
		{"unknown rejected", "building", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			input := validRawInput()
			input.Category = tt.category

			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, cfg.Category)
			}
		})
	}
}

func TestProcessAndValidateOutputMode(t *testing.T) {
	for _, mode := range []string{"text", "json", "csv", "parquet"} {
		cfg := &Config{}
		input := validRawInput()
		input.Output = mode
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, schema.OutputMode(mode), cfg.Output)
	}

	cfg := &Config{}
	input := validRawInput()
	input.Output = "xml"
	assert.Error(t, ProcessAndValidate(cfg, input))
}

func TestProcessAndValidatePrecision(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()
	input.Precision = 7
	assert.Error(t, ProcessAndValidate(cfg, input))

	input.Precision = -1
	assert.Error(t, ProcessAndValidate(cfg, input))
}

func TestProcessAndValidateBudgetOverride(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()
	input.MinTriangles = 100
	input.MaxTriangles = 5000

	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, schema.TriangleBudget{Min: 100, Max: 5000}, cfg.Geometry.Budget())

	input.MinTriangles = 6000
	assert.Error(t, ProcessAndValidate(&Config{}, input))
}

func TestProcessAndValidateHeroPropagation(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()
	input.Hero = true

	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.True(t, cfg.Texture.IsHeroAsset)
	assert.True(t, cfg.Remediation.HeroAsset)
	assert.Equal(t, schema.DefaultHeroResolution, cfg.Remediation.TextureLimit())
}

func TestProcessAndValidatePatterns(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()
	input.BonePattern = "(unbalanced"
	assert.Error(t, ProcessAndValidate(cfg, input))

	input = validRawInput()
	input.NamingPattern = "[z-a]"
	assert.Error(t, ProcessAndValidate(&Config{}, input))

	input = validRawInput()
	input.NamingPattern = `^PROP_\w+$`
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, `^PROP_\w+$`, cfg.Scene.ObjectNamingPattern)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.DatabaseBackend
		connStr     string
		expectError bool
	}{
		{"sqlite needs nothing", schema.SQLiteBackend, "", false},
		{"none needs nothing", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/assetgate", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/assetgate", true},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"postgres host form", schema.PostgreSQLBackend, "host=localhost user=qa dbname=assetgate", false},
		{"postgres url form", schema.PostgreSQLBackend, "postgres://qa@localhost/assetgate", false},
		{"postgres invalid", schema.PostgreSQLBackend, "localhost:5432", true},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
