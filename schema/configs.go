package schema

// Default policy values shared by the stage configs.
const (
	DefaultMaxBones          = 75
	DefaultMaxInfluences     = 4
	DefaultMaxMaterialSlots  = 3
	DefaultMaxTexturesPerMat = 8
	DefaultResolutionLimit   = 2048
	DefaultHeroResolution    = 4096
	DefaultSampleCap         = 1000
	DefaultMergeDistance     = 0.0001
	DefaultMetalnessCutoff   = 0.1
	DefaultPrimaryUVLayer    = "UVMap"
	DefaultLightmapUVLayer   = "UVMap2"
)

// DefaultTexelDensityTarget is the acceptable (min, max) range for
// UV-area / world-area density.
var DefaultTexelDensityTarget = [2]float64{512.0, 1024.0}

// GeometryConfig holds policy for the geometry stage.
type GeometryConfig struct {
	TriangleBudgets map[AssetCategory]TriangleBudget
	Category        AssetCategory
}

// NewGeometryConfig returns a GeometryConfig with default budgets.
func NewGeometryConfig(category AssetCategory) GeometryConfig {
	budgets := make(map[AssetCategory]TriangleBudget, len(DefaultTriangleBudgets))
	for k, v := range DefaultTriangleBudgets {
		budgets[k] = v
	}
	return GeometryConfig{TriangleBudgets: budgets, Category: category}
}

// Budget resolves the triangle budget for the configured category, falling
// back to the env_prop budget for unknown categories.
func (c GeometryConfig) Budget() TriangleBudget {
	if b, ok := c.TriangleBudgets[c.Category]; ok {
		return b
	}
	return DefaultTriangleBudgets[CategoryEnvProp]
}

// UVConfig holds policy for the UV stage.
type UVConfig struct {
	TexelDensityTarget [2]float64 // (min, max) uv-area / world-area
	RequireLightmapUV2 bool
	UVLayerName        string
	LightmapLayerName  string
}

// NewUVConfig returns a UVConfig with defaults.
func NewUVConfig() UVConfig {
	return UVConfig{
		TexelDensityTarget: DefaultTexelDensityTarget,
		UVLayerName:        DefaultPrimaryUVLayer,
		LightmapLayerName:  DefaultLightmapUVLayer,
	}
}

// TextureConfig holds policy for the texture stage.
type TextureConfig struct {
	MaxResolutionStandard  int
	MaxResolutionHero      int
	IsHeroAsset            bool
	MaxTexturesPerMaterial int
}

// NewTextureConfig returns a TextureConfig with defaults.
func NewTextureConfig() TextureConfig {
	return TextureConfig{
		MaxResolutionStandard:  DefaultResolutionLimit,
		MaxResolutionHero:      DefaultHeroResolution,
		MaxTexturesPerMaterial: DefaultMaxTexturesPerMat,
	}
}

// ResolutionLimit resolves the max dimension for this asset.
func (c TextureConfig) ResolutionLimit() int {
	if c.IsHeroAsset {
		return c.MaxResolutionHero
	}
	return c.MaxResolutionStandard
}

// PBRConfig holds policy for the PBR stage.
type PBRConfig struct {
	MaxMaterialSlots         int
	AlbedoMinSRGB            int // 8-bit scale
	AlbedoMaxSRGB            int // 8-bit scale
	SampleCap                int // max pixels sampled per channel
	MetalnessBinaryThreshold float64
}

// NewPBRConfig returns a PBRConfig with defaults.
func NewPBRConfig() PBRConfig {
	return PBRConfig{
		MaxMaterialSlots:         DefaultMaxMaterialSlots,
		AlbedoMinSRGB:            30,
		AlbedoMaxSRGB:            240,
		SampleCap:                DefaultSampleCap,
		MetalnessBinaryThreshold: DefaultMetalnessCutoff,
	}
}

// ArmatureConfig holds policy for the armature stage.
type ArmatureConfig struct {
	MaxBones               int
	MaxInfluencesPerVertex int
	BoneNamingPattern      string // empty disables the naming check
	CategoriesNeedingArm   []AssetCategory
	Category               AssetCategory
}

// NewArmatureConfig returns an ArmatureConfig with defaults.
func NewArmatureConfig(category AssetCategory) ArmatureConfig {
	return ArmatureConfig{
		MaxBones:               DefaultMaxBones,
		MaxInfluencesPerVertex: DefaultMaxInfluences,
		CategoriesNeedingArm:   []AssetCategory{CategoryCharacter},
		Category:               category,
	}
}

// RequiresArmature reports whether the configured category must be rigged.
func (c ArmatureConfig) RequiresArmature() bool {
	for _, cat := range c.CategoriesNeedingArm {
		if cat == c.Category {
			return true
		}
	}
	return false
}

// SceneConfig holds policy for the scene stage.
type SceneConfig struct {
	ObjectNamingPattern    string
	RequireLOD             bool
	RequireCollision       bool
	LODSuffixPattern       string
	CollisionSuffixPattern string
}

// NewSceneConfig returns a SceneConfig with defaults.
func NewSceneConfig() SceneConfig {
	return SceneConfig{
		ObjectNamingPattern:    `^SM_[A-Za-z0-9]+(_[A-Za-z0-9]+)*$`,
		LODSuffixPattern:       `_LOD\d+$`,
		CollisionSuffixPattern: `_Collision$`,
	}
}

// RemediationConfig holds policy for the remediation stage.
type RemediationConfig struct {
	MergeDistance        float64
	MaxBoneInfluences    int
	MaxTextureResolution int
	HeroAsset            bool
}

// NewRemediationConfig returns a RemediationConfig with defaults.
func NewRemediationConfig() RemediationConfig {
	return RemediationConfig{
		MergeDistance:        DefaultMergeDistance,
		MaxBoneInfluences:    DefaultMaxInfluences,
		MaxTextureResolution: DefaultResolutionLimit,
	}
}

// TextureLimit resolves the resize limit: hero assets always get 4096.
func (c RemediationConfig) TextureLimit() int {
	if c.HeroAsset {
		return DefaultHeroResolution
	}
	return c.MaxTextureResolution
}

// IntakeConfig holds policy for filesystem intake.
type IntakeConfig struct {
	FilePath     string
	Source       string
	Submitter    string
	Category     AssetCategory
	MaxSizeBytes map[AssetCategory]int64 // category size limits; WildcardCategory for default
	HardMaxBytes int64                   // absolute reject threshold
}

// WildcardCategory keys the default size limit in IntakeConfig.MaxSizeBytes.
const WildcardCategory AssetCategory = "*"

// SizeLimit resolves the per-category size limit, or 0 when none applies.
func (c IntakeConfig) SizeLimit() int64 {
	if limit, ok := c.MaxSizeBytes[c.Category]; ok {
		return limit
	}
	return c.MaxSizeBytes[WildcardCategory]
}
