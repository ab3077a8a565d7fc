package schema

// Custom string types for type safety.
type (
	// CheckStatus represents the outcome of a single check.
	CheckStatus string

	// StageStatus represents the outcome of a whole pipeline stage.
	StageStatus string

	// OverallStatus represents the final verdict of a QA report.
	OverallStatus string

	// Severity represents the severity of a review flag.
	Severity string

	// FixAction represents an auto-remediation action.
	FixAction string

	// AssetCategory represents the production category of an asset.
	AssetCategory string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for report storage.
	DatabaseBackend string
)

// All per-check statuses supported.
const (
	CheckPass    CheckStatus = "PASS"
	CheckFail    CheckStatus = "FAIL"
	CheckWarning CheckStatus = "WARNING"
	CheckSkipped CheckStatus = "SKIPPED"
)

// All per-stage statuses supported. Stages never carry WARNING:
// warning-level checks are informational and do not fail a stage.
const (
	StagePass    StageStatus = "PASS"
	StageFail    StageStatus = "FAIL"
	StageSkipped StageStatus = "SKIPPED"
)

// All overall report statuses supported, in precedence order.
const (
	OverallPass          OverallStatus = "PASS"
	OverallPassWithFixes OverallStatus = "PASS_WITH_FIXES"
	OverallNeedsReview   OverallStatus = "NEEDS_REVIEW"
	OverallFail          OverallStatus = "FAIL"
)

// All review flag severities supported.
const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// The fixed vocabulary of auto-remediation actions.
const (
	FixRecalculateNormals FixAction = "recalculate_normals"
	FixMergeByDistance    FixAction = "merge_by_distance"
	FixResizeTextures     FixAction = "resize_textures"
	FixLimitBoneWeights   FixAction = "limit_bone_weights"
)

// FixTargetScene is the FixEntry target for scene-wide fixes.
const FixTargetScene = "scene"

// All asset categories supported.
const (
	CategoryEnvProp   AssetCategory = "env_prop"
	CategoryHeroProp  AssetCategory = "hero_prop"
	CategoryCharacter AssetCategory = "character"
	CategoryVehicle   AssetCategory = "vehicle"
	CategoryWeapon    AssetCategory = "weapon"
	CategoryUI        AssetCategory = "ui"
)

// Stage names, in pipeline order.
const (
	StageIntake      = "intake"
	StageGeometry    = "geometry"
	StageUV          = "uv"
	StageTexture     = "texture"
	StagePBR         = "pbr"
	StageArmature    = "armature"
	StageScene       = "scene"
	StageRemediation = "remediation"
	StageExport      = "export"
)

// Check names within the geometry stage.
const (
	CheckPolycountBudget   = "polycount_budget"
	CheckNonManifold       = "non_manifold"
	CheckDegenerateFaces   = "degenerate_faces"
	CheckNormalConsistency = "normal_consistency"
	CheckLooseGeometry     = "loose_geometry"
	CheckInteriorFaces     = "interior_faces"
)

// Check names within the UV stage.
const (
	CheckMissingUVs   = "missing_uvs"
	CheckUVBounds     = "uv_bounds"
	CheckUVOverlap    = "uv_overlap"
	CheckTexelDensity = "texel_density"
	CheckLightmapUV2  = "lightmap_uv2"
)

// Check names within the texture stage.
const (
	CheckMissingTextures = "missing_textures"
	CheckResolutionLimit = "resolution_limit"
	CheckPowerOfTwo      = "power_of_two"
	CheckTextureCount    = "texture_count"
	CheckChannelDepth    = "channel_depth"
	CheckColorSpace      = "color_space"
)

// Check names within the PBR stage.
const (
	CheckPBRWorkflow     = "pbr_workflow"
	CheckMaterialSlots   = "material_slots"
	CheckAlbedoRange     = "albedo_range"
	CheckMetalnessBinary = "metalness_binary"
	CheckRoughnessRange  = "roughness_range"
	CheckNormalMap       = "normal_map"
	CheckNodeGraph       = "node_graph"
)

// Check names within the armature stage.
const (
	CheckArmaturePresent = "armature_present"
	CheckBoneCount       = "bone_count"
	CheckBoneNaming      = "bone_naming"
	CheckVertexWeights   = "vertex_weights"
	CheckBoneHierarchy   = "bone_hierarchy"
)

// Check names within the scene stage.
const (
	CheckNamingConventions = "naming_conventions"
	CheckOrphanData        = "orphan_data"
	CheckLODPresence       = "lod_presence"
	CheckCollisionPresence = "collision_presence"
)

// Check names within the intake stage.
const (
	CheckIntakeFormat   = "format"
	CheckIntakeExists   = "file_exists"
	CheckIntakeFileSize = "file_size"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
)

// All report store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// TriangleBudget is an inclusive (min, max) triangle range for a category.
type TriangleBudget struct {
	Min int
	Max int
}

// DefaultTriangleBudgets maps asset categories to triangle budgets.
// Unknown categories fall back to the env_prop budget.
var DefaultTriangleBudgets = map[AssetCategory]TriangleBudget{
	CategoryEnvProp:   {Min: 500, Max: 5000},
	CategoryHeroProp:  {Min: 5000, Max: 15000},
	CategoryCharacter: {Min: 15000, Max: 30000},
	CategoryVehicle:   {Min: 10000, Max: 25000},
}

// AllCategories lists every asset category accepted at intake.
var AllCategories = []AssetCategory{
	CategoryCharacter,
	CategoryEnvProp,
	CategoryHeroProp,
	CategoryVehicle,
	CategoryWeapon,
	CategoryUI,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid report store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidCategories lists all valid asset categories.
var ValidCategories = map[AssetCategory]struct{}{
	CategoryCharacter: {},
	CategoryEnvProp:   {},
	CategoryHeroProp:  {},
	CategoryVehicle:   {},
	CategoryWeapon:    {},
	CategoryUI:        {},
}

// AcceptedExtensions lists the asset file extensions accepted at intake.
var AcceptedExtensions = map[string]struct{}{
	".fbx":  {},
	".gltf": {},
	".glb":  {},
	".obj":  {},
}
