package core

import (
	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/schema"
)

// reviewRule maps a check outcome to a human review flag.
type reviewRule struct {
	stageName     string
	checkName     string
	triggerStatus schema.CheckStatus
	severity      schema.Severity
	description   string
}

// reviewRules is the fixed table building the human review queue from
// check-stage results.
var reviewRules = []reviewRule{
	{schema.StageUV, schema.CheckUVOverlap, schema.CheckFail, schema.SeverityWarning,
		"UV islands overlap; may be intentional (mirroring/tiling)"},
	{schema.StagePBR, schema.CheckAlbedoRange, schema.CheckWarning, schema.SeverityWarning,
		"Albedo values outside PBR range; may be stylistic"},
	{schema.StagePBR, schema.CheckMetalnessBinary, schema.CheckWarning, schema.SeverityWarning,
		"Metalness gradient detected; verify intent"},
	{schema.StagePBR, schema.CheckRoughnessRange, schema.CheckWarning, schema.SeverityWarning,
		"Extreme roughness values; verify intent"},
	{schema.StageGeometry, schema.CheckNonManifold, schema.CheckFail, schema.SeverityError,
		"Non-manifold geometry; requires manual retopology"},
	{schema.StageGeometry, schema.CheckInteriorFaces, schema.CheckFail, schema.SeverityError,
		"Interior faces; requires manual removal"},
	{schema.StageUV, schema.CheckTexelDensity, schema.CheckWarning, schema.SeverityWarning,
		"Texel density outliers; requires artistic judgment"},
	{schema.StageScene, schema.CheckLODPresence, schema.CheckFail, schema.SeverityWarning,
		"LODs missing; requires artist to create"},
}

// RunRemediation applies the four auto-fix actions and populates the human
// review queue.
//
// Each fix is applied only when the corresponding check returned FAIL.
// Issues that cannot be safely auto-fixed are added as ReviewFlag entries
// without modifying the scene. The stage always reports PASS: remediation
// does not fail the pipeline, it either fixes or flags.
func RunRemediation(
	scene contract.SceneContext,
	checkResults []schema.StageResult,
	cfg schema.RemediationConfig,
) schema.StageResult {
	var fixes []schema.FixEntry

	// Fix 1: recalculate_normals, triggered by geometry:normal_consistency.
	if check := schema.FindCheck(checkResults, schema.StageGeometry, schema.CheckNormalConsistency); check != nil && check.Status == schema.CheckFail {
		for _, obj := range scene.MeshObjects() {
			obj.RecalculateNormals()
			fixes = append(fixes, schema.FixEntry{
				Action:      schema.FixRecalculateNormals,
				Target:      obj.Name(),
				BeforeValue: check.MeasuredValue,
				AfterValue:  0,
			})
		}
	}

	// Fix 2: merge_by_distance, triggered by geometry:degenerate_faces or
	// geometry:loose_geometry.
	degenerate := schema.FindCheck(checkResults, schema.StageGeometry, schema.CheckDegenerateFaces)
	loose := schema.FindCheck(checkResults, schema.StageGeometry, schema.CheckLooseGeometry)
	needsMerge := (degenerate != nil && degenerate.Status == schema.CheckFail) ||
		(loose != nil && loose.Status == schema.CheckFail)
	if needsMerge {
		for _, obj := range scene.MeshObjects() {
			beforeVerts := obj.VertexCount()
			afterVerts := obj.MergeByDistance(cfg.MergeDistance)
			fixes = append(fixes, schema.FixEntry{
				Action:      schema.FixMergeByDistance,
				Target:      obj.Name(),
				BeforeValue: beforeVerts,
				AfterValue:  afterVerts,
			})
		}
	}

	// Fix 3: resize_textures, triggered by texture:resolution_limit.
	if check := schema.FindCheck(checkResults, schema.StageTexture, schema.CheckResolutionLimit); check != nil && check.Status == schema.CheckFail {
		limit := cfg.TextureLimit()
		for _, img := range scene.Images() {
			w, h := img.Size()
			if w > limit || h > limit {
				newW, newH := schema.FitPowerOfTwoSize(w, h, limit)
				img.Scale(newW, newH)
				fixes = append(fixes, schema.FixEntry{
					Action:      schema.FixResizeTextures,
					Target:      img.Name(),
					BeforeValue: []int{w, h},
					AfterValue:  []int{newW, newH},
				})
			}
		}
	}

	// Fix 4: limit_bone_weights, triggered by armature:vertex_weights.
	// Applied scene-wide in one operation.
	if check := schema.FindCheck(checkResults, schema.StageArmature, schema.CheckVertexWeights); check != nil && check.Status == schema.CheckFail {
		beforeMax := 0
		for _, mesh := range scene.SkinnedMeshes() {
			if m := mesh.MaxInfluences(); m > beforeMax {
				beforeMax = m
			}
		}
		scene.LimitBoneWeights(cfg.MaxBoneInfluences)
		fixes = append(fixes, schema.FixEntry{
			Action:      schema.FixLimitBoneWeights,
			Target:      schema.FixTargetScene,
			BeforeValue: beforeMax,
			AfterValue:  cfg.MaxBoneInfluences,
		})
	}

	return schema.StageResult{
		Name:        schema.StageRemediation,
		Status:      schema.StagePass,
		Fixes:       fixes,
		ReviewFlags: collectReviewFlags(checkResults),
	}
}

// collectReviewFlags builds the human review queue from check-stage results.
// The scene is never modified here.
func collectReviewFlags(checkResults []schema.StageResult) []schema.ReviewFlag {
	var flags []schema.ReviewFlag

	for _, rule := range reviewRules {
		check := schema.FindCheck(checkResults, rule.stageName, rule.checkName)
		if check != nil && check.Status == rule.triggerStatus {
			flags = append(flags, schema.ReviewFlag{
				Issue:       rule.stageName + ":" + rule.checkName,
				Severity:    rule.severity,
				Description: rule.description,
			})
		}
	}

	// Any polycount FAIL needs a human decision; there is no safe auto-fix.
	if check := schema.FindCheck(checkResults, schema.StageGeometry, schema.CheckPolycountBudget); check != nil && check.Status == schema.CheckFail {
		flags = append(flags, schema.ReviewFlag{
			Issue:       schema.StageGeometry + ":" + schema.CheckPolycountBudget,
			Severity:    schema.SeverityError,
			Description: "Polycount violation; requires manual retopology or LOD",
		})
	}

	return flags
}
