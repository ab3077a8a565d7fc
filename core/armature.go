package core

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/schema"
)

// zeroWeightEpsilon is the total weight below which a vertex counts as
// having no meaningful group assignment.
const zeroWeightEpsilon = 1e-6

// normalizationTolerance is the allowed deviation of a vertex's total
// weight from 1.0.
const normalizationTolerance = 0.001

// BoneNamingSummary is the measured value of the bone_naming check.
type BoneNamingSummary struct {
	Violations []string `json:"violations"`
	Count      int      `json:"count"`
}

// VertexWeightSummary is the measured value of the vertex_weights check.
// The three counters are mutually exclusive only for zero-weight vertices:
// a vertex with meaningful weight can be counted as both excess and
// unnormalized.
type VertexWeightSummary struct {
	ZeroWeightCount       int `json:"zero_weight_count"`
	ExcessInfluencesCount int `json:"excess_influences_count"`
	UnnormalizedCount     int `json:"unnormalized_count"`
}

// HierarchySummary is the measured value of the bone_hierarchy check.
type HierarchySummary struct {
	RootCount   int `json:"root_count"`
	OrphanCount int `json:"orphan_count"`
}

// CheckArmature runs all armature checks and returns a StageResult.
//
// Early-exits with a SKIPPED stage when no armatures are present and the
// asset category does not require one. Categories that require an armature
// get a FAIL on armature_present instead.
func CheckArmature(scene contract.SceneContext, cfg schema.ArmatureConfig) schema.StageResult {
	armatures := scene.ArmatureObjects()

	if len(armatures) == 0 && !cfg.RequiresArmature() {
		return schema.StageResult{
			Name:   schema.StageArmature,
			Status: schema.StageSkipped,
			Checks: []schema.CheckResult{
				{
					Name:          schema.CheckArmaturePresent,
					Status:        schema.CheckSkipped,
					MeasuredValue: 0,
					Threshold:     nil,
					Message:       fmt.Sprintf("No armature; category '%s' does not require one", cfg.Category),
				},
			},
		}
	}

	skinned := scene.SkinnedMeshes()

	checks := []schema.CheckResult{
		checkArmaturePresent(armatures, cfg),
		checkBoneCount(armatures, cfg),
		checkBoneNaming(armatures, cfg),
		checkVertexWeights(skinned, cfg),
		checkBoneHierarchy(armatures),
	}

	return schema.StageResult{
		Name:   schema.StageArmature,
		Status: schema.StageStatusOf(checks),
		Checks: checks,
	}
}

func checkArmaturePresent(armatures []contract.ArmatureObject, cfg schema.ArmatureConfig) schema.CheckResult {
	if len(armatures) == 0 && cfg.RequiresArmature() {
		return schema.CheckResult{
			Name:          schema.CheckArmaturePresent,
			Status:        schema.CheckFail,
			MeasuredValue: 0,
			Threshold:     1,
			Message:       fmt.Sprintf("Category '%s' requires an armature but none found", cfg.Category),
		}
	}

	msg := fmt.Sprintf("%d armature(s) found", len(armatures))
	if len(armatures) == 0 {
		msg = fmt.Sprintf("No armature (not required for category '%s')", cfg.Category)
	}
	return schema.CheckResult{
		Name:          schema.CheckArmaturePresent,
		Status:        schema.CheckPass,
		MeasuredValue: len(armatures),
		Threshold:     1,
		Message:       msg,
	}
}

func checkBoneCount(armatures []contract.ArmatureObject, cfg schema.ArmatureConfig) schema.CheckResult {
	total := 0
	for _, arm := range armatures {
		total += len(arm.Bones())
	}

	status := schema.CheckPass
	msg := fmt.Sprintf("Total bone count %d within limit %d", total, cfg.MaxBones)
	if total > cfg.MaxBones {
		status = schema.CheckFail
		msg = fmt.Sprintf("Total bone count %d exceeds limit %d", total, cfg.MaxBones)
	}
	return schema.CheckResult{
		Name:          schema.CheckBoneCount,
		Status:        status,
		MeasuredValue: total,
		Threshold:     cfg.MaxBones,
		Message:       msg,
	}
}

func checkBoneNaming(armatures []contract.ArmatureObject, cfg schema.ArmatureConfig) schema.CheckResult {
	if cfg.BoneNamingPattern == "" {
		return schema.CheckResult{
			Name:          schema.CheckBoneNaming,
			Status:        schema.CheckSkipped,
			MeasuredValue: BoneNamingSummary{Violations: []string{}},
			Threshold:     nil,
			Message:       "Bone naming check skipped (no pattern configured)",
		}
	}

	pattern := regexp.MustCompile(cfg.BoneNamingPattern)
	summary := BoneNamingSummary{Violations: []string{}}
	for _, arm := range armatures {
		for _, bone := range arm.Bones() {
			if !matchAtStart(pattern, bone.Name) {
				summary.Violations = append(summary.Violations, bone.Name)
			}
		}
	}
	summary.Count = len(summary.Violations)

	status := schema.CheckPass
	msg := fmt.Sprintf("All bone names match pattern '%s'", cfg.BoneNamingPattern)
	if summary.Count > 0 {
		status = schema.CheckFail
		msg = fmt.Sprintf("%d bone name(s) do not match pattern '%s'", summary.Count, cfg.BoneNamingPattern)
	}
	return schema.CheckResult{
		Name:          schema.CheckBoneNaming,
		Status:        status,
		MeasuredValue: summary,
		Threshold:     cfg.BoneNamingPattern,
		Message:       msg,
	}
}

// matchAtStart anchors a pattern to the beginning of the name without
// forcing a full match.
func matchAtStart(pattern *regexp.Regexp, name string) bool {
	loc := pattern.FindStringIndex(name)
	return loc != nil && loc[0] == 0
}

func checkVertexWeights(skinned []contract.SkinnedMesh, cfg schema.ArmatureConfig) schema.CheckResult {
	var summary VertexWeightSummary

	for _, mesh := range skinned {
		for _, weights := range mesh.PerVertexWeights() {
			total := 0.0
			for _, w := range weights {
				total += w
			}
			if total < zeroWeightEpsilon {
				summary.ZeroWeightCount++
				continue
			}
			if len(weights) > cfg.MaxInfluencesPerVertex {
				summary.ExcessInfluencesCount++
			}
			if math.Abs(total-1.0) > normalizationTolerance {
				summary.UnnormalizedCount++
			}
		}
	}

	if summary.ZeroWeightCount > 0 || summary.ExcessInfluencesCount > 0 || summary.UnnormalizedCount > 0 {
		var parts []string
		if summary.ZeroWeightCount > 0 {
			parts = append(parts, fmt.Sprintf("%d zero-weight vertex(ices)", summary.ZeroWeightCount))
		}
		if summary.ExcessInfluencesCount > 0 {
			parts = append(parts, fmt.Sprintf("%d vertex(ices) with >%d influences",
				summary.ExcessInfluencesCount, cfg.MaxInfluencesPerVertex))
		}
		if summary.UnnormalizedCount > 0 {
			parts = append(parts, fmt.Sprintf("%d unnormalized vertex(ices)", summary.UnnormalizedCount))
		}
		return schema.CheckResult{
			Name:          schema.CheckVertexWeights,
			Status:        schema.CheckFail,
			MeasuredValue: summary,
			Threshold:     cfg.MaxInfluencesPerVertex,
			Message:       strings.Join(parts, "; "),
		}
	}

	return schema.CheckResult{
		Name:          schema.CheckVertexWeights,
		Status:        schema.CheckPass,
		MeasuredValue: summary,
		Threshold:     cfg.MaxInfluencesPerVertex,
		Message:       "All vertex weights valid",
	}
}

// checkBoneHierarchy verifies each armature has exactly one root bone. Any
// armature with more than one root contributes (rootCount - 1) orphans.
func checkBoneHierarchy(armatures []contract.ArmatureObject) schema.CheckResult {
	var summary HierarchySummary

	for _, arm := range armatures {
		roots := 0
		for _, bone := range arm.Bones() {
			if bone.Parent == "" {
				roots++
			}
		}
		summary.RootCount += roots
		if roots > 1 {
			summary.OrphanCount += roots - 1
		}
	}

	threshold := map[string]int{"max_roots_per_armature": 1}
	if summary.OrphanCount > 0 {
		return schema.CheckResult{
			Name:          schema.CheckBoneHierarchy,
			Status:        schema.CheckFail,
			MeasuredValue: summary,
			Threshold:     threshold,
			Message: fmt.Sprintf("Hierarchy invalid: %d root bone(s), %d orphan bone(s)",
				summary.RootCount, summary.OrphanCount),
		}
	}

	return schema.CheckResult{
		Name:          schema.CheckBoneHierarchy,
		Status:        schema.CheckPass,
		MeasuredValue: summary,
		Threshold:     threshold,
		Message:       fmt.Sprintf("Bone hierarchy valid: %d root bone(s), no orphans", summary.RootCount),
	}
}
