package core

import (
	"fmt"
	"regexp"

	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/schema"
)

// mipMultiplier accounts for the full mip chain when estimating VRAM.
const mipMultiplier = 4.0 / 3.0

// NamingSummary is the measured value of the naming_conventions check.
type NamingSummary struct {
	Violations []string `json:"violations"`
	Count      int      `json:"count"`
}

// CheckScene runs all scene checks and computes performance estimates.
//
// Returns the stage result together with the PerformanceEstimates, which
// the caller attaches to the report.
func CheckScene(scene contract.SceneContext, cfg schema.SceneConfig) (schema.StageResult, schema.PerformanceEstimates) {
	meshes := scene.MeshObjects()
	armatures := scene.ArmatureObjects()
	images := scene.Images()
	orphans := scene.OrphanCounts()

	checks := []schema.CheckResult{
		checkNamingConventions(meshes, cfg),
		checkOrphanData(orphans),
		checkLODPresence(meshes, cfg),
		checkCollisionPresence(meshes, cfg),
	}

	result := schema.StageResult{
		Name:   schema.StageScene,
		Status: schema.StageStatusOf(checks),
		Checks: checks,
	}
	return result, computePerformance(meshes, armatures, images)
}

func checkNamingConventions(meshes []contract.MeshObject, cfg schema.SceneConfig) schema.CheckResult {
	pattern := regexp.MustCompile(cfg.ObjectNamingPattern)
	summary := NamingSummary{Violations: []string{}}
	for _, m := range meshes {
		if !matchAtStart(pattern, m.Name()) {
			summary.Violations = append(summary.Violations, m.Name())
		}
	}
	summary.Count = len(summary.Violations)

	status := schema.CheckPass
	msg := fmt.Sprintf("All object names match pattern '%s'", cfg.ObjectNamingPattern)
	if summary.Count > 0 {
		status = schema.CheckWarning
		msg = fmt.Sprintf("%d object name(s) do not match pattern '%s'", summary.Count, cfg.ObjectNamingPattern)
	}
	return schema.CheckResult{
		Name:          schema.CheckNamingConventions,
		Status:        status,
		MeasuredValue: summary,
		Threshold:     cfg.ObjectNamingPattern,
		Message:       msg,
	}
}

func checkOrphanData(orphanCounts map[string]int) schema.CheckResult {
	total := 0
	for _, count := range orphanCounts {
		total += count
	}

	status := schema.CheckPass
	msg := "No orphan data blocks"
	if total > 0 {
		status = schema.CheckWarning
		msg = fmt.Sprintf("%d orphan data block(s) found: %v", total, orphanCounts)
	}
	return schema.CheckResult{
		Name:          schema.CheckOrphanData,
		Status:        status,
		MeasuredValue: total,
		Threshold:     0,
		Message:       msg,
	}
}

func checkLODPresence(meshes []contract.MeshObject, cfg schema.SceneConfig) schema.CheckResult {
	if !cfg.RequireLOD {
		return schema.CheckResult{
			Name:          schema.CheckLODPresence,
			Status:        schema.CheckSkipped,
			MeasuredValue: 0,
			Threshold:     nil,
			Message:       "LOD presence check skipped (not required)",
		}
	}
	return suffixPresenceCheck(schema.CheckLODPresence, meshes, cfg.LODSuffixPattern, "LOD")
}

func checkCollisionPresence(meshes []contract.MeshObject, cfg schema.SceneConfig) schema.CheckResult {
	if !cfg.RequireCollision {
		return schema.CheckResult{
			Name:          schema.CheckCollisionPresence,
			Status:        schema.CheckSkipped,
			MeasuredValue: 0,
			Threshold:     nil,
			Message:       "Collision presence check skipped (not required)",
		}
	}
	return suffixPresenceCheck(schema.CheckCollisionPresence, meshes, cfg.CollisionSuffixPattern, "collision")
}

// suffixPresenceCheck fails when no mesh object name matches the suffix
// pattern for a required companion mesh kind.
func suffixPresenceCheck(name string, meshes []contract.MeshObject, suffixPattern, kind string) schema.CheckResult {
	pattern := regexp.MustCompile(suffixPattern)
	count := 0
	for _, m := range meshes {
		if pattern.MatchString(m.Name()) {
			count++
		}
	}

	if count == 0 {
		return schema.CheckResult{
			Name:          name,
			Status:        schema.CheckFail,
			MeasuredValue: 0,
			Threshold:     suffixPattern,
			Message:       fmt.Sprintf("No %s objects found matching '%s' (required)", kind, suffixPattern),
		}
	}
	return schema.CheckResult{
		Name:          name,
		Status:        schema.CheckPass,
		MeasuredValue: count,
		Threshold:     suffixPattern,
		Message:       fmt.Sprintf("%d %s object(s) found matching '%s'", count, kind, suffixPattern),
	}
}

// computePerformance derives the renderer-facing cost estimates: total
// triangles, per-material-slot draw calls, VRAM with a full mip chain, and
// total bone count.
func computePerformance(
	meshes []contract.MeshObject,
	armatures []contract.ArmatureObject,
	images []contract.Image,
) schema.PerformanceEstimates {
	var perf schema.PerformanceEstimates
	for _, m := range meshes {
		perf.TriangleCount += m.TriangleCount()
		perf.DrawCallEstimate += m.MaterialSlotCount()
	}
	for _, img := range images {
		w, h := img.Size()
		bytesRaw := float64(w) * float64(h) * float64(img.Channels()) * float64(img.ChannelDepth()) / 8
		perf.VRAMEstimateMB += bytesRaw / 1024.0 / 1024.0 * mipMultiplier
	}
	for _, arm := range armatures {
		perf.BoneCount += len(arm.Bones())
	}
	return perf
}
