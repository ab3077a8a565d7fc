package core

import (
	"fmt"

	"github.com/artpipe/assetgate/core/algo"
	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/schema"
)

// TexelDensitySummary is the measured value of the texel_density check.
type TexelDensitySummary struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	OutlierCount int     `json:"outlier_count"`
}

// LightmapSummary is the measured value of the lightmap_uv2 check.
type LightmapSummary struct {
	Present      bool `json:"present"`
	OverlapCount int  `json:"overlap_count"`
}

// CheckUVs runs all UV checks and returns a StageResult.
//
// All checks always run; earlier failures do not short-circuit later checks.
// texel_density reports WARNING (not FAIL) when out of range, so it never
// fails the stage on its own.
func CheckUVs(scene contract.SceneContext, cfg schema.UVConfig) schema.StageResult {
	meshes := scene.MeshObjects()

	checks := []schema.CheckResult{
		checkMissingUVs(meshes),
		checkUVBounds(meshes, cfg),
		checkUVOverlap(meshes, cfg),
		checkTexelDensity(meshes, cfg),
		checkLightmapUV2(meshes, cfg),
	}

	return schema.StageResult{
		Name:   schema.StageUV,
		Status: schema.StageStatusOf(checks),
		Checks: checks,
	}
}

func hasUVLayer(m contract.MeshObject, layer string) bool {
	for _, name := range m.UVLayerNames() {
		if name == layer {
			return true
		}
	}
	return false
}

func checkMissingUVs(meshes []contract.MeshObject) schema.CheckResult {
	count := 0
	for _, m := range meshes {
		if len(m.UVLayerNames()) == 0 {
			count++
		}
	}
	return countCheck(schema.CheckMissingUVs, count,
		fmt.Sprintf("%d mesh object(s) have no UV layers", count),
		"All mesh objects have UV layers")
}

func checkUVBounds(meshes []contract.MeshObject, cfg schema.UVConfig) schema.CheckResult {
	count := 0
	for _, m := range meshes {
		if !hasUVLayer(m, cfg.UVLayerName) {
			continue
		}
		for _, loop := range m.UVLoops(cfg.UVLayerName) {
			if loop.U < 0.0 || loop.U > 1.0 || loop.V < 0.0 || loop.V > 1.0 {
				count++
			}
		}
	}
	return countCheck(schema.CheckUVBounds, count,
		fmt.Sprintf("%d UV loop(s) outside [0, 1] bounds", count),
		"All UV coordinates within [0, 1]")
}

func checkUVOverlap(meshes []contract.MeshObject, cfg schema.UVConfig) schema.CheckResult {
	var allTris []contract.UVTriangle
	for _, m := range meshes {
		if hasUVLayer(m, cfg.UVLayerName) {
			allTris = append(allTris, m.UVTriangles(cfg.UVLayerName)...)
		}
	}

	overlapCount := algo.FindOverlappingPairs(allTris)
	return countCheck(schema.CheckUVOverlap, overlapCount,
		fmt.Sprintf("%d overlapping UV island pair(s) found", overlapCount),
		"No overlapping UV islands")
}

func checkTexelDensity(meshes []contract.MeshObject, cfg schema.UVConfig) schema.CheckResult {
	minTarget, maxTarget := cfg.TexelDensityTarget[0], cfg.TexelDensityTarget[1]
	var densities []float64

	for _, m := range meshes {
		if !hasUVLayer(m, cfg.UVLayerName) {
			continue
		}
		uvArea := 0.0
		for _, t := range m.UVTriangles(cfg.UVLayerName) {
			uvArea += algo.TriangleArea2D(t)
		}
		worldArea := m.WorldSurfaceArea()
		if worldArea > 0 && uvArea > 0 {
			densities = append(densities, uvArea/worldArea)
		}
	}

	if len(densities) == 0 {
		return schema.CheckResult{
			Name:          schema.CheckTexelDensity,
			Status:        schema.CheckSkipped,
			MeasuredValue: TexelDensitySummary{},
			Threshold:     cfg.TexelDensityTarget,
			Message:       "No UV data available for texel density check",
		}
	}

	summary := TexelDensitySummary{Min: densities[0], Max: densities[0]}
	sum := 0.0
	for _, d := range densities {
		if d < summary.Min {
			summary.Min = d
		}
		if d > summary.Max {
			summary.Max = d
		}
		sum += d
		if d < minTarget || d > maxTarget {
			summary.OutlierCount++
		}
	}
	summary.Mean = sum / float64(len(densities))

	status := schema.CheckPass
	msg := fmt.Sprintf("Texel density within target range (%g, %g)", minTarget, maxTarget)
	if summary.OutlierCount > 0 {
		status = schema.CheckWarning
		msg = fmt.Sprintf("Texel density: %d island(s) outside target range (%g, %g), flagged for human review",
			summary.OutlierCount, minTarget, maxTarget)
	}
	return schema.CheckResult{
		Name:          schema.CheckTexelDensity,
		Status:        status,
		MeasuredValue: summary,
		Threshold:     cfg.TexelDensityTarget,
		Message:       msg,
	}
}

func checkLightmapUV2(meshes []contract.MeshObject, cfg schema.UVConfig) schema.CheckResult {
	if !cfg.RequireLightmapUV2 {
		return schema.CheckResult{
			Name:          schema.CheckLightmapUV2,
			Status:        schema.CheckSkipped,
			MeasuredValue: LightmapSummary{},
			Threshold:     0,
			Message:       "Lightmap UV2 check skipped (require_lightmap_uv2=false)",
		}
	}

	missing := 0
	for _, m := range meshes {
		if !hasUVLayer(m, cfg.LightmapLayerName) {
			missing++
		}
	}
	if missing > 0 {
		return schema.CheckResult{
			Name:          schema.CheckLightmapUV2,
			Status:        schema.CheckFail,
			MeasuredValue: LightmapSummary{},
			Threshold:     0,
			Message: fmt.Sprintf("Lightmap UV layer '%s' missing on %d object(s)",
				cfg.LightmapLayerName, missing),
		}
	}

	var allTris []contract.UVTriangle
	for _, m := range meshes {
		allTris = append(allTris, m.UVTriangles(cfg.LightmapLayerName)...)
	}
	overlapCount := algo.FindOverlappingPairs(allTris)

	status := schema.CheckPass
	msg := "Lightmap UV2 present with no overlaps"
	if overlapCount > 0 {
		status = schema.CheckFail
		msg = fmt.Sprintf("Lightmap UV2 has %d overlapping island pair(s)", overlapCount)
	}
	return schema.CheckResult{
		Name:          schema.CheckLightmapUV2,
		Status:        status,
		MeasuredValue: LightmapSummary{Present: true, OverlapCount: overlapCount},
		Threshold:     0,
		Message:       msg,
	}
}
