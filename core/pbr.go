package core

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/schema"
)

const (
	nearZero = 1e-6
	nearOne  = 1.0 - 1e-6

	// albedoWarnFraction and friends are the review thresholds on sampled
	// pixel statistics.
	albedoWarnFraction    = 0.05
	metalnessWarnFraction = 0.10
	roughnessWarnFraction = 0.5

	// pixelSampleSeed fixes the sampling RNG so repeated runs over the same
	// asset produce identical reports.
	pixelSampleSeed = 0x5EED
)

// AlbedoSummary is the measured value of the albedo_range check.
type AlbedoSummary struct {
	FractionOutOfRange float64 `json:"fraction_out_of_range"`
	SampleCount        int     `json:"sample_count"`
}

// MetalnessSummary is the measured value of the metalness_binary check.
type MetalnessSummary struct {
	FractionGradient float64 `json:"fraction_gradient"`
}

// RoughnessSummary is the measured value of the roughness_range check.
type RoughnessSummary struct {
	FractionPureZero float64 `json:"fraction_pure_zero"`
	FractionPureOne  float64 `json:"fraction_pure_one"`
}

// NormalMapSummary is the measured value of the normal_map check.
type NormalMapSummary struct {
	ColorSpaceViolations []string `json:"colorspace_violations"`
	ChannelViolations    []string `json:"channel_violations"`
}

// SlotSummary is the measured value of the material_slots check.
type SlotSummary struct {
	Max    int    `json:"max"`
	Object string `json:"object"`
}

// AlbedoRangeThreshold is the threshold payload of the albedo_range check.
type AlbedoRangeThreshold struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// CheckPBR runs all PBR material checks and returns a StageResult.
//
// All checks always run; earlier failures do not short-circuit later checks.
// albedo_range, metalness_binary, roughness_range and node_graph are
// WARNING-only and never cause the stage to fail. pbr_workflow,
// material_slots and normal_map use FAIL on violation.
func CheckPBR(scene contract.SceneContext, cfg schema.PBRConfig) schema.StageResult {
	meshes := scene.MeshObjects()
	materials := scene.Materials()

	rng := rand.New(rand.NewSource(pixelSampleSeed))

	checks := []schema.CheckResult{
		checkPBRWorkflow(materials),
		checkMaterialSlots(meshes, cfg),
		checkAlbedoRange(materials, cfg, rng),
		checkMetalnessBinary(materials, cfg, rng),
		checkRoughnessRange(materials, cfg, rng),
		checkNormalMap(materials),
		checkNodeGraph(materials),
	}

	return schema.StageResult{
		Name:   schema.StagePBR,
		Status: schema.StageStatusOf(checks),
		Checks: checks,
	}
}

// sampleIndices picks up to max distinct indices from [0, total) using a
// partial Fisher-Yates shuffle, so memory stays proportional to the sample
// size even for multi-megapixel images.
func sampleIndices(total, max int, rng *rand.Rand) []int {
	if total <= max {
		indices := make([]int, total)
		for i := range indices {
			indices[i] = i
		}
		return indices
	}
	swapped := make(map[int]int)
	indices := make([]int, max)
	for i := 0; i < max; i++ {
		j := i + rng.Intn(total-i)
		vi, ok := swapped[i]
		if !ok {
			vi = i
		}
		vj, ok := swapped[j]
		if !ok {
			vj = j
		}
		indices[i] = vj
		swapped[j] = vi
	}
	return indices
}

// rgbSamples extracts up to max (R, G, B) triples from a flat RGBA list.
func rgbSamples(pixels []float64, max int, rng *rand.Rand) [][3]float64 {
	total := len(pixels) / 4
	if total == 0 {
		return nil
	}
	indices := sampleIndices(total, max, rng)
	out := make([][3]float64, len(indices))
	for n, i := range indices {
		out[n] = [3]float64{pixels[i*4], pixels[i*4+1], pixels[i*4+2]}
	}
	return out
}

// rSamples extracts up to max R-channel values from a flat RGBA list.
func rSamples(pixels []float64, max int, rng *rand.Rand) []float64 {
	total := len(pixels) / 4
	if total == 0 {
		return nil
	}
	indices := sampleIndices(total, max, rng)
	out := make([]float64, len(indices))
	for n, i := range indices {
		out[n] = pixels[i*4]
	}
	return out
}

func checkPBRWorkflow(materials []contract.Material) schema.CheckResult {
	var nonCompliant []string
	for _, mat := range materials {
		if !mat.UsesPrincipledBSDF() || mat.UsesSpecGloss() {
			nonCompliant = append(nonCompliant, mat.Name())
		}
	}

	status := schema.CheckPass
	msg := "All materials use Principled BSDF workflow"
	if len(nonCompliant) > 0 {
		status = schema.CheckFail
		msg = fmt.Sprintf("%d material(s) not using Principled BSDF: %v", len(nonCompliant), nonCompliant)
	}
	return schema.CheckResult{
		Name:          schema.CheckPBRWorkflow,
		Status:        status,
		MeasuredValue: nonCompliant,
		Threshold:     0,
		Message:       msg,
	}
}

func checkMaterialSlots(meshes []contract.MeshObject, cfg schema.PBRConfig) schema.CheckResult {
	var worst SlotSummary
	for _, m := range meshes {
		count := m.MaterialSlotCount()
		if count > worst.Max {
			worst.Max = count
			worst.Object = m.Name()
		}
	}

	status := schema.CheckPass
	msg := fmt.Sprintf("All objects within material slot limit of %d", cfg.MaxMaterialSlots)
	if worst.Max > cfg.MaxMaterialSlots {
		status = schema.CheckFail
		msg = fmt.Sprintf("Object '%s' has %d material slot(s) (limit %d)",
			worst.Object, worst.Max, cfg.MaxMaterialSlots)
	}
	return schema.CheckResult{
		Name:          schema.CheckMaterialSlots,
		Status:        status,
		MeasuredValue: worst,
		Threshold:     cfg.MaxMaterialSlots,
		Message:       msg,
	}
}

// checkAlbedoRange samples albedo pixels (sRGB [0, 1]) and verifies they
// fall inside the configured 8-bit range.
func checkAlbedoRange(materials []contract.Material, cfg schema.PBRConfig, rng *rand.Rand) schema.CheckResult {
	threshold := AlbedoRangeThreshold{Min: cfg.AlbedoMinSRGB, Max: cfg.AlbedoMaxSRGB}

	var allRGB [][3]float64
	for _, mat := range materials {
		pix := mat.AlbedoPixels()
		if len(pix) == 0 {
			continue
		}
		allRGB = append(allRGB, rgbSamples(pix, cfg.SampleCap, rng)...)
	}

	if len(allRGB) == 0 {
		return schema.CheckResult{
			Name:          schema.CheckAlbedoRange,
			Status:        schema.CheckPass,
			MeasuredValue: AlbedoSummary{},
			Threshold:     threshold,
			Message:       "No albedo textures found, skipped",
		}
	}

	if len(allRGB) > cfg.SampleCap {
		indices := sampleIndices(len(allRGB), cfg.SampleCap, rng)
		resampled := make([][3]float64, len(indices))
		for n, i := range indices {
			resampled[n] = allRGB[i]
		}
		allRGB = resampled
	}

	outOfRange := 0
	for _, rgb := range allRGB {
		for _, c := range rgb {
			v := int(math.Round(c * 255))
			if v < cfg.AlbedoMinSRGB || v > cfg.AlbedoMaxSRGB {
				outOfRange++
				break
			}
		}
	}
	fraction := float64(outOfRange) / float64(len(allRGB))

	status := schema.CheckPass
	msg := "Albedo pixel values within expected sRGB range"
	if fraction > albedoWarnFraction {
		status = schema.CheckWarning
		msg = fmt.Sprintf("%.1f%% of sampled albedo pixels outside sRGB [%d, %d] range, flagged for review",
			fraction*100, cfg.AlbedoMinSRGB, cfg.AlbedoMaxSRGB)
	}
	return schema.CheckResult{
		Name:          schema.CheckAlbedoRange,
		Status:        status,
		MeasuredValue: AlbedoSummary{FractionOutOfRange: fraction, SampleCount: len(allRGB)},
		Threshold:     threshold,
		Message:       msg,
	}
}

// checkMetalnessBinary verifies that metalness pixels are predominantly
// binary (near 0 or 1).
func checkMetalnessBinary(materials []contract.Material, cfg schema.PBRConfig, rng *rand.Rand) schema.CheckResult {
	var allValues []float64
	for _, mat := range materials {
		pix := mat.MetalnessPixels()
		if len(pix) == 0 {
			continue
		}
		allValues = append(allValues, rSamples(pix, cfg.SampleCap, rng)...)
	}

	if len(allValues) == 0 {
		return schema.CheckResult{
			Name:          schema.CheckMetalnessBinary,
			Status:        schema.CheckPass,
			MeasuredValue: MetalnessSummary{},
			Threshold:     cfg.MetalnessBinaryThreshold,
			Message:       "No metalness textures found, skipped",
		}
	}

	if len(allValues) > cfg.SampleCap {
		indices := sampleIndices(len(allValues), cfg.SampleCap, rng)
		resampled := make([]float64, len(indices))
		for n, i := range indices {
			resampled[n] = allValues[i]
		}
		allValues = resampled
	}

	t := cfg.MetalnessBinaryThreshold
	gradient := 0
	for _, v := range allValues {
		if v > t && v < 1.0-t {
			gradient++
		}
	}
	fraction := float64(gradient) / float64(len(allValues))

	status := schema.CheckPass
	msg := "Metalness values are predominantly binary (near 0 or 1)"
	if fraction > metalnessWarnFraction {
		status = schema.CheckWarning
		msg = fmt.Sprintf("%.1f%% of metalness pixels are gradient values (between %.2f and %.2f), flagged for review",
			fraction*100, t, 1.0-t)
	}
	return schema.CheckResult{
		Name:          schema.CheckMetalnessBinary,
		Status:        status,
		MeasuredValue: MetalnessSummary{FractionGradient: fraction},
		Threshold:     cfg.MetalnessBinaryThreshold,
		Message:       msg,
	}
}

// checkRoughnessRange warns when a roughness texture is dominated by pure 0
// or pure 1 values.
func checkRoughnessRange(materials []contract.Material, cfg schema.PBRConfig, rng *rand.Rand) schema.CheckResult {
	var allValues []float64
	for _, mat := range materials {
		pix := mat.RoughnessPixels()
		if len(pix) == 0 {
			continue
		}
		allValues = append(allValues, rSamples(pix, cfg.SampleCap, rng)...)
	}

	if len(allValues) == 0 {
		return schema.CheckResult{
			Name:          schema.CheckRoughnessRange,
			Status:        schema.CheckPass,
			MeasuredValue: RoughnessSummary{},
			Threshold:     roughnessWarnFraction,
			Message:       "No roughness textures found, skipped",
		}
	}

	if len(allValues) > cfg.SampleCap {
		indices := sampleIndices(len(allValues), cfg.SampleCap, rng)
		resampled := make([]float64, len(indices))
		for n, i := range indices {
			resampled[n] = allValues[i]
		}
		allValues = resampled
	}

	pureZero, pureOne := 0, 0
	for _, v := range allValues {
		if v < nearZero {
			pureZero++
		}
		if v > nearOne {
			pureOne++
		}
	}
	total := float64(len(allValues))
	summary := RoughnessSummary{
		FractionPureZero: float64(pureZero) / total,
		FractionPureOne:  float64(pureOne) / total,
	}

	status := schema.CheckPass
	msg := "Roughness values have reasonable spread"
	if summary.FractionPureZero > roughnessWarnFraction || summary.FractionPureOne > roughnessWarnFraction {
		status = schema.CheckWarning
		msg = fmt.Sprintf("Roughness dominated by extreme values (pure 0: %.1f%%, pure 1: %.1f%%), flagged for review",
			summary.FractionPureZero*100, summary.FractionPureOne*100)
	}
	return schema.CheckResult{
		Name:          schema.CheckRoughnessRange,
		Status:        status,
		MeasuredValue: summary,
		Threshold:     roughnessWarnFraction,
		Message:       msg,
	}
}

// checkNormalMap verifies normal maps use Non-Color colorspace and are
// blue-channel dominant.
func checkNormalMap(materials []contract.Material) schema.CheckResult {
	summary := NormalMapSummary{
		ColorSpaceViolations: []string{},
		ChannelViolations:    []string{},
	}

	for _, mat := range materials {
		for _, nm := range mat.NormalMaps() {
			if nm.ColorSpace != "Non-Color" {
				summary.ColorSpaceViolations = append(summary.ColorSpaceViolations, nm.ImageName)
			}
			if len(nm.Pixels) >= 4 {
				total := len(nm.Pixels) / 4
				var sumR, sumG, sumB float64
				for i := 0; i < total; i++ {
					sumR += nm.Pixels[i*4]
					sumG += nm.Pixels[i*4+1]
					sumB += nm.Pixels[i*4+2]
				}
				meanR, meanG, meanB := sumR/float64(total), sumG/float64(total), sumB/float64(total)
				if !(meanB > meanR && meanB > meanG) {
					summary.ChannelViolations = append(summary.ChannelViolations, nm.ImageName)
				}
			}
		}
	}

	status := schema.CheckPass
	msg := "All normal maps use correct colorspace and are blue-channel dominant"
	if len(summary.ColorSpaceViolations) > 0 || len(summary.ChannelViolations) > 0 {
		status = schema.CheckFail
		msg = fmt.Sprintf("Normal map issues: colorspace violations %v, channel violations %v",
			summary.ColorSpaceViolations, summary.ChannelViolations)
	}
	return schema.CheckResult{
		Name:          schema.CheckNormalMap,
		Status:        status,
		MeasuredValue: summary,
		Threshold:     nil,
		Message:       msg,
	}
}

// checkNodeGraph flags graph hygiene issues: empty material slots, orphan
// image nodes and directed cycles.
func checkNodeGraph(materials []contract.Material) schema.CheckResult {
	issues := []string{}
	for _, mat := range materials {
		if !mat.HasNodes() {
			issues = append(issues, fmt.Sprintf("'%s': empty material slot (no nodes)", mat.Name()))
			continue
		}
		if !mat.UsesPrincipledBSDF() {
			continue
		}
		graph := mat.Graph()
		if graph == nil {
			continue
		}
		if orphans := orphanImageNodeCount(graph); orphans > 0 {
			issues = append(issues, fmt.Sprintf("'%s': %d orphan Image Texture node(s) not connected to any output",
				mat.Name(), orphans))
		}
		if hasNodeCycles(graph) {
			issues = append(issues, fmt.Sprintf("'%s': cycle detected in node graph", mat.Name()))
		}
	}

	status := schema.CheckPass
	msg := "Node graphs are clean (no orphans, cycles, or empty slots)"
	if len(issues) > 0 {
		status = schema.CheckWarning
		msg = fmt.Sprintf("%d node graph issue(s) detected, flagged for review", len(issues))
	}
	return schema.CheckResult{
		Name:          schema.CheckNodeGraph,
		Status:        status,
		MeasuredValue: issues,
		Threshold:     nil,
		Message:       msg,
	}
}

// orphanImageNodeCount counts image texture nodes with no outgoing links.
func orphanImageNodeCount(graph *contract.ShaderGraph) int {
	hasOutgoing := make(map[string]bool)
	for _, link := range graph.Links {
		hasOutgoing[link.From] = true
	}
	count := 0
	for _, node := range graph.Nodes {
		if node.Type == contract.NodeTypeImageTexture && !hasOutgoing[node.ID] {
			count++
		}
	}
	return count
}

// hasNodeCycles reports whether the shader graph contains a directed cycle,
// via iterative three-color DFS.
func hasNodeCycles(graph *contract.ShaderGraph) bool {
	adjacency := make(map[string][]string)
	for _, link := range graph.Links {
		adjacency[link.From] = append(adjacency[link.From], link.To)
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	colors := make(map[string]int, len(graph.Nodes))

	// Each node is pushed white, expanded into gray, and turned black when
	// it surfaces again with all successors finished. Generated materials
	// can chain thousands of nodes, so the traversal keeps its own stack.
	var stack []string
	for _, node := range graph.Nodes {
		if colors[node.ID] != white {
			continue
		}
		stack = append(stack[:0], node.ID)
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			if colors[id] == white {
				colors[id] = gray
				for _, next := range adjacency[id] {
					switch colors[next] {
					case gray:
						return true
					case white:
						stack = append(stack, next)
					}
				}
				continue
			}
			if colors[id] == gray {
				colors[id] = black
			}
			stack = stack[:len(stack)-1]
		}
	}
	return false
}
