package core

import (
	"fmt"
	"strings"

	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/schema"
)

// Keyword lists driving color-space inference. Socket names are checked
// before image names so explicit wiring takes priority.
var (
	srgbKeywords = []string{
		"albedo", "diffuse", "color", "colour", "basecolor", "base_color",
	}
	linearKeywords = []string{
		"normal", "rough", "roughness", "metal", "metallic",
		"ao", "ambient_occlusion", "specular", "height", "bump", "displacement",
	}
)

// standardDepths are the accepted total bits-per-pixel values (RGB8, RGBA8).
var standardDepths = map[int]struct{}{24: {}, 32: {}}

// ImageViolation describes one image failing a dimension check.
type ImageViolation struct {
	Name  string `json:"name"`
	Size  [2]int `json:"size"`
	Limit int    `json:"limit,omitempty"`
}

// DepthFlag describes one image with a non-standard bit depth.
type DepthFlag struct {
	Name  string `json:"name"`
	Depth int    `json:"depth"`
}

// ColorSpaceViolation describes one image assigned the wrong color space.
type ColorSpaceViolation struct {
	Name     string `json:"name"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// TextureCountSummary is the measured value of the texture_count check.
type TextureCountSummary struct {
	Max      int    `json:"max"`
	Material string `json:"material"`
}

// CheckTextures runs all texture checks and returns a StageResult.
//
// All checks always run; earlier failures do not short-circuit later checks.
// channel_depth and color_space are WARNING-only and never cause the stage
// to fail.
func CheckTextures(scene contract.SceneContext, cfg schema.TextureConfig) schema.StageResult {
	materials := scene.Materials()
	images := scene.Images()

	checks := []schema.CheckResult{
		checkMissingTextures(materials),
		checkResolutionLimit(images, cfg),
		checkPowerOfTwo(images),
		checkTextureCount(materials, cfg),
		checkChannelDepth(images),
		checkColorSpace(materials, images),
	}

	return schema.StageResult{
		Name:   schema.StageTexture,
		Status: schema.StageStatusOf(checks),
		Checks: checks,
	}
}

// inferExpectedColorSpace infers the expected color space from socket and
// image name keywords. Returns "sRGB", "Non-Color", or "" when no keyword
// matches.
func inferExpectedColorSpace(socketName, imageName string) string {
	for _, text := range []string{strings.ToLower(socketName), strings.ToLower(imageName)} {
		for _, kw := range srgbKeywords {
			if strings.Contains(text, kw) {
				return "sRGB"
			}
		}
		for _, kw := range linearKeywords {
			if strings.Contains(text, kw) {
				return "Non-Color"
			}
		}
	}
	return ""
}

func checkMissingTextures(materials []contract.Material) schema.CheckResult {
	broken := 0
	for _, mat := range materials {
		for _, node := range mat.ImageTextureNodes() {
			if node.FilepathMissing {
				broken++
			}
		}
	}
	return countCheck(schema.CheckMissingTextures, broken,
		fmt.Sprintf("%d texture reference(s) with missing files", broken),
		"All texture references resolve to existing files")
}

func checkResolutionLimit(images []contract.Image, cfg schema.TextureConfig) schema.CheckResult {
	limit := cfg.ResolutionLimit()
	var violations []ImageViolation
	for _, img := range images {
		w, h := img.Size()
		if w > limit || h > limit {
			violations = append(violations, ImageViolation{Name: img.Name(), Size: [2]int{w, h}, Limit: limit})
		}
	}

	status := schema.CheckPass
	msg := fmt.Sprintf("All images within resolution limit of %dpx", limit)
	if len(violations) > 0 {
		status = schema.CheckFail
		msg = fmt.Sprintf("%d image(s) exceed resolution limit of %dpx", len(violations), limit)
	}
	return schema.CheckResult{
		Name:          schema.CheckResolutionLimit,
		Status:        status,
		MeasuredValue: violations,
		Threshold:     limit,
		Message:       msg,
	}
}

func checkPowerOfTwo(images []contract.Image) schema.CheckResult {
	var violations []ImageViolation
	for _, img := range images {
		w, h := img.Size()
		if !schema.IsPowerOfTwo(w) || !schema.IsPowerOfTwo(h) {
			violations = append(violations, ImageViolation{Name: img.Name(), Size: [2]int{w, h}})
		}
	}

	status := schema.CheckPass
	msg := "All images have power-of-two dimensions"
	if len(violations) > 0 {
		status = schema.CheckFail
		msg = fmt.Sprintf("%d image(s) have non-power-of-two dimensions", len(violations))
	}
	return schema.CheckResult{
		Name:          schema.CheckPowerOfTwo,
		Status:        status,
		MeasuredValue: violations,
		Threshold:     0,
		Message:       msg,
	}
}

func checkTextureCount(materials []contract.Material, cfg schema.TextureConfig) schema.CheckResult {
	var worst TextureCountSummary
	for _, mat := range materials {
		count := len(mat.ImageTextureNodes())
		if count > worst.Max {
			worst.Max = count
			worst.Material = mat.Name()
		}
	}

	status := schema.CheckPass
	msg := fmt.Sprintf("All materials within texture limit of %d", cfg.MaxTexturesPerMaterial)
	if worst.Max > cfg.MaxTexturesPerMaterial {
		status = schema.CheckFail
		msg = fmt.Sprintf("Material '%s' has %d texture(s) (limit %d)",
			worst.Material, worst.Max, cfg.MaxTexturesPerMaterial)
	}
	return schema.CheckResult{
		Name:          schema.CheckTextureCount,
		Status:        status,
		MeasuredValue: worst,
		Threshold:     cfg.MaxTexturesPerMaterial,
		Message:       msg,
	}
}

func checkChannelDepth(images []contract.Image) schema.CheckResult {
	var flagged []DepthFlag
	for _, img := range images {
		if _, ok := standardDepths[img.Depth()]; !ok {
			flagged = append(flagged, DepthFlag{Name: img.Name(), Depth: img.Depth()})
		}
	}

	status := schema.CheckPass
	msg := "All images have standard bit depth (24 or 32)"
	if len(flagged) > 0 {
		status = schema.CheckWarning
		msg = fmt.Sprintf("%d image(s) have non-standard bit depth (16-bit or HDR), flagged for review", len(flagged))
	}
	return schema.CheckResult{
		Name:          schema.CheckChannelDepth,
		Status:        status,
		MeasuredValue: flagged,
		Threshold:     []int{24, 32},
		Message:       msg,
	}
}

func checkColorSpace(materials []contract.Material, images []contract.Image) schema.CheckResult {
	imageByName := make(map[string]contract.Image, len(images))
	for _, img := range images {
		imageByName[img.Name()] = img
	}

	var violations []ColorSpaceViolation
	for _, mat := range materials {
		for _, node := range mat.ImageTextureNodes() {
			expected := inferExpectedColorSpace(node.SocketName, node.ImageName)
			if expected == "" {
				continue // cannot infer map type
			}
			img, ok := imageByName[node.ImageName]
			if !ok {
				continue // image not available in scene
			}

			actual := img.ColorSpaceName()
			if expected == "Non-Color" {
				// Both "Non-Color" and "Linear" are acceptable for linear maps.
				if actual != "Non-Color" && actual != "Linear" {
					violations = append(violations, ColorSpaceViolation{
						Name: node.ImageName, Expected: "Non-Color", Actual: actual,
					})
				}
			} else if actual != expected {
				violations = append(violations, ColorSpaceViolation{
					Name: node.ImageName, Expected: expected, Actual: actual,
				})
			}
		}
	}

	status := schema.CheckPass
	msg := "All texture color spaces match expected values"
	if len(violations) > 0 {
		status = schema.CheckWarning
		msg = fmt.Sprintf("%d color space mismatch(es) detected, flagged for review", len(violations))
	}
	return schema.CheckResult{
		Name:          schema.CheckColorSpace,
		Status:        status,
		MeasuredValue: violations,
		Threshold:     nil,
		Message:       msg,
	}
}
