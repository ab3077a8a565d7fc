package core

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/schema"
)

func TestSampleIndices(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("small input returned whole", func(t *testing.T) {
		indices := sampleIndices(5, 10, rng)
		assert.Equal(t, []int{0, 1, 2, 3, 4}, indices)
	})

	t.Run("large input sampled without repeats", func(t *testing.T) {
		indices := sampleIndices(10000, 100, rng)
		assert.Len(t, indices, 100)
		seen := make(map[int]struct{})
		for _, i := range indices {
			assert.GreaterOrEqual(t, i, 0)
			assert.Less(t, i, 10000)
			_, dup := seen[i]
			assert.False(t, dup, "duplicate index %d", i)
			seen[i] = struct{}{}
		}
	})

	t.Run("same seed same sample", func(t *testing.T) {
		a := sampleIndices(10000, 50, rand.New(rand.NewSource(7)))
		b := sampleIndices(10000, 50, rand.New(rand.NewSource(7)))
		assert.Equal(t, a, b)
	})
}

func TestCheckPBRWorkflow(t *testing.T) {
	scene := &fakeScene{materials: []*fakeMaterial{
		{name: "M_Good", hasNodes: true, principled: true},
		{name: "M_SpecGloss", hasNodes: true, principled: true, specGloss: true},
		{name: "M_Legacy", hasNodes: true},
	}}
	stage := CheckPBR(scene, schema.NewPBRConfig())

	check := findCheck(t, stage, schema.CheckPBRWorkflow)
	assert.Equal(t, schema.CheckFail, check.Status)
	assert.Equal(t, []string{"M_SpecGloss", "M_Legacy"}, check.MeasuredValue)
	assert.Equal(t, schema.StageFail, stage.Status)
}

func TestCheckPBRMaterialSlots(t *testing.T) {
	heavy := quadMesh("SM_Kitbash", 1000)
	heavy.slotCount = 5
	scene := &fakeScene{meshes: []*fakeMesh{quadMesh("SM_Crate", 100), heavy}}
	stage := CheckPBR(scene, schema.NewPBRConfig())

	check := findCheck(t, stage, schema.CheckMaterialSlots)
	assert.Equal(t, schema.CheckFail, check.Status)
	summary := check.MeasuredValue.(SlotSummary)
	assert.Equal(t, 5, summary.Max)
	assert.Equal(t, "SM_Kitbash", summary.Object)
}

func TestCheckPBRAlbedoRange(t *testing.T) {
	t.Run("no textures passes", func(t *testing.T) {
		scene := &fakeScene{materials: []*fakeMaterial{{name: "M_Bare", hasNodes: true, principled: true}}}
		stage := CheckPBR(scene, schema.NewPBRConfig())
		check := findCheck(t, stage, schema.CheckAlbedoRange)
		assert.Equal(t, schema.CheckPass, check.Status)
	})

	t.Run("near-black albedo warns", func(t *testing.T) {
		scene := &fakeScene{materials: []*fakeMaterial{
			{name: "M_Coal", hasNodes: true, principled: true, albedo: solidPixels(200, 0.01, 0.01, 0.01, 1)},
		}}
		stage := CheckPBR(scene, schema.NewPBRConfig())
		check := findCheck(t, stage, schema.CheckAlbedoRange)
		assert.Equal(t, schema.CheckWarning, check.Status)
		summary := check.MeasuredValue.(AlbedoSummary)
		assert.InDelta(t, 1.0, summary.FractionOutOfRange, 1e-9)
	})

	t.Run("mid-gray albedo passes", func(t *testing.T) {
		scene := &fakeScene{materials: []*fakeMaterial{
			{name: "M_Gray", hasNodes: true, principled: true, albedo: solidPixels(200, 0.5, 0.5, 0.5, 1)},
		}}
		stage := CheckPBR(scene, schema.NewPBRConfig())
		check := findCheck(t, stage, schema.CheckAlbedoRange)
		assert.Equal(t, schema.CheckPass, check.Status)
	})
}

func TestCheckPBRMetalnessBinary(t *testing.T) {
	t.Run("binary metalness passes", func(t *testing.T) {
		pixels := append(solidPixels(100, 0, 0, 0, 1), solidPixels(100, 1, 1, 1, 1)...)
		scene := &fakeScene{materials: []*fakeMaterial{
			{name: "M_Metal", hasNodes: true, principled: true, metalness: pixels},
		}}
		stage := CheckPBR(scene, schema.NewPBRConfig())
		check := findCheck(t, stage, schema.CheckMetalnessBinary)
		assert.Equal(t, schema.CheckPass, check.Status)
	})

	t.Run("gradient metalness warns", func(t *testing.T) {
		scene := &fakeScene{materials: []*fakeMaterial{
			{name: "M_Gradient", hasNodes: true, principled: true, metalness: solidPixels(200, 0.5, 0.5, 0.5, 1)},
		}}
		stage := CheckPBR(scene, schema.NewPBRConfig())
		check := findCheck(t, stage, schema.CheckMetalnessBinary)
		assert.Equal(t, schema.CheckWarning, check.Status)
		summary := check.MeasuredValue.(MetalnessSummary)
		assert.InDelta(t, 1.0, summary.FractionGradient, 1e-9)
	})
}

func TestCheckPBRRoughnessRange(t *testing.T) {
	t.Run("spread roughness passes", func(t *testing.T) {
		scene := &fakeScene{materials: []*fakeMaterial{
			{name: "M_Var", hasNodes: true, principled: true, roughness: solidPixels(200, 0.4, 0.4, 0.4, 1)},
		}}
		stage := CheckPBR(scene, schema.NewPBRConfig())
		check := findCheck(t, stage, schema.CheckRoughnessRange)
		assert.Equal(t, schema.CheckPass, check.Status)
	})

	t.Run("pure zero dominated warns", func(t *testing.T) {
		scene := &fakeScene{materials: []*fakeMaterial{
			{name: "M_Mirror", hasNodes: true, principled: true, roughness: solidPixels(200, 0, 0, 0, 1)},
		}}
		stage := CheckPBR(scene, schema.NewPBRConfig())
		check := findCheck(t, stage, schema.CheckRoughnessRange)
		assert.Equal(t, schema.CheckWarning, check.Status)
		summary := check.MeasuredValue.(RoughnessSummary)
		assert.InDelta(t, 1.0, summary.FractionPureZero, 1e-9)
	})
}

func TestCheckPBRNormalMap(t *testing.T) {
	t.Run("valid normal map passes", func(t *testing.T) {
		scene := &fakeScene{materials: []*fakeMaterial{
			{name: "M_Crate", hasNodes: true, principled: true, normalMaps: []contract.NormalMapData{
				{ImageName: "T_Crate_N", ColorSpace: "Non-Color", Pixels: solidPixels(16, 0.5, 0.5, 1.0, 1)},
			}},
		}}
		stage := CheckPBR(scene, schema.NewPBRConfig())
		check := findCheck(t, stage, schema.CheckNormalMap)
		assert.Equal(t, schema.CheckPass, check.Status)
	})

	t.Run("srgb colorspace fails", func(t *testing.T) {
		scene := &fakeScene{materials: []*fakeMaterial{
			{name: "M_Crate", hasNodes: true, principled: true, normalMaps: []contract.NormalMapData{
				{ImageName: "T_Crate_N", ColorSpace: "sRGB", Pixels: solidPixels(16, 0.5, 0.5, 1.0, 1)},
			}},
		}}
		stage := CheckPBR(scene, schema.NewPBRConfig())
		check := findCheck(t, stage, schema.CheckNormalMap)
		assert.Equal(t, schema.CheckFail, check.Status)
		summary := check.MeasuredValue.(NormalMapSummary)
		assert.Equal(t, []string{"T_Crate_N"}, summary.ColorSpaceViolations)
	})

	t.Run("red dominant channels fail", func(t *testing.T) {
		scene := &fakeScene{materials: []*fakeMaterial{
			{name: "M_Crate", hasNodes: true, principled: true, normalMaps: []contract.NormalMapData{
				{ImageName: "T_Crate_N", ColorSpace: "Non-Color", Pixels: solidPixels(16, 0.9, 0.5, 0.5, 1)},
			}},
		}}
		stage := CheckPBR(scene, schema.NewPBRConfig())
		check := findCheck(t, stage, schema.CheckNormalMap)
		assert.Equal(t, schema.CheckFail, check.Status)
		summary := check.MeasuredValue.(NormalMapSummary)
		assert.Equal(t, []string{"T_Crate_N"}, summary.ChannelViolations)
	})
}

func TestCheckPBRNodeGraph(t *testing.T) {
	t.Run("empty slot flagged", func(t *testing.T) {
		scene := &fakeScene{materials: []*fakeMaterial{{name: "M_Empty"}}}
		stage := CheckPBR(scene, schema.NewPBRConfig())
		check := findCheck(t, stage, schema.CheckNodeGraph)
		assert.Equal(t, schema.CheckWarning, check.Status)
	})

	t.Run("orphan image node flagged", func(t *testing.T) {
		graph := &contract.ShaderGraph{
			Nodes: []contract.ShaderNode{
				{ID: "tex1", Type: contract.NodeTypeImageTexture},
				{ID: "tex2", Type: contract.NodeTypeImageTexture},
				{ID: "bsdf", Type: contract.NodeTypePrincipledBSDF},
				{ID: "out", Type: contract.NodeTypeMaterialOutput},
			},
			Links: []contract.ShaderLink{
				{From: "tex1", To: "bsdf"},
				{From: "bsdf", To: "out"},
			},
		}
		scene := &fakeScene{materials: []*fakeMaterial{
			{name: "M_Crate", hasNodes: true, principled: true, graph: graph},
		}}
		stage := CheckPBR(scene, schema.NewPBRConfig())
		check := findCheck(t, stage, schema.CheckNodeGraph)
		assert.Equal(t, schema.CheckWarning, check.Status)
		issues := check.MeasuredValue.([]string)
		assert.Len(t, issues, 1)
		assert.Contains(t, issues[0], "1 orphan Image Texture node(s)")
	})

	t.Run("cycle flagged", func(t *testing.T) {
		graph := &contract.ShaderGraph{
			Nodes: []contract.ShaderNode{
				{ID: "a", Type: "MIX"},
				{ID: "b", Type: "MIX"},
				{ID: "bsdf", Type: contract.NodeTypePrincipledBSDF},
			},
			Links: []contract.ShaderLink{
				{From: "a", To: "b"},
				{From: "b", To: "a"},
				{From: "b", To: "bsdf"},
			},
		}
		scene := &fakeScene{materials: []*fakeMaterial{
			{name: "M_Loop", hasNodes: true, principled: true, graph: graph},
		}}
		stage := CheckPBR(scene, schema.NewPBRConfig())
		check := findCheck(t, stage, schema.CheckNodeGraph)
		assert.Equal(t, schema.CheckWarning, check.Status)
		issues := check.MeasuredValue.([]string)
		assert.Contains(t, issues[0], "cycle detected")
	})

	t.Run("clean graph passes", func(t *testing.T) {
		graph := &contract.ShaderGraph{
			Nodes: []contract.ShaderNode{
				{ID: "tex1", Type: contract.NodeTypeImageTexture},
				{ID: "bsdf", Type: contract.NodeTypePrincipledBSDF},
				{ID: "out", Type: contract.NodeTypeMaterialOutput},
			},
			Links: []contract.ShaderLink{
				{From: "tex1", To: "bsdf"},
				{From: "bsdf", To: "out"},
			},
		}
		scene := &fakeScene{materials: []*fakeMaterial{
			{name: "M_Crate", hasNodes: true, principled: true, graph: graph},
		}}
		stage := CheckPBR(scene, schema.NewPBRConfig())
		check := findCheck(t, stage, schema.CheckNodeGraph)
		assert.Equal(t, schema.CheckPass, check.Status)
	})
}

func TestHasNodeCyclesDeepChain(t *testing.T) {
	// A linear chain far deeper than any sane material, the kind procedural
	// exporters emit. The walk must not grow with chain depth.
	const depth = 100000
	graph := &contract.ShaderGraph{
		Nodes: make([]contract.ShaderNode, depth),
		Links: make([]contract.ShaderLink, depth-1),
	}
	for i := 0; i < depth; i++ {
		graph.Nodes[i] = contract.ShaderNode{ID: "n" + strconv.Itoa(i), Type: "MIX"}
	}
	for i := 0; i < depth-1; i++ {
		graph.Links[i] = contract.ShaderLink{
			From: "n" + strconv.Itoa(i),
			To:   "n" + strconv.Itoa(i+1),
		}
	}
	assert.False(t, hasNodeCycles(graph))

	// Closing the tail back to the head turns the chain into one big cycle.
	graph.Links = append(graph.Links, contract.ShaderLink{
		From: "n" + strconv.Itoa(depth-1),
		To:   "n0",
	})
	assert.True(t, hasNodeCycles(graph))
}
