package core

import (
	"github.com/artpipe/assetgate/internal/contract"
)

// In-memory doubles for the contract interfaces. Tests build scenes by hand
// instead of loading scene-facts snapshots.

type fakeMesh struct {
	name         string
	triangles    int
	topology     *contract.Topology
	uvLayers     map[string][]contract.UVCoord
	uvTris       map[string][]contract.UVTriangle
	surfaceArea  float64
	slotCount    int
	vertices     int
	mergedTo     int // vertex count returned by MergeByDistance
	recalcCalled bool
	mergeCalled  bool
}

func (m *fakeMesh) Name() string                 { return m.name }
func (m *fakeMesh) TriangleCount() int           { return m.triangles }
func (m *fakeMesh) Topology() *contract.Topology { return m.topology }
func (m *fakeMesh) WorldSurfaceArea() float64    { return m.surfaceArea }
func (m *fakeMesh) MaterialSlotCount() int       { return m.slotCount }
func (m *fakeMesh) VertexCount() int             { return m.vertices }

func (m *fakeMesh) UVLayerNames() []string {
	names := make([]string, 0, len(m.uvLayers))
	for name := range m.uvLayers {
		names = append(names, name)
	}
	return names
}

func (m *fakeMesh) UVLoops(layer string) []contract.UVCoord        { return m.uvLayers[layer] }
func (m *fakeMesh) UVTriangles(layer string) []contract.UVTriangle { return m.uvTris[layer] }
func (m *fakeMesh) RecalculateNormals()                            { m.recalcCalled = true }

func (m *fakeMesh) MergeByDistance(threshold float64) int {
	m.mergeCalled = true
	return m.mergedTo
}

// emptyTopology is a valid zero-content topology for meshes whose geometry
// is irrelevant to the test.
func emptyTopology() *contract.Topology {
	return contract.NewTopology(nil, nil, nil)
}

type fakeMaterial struct {
	name       string
	hasNodes   bool
	principled bool
	specGloss  bool
	graph      *contract.ShaderGraph
	texNodes   []contract.TextureNode
	albedo     []float64
	metalness  []float64
	roughness  []float64
	normalMaps []contract.NormalMapData
}

func (m *fakeMaterial) Name() string                              { return m.name }
func (m *fakeMaterial) HasNodes() bool                            { return m.hasNodes }
func (m *fakeMaterial) UsesPrincipledBSDF() bool                  { return m.principled }
func (m *fakeMaterial) UsesSpecGloss() bool                       { return m.specGloss }
func (m *fakeMaterial) Graph() *contract.ShaderGraph              { return m.graph }
func (m *fakeMaterial) ImageTextureNodes() []contract.TextureNode { return m.texNodes }
func (m *fakeMaterial) AlbedoPixels() []float64                   { return m.albedo }
func (m *fakeMaterial) MetalnessPixels() []float64                { return m.metalness }
func (m *fakeMaterial) RoughnessPixels() []float64                { return m.roughness }
func (m *fakeMaterial) NormalMaps() []contract.NormalMapData      { return m.normalMaps }

type fakeImage struct {
	name         string
	w, h         int
	depth        int
	channels     int
	channelDepth int
	colorSpace   string
	scaledTo     [2]int
	scaleCalled  bool
}

func (i *fakeImage) Name() string           { return i.name }
func (i *fakeImage) Size() (int, int)       { return i.w, i.h }
func (i *fakeImage) Depth() int             { return i.depth }
func (i *fakeImage) Channels() int          { return i.channels }
func (i *fakeImage) ChannelDepth() int      { return i.channelDepth }
func (i *fakeImage) ColorSpaceName() string { return i.colorSpace }

func (i *fakeImage) Scale(w, h int) {
	i.scaleCalled = true
	i.scaledTo = [2]int{w, h}
	i.w, i.h = w, h
}

// rgba8Image is a standard 2048 RGBA8 image double.
func rgba8Image(name string, w, h int) *fakeImage {
	return &fakeImage{
		name: name, w: w, h: h,
		depth: 32, channels: 4, channelDepth: 8,
		colorSpace: "sRGB",
	}
}

type fakeArmature struct {
	name  string
	bones []contract.Bone
}

func (a *fakeArmature) Name() string           { return a.name }
func (a *fakeArmature) Bones() []contract.Bone { return a.bones }

type fakeSkinnedMesh struct {
	name    string
	weights [][]float64
	limited int // limit applied by LimitBoneWeights via the scene
}

func (s *fakeSkinnedMesh) Name() string                  { return s.name }
func (s *fakeSkinnedMesh) PerVertexWeights() [][]float64 { return s.weights }

func (s *fakeSkinnedMesh) MaxInfluences() int {
	max := 0
	for _, w := range s.weights {
		if len(w) > max {
			max = len(w)
		}
	}
	return max
}

type fakeScene struct {
	meshes    []*fakeMesh
	armatures []*fakeArmature
	skinned   []*fakeSkinnedMesh
	materials []*fakeMaterial
	images    []*fakeImage
	orphans   map[string]int
}

func (s *fakeScene) MeshObjects() []contract.MeshObject {
	out := make([]contract.MeshObject, len(s.meshes))
	for i, m := range s.meshes {
		out[i] = m
	}
	return out
}

func (s *fakeScene) ArmatureObjects() []contract.ArmatureObject {
	out := make([]contract.ArmatureObject, len(s.armatures))
	for i, a := range s.armatures {
		out[i] = a
	}
	return out
}

func (s *fakeScene) SkinnedMeshes() []contract.SkinnedMesh {
	out := make([]contract.SkinnedMesh, len(s.skinned))
	for i, m := range s.skinned {
		out[i] = m
	}
	return out
}

func (s *fakeScene) Materials() []contract.Material {
	out := make([]contract.Material, len(s.materials))
	for i, m := range s.materials {
		out[i] = m
	}
	return out
}

func (s *fakeScene) Images() []contract.Image {
	out := make([]contract.Image, len(s.images))
	for i, img := range s.images {
		out[i] = img
	}
	return out
}

func (s *fakeScene) OrphanCounts() map[string]int {
	if s.orphans == nil {
		return map[string]int{}
	}
	return s.orphans
}

func (s *fakeScene) LimitBoneWeights(limit int) {
	for _, mesh := range s.skinned {
		mesh.limited = limit
		for i, weights := range mesh.weights {
			if len(weights) <= limit {
				continue
			}
			clamped := append([]float64(nil), weights[:limit]...)
			total := 0.0
			for _, w := range clamped {
				total += w
			}
			if total > 0 {
				for j := range clamped {
					clamped[j] /= total
				}
			}
			mesh.weights[i] = clamped
		}
	}
}

// solidPixels returns a flat RGBA pixel list of n pixels with the given
// channel values.
func solidPixels(n int, r, g, b, a float64) []float64 {
	out := make([]float64, 0, n*4)
	for i := 0; i < n; i++ {
		out = append(out, r, g, b, a)
	}
	return out
}

// quadMesh is a single unit quad with the given UV layer content.
func quadMesh(name string, triangles int) *fakeMesh {
	positions := [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	faces := [][]int{{0, 1, 2, 3}}
	return &fakeMesh{
		name:        name,
		triangles:   triangles,
		topology:    contract.NewTopology(positions, faces, nil),
		uvLayers:    map[string][]contract.UVCoord{},
		uvTris:      map[string][]contract.UVTriangle{},
		surfaceArea: 1.0,
		slotCount:   1,
		vertices:    4,
		mergedTo:    4,
	}
}
