package scenejson

import (
	"math"
	"sort"

	"github.com/artpipe/assetgate/internal/contract"
)

// Scene is the in-memory snapshot implementing contract.SceneContext.
// Remediation mutations act on the in-memory copy only; the snapshot file
// on disk is never rewritten.
type Scene struct {
	meshes    []*Mesh
	materials []*material
	images    []*image
	armatures []*armature
	skinned   []*skinnedMesh
	orphans   map[string]int
}

func (s *Scene) MeshObjects() []contract.MeshObject {
	out := make([]contract.MeshObject, len(s.meshes))
	for i, m := range s.meshes {
		out[i] = m
	}
	return out
}

func (s *Scene) ArmatureObjects() []contract.ArmatureObject {
	out := make([]contract.ArmatureObject, len(s.armatures))
	for i, a := range s.armatures {
		out[i] = a
	}
	return out
}

func (s *Scene) SkinnedMeshes() []contract.SkinnedMesh {
	out := make([]contract.SkinnedMesh, len(s.skinned))
	for i, m := range s.skinned {
		out[i] = m
	}
	return out
}

func (s *Scene) Materials() []contract.Material {
	out := make([]contract.Material, len(s.materials))
	for i, m := range s.materials {
		out[i] = m
	}
	return out
}

func (s *Scene) Images() []contract.Image {
	out := make([]contract.Image, len(s.images))
	for i, img := range s.images {
		out[i] = img
	}
	return out
}

func (s *Scene) OrphanCounts() map[string]int {
	if s.orphans == nil {
		return map[string]int{}
	}
	return s.orphans
}

// LimitBoneWeights clamps every skinned vertex to its strongest limit
// influences and renormalizes the survivors.
func (s *Scene) LimitBoneWeights(limit int) {
	for _, mesh := range s.skinned {
		for i, weights := range mesh.data.VertexWeights {
			if len(weights) <= limit {
				continue
			}
			kept := append([]float64(nil), weights...)
			sort.Sort(sort.Reverse(sort.Float64Slice(kept)))
			kept = kept[:limit]
			total := 0.0
			for _, w := range kept {
				total += w
			}
			if total > 0 {
				for j := range kept {
					kept[j] /= total
				}
			}
			mesh.data.VertexWeights[i] = kept
		}
	}
}

// Mesh is one mesh object of the snapshot.
type Mesh struct {
	name        string
	triangles   int
	positions   [][3]float64
	faces       [][]int
	looseEdges  [][2]int
	surfaceArea float64
	slots       int
	uvLayers    map[string]uvLayerData
	layerOrder  []string

	topology *contract.Topology
}

func (m *Mesh) rebuildTopology() {
	m.topology = contract.NewTopology(m.positions, m.faces, m.looseEdges)
}

func (m *Mesh) Name() string                 { return m.name }
func (m *Mesh) TriangleCount() int           { return m.triangles }
func (m *Mesh) Topology() *contract.Topology { return m.topology }
func (m *Mesh) WorldSurfaceArea() float64    { return m.surfaceArea }
func (m *Mesh) MaterialSlotCount() int       { return m.slots }
func (m *Mesh) VertexCount() int             { return len(m.positions) }

func (m *Mesh) UVLayerNames() []string {
	return append([]string(nil), m.layerOrder...)
}

func (m *Mesh) UVLoops(layer string) []contract.UVCoord {
	return m.uvLayers[layer].Loops
}

func (m *Mesh) UVTriangles(layer string) []contract.UVTriangle {
	return m.uvLayers[layer].Triangles
}

// RecalculateNormals makes face winding consistent across each connected
// face region: a breadth-first walk from an arbitrary seed face flips any
// face traversing a shared manifold edge in the same direction as its
// already-oriented neighbor.
func (m *Mesh) RecalculateNormals() {
	if len(m.faces) == 0 {
		return
	}

	oriented := make([]bool, len(m.faces))
	var queue []int

	for seed := range m.faces {
		if oriented[seed] {
			continue
		}
		oriented[seed] = true
		queue = append(queue[:0], seed)

		for len(queue) > 0 {
			face := queue[0]
			queue = queue[1:]

			for _, edge := range m.topology.FaceEdges(face) {
				linked := m.topology.EdgeLinkedFaces(edge)
				if len(linked) != 2 {
					continue
				}
				other := linked[0]
				if other == face {
					other = linked[1]
				}
				if oriented[other] {
					continue
				}
				myStart, _ := m.topology.FaceEdgeStart(face, edge)
				otherStart, ok := m.topology.FaceEdgeStart(other, edge)
				if ok && otherStart == myStart {
					reverseLoop(m.faces[other])
				}
				oriented[other] = true
				queue = append(queue, other)
			}
		}
	}
	m.rebuildTopology()
}

func reverseLoop(loop []int) {
	for i, j := 0, len(loop)-1; i < j; i, j = i+1, j-1 {
		loop[i], loop[j] = loop[j], loop[i]
	}
}

// MergeByDistance welds vertices closer than threshold, remaps face loops
// and loose edges, drops faces and edges that collapse, and returns the new
// vertex count.
func (m *Mesh) MergeByDistance(threshold float64) int {
	remap := weldVertices(m.positions, threshold)

	merged := make([][3]float64, 0, len(m.positions))
	newIndex := make([]int, len(m.positions))
	for i, target := range remap {
		if target == i {
			newIndex[i] = len(merged)
			merged = append(merged, m.positions[i])
		}
	}
	for i, target := range remap {
		newIndex[i] = newIndex[target]
	}

	var faces [][]int
	for _, loop := range m.faces {
		mapped := make([]int, 0, len(loop))
		for _, v := range loop {
			nv := newIndex[v]
			if len(mapped) == 0 || mapped[len(mapped)-1] != nv {
				mapped = append(mapped, nv)
			}
		}
		if len(mapped) > 1 && mapped[0] == mapped[len(mapped)-1] {
			mapped = mapped[:len(mapped)-1]
		}
		if len(mapped) >= 3 {
			faces = append(faces, mapped)
		}
	}

	var looseEdges [][2]int
	for _, edge := range m.looseEdges {
		a, b := newIndex[edge[0]], newIndex[edge[1]]
		if a != b {
			looseEdges = append(looseEdges, [2]int{a, b})
		}
	}

	m.positions = merged
	m.faces = faces
	m.looseEdges = looseEdges
	m.rebuildTopology()
	return len(m.positions)
}

// weldVertices assigns each vertex the index of its cluster representative.
// A spatial grid keyed by threshold-sized cells keeps the candidate set
// small; each vertex joins the first representative within threshold found
// in its own or a neighboring cell.
func weldVertices(positions [][3]float64, threshold float64) []int {
	remap := make([]int, len(positions))
	if threshold <= 0 {
		for i := range remap {
			remap[i] = i
		}
		return remap
	}

	type cell [3]int
	grid := make(map[cell][]int)
	cellOf := func(p [3]float64) cell {
		return cell{
			int(math.Floor(p[0] / threshold)),
			int(math.Floor(p[1] / threshold)),
			int(math.Floor(p[2] / threshold)),
		}
	}

	for i, p := range positions {
		remap[i] = i
		home := cellOf(p)
	search:
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for dz := -1; dz <= 1; dz++ {
					key := cell{home[0] + dx, home[1] + dy, home[2] + dz}
					for _, rep := range grid[key] {
						q := positions[rep]
						d0, d1, d2 := p[0]-q[0], p[1]-q[1], p[2]-q[2]
						if d0*d0+d1*d1+d2*d2 <= threshold*threshold {
							remap[i] = rep
							break search
						}
					}
				}
			}
		}
		if remap[i] == i {
			grid[home] = append(grid[home], i)
		}
	}
	return remap
}

type material struct {
	data *materialData
}

func (m *material) Name() string                 { return m.data.Name }
func (m *material) HasNodes() bool               { return m.data.HasNodes }
func (m *material) UsesPrincipledBSDF() bool     { return m.data.PrincipledBSDF }
func (m *material) UsesSpecGloss() bool          { return m.data.SpecGloss }
func (m *material) Graph() *contract.ShaderGraph { return m.data.Graph }

func (m *material) ImageTextureNodes() []contract.TextureNode {
	return m.data.TextureNodes
}

func (m *material) AlbedoPixels() []float64    { return m.data.AlbedoPixels }
func (m *material) MetalnessPixels() []float64 { return m.data.MetalnessPixels }
func (m *material) RoughnessPixels() []float64 { return m.data.RoughnessPixels }

func (m *material) NormalMaps() []contract.NormalMapData {
	out := make([]contract.NormalMapData, len(m.data.NormalMaps))
	for i, nm := range m.data.NormalMaps {
		out[i] = contract.NormalMapData{
			ImageName:  nm.ImageName,
			ColorSpace: nm.ColorSpace,
			Pixels:     nm.Pixels,
		}
	}
	return out
}

type image struct {
	data *imageData
}

func (i *image) Name() string           { return i.data.Name }
func (i *image) Size() (int, int)       { return i.data.Width, i.data.Height }
func (i *image) Depth() int             { return i.data.Depth }
func (i *image) Channels() int          { return i.data.Channels }
func (i *image) ChannelDepth() int      { return i.data.ChannelDepth }
func (i *image) ColorSpaceName() string { return i.data.ColorSpace }

func (i *image) Scale(w, h int) {
	i.data.Width = w
	i.data.Height = h
}

type armature struct {
	data *armatureData
}

func (a *armature) Name() string           { return a.data.Name }
func (a *armature) Bones() []contract.Bone { return a.data.Bones }

type skinnedMesh struct {
	data *skinnedData
}

func (s *skinnedMesh) Name() string                  { return s.data.Name }
func (s *skinnedMesh) PerVertexWeights() [][]float64 { return s.data.VertexWeights }

func (s *skinnedMesh) MaxInfluences() int {
	max := 0
	for _, weights := range s.data.VertexWeights {
		if len(weights) > max {
			max = len(weights)
		}
	}
	return max
}
