package contract

import "math"

// Vec3 is a 3D position.
type Vec3 [3]float64

// Topology is the mesh topology handle consumed by the geometry checks:
// faces, edges and vertices with per-element adjacency. Edges are derived
// from the face loops; LooseEdges lists edges not bounded by any face.
// The handle is immutable once built.
type Topology struct {
	positions  [][3]float64
	faces      [][]int
	looseEdges [][2]int

	edges     [][2]int
	edgeIndex map[[2]int]int
	edgeFaces [][]int
	vertFaces []int
	faceEdges [][]int
}

// NewTopology builds a topology handle from vertex positions, ordered face
// vertex loops and any explicit loose edges.
func NewTopology(positions [][3]float64, faces [][]int, looseEdges [][2]int) *Topology {
	t := &Topology{
		positions:  positions,
		faces:      faces,
		looseEdges: looseEdges,
		edgeIndex:  make(map[[2]int]int),
		vertFaces:  make([]int, len(positions)),
		faceEdges:  make([][]int, len(faces)),
	}

	addEdge := func(a, b int) int {
		key := orderedPair(a, b)
		if idx, ok := t.edgeIndex[key]; ok {
			return idx
		}
		idx := len(t.edges)
		t.edges = append(t.edges, key)
		t.edgeFaces = append(t.edgeFaces, nil)
		t.edgeIndex[key] = idx
		return idx
	}

	for fi, loop := range faces {
		for i := range loop {
			a := loop[i]
			b := loop[(i+1)%len(loop)]
			ei := addEdge(a, b)
			t.edgeFaces[ei] = append(t.edgeFaces[ei], fi)
			t.faceEdges[fi] = append(t.faceEdges[fi], ei)
		}
		for _, v := range loop {
			if v >= 0 && v < len(t.vertFaces) {
				t.vertFaces[v]++
			}
		}
	}
	for _, e := range looseEdges {
		addEdge(e[0], e[1])
	}
	return t
}

func orderedPair(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// VertexCount returns the number of vertices.
func (t *Topology) VertexCount() int { return len(t.positions) }

// FaceCount returns the number of faces.
func (t *Topology) FaceCount() int { return len(t.faces) }

// EdgeCount returns the number of distinct edges.
func (t *Topology) EdgeCount() int { return len(t.edges) }

// FaceLoop returns the ordered vertex loop of face f.
func (t *Topology) FaceLoop(f int) []int { return t.faces[f] }

// Edge returns the (low, high) vertex pair of edge e.
func (t *Topology) Edge(e int) (int, int) { return t.edges[e][0], t.edges[e][1] }

// EdgeLinkedFaces returns the indices of faces sharing edge e.
func (t *Topology) EdgeLinkedFaces(e int) []int { return t.edgeFaces[e] }

// IsManifoldEdge reports whether edge e is shared by exactly two faces.
func (t *Topology) IsManifoldEdge(e int) bool { return len(t.edgeFaces[e]) == 2 }

// VertexLinkedFaceCount returns how many face corners reference vertex v.
func (t *Topology) VertexLinkedFaceCount(v int) int { return t.vertFaces[v] }

// FaceEdges returns the edge indices bounding face f, in traversal order.
func (t *Topology) FaceEdges(f int) []int { return t.faceEdges[f] }

// FaceEdgeStart returns the vertex at which face f traverses edge e, i.e.
// the first vertex of the ordered pair in f's loop. Returns false when e is
// not an edge of f.
func (t *Topology) FaceEdgeStart(f, e int) (int, bool) {
	loop := t.faces[f]
	for i := range loop {
		a := loop[i]
		b := loop[(i+1)%len(loop)]
		if idx, ok := t.edgeIndex[orderedPair(a, b)]; ok && idx == e {
			return a, true
		}
	}
	return 0, false
}

// FaceArea returns the area of face f computed with Newell's formula, so
// arbitrary planar polygons are handled, not just triangles.
func (t *Topology) FaceArea(f int) float64 {
	loop := t.faces[f]
	if len(loop) < 3 {
		return 0
	}
	var nx, ny, nz float64
	for i := range loop {
		p := t.positions[loop[i]]
		q := t.positions[loop[(i+1)%len(loop)]]
		nx += (p[1] - q[1]) * (p[2] + q[2])
		ny += (p[2] - q[2]) * (p[0] + q[0])
		nz += (p[0] - q[0]) * (p[1] + q[1])
	}
	return math.Sqrt(nx*nx+ny*ny+nz*nz) / 2
}
