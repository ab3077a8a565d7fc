package contract

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quadStrip is two quads sharing one edge:
//
//	3---2---5
//	|   |   |
//	0---1---4
func quadStrip() *Topology {
	positions := [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{2, 0, 0}, {2, 1, 0},
	}
	faces := [][]int{
		{0, 1, 2, 3},
		{1, 4, 5, 2},
	}
	return NewTopology(positions, faces, nil)
}

func TestTopologyCounts(t *testing.T) {
	topo := quadStrip()

	assert.Equal(t, 6, topo.VertexCount())
	assert.Equal(t, 2, topo.FaceCount())
	// 4 + 4 edges minus the one shared edge (1,2).
	assert.Equal(t, 7, topo.EdgeCount())
}

func TestTopologyManifoldEdges(t *testing.T) {
	topo := quadStrip()

	manifold := 0
	for e := 0; e < topo.EdgeCount(); e++ {
		if topo.IsManifoldEdge(e) {
			manifold++
			a, b := topo.Edge(e)
			assert.Equal(t, [2]int{1, 2}, [2]int{a, b})
		}
	}
	// Only the shared edge is bounded by two faces; boundary edges are not.
	assert.Equal(t, 1, manifold)
}

func TestTopologyNonManifoldEdge(t *testing.T) {
	// Three triangles fanning around the same edge (0,1).
	positions := [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0, -1, 0},
	}
	faces := [][]int{
		{0, 1, 2},
		{0, 1, 3},
		{0, 1, 4},
	}
	topo := NewTopology(positions, faces, nil)

	shared := -1
	for e := 0; e < topo.EdgeCount(); e++ {
		if len(topo.EdgeLinkedFaces(e)) == 3 {
			shared = e
		}
	}
	require.GreaterOrEqual(t, shared, 0)
	assert.False(t, topo.IsManifoldEdge(shared))
}

func TestTopologyLooseVertex(t *testing.T) {
	positions := [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{5, 5, 5}, // not referenced by any face
	}
	faces := [][]int{{0, 1, 2}}
	topo := NewTopology(positions, faces, nil)

	assert.Equal(t, 1, topo.VertexLinkedFaceCount(0))
	assert.Equal(t, 0, topo.VertexLinkedFaceCount(3))
}

func TestTopologyLooseEdges(t *testing.T) {
	positions := [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {3, 3, 3}, {4, 3, 3},
	}
	faces := [][]int{{0, 1, 2}}
	topo := NewTopology(positions, faces, [][2]int{{3, 4}})

	assert.Equal(t, 4, topo.EdgeCount())
	ei := -1
	for e := 0; e < topo.EdgeCount(); e++ {
		if len(topo.EdgeLinkedFaces(e)) == 0 {
			ei = e
		}
	}
	require.GreaterOrEqual(t, ei, 0)
	a, b := topo.Edge(ei)
	assert.Equal(t, [2]int{3, 4}, [2]int{a, b})
}

func TestTopologyFaceEdgeStart(t *testing.T) {
	topo := quadStrip()

	// The shared edge (1,2) is traversed 1->2 by face 0 and 2->1 by face 1,
	// which is the consistent winding for adjacent faces.
	shared := -1
	for e := 0; e < topo.EdgeCount(); e++ {
		if topo.IsManifoldEdge(e) {
			shared = e
		}
	}
	require.GreaterOrEqual(t, shared, 0)

	s0, ok := topo.FaceEdgeStart(0, shared)
	require.True(t, ok)
	s1, ok := topo.FaceEdgeStart(1, shared)
	require.True(t, ok)
	assert.NotEqual(t, s0, s1)

	// An edge not belonging to a face reports false.
	_, ok = topo.FaceEdgeStart(0, topo.FaceEdges(1)[1])
	assert.False(t, ok)
}

func TestTopologyFaceArea(t *testing.T) {
	topo := quadStrip()
	assert.InDelta(t, 1.0, topo.FaceArea(0), 1e-9)
	assert.InDelta(t, 1.0, topo.FaceArea(1), 1e-9)

	// Right triangle with legs of length 2 has area 2.
	tri := NewTopology([][3]float64{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}}, [][]int{{0, 1, 2}}, nil)
	assert.InDelta(t, 2.0, tri.FaceArea(0), 1e-9)

	// Collinear points give zero area.
	degen := NewTopology([][3]float64{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}}, [][]int{{0, 1, 2}}, nil)
	assert.Less(t, degen.FaceArea(0), math.SmallestNonzeroFloat64+1e-9)
}
