// Package algo holds the pure computational geometry used by the check
// engines. Everything here is deterministic and free of scene access, so it
// can be tested with hand-built coordinates.
package algo

import (
	"math"

	"github.com/artpipe/assetgate/internal/contract"
)

// gridResolution is the spatial-hash grid resolution for overlap candidate
// generation. UV space is [0, 1]², so 16 gives cells of 1/16 UV units.
const gridResolution = 16

// Cross2D returns the z component of the cross product (a-o) x (b-o).
func Cross2D(o, a, b contract.UVCoord) float64 {
	return (a.U-o.U)*(b.V-o.V) - (a.V-o.V)*(b.U-o.U)
}

// SegmentsIntersect reports whether segments a0-a1 and b0-b1 properly
// intersect. Touching endpoints and collinear overlap do not count.
func SegmentsIntersect(a0, a1, b0, b1 contract.UVCoord) bool {
	d1 := Cross2D(b0, b1, a0)
	d2 := Cross2D(b0, b1, a1)
	d3 := Cross2D(a0, a1, b0)
	d4 := Cross2D(a0, a1, b1)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// PointInTriangle reports whether point p lies inside or on the boundary of
// triangle t0-t1-t2, regardless of winding.
func PointInTriangle(p, t0, t1, t2 contract.UVCoord) bool {
	d0 := Cross2D(t0, t1, p)
	d1 := Cross2D(t1, t2, p)
	d2 := Cross2D(t2, t0, p)
	hasNeg := d0 < 0 || d1 < 0 || d2 < 0
	hasPos := d0 > 0 || d1 > 0 || d2 > 0
	return !(hasNeg && hasPos)
}

// TrianglesOverlap is an exact 2D triangle-triangle overlap test. It reports
// true when the triangles share any interior area, through edge crossings or
// containment of one triangle inside the other.
func TrianglesOverlap(t1, t2 contract.UVTriangle) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if SegmentsIntersect(t1[i], t1[(i+1)%3], t2[j], t2[(j+1)%3]) {
				return true
			}
		}
	}
	if PointInTriangle(t1[0], t2[0], t2[1], t2[2]) {
		return true
	}
	if PointInTriangle(t2[0], t1[0], t1[1], t1[2]) {
		return true
	}
	return false
}

// TriangleArea2D returns the area of a UV-space triangle.
func TriangleArea2D(tri contract.UVTriangle) float64 {
	return math.Abs((tri[1].U-tri[0].U)*(tri[2].V-tri[0].V)-
		(tri[2].U-tri[0].U)*(tri[1].V-tri[0].V)) / 2.0
}

func triangleAABB(tri contract.UVTriangle) (x0, y0, x1, y1 float64) {
	x0, y0 = tri[0].U, tri[0].V
	x1, y1 = x0, y0
	for _, p := range tri[1:] {
		x0 = math.Min(x0, p.U)
		y0 = math.Min(y0, p.V)
		x1 = math.Max(x1, p.U)
		y1 = math.Max(y1, p.V)
	}
	return x0, y0, x1, y1
}

type cellKey struct {
	cx int
	cy int
}

type pairKey struct {
	a int
	b int
}

// FindOverlappingPairs returns the count of overlapping triangle pairs.
// A spatial hash over triangle bounding boxes keeps the pair candidates
// local; each candidate pair is tested exactly once, so the count is
// independent of input order.
func FindOverlappingPairs(triangles []contract.UVTriangle) int {
	if len(triangles) < 2 {
		return 0
	}

	grid := make(map[cellKey][]int)
	for idx, tri := range triangles {
		x0, y0, x1, y1 := triangleAABB(tri)
		cx0 := int(x0 * gridResolution)
		cy0 := int(y0 * gridResolution)
		cx1 := int(x1 * gridResolution)
		cy1 := int(y1 * gridResolution)
		for cx := cx0; cx <= cx1; cx++ {
			for cy := cy0; cy <= cy1; cy++ {
				key := cellKey{cx, cy}
				grid[key] = append(grid[key], idx)
			}
		}
	}

	checked := make(map[pairKey]struct{})
	overlapCount := 0
	for _, cellIndices := range grid {
		n := len(cellIndices)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				a, b := cellIndices[i], cellIndices[j]
				if a > b {
					a, b = b, a
				}
				pair := pairKey{a, b}
				if _, ok := checked[pair]; ok {
					continue
				}
				checked[pair] = struct{}{}
				if TrianglesOverlap(triangles[a], triangles[b]) {
					overlapCount++
				}
			}
		}
	}
	return overlapCount
}
