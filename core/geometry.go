package core

import (
	"fmt"

	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/schema"
)

// degenerateAreaThreshold is the face area below which a face counts as
// degenerate (zero-area slivers, collinear triangles).
const degenerateAreaThreshold = 1e-6

// CheckGeometry runs all geometry checks and returns a StageResult.
// All six checks always run; earlier failures do not short-circuit later
// checks.
func CheckGeometry(scene contract.SceneContext, cfg schema.GeometryConfig) schema.StageResult {
	meshes := scene.MeshObjects()
	topos := make([]*contract.Topology, len(meshes))
	for i, m := range meshes {
		topos[i] = m.Topology()
	}

	checks := []schema.CheckResult{
		checkPolycount(meshes, cfg),
		checkNonManifold(topos),
		checkDegenerateFaces(topos),
		checkNormalConsistency(topos),
		checkLooseGeometry(topos),
		checkInteriorFaces(topos),
	}

	return schema.StageResult{
		Name:   schema.StageGeometry,
		Status: schema.StageStatusOf(checks),
		Checks: checks,
	}
}

func checkPolycount(meshes []contract.MeshObject, cfg schema.GeometryConfig) schema.CheckResult {
	total := 0
	for _, m := range meshes {
		total += m.TriangleCount()
	}
	budget := cfg.Budget()

	if total < budget.Min || total > budget.Max {
		return schema.CheckResult{
			Name:          schema.CheckPolycountBudget,
			Status:        schema.CheckFail,
			MeasuredValue: total,
			Threshold:     budget.Max,
			Message: fmt.Sprintf("Triangle count %d outside budget (%d, %d) for '%s'",
				total, budget.Min, budget.Max, cfg.Category),
		}
	}
	return schema.CheckResult{
		Name:          schema.CheckPolycountBudget,
		Status:        schema.CheckPass,
		MeasuredValue: total,
		Threshold:     budget.Max,
		Message:       fmt.Sprintf("Triangle count %d within budget (%d, %d)", total, budget.Min, budget.Max),
	}
}

func checkNonManifold(topos []*contract.Topology) schema.CheckResult {
	count := 0
	for _, topo := range topos {
		for e := 0; e < topo.EdgeCount(); e++ {
			if !topo.IsManifoldEdge(e) {
				count++
			}
		}
	}
	return countCheck(schema.CheckNonManifold, count,
		fmt.Sprintf("%d non-manifold edge(s) found", count),
		"No non-manifold edges")
}

func checkDegenerateFaces(topos []*contract.Topology) schema.CheckResult {
	count := 0
	for _, topo := range topos {
		for f := 0; f < topo.FaceCount(); f++ {
			if topo.FaceArea(f) < degenerateAreaThreshold {
				count++
			}
		}
	}
	return countCheck(schema.CheckDegenerateFaces, count,
		fmt.Sprintf("%d degenerate face(s) found (area < 1e-6)", count),
		"No degenerate faces")
}

// checkNormalConsistency detects faces with inconsistent winding order
// relative to neighbours. Two faces sharing an edge are consistently wound
// when they traverse that edge in opposite directions; if both traverse it
// starting from the same vertex, one of them has a flipped normal.
func checkNormalConsistency(topos []*contract.Topology) schema.CheckResult {
	count := 0
	for _, topo := range topos {
		inconsistent := make(map[int]struct{})
		for e := 0; e < topo.EdgeCount(); e++ {
			linked := topo.EdgeLinkedFaces(e)
			if len(linked) != 2 {
				continue
			}
			f1, f2 := linked[0], linked[1]
			s1, ok1 := topo.FaceEdgeStart(f1, e)
			s2, ok2 := topo.FaceEdgeStart(f2, e)
			if ok1 && ok2 && s1 == s2 {
				inconsistent[f1] = struct{}{}
				inconsistent[f2] = struct{}{}
			}
		}
		count += len(inconsistent)
	}
	return countCheck(schema.CheckNormalConsistency, count,
		fmt.Sprintf("%d face(s) with inconsistent normals", count),
		"Face normals consistent")
}

// checkLooseGeometry counts vertices and edges with no linked faces.
func checkLooseGeometry(topos []*contract.Topology) schema.CheckResult {
	count := 0
	for _, topo := range topos {
		for v := 0; v < topo.VertexCount(); v++ {
			if topo.VertexLinkedFaceCount(v) == 0 {
				count++
			}
		}
		for e := 0; e < topo.EdgeCount(); e++ {
			if len(topo.EdgeLinkedFaces(e)) == 0 {
				count++
			}
		}
	}
	return countCheck(schema.CheckLooseGeometry, count,
		fmt.Sprintf("%d loose vertex/edge element(s) found", count),
		"No loose geometry")
}

// checkInteriorFaces flags faces whose every edge is shared by more than two
// faces. When all of a face's edges have 3+ linked faces the face is likely
// enclosed inside the mesh volume.
func checkInteriorFaces(topos []*contract.Topology) schema.CheckResult {
	count := 0
	for _, topo := range topos {
		for f := 0; f < topo.FaceCount(); f++ {
			edges := topo.FaceEdges(f)
			if len(edges) == 0 {
				continue
			}
			interior := true
			for _, e := range edges {
				if len(topo.EdgeLinkedFaces(e)) <= 2 {
					interior = false
					break
				}
			}
			if interior {
				count++
			}
		}
	}
	return countCheck(schema.CheckInteriorFaces, count,
		fmt.Sprintf("%d potential interior face(s) found", count),
		"No interior faces detected")
}

// countCheck builds the common zero-threshold count check: any non-zero
// count fails.
func countCheck(name string, count int, failMsg, passMsg string) schema.CheckResult {
	status := schema.CheckPass
	msg := passMsg
	if count > 0 {
		status = schema.CheckFail
		msg = failMsg
	}
	return schema.CheckResult{
		Name:          name,
		Status:        status,
		MeasuredValue: count,
		Threshold:     0,
		Message:       msg,
	}
}
