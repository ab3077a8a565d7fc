// Package core implements the QA decision engine: the six check stages
// (geometry, uv, texture, pbr, armature, scene), the auto-remediation pass,
// and report aggregation. Everything in this package is deterministic and
// operates on the capability interfaces in internal/contract, so the same
// code runs against the production scene-facts adapter and in-memory test
// doubles.
package core
