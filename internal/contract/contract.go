// Package contract provides capability interfaces and shared utilities for
// the assetgate internal architecture. The check engines in core consume
// only these interfaces, so they can be exercised against the scene-facts
// snapshot adapter in production and in-memory doubles in tests.
package contract

import (
	"time"

	"github.com/artpipe/assetgate/schema"
)

// UVCoord is one UV loop coordinate.
type UVCoord struct {
	U float64 `json:"u"`
	V float64 `json:"v"`
}

// UVTriangle is one triangle in UV space.
type UVTriangle [3]UVCoord

// TextureNode is one image-texture node inside a material's shader graph.
// SocketName is the downstream socket its color output feeds (falls back to
// the image name when unconnected) and drives color-space inference.
type TextureNode struct {
	SocketName      string `json:"socket_name"`
	ImageName       string `json:"image_name"`
	FilepathMissing bool   `json:"filepath_missing"`
}

// ShaderNode is one node in a material's shader graph.
type ShaderNode struct {
	ID   string `json:"id"`
	Type string `json:"type"` // e.g. TEX_IMAGE, BSDF_PRINCIPLED, OUTPUT_MATERIAL
}

// ShaderLink is a directed edge in a shader graph (from node -> to node).
type ShaderLink struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ShaderGraph is the node/link structure of a material.
type ShaderGraph struct {
	Nodes []ShaderNode `json:"nodes"`
	Links []ShaderLink `json:"links"`
}

// Shader node type identifiers used across the graph checks.
const (
	NodeTypeImageTexture   = "TEX_IMAGE"
	NodeTypePrincipledBSDF = "BSDF_PRINCIPLED"
	NodeTypeMaterialOutput = "OUTPUT_MATERIAL"
)

// NormalMapData carries pixel data for one image feeding a normal-map node.
// Pixels are flat RGBA floats in linear [0, 1]; nil when unavailable.
type NormalMapData struct {
	ImageName  string
	ColorSpace string
	Pixels     []float64
}

// Bone is a single bone inside a skeleton. Parent is the parent bone name;
// empty means this bone is a hierarchy root.
type Bone struct {
	Name   string `json:"name"`
	Parent string `json:"parent,omitempty"`
}

// MeshObject exposes the mesh-level facts the check engines consume, plus
// the mutation entry points used only by remediation.
type MeshObject interface {
	Name() string
	TriangleCount() int

	// Topology returns the topology handle for this mesh.
	Topology() *Topology

	// UV accessor.
	UVLayerNames() []string
	UVLoops(layer string) []UVCoord
	UVTriangles(layer string) []UVTriangle
	WorldSurfaceArea() float64

	MaterialSlotCount() int

	// Mutation entry points (remediation only).
	VertexCount() int
	RecalculateNormals()
	MergeByDistance(threshold float64) int
}

// Material exposes shading-model facts and pixel sampling accessors.
// Albedo pixels are pre-converted to sRGB [0, 1]; metalness, roughness and
// normal pixels are linear [0, 1]. Nil slices mean the texture is absent.
type Material interface {
	Name() string
	HasNodes() bool
	UsesPrincipledBSDF() bool
	UsesSpecGloss() bool
	Graph() *ShaderGraph

	ImageTextureNodes() []TextureNode

	AlbedoPixels() []float64
	MetalnessPixels() []float64
	RoughnessPixels() []float64
	NormalMaps() []NormalMapData
}

// Image exposes per-image facts and the resize mutation entry point.
// Depth is the total bits per pixel (24 for RGB8, 32 for RGBA8);
// ChannelDepth is bits per channel, used for VRAM estimation.
type Image interface {
	Name() string
	Size() (w, h int)
	Depth() int
	Channels() int
	ChannelDepth() int
	ColorSpaceName() string

	Scale(w, h int)
}

// ArmatureObject is a skeleton object in the scene.
type ArmatureObject interface {
	Name() string
	Bones() []Bone
}

// SkinnedMesh is a mesh object with per-vertex skin-weight data.
// PerVertexWeights returns one entry per vertex holding its non-zero
// weights; an empty entry means the vertex has no group assignment.
type SkinnedMesh interface {
	Name() string
	PerVertexWeights() [][]float64
	MaxInfluences() int
}

// SceneContext is the full capability surface of one loaded asset scene.
type SceneContext interface {
	MeshObjects() []MeshObject
	ArmatureObjects() []ArmatureObject
	SkinnedMeshes() []SkinnedMesh
	Materials() []Material

	// Images returns the de-duplicated image list for the scene.
	Images() []Image

	// OrphanCounts returns counts of zero-user data blocks keyed by
	// category: "meshes", "materials", "images".
	OrphanCounts() map[string]int

	// LimitBoneWeights clamps every vertex to at most limit influences and
	// renormalizes, scene-wide (remediation only).
	LimitBoneWeights(limit int)
}

// ReportStore defines the interface for persisting QA runs and their check
// results. This allows mocking the store for testing.
type ReportStore interface {
	// BeginRun creates a new run row for the asset and returns its unique ID
	BeginRun(meta schema.AssetMetadata, startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with the final verdict and performance numbers
	EndRun(runID int64, endTime time.Time, report *schema.QaReport) error

	// RecordCheckResults stores the check rows produced by one stage
	RecordCheckResults(runID int64, stageName string, checks []schema.CheckResult, recordedAt time.Time) error

	// GetStatus returns status information about the report store
	GetStatus() (schema.ReportStoreStatus, error)

	// GetAllRuns retrieves every persisted run, oldest first
	GetAllRuns() ([]schema.QaRunRecord, error)

	// GetAllCheckRecords retrieves every persisted check row
	GetAllCheckRecords() ([]schema.CheckRecord, error)

	// Close closes the underlying connection
	Close() error
}

// StoreManager provides access to the report store.
type StoreManager interface {
	GetReportStore() ReportStore
}
