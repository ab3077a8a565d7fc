// Package scenejson loads scene-facts snapshots into the capability
// interfaces consumed by the check engines. A snapshot is a single JSON
// document exported by the DCC-side extractor; everything the pipeline
// needs is in the file, so checks never touch the DCC itself.
package scenejson

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/artpipe/assetgate/internal/contract"
)

// snapshotFile is the on-disk snapshot document.
type snapshotFile struct {
	Meshes    []meshData     `json:"meshes"`
	Materials []materialData `json:"materials"`
	Images    []imageData    `json:"images"`
	Armatures []armatureData `json:"armatures"`
	Skinned   []skinnedData  `json:"skinned_meshes"`
	Orphans   map[string]int `json:"orphans"`
}

type meshData struct {
	Name              string        `json:"name"`
	TriangleCount     int           `json:"triangle_count"`
	Positions         [][3]float64  `json:"positions"`
	Faces             [][]int       `json:"faces"`
	LooseEdges        [][2]int      `json:"loose_edges,omitempty"`
	WorldSurfaceArea  float64       `json:"world_surface_area"`
	MaterialSlotCount int           `json:"material_slot_count"`
	UVLayers          []uvLayerData `json:"uv_layers,omitempty"`
}

type uvLayerData struct {
	Name      string                `json:"name"`
	Loops     []contract.UVCoord    `json:"loops"`
	Triangles []contract.UVTriangle `json:"triangles,omitempty"`
}

type materialData struct {
	Name            string                 `json:"name"`
	HasNodes        bool                   `json:"has_nodes"`
	PrincipledBSDF  bool                   `json:"principled_bsdf"`
	SpecGloss       bool                   `json:"spec_gloss"`
	Graph           *contract.ShaderGraph  `json:"graph,omitempty"`
	TextureNodes    []contract.TextureNode `json:"texture_nodes,omitempty"`
	AlbedoPixels    []float64              `json:"albedo_pixels,omitempty"`
	MetalnessPixels []float64              `json:"metalness_pixels,omitempty"`
	RoughnessPixels []float64              `json:"roughness_pixels,omitempty"`
	NormalMaps      []normalMapData        `json:"normal_maps,omitempty"`
}

type normalMapData struct {
	ImageName  string    `json:"image_name"`
	ColorSpace string    `json:"color_space"`
	Pixels     []float64 `json:"pixels,omitempty"`
}

type imageData struct {
	Name         string `json:"name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Depth        int    `json:"depth"`
	Channels     int    `json:"channels"`
	ChannelDepth int    `json:"channel_depth"`
	ColorSpace   string `json:"color_space"`
}

type armatureData struct {
	Name  string          `json:"name"`
	Bones []contract.Bone `json:"bones"`
}

type skinnedData struct {
	Name          string      `json:"name"`
	VertexWeights [][]float64 `json:"vertex_weights"`
}

// Load reads a snapshot file from disk and builds the scene.
func Load(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return FromJSON(raw)
}

// FromJSON builds the scene from raw snapshot bytes.
func FromJSON(raw []byte) (*Scene, error) {
	var file snapshotFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return build(&file)
}

func build(file *snapshotFile) (*Scene, error) {
	scene := &Scene{orphans: file.Orphans}

	for i := range file.Meshes {
		data := &file.Meshes[i]
		if err := validateMesh(data); err != nil {
			return nil, err
		}
		mesh := &Mesh{
			name:        data.Name,
			triangles:   data.TriangleCount,
			positions:   data.Positions,
			faces:       data.Faces,
			looseEdges:  data.LooseEdges,
			surfaceArea: data.WorldSurfaceArea,
			slots:       data.MaterialSlotCount,
			uvLayers:    make(map[string]uvLayerData, len(data.UVLayers)),
		}
		for _, layer := range data.UVLayers {
			mesh.layerOrder = append(mesh.layerOrder, layer.Name)
			mesh.uvLayers[layer.Name] = layer
		}
		mesh.rebuildTopology()
		scene.meshes = append(scene.meshes, mesh)
	}

	for i := range file.Materials {
		scene.materials = append(scene.materials, &material{data: &file.Materials[i]})
	}
	for i := range file.Images {
		scene.images = append(scene.images, &image{data: &file.Images[i]})
	}
	for i := range file.Armatures {
		scene.armatures = append(scene.armatures, &armature{data: &file.Armatures[i]})
	}
	for i := range file.Skinned {
		scene.skinned = append(scene.skinned, &skinnedMesh{data: &file.Skinned[i]})
	}

	return scene, nil
}

func validateMesh(data *meshData) error {
	for fi, loop := range data.Faces {
		if len(loop) < 3 {
			return fmt.Errorf("mesh %q: face %d has %d vertices", data.Name, fi, len(loop))
		}
		for _, v := range loop {
			if v < 0 || v >= len(data.Positions) {
				return fmt.Errorf("mesh %q: face %d references vertex %d of %d", data.Name, fi, v, len(data.Positions))
			}
		}
	}
	for ei, edge := range data.LooseEdges {
		for _, v := range edge {
			if v < 0 || v >= len(data.Positions) {
				return fmt.Errorf("mesh %q: loose edge %d references vertex %d of %d", data.Name, ei, v, len(data.Positions))
			}
		}
	}
	return nil
}
