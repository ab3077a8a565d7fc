package core

import (
	"path/filepath"

	"github.com/artpipe/assetgate/schema"
)

// Unity-compatible export conventions. Axis and scale are fixed so the
// engine importer needs no per-asset configuration.
const (
	ExportAxisConvention = "-Z forward, Y up"
	ExportScale          = 1.0
)

// categoryFolder maps asset categories to engine-side art folders.
var categoryFolder = map[schema.AssetCategory]string{
	schema.CategoryCharacter: "Characters",
	schema.CategoryEnvProp:   "Environment/Props",
	schema.CategoryHeroProp:  "Environment/Props",
	schema.CategoryVehicle:   "Vehicles",
	schema.CategoryWeapon:    "Weapons",
	schema.CategoryUI:        "UI",
}

// BuildExportInfo assembles the export descriptor for a processed asset.
func BuildExportInfo(format, path string) schema.ExportInfo {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return schema.ExportInfo{
		Format:         format,
		Path:           abs,
		AxisConvention: ExportAxisConvention,
		Scale:          ExportScale,
	}
}

// RouteSubdir returns the destination subdirectory for an asset's output
// files based on the overall QA verdict: passing assets go to the engine
// drop, review-flagged assets to the review queue, failures to quarantine.
func RouteSubdir(status schema.OverallStatus, category schema.AssetCategory, assetID string) string {
	switch status {
	case schema.OverallPass, schema.OverallPassWithFixes:
		folder, ok := categoryFolder[category]
		if !ok {
			folder = "Other"
		}
		return filepath.Join("unity_drop", "Art", folder, assetID)
	case schema.OverallNeedsReview:
		return filepath.Join("review_queue", assetID)
	default:
		return filepath.Join("quarantine", assetID)
	}
}
