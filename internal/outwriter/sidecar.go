package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/artpipe/assetgate/schema"
)

// WriteSidecar writes the <asset_id>_qa.json manifest next to the routed
// asset files and returns its path. The directory is created if missing.
func WriteSidecar(report *schema.QaReport, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create sidecar dir: %w", err)
	}

	path := filepath.Join(dir, report.Metadata.AssetID+"_qa.json")
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode sidecar: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write sidecar: %w", err)
	}
	return path, nil
}

// RouteAssetFile copies the submitted asset into baseDir/subdir, creating
// directories as needed, and returns the destination path. The source file
// is left in place; routing is additive.
func RouteAssetFile(srcPath, baseDir, subdir string) (string, error) {
	destDir := filepath.Join(baseDir, subdir)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create route dir: %w", err)
	}

	dest := filepath.Join(destDir, filepath.Base(srcPath))
	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("open asset: %w", err)
	}
	defer func() { _ = src.Close() }()

	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create routed copy: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("copy asset: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close routed copy: %w", err)
	}
	return dest, nil
}
