package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/artpipe/assetgate/core"
	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/internal/iostore"
	"github.com/artpipe/assetgate/internal/scenejson"
	"github.com/artpipe/assetgate/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleCheckAsset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := *h.baseCfg

	scenePath := request.GetString("scene_path", "")
	if scenePath == "" {
		return mcp.NewToolResultError("scene_path is required"), nil
	}

	if c := request.GetString("category", ""); c != "" {
		category := schema.AssetCategory(c)
		if _, ok := schema.ValidCategories[category]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid category '%s'. must be one of %v", c, schema.AllCategories)), nil
		}
		cfg.Category = category
		// Category drives the polycount budget and armature policy.
		cfg.Geometry = schema.NewGeometryConfig(category)
		cfg.Armature = schema.NewArmatureConfig(category)
	}
	if request.GetBool("hero", false) {
		cfg.HeroAsset = true
		cfg.Texture.IsHeroAsset = true
		cfg.Remediation.HeroAsset = true
	}
	submitter := request.GetString("submitter", cfg.Submitter)

	scene, err := scenejson.Load(scenePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load scene: %v", err)), nil
	}

	now := time.Now().UTC()
	meta := schema.AssetMetadata{
		AssetID:             uuid.NewString(),
		Source:              cfg.Source,
		Category:            cfg.Category,
		Submitter:           submitter,
		SubmissionDate:      now.Format("2006-01-02"),
		ProcessingTimestamp: now.Format(time.RFC3339),
	}

	startTime := time.Now()
	report, err := core.ExecuteAssetCheck(ctx, &cfg, scene, meta, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("check failed: %v", err)), nil
	}

	// Persist the run when a store is configured; a persistence failure
	// never blocks the report from reaching the caller.
	if h.mgr != nil {
		if store := h.mgr.GetReportStore(); store != nil {
			if _, err := iostore.PersistReport(store, &report, startTime, time.Now(), nil); err != nil {
				contract.LogWarn("failed to persist QA run", err)
			}
		}
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetReportStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.mgr == nil || h.mgr.GetReportStore() == nil {
		return mcp.NewToolResultError("report store is not initialized"), nil
	}

	status, err := h.mgr.GetReportStore().GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get store status: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListRecentRuns(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.mgr == nil || h.mgr.GetReportStore() == nil {
		return mcp.NewToolResultError("report store is not initialized"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit < 1 {
		return mcp.NewToolResultError("limit must be at least 1"), nil
	}

	runs, err := h.mgr.GetReportStore().GetAllRuns()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list runs: %v", err)), nil
	}

	// Most recent first.
	recent := make([]schema.QaRunRecord, 0, limit)
	for i := len(runs) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, runs[i])
	}

	jsonData, _ := json.MarshalIndent(recent, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
