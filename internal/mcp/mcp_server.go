// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/artpipe/assetgate/internal/contract"
)

// NewMCPServer initializes and configures the Assetgate MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Assetgate QA Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: check_asset ---
	s.AddTool(mcp.NewTool("check_asset",
		mcp.WithDescription("Run the full QA pipeline over a scene-facts snapshot and return the report."),
		mcp.WithString("scene_path", mcp.Description("Path to the scene-facts JSON snapshot."), mcp.Required()),
		mcp.WithString("category", mcp.Description("Asset category to check against. Defaults to the server's configured category."), mcp.Enum("env_prop", "hero_prop", "character", "vehicle", "weapon", "ui")),
		mcp.WithBoolean("hero", mcp.Description("Treat the asset as a hero asset (larger texture allowance).")),
		mcp.WithString("submitter", mcp.Description("Name of the submitting artist.")),
	), h.handleCheckAsset)

	// --- 2. Tool: get_report_status ---
	s.AddTool(mcp.NewTool("get_report_status",
		mcp.WithDescription("Return status information about the report store (backend, run counts, last run)."),
	), h.handleGetReportStatus)

	// --- 3. Tool: list_recent_runs ---
	s.AddTool(mcp.NewTool("list_recent_runs",
		mcp.WithDescription("List the most recent QA runs persisted in the report store."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of runs to return. Defaults to 10.")),
	), h.handleListRecentRuns)

	return s
}

// StartMCPServer starts the Assetgate MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
