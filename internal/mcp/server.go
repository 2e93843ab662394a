package mcp

import (
	"context"
	"log/slog"

	"github.com/claude/fastbite/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(db *storage.DB, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("FastBite", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("FastBite nutrition and fasting server. Query calorie/macro/sugar targets, log food, review daily intake, and control the fasting timer. All data is scoped to the authenticated user."),
	)

	h := &handlers{db: db, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetNutritionTargets, Handler: h.getNutritionTargets},
		server.ServerTool{Tool: toolGetDailyLog, Handler: h.getDailyLog},
		server.ServerTool{Tool: toolLogFood, Handler: h.logFood},
		server.ServerTool{Tool: toolGetFastingStatus, Handler: h.getFastingStatus},
		server.ServerTool{Tool: toolStartFast, Handler: h.startFast},
		server.ServerTool{Tool: toolStopFast, Handler: h.stopFast},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resDailySummary, Handler: h.dailySummary},
		server.ServerResource{Resource: resFastCatalog, Handler: h.fastCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	db  *storage.DB
	log *slog.Logger
}

// --- Resource definitions ---

var resDailySummary = mcp.NewResource(
	"fastbite://daily_summary",
	"Daily Summary",
	mcp.WithResourceDescription("Today's logged food with nutrient totals and the glycemic-load aggregate"),
	mcp.WithMIMEType("application/json"),
)

var resFastCatalog = mcp.NewResource(
	"fastbite://fast_catalog",
	"Fast Catalog",
	mcp.WithResourceDescription("All fasting presets with goal hours and descriptions"),
	mcp.WithMIMEType("application/json"),
)
