package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server exposing read-only progression tools:
// catalog, per-user catalog tree, user progress and week schedule.
// Mounted by the main backend at /mcp and served over stdio by cmd/progression_mcp.
func NewServer(service progressionService, version string) *mcp.Server {
	h := NewHandler(service)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "fitprogress",
		Version: version,
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_workout_catalog",
		Description: "Returns every workout of the progression catalog (id, name, description, level required, prerequisites), ordered by level then display order.",
	}, h.GetWorkoutCatalogTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_catalog_tree",
		Description: "Returns the workout catalog annotated for one user: whether each workout is unlocked and whether it was completed. Arg: email.",
	}, h.GetCatalogTreeTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_user_progress",
		Description: "Returns the level and the completed workouts of a user. Arg: email.",
	}, h.GetUserProgressTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_week_schedule",
		Description: "Returns the workouts scheduled for the seven days starting at week_start (YYYY-MM-DD), ordered by date. Args: email, week_start.",
	}, h.GetWeekScheduleTool())

	return s
}
