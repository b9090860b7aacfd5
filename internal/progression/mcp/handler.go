package mcp

import (
	"context"
	"encoding/json"

	"github.com/2beens/fitprogress/internal/progress"
	"github.com/2beens/fitprogress/internal/progression"
	"github.com/2beens/fitprogress/internal/workouts"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// progressionService is the read side of progression.Service.
type progressionService interface {
	GetCatalog(ctx context.Context) []workouts.Workout
	GetCatalogTree(ctx context.Context, email string) ([]progression.CatalogNode, error)
	GetProgress(ctx context.Context, email string) (progress.UserProgress, error)
	GetWeekSchedule(ctx context.Context, email, weekStart string) (progression.WeekSchedule, error)
}

// Handler turns tool calls into service calls and formats the MCP result.
type Handler struct {
	service progressionService
}

func NewHandler(service progressionService) *Handler {
	return &Handler{
		service: service,
	}
}

// EmailInput is the input for the per-user tools.
type EmailInput struct {
	Email string `json:"email" jsonschema:"Email the user registered with"`
}

// WeekScheduleInput is the input for get_week_schedule.
type WeekScheduleInput struct {
	Email     string `json:"email" jsonschema:"Email the user registered with"`
	WeekStart string `json:"week_start" jsonschema:"First day of the week (YYYY-MM-DD)"`
}

func (h *Handler) GetWorkoutCatalogTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		return jsonResult(h.service.GetCatalog(ctx)), nil, nil
	}
}

func (h *Handler) GetCatalogTreeTool() func(context.Context, *mcp.CallToolRequest, EmailInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in EmailInput) (*mcp.CallToolResult, any, error) {
		nodes, err := h.service.GetCatalogTree(ctx, in.Email)
		if err != nil {
			return errorResult("Error fetching catalog tree: " + err.Error()), nil, nil
		}
		return jsonResult(nodes), nil, nil
	}
}

func (h *Handler) GetUserProgressTool() func(context.Context, *mcp.CallToolRequest, EmailInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in EmailInput) (*mcp.CallToolResult, any, error) {
		p, err := h.service.GetProgress(ctx, in.Email)
		if err != nil {
			return errorResult("Error fetching progress: " + err.Error()), nil, nil
		}
		return jsonResult(p), nil, nil
	}
}

func (h *Handler) GetWeekScheduleTool() func(context.Context, *mcp.CallToolRequest, WeekScheduleInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in WeekScheduleInput) (*mcp.CallToolResult, any, error) {
		if in.WeekStart == "" {
			return errorResult("Invalid week_start: use YYYY-MM-DD"), nil, nil
		}
		week, err := h.service.GetWeekSchedule(ctx, in.Email, in.WeekStart)
		if err != nil {
			return errorResult("Error fetching week schedule: " + err.Error()), nil, nil
		}
		return jsonResult(week), nil, nil
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
