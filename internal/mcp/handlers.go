package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/anoonan/folio/internal/content"
	"github.com/anoonan/folio/internal/errors"
	"github.com/anoonan/folio/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	cat *content.Catalog
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(cat *content.Catalog) *Handlers {
	return &Handlers{cat: cat}
}

// ProjectListRequest represents the arguments for project_list.
type ProjectListRequest struct {
	Categories []string `json:"categories,omitempty"`
}

// GetRequest represents the arguments for project_get and experience_get.
type GetRequest struct {
	ID *int `json:"id"`
}

func (r *GetRequest) check() error {
	if r.ID == nil {
		return errors.NewInvalidRequest("id is required")
	}
	if *r.ID < 0 {
		return errors.NewInvalidRequest("id must be non-negative")
	}
	return nil
}

// HandleProjectList handles the project_list tool call.
func (h *Handlers) HandleProjectList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ProjectListRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.ListProjects(h.cat, ops.ListProjectsInput{Categories: input.Categories})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleProjectGet handles the project_get tool call.
func (h *Handlers) HandleProjectGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.GetProject(h.cat, ops.GetProjectInput{ID: *input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExperienceList handles the experience_list tool call.
func (h *Handlers) HandleExperienceList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.ListExperiences(h.cat)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleExperienceGet handles the experience_get tool call.
func (h *Handlers) HandleExperienceGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.GetExperience(h.cat, ops.GetExperienceInput{ID: *input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCategoryList handles the category_list tool call.
func (h *Handlers) HandleCategoryList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.ListCategories(h.cat)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSiteAbout handles the site_about tool call.
func (h *Handlers) HandleSiteAbout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.GetAbout(h.cat)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSiteDocuments handles the site_documents tool call.
func (h *Handlers) HandleSiteDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.ListDocuments(h.cat)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var fErr *errors.FolioError
	if stderrors.As(err, &fErr) {
		errorObj := map[string]any{
			"code":    fErr.Code,
			"message": fErr.Message,
			"status":  fErr.Status,
		}
		if fErr.Code != errors.ErrInternal && fErr.Details != nil {
			errorObj["details"] = fErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	body, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(body)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
