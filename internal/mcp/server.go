package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/anoonan/folio/internal/config"
	"github.com/anoonan/folio/internal/content"
)

// KnownTypes lists all valid type names.
var KnownTypes = []string{"project", "experience", "category", "site"}

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"project_list": {
		def:     projectListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleProjectList },
	},
	"project_get": {
		def:     projectGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleProjectGet },
	},
	"experience_list": {
		def:     experienceListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExperienceList },
	},
	"experience_get": {
		def:     experienceGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExperienceGet },
	},
	"category_list": {
		def:     categoryListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCategoryList },
	},
	"site_about": {
		def:     siteAboutToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSiteAbout },
	},
	"site_documents": {
		def:     siteDocumentsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSiteDocuments },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// ValidateDisabledTypes returns a list of unknown type names from the given list.
func ValidateDisabledTypes(names []string) []string {
	known := make(map[string]bool, len(KnownTypes))
	for _, t := range KnownTypes {
		known[t] = true
	}

	unknown := make([]string, 0)
	for _, name := range names {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// GetTypeForTool extracts the type name from a tool name.
// Tool names follow the pattern "type_action" (e.g., "project_list" → "project").
func GetTypeForTool(toolName string) string {
	if idx := strings.Index(toolName, "_"); idx > 0 {
		return toolName[:idx]
	}
	return ""
}

// ExpandTypesToTools returns all tool names belonging to the given types.
func ExpandTypesToTools(types []string) []string {
	if len(types) == 0 {
		return nil
	}

	typeSet := make(map[string]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}

	tools := make([]string, 0)
	for name := range toolRegistry {
		if typeSet[GetTypeForTool(name)] {
			tools = append(tools, name)
		}
	}
	return tools
}

// NewServer creates a new MCP server with the portfolio tools registered.
// Tools listed in cfg.DisabledTools or belonging to cfg.DisabledTypes
// are excluded from registration.
func NewServer(cat *content.Catalog, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"folio",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(cat)

	// Build set of disabled tools: first expand types, then add individual tools
	disabled := make(map[string]bool)
	for _, tool := range ExpandTypesToTools(cfg.DisabledTypes) {
		disabled[tool] = true
	}
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(cat *content.Catalog, cfg *config.Config, version string) error {
	return server.ServeStdio(NewServer(cat, cfg, version))
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
