package mcp

import "github.com/mark3labs/mcp-go/mcp"

var projectListToolDef = mcp.NewTool("project_list",
	mcp.WithDescription("List portfolio projects in display order. Optionally keep only projects tagged with at least one of the given categories (case-insensitive)."),
	mcp.WithArray("categories",
		mcp.Description("Category names to filter by; empty returns every project"),
		mcp.WithStringItems(),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

var projectGetToolDef = mcp.NewTool("project_get",
	mcp.WithDescription("Get one project with its content blocks (paragraphs, images, image rows)."),
	mcp.WithNumber("id",
		mcp.Required(),
		mcp.Description("Project id"),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

var experienceListToolDef = mcp.NewTool("experience_list",
	mcp.WithDescription("List work experiences in display order."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var experienceGetToolDef = mcp.NewTool("experience_get",
	mcp.WithDescription("Get one experience with its description and the projects it links to."),
	mcp.WithNumber("id",
		mcp.Required(),
		mcp.Description("Experience id"),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

var categoryListToolDef = mcp.NewTool("category_list",
	mcp.WithDescription("List the category vocabulary with the number of projects tagged with each."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var siteAboutToolDef = mcp.NewTool("site_about",
	mcp.WithDescription("Get the profile header and the About section blocks."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var siteDocumentsToolDef = mcp.NewTool("site_documents",
	mcp.WithDescription("List downloadable documents such as the resume and thesis."),
	mcp.WithReadOnlyHintAnnotation(true),
)
