package ops

import (
	"github.com/anoonan/folio/internal/content"
	"github.com/anoonan/folio/internal/errors"
)

// GetProjectInput contains parameters for the GetProject operation.
type GetProjectInput struct {
	ID int
}

// ProjectOutput is a project with its content blocks.
type ProjectOutput struct {
	ProjectSummary
	Content content.Blocks `json:"content"`
}

// GetProject retrieves a project by id.
func GetProject(cat *content.Catalog, input GetProjectInput) (*ProjectOutput, error) {
	p, ok := cat.Project(input.ID)
	if !ok {
		return nil, errors.NewNotFound("project", input.ID)
	}

	blocks := p.Content
	if blocks == nil {
		blocks = content.Blocks{}
	}
	return &ProjectOutput{
		ProjectSummary: SummarizeProject(p),
		Content:        blocks,
	}, nil
}

// GetExperienceInput contains parameters for the GetExperience operation.
type GetExperienceInput struct {
	ID int
}

// LinkedProject is a project link resolved against the catalog.
type LinkedProject struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Title string `json:"title"`
}

// ExperienceOutput is an experience with its description and resolved project links.
type ExperienceOutput struct {
	ExperienceSummary
	Description    string          `json:"description"`
	LinkedProjects []LinkedProject `json:"linked_projects"`
}

// GetExperience retrieves an experience by id.
func GetExperience(cat *content.Catalog, input GetExperienceInput) (*ExperienceOutput, error) {
	e, ok := cat.Experience(input.ID)
	if !ok {
		return nil, errors.NewNotFound("experience", input.ID)
	}

	projects := cat.LinkedProjects(e)
	linked := make([]LinkedProject, len(projects))
	for i, p := range projects {
		linked[i] = LinkedProject{ID: p.ID, Label: e.ProjectLinks[i].Label, Title: p.Title}
	}

	return &ExperienceOutput{
		ExperienceSummary: SummarizeExperience(e),
		Description:       e.Description,
		LinkedProjects:    linked,
	}, nil
}

// AboutOutput is the profile header and the About section.
type AboutOutput struct {
	Profile content.Profile `json:"profile"`
	Blocks  content.Blocks  `json:"blocks"`
}

// GetAbout returns the profile and About blocks.
func GetAbout(cat *content.Catalog) (*AboutOutput, error) {
	blocks := cat.About()
	if blocks == nil {
		blocks = content.Blocks{}
	}
	return &AboutOutput{Profile: cat.Profile(), Blocks: blocks}, nil
}

// ListDocumentsOutput contains the downloadable documents.
type ListDocumentsOutput struct {
	Items []content.Document `json:"items"`
}

// ListDocuments returns the resume, thesis and any other documents.
func ListDocuments(cat *content.Catalog) (*ListDocumentsOutput, error) {
	docs := cat.Documents()
	if docs == nil {
		docs = []content.Document{}
	}
	return &ListDocumentsOutput{Items: docs}, nil
}
