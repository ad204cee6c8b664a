// Package ops holds the read operations shared by the CLI, the MCP server
// and the JSON API. Each operation takes the catalog and an input struct and
// returns an output struct or a *errors.FolioError.
package ops

import (
	"fmt"
	"strings"

	"github.com/anoonan/folio/internal/content"
	"github.com/anoonan/folio/internal/errors"
)

// ProjectSummary is a project without its content blocks.
type ProjectSummary struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Preview      string   `json:"preview"`
	PreviewImage string   `json:"preview_image,omitempty"`
	Ongoing      bool     `json:"ongoing"`
	GitHub       string   `json:"github,omitempty"`
	Categories   []string `json:"categories"`
}

// SummarizeProject builds a ProjectSummary from p.
func SummarizeProject(p content.Project) ProjectSummary {
	cats := p.Categories
	if cats == nil {
		cats = []string{}
	}
	return ProjectSummary{
		ID:           p.ID,
		Title:        p.Title,
		Preview:      p.Preview,
		PreviewImage: p.PreviewImage,
		Ongoing:      p.Ongoing,
		GitHub:       p.GitHub,
		Categories:   cats,
	}
}

// ExperienceSummary is an experience as shown on a card.
type ExperienceSummary struct {
	ID           int                   `json:"id"`
	Title        string                `json:"title"`
	Company      string                `json:"company"`
	Period       string                `json:"period"`
	Preview      string                `json:"preview"`
	CompanyLogo  string                `json:"company_logo,omitempty"`
	Achievements []string              `json:"achievements"`
	ProjectLinks []content.ProjectLink `json:"project_links"`
}

// SummarizeExperience builds an ExperienceSummary from e.
func SummarizeExperience(e content.Experience) ExperienceSummary {
	achievements := e.Achievements
	if achievements == nil {
		achievements = []string{}
	}
	links := e.ProjectLinks
	if links == nil {
		links = []content.ProjectLink{}
	}
	return ExperienceSummary{
		ID:           e.ID,
		Title:        e.Title,
		Company:      e.Company,
		Period:       e.Period,
		Preview:      e.Preview,
		CompanyLogo:  e.CompanyLogo,
		Achievements: achievements,
		ProjectLinks: links,
	}
}

// ResolveCategories maps user-supplied category names to their vocabulary
// spelling. Matching ignores case and extra whitespace. Blank names are
// skipped; any name that matches nothing fails the whole request.
func ResolveCategories(cat *content.Catalog, names []string) ([]string, error) {
	var out, unknown []string
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		canonical, ok := cat.CanonicalCategory(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if !seen[canonical] {
			seen[canonical] = true
			out = append(out, canonical)
		}
	}

	if len(unknown) > 0 {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("unknown categories: %s", strings.Join(unknown, ", ")))
	}
	return out, nil
}
