package ops

import (
	"github.com/anoonan/folio/internal/content"
)

// ListProjectsInput contains parameters for the ListProjects operation.
type ListProjectsInput struct {
	Categories []string // optional; OR filter, case-insensitive
}

// ListProjectsOutput contains the result of the ListProjects operation.
type ListProjectsOutput struct {
	Items  []ProjectSummary `json:"items"`
	Total  int              `json:"total"` // projects in the catalog, before filtering
	Filter []string         `json:"filter"`
}

// ListProjects returns the projects matching any of the given categories,
// in catalog order. With no categories every project is returned.
func ListProjects(cat *content.Catalog, input ListProjectsInput) (*ListProjectsOutput, error) {
	selected, err := ResolveCategories(cat, input.Categories)
	if err != nil {
		return nil, err
	}

	all := cat.Projects()
	filtered := content.FilterProjects(all, selected)

	items := make([]ProjectSummary, len(filtered))
	for i, p := range filtered {
		items[i] = SummarizeProject(p)
	}

	if selected == nil {
		selected = []string{}
	}
	return &ListProjectsOutput{
		Items:  items,
		Total:  len(all),
		Filter: selected,
	}, nil
}

// ListExperiencesOutput contains the result of the ListExperiences operation.
type ListExperiencesOutput struct {
	Items []ExperienceSummary `json:"items"`
}

// ListExperiences returns every experience in catalog order.
func ListExperiences(cat *content.Catalog) (*ListExperiencesOutput, error) {
	all := cat.Experiences()
	items := make([]ExperienceSummary, len(all))
	for i, e := range all {
		items[i] = SummarizeExperience(e)
	}
	return &ListExperiencesOutput{Items: items}, nil
}

// CategoryCount is a vocabulary entry with the number of projects tagged with it.
type CategoryCount struct {
	Name     string `json:"name"`
	Projects int    `json:"projects"`
}

// ListCategoriesOutput contains the result of the ListCategories operation.
type ListCategoriesOutput struct {
	Items []CategoryCount `json:"items"`
}

// ListCategories returns the category vocabulary in document order.
func ListCategories(cat *content.Catalog) (*ListCategoriesOutput, error) {
	counts := content.CountByCategory(cat.Projects())
	names := cat.Categories()
	items := make([]CategoryCount, len(names))
	for i, name := range names {
		items[i] = CategoryCount{Name: name, Projects: counts[name]}
	}
	return &ListCategoriesOutput{Items: items}, nil
}
