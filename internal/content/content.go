package content

import "slices"

// Profile is the header shown on every main page.
type Profile struct {
	Name     string `yaml:"name" json:"name"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
	Email    string `yaml:"email,omitempty" json:"email,omitempty"`
	LinkedIn string `yaml:"linkedin,omitempty" json:"linkedin,omitempty"`
	Photo    string `yaml:"photo,omitempty" json:"photo,omitempty"`
}

// Project is a portfolio entry with a narrative made of content blocks.
type Project struct {
	ID           int      `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Preview      string   `yaml:"preview" json:"preview"`
	PreviewImage string   `yaml:"preview_image,omitempty" json:"preview_image,omitempty"`
	Ongoing      bool     `yaml:"ongoing" json:"ongoing"`
	GitHub       string   `yaml:"github,omitempty" json:"github,omitempty"`
	Categories   []string `yaml:"categories" json:"categories"`
	Content      Blocks   `yaml:"content" json:"content"`
}

// HasAnyCategory reports whether the project is tagged with at least one of cats.
func (p Project) HasAnyCategory(cats []string) bool {
	for _, c := range p.Categories {
		for _, s := range cats {
			if c == s {
				return true
			}
		}
	}
	return false
}

// clone copies the project along with its nested slices.
func (p Project) clone() Project {
	p.Categories = slices.Clone(p.Categories)
	p.Content = p.Content.Clone()
	return p
}

// ProjectLink points from an experience to a project by id. The id is resolved
// through Catalog.Project; the link never owns the project.
type ProjectLink struct {
	ID    int    `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// Experience is a role held at a company.
type Experience struct {
	ID           int           `yaml:"id" json:"id"`
	Title        string        `yaml:"title" json:"title"`
	Company      string        `yaml:"company" json:"company"`
	Period       string        `yaml:"period" json:"period"`
	Preview      string        `yaml:"preview" json:"preview"`
	Description  string        `yaml:"description" json:"description"`
	Achievements []string      `yaml:"achievements" json:"achievements"`
	CompanyLogo  string        `yaml:"company_logo,omitempty" json:"company_logo,omitempty"`
	ProjectLinks []ProjectLink `yaml:"project_links,omitempty" json:"project_links,omitempty"`
}

// clone copies the experience along with its nested slices.
func (e Experience) clone() Experience {
	e.Achievements = slices.Clone(e.Achievements)
	e.ProjectLinks = slices.Clone(e.ProjectLinks)
	return e
}

// Document keys for the two downloadable PDFs.
const (
	DocumentResume = "resume"
	DocumentThesis = "thesis"
)

// Document is a downloadable file shown in an embedded viewer.
type Document struct {
	Key   string `yaml:"key" json:"key"`
	Title string `yaml:"title" json:"title"`
	Path  string `yaml:"path" json:"path"`
	Note  string `yaml:"note,omitempty" json:"note,omitempty"`
}

// Site is the whole content document as it appears on disk.
type Site struct {
	Profile     Profile      `yaml:"profile"`
	Categories  []string     `yaml:"categories"`
	About       Blocks       `yaml:"about"`
	Projects    []Project    `yaml:"projects"`
	Experiences []Experience `yaml:"experiences"`
	Documents   []Document   `yaml:"documents"`
}
