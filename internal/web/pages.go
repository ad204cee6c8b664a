package web

import (
	"html/template"

	"github.com/anoonan/folio/internal/content"
	"github.com/anoonan/folio/internal/errors"
	"github.com/anoonan/folio/internal/ops"
	"github.com/anoonan/folio/internal/render"
	"github.com/anoonan/folio/internal/view"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title     string
	Version   string
	Profile   content.Profile
	PhotoSrc  string
	StyleHref string
}

// Link is a clickable element. When HasHref is false the target state has
// no address and the element is rendered without a link.
type Link struct {
	Label   string
	Href    string
	HasHref bool
	Active  bool
}

// Chip is a category filter toggle.
type Chip struct {
	Link
	Count int
}

// ProjectCard is a project in the Projects grid.
type ProjectCard struct {
	ops.ProjectSummary
	PreviewSrc string
	Open       Link
}

// ExperienceCard is an experience in the Projects/Experience tab.
type ExperienceCard struct {
	ops.ExperienceSummary
	LogoSrc  string
	Open     Link
	Projects []Link
}

// DocumentData is the Resume or Thesis tab.
type DocumentData struct {
	content.Document
	Src string
}

// MainPageData is the template data for the tabbed main page.
type MainPageData struct {
	PageData
	Tab          view.Tab
	Tabs         []Link
	About        template.HTML
	Chips        []Chip
	FilterActive bool
	ClearFilter  Link
	Projects     []ProjectCard
	Experiences  []ExperienceCard
	Document     *DocumentData
}

// ProjectPageData is the template data for a project detail page.
type ProjectPageData struct {
	PageData
	Project ops.ProjectSummary
	Back    Link
	Body    template.HTML
}

// ExperiencePageData is the template data for an experience detail page.
type ExperiencePageData struct {
	PageData
	Experience  ops.ExperienceSummary
	Description string
	LogoSrc     string
	Back        Link
	Projects    []Link
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
	Home       Link
}

// Pages builds template data for a navigation state. The same builder backs
// the live server (query links) and the static export (file links).
type Pages struct {
	Catalog   *content.Catalog
	Blocks    *render.Renderer
	Links     view.Linker
	Version   string
	StyleHref string
}

// Build returns the template name and data for state s. An unknown project
// or experience id yields a NOT_FOUND error.
func (p *Pages) Build(s view.State) (string, any, error) {
	screen := view.Route(s)
	switch screen.Kind {
	case view.ScreenProject:
		data, err := p.projectPage(s, screen.ID)
		return "project", data, err
	case view.ScreenExperience:
		data, err := p.experiencePage(s, screen.ID)
		return "experience", data, err
	default:
		return "main", p.mainPage(s, screen.Tab), nil
	}
}

func (p *Pages) base(title string) PageData {
	profile := p.Catalog.Profile()
	if title == "" {
		title = profile.Name
	} else {
		title = title + " | " + profile.Name
	}
	return PageData{
		Title:     title,
		Version:   p.Version,
		Profile:   profile,
		PhotoSrc:  p.Blocks.Asset(profile.Photo),
		StyleHref: p.StyleHref,
	}
}

func (p *Pages) link(label string, s view.State) Link {
	href, ok := p.Links.Href(s)
	return Link{Label: label, Href: href, HasHref: ok}
}

func (p *Pages) mainPage(s view.State, tab view.Tab) MainPageData {
	data := MainPageData{
		PageData: p.base(""),
		Tab:      tab,
	}

	for _, t := range view.Tabs {
		l := p.link(t.Label(), view.Apply(s, view.SetTab{Tab: t}))
		l.Active = t == tab
		data.Tabs = append(data.Tabs, l)
	}

	switch tab {
	case view.TabAbout:
		data.About = p.Blocks.Blocks("About", p.Catalog.About())

	case view.TabProjects:
		all := p.Catalog.Projects()
		counts := content.CountByCategory(all)
		for _, c := range p.Catalog.Categories() {
			l := p.link(c, view.Apply(s, view.ToggleCategory{Category: c}))
			l.Active = s.Selected(c)
			data.Chips = append(data.Chips, Chip{Link: l, Count: counts[c]})
		}
		data.FilterActive = len(s.Categories) > 0
		data.ClearFilter = p.link("Clear", view.Main(view.TabProjects))

		for _, proj := range content.FilterProjects(all, s.Categories) {
			data.Projects = append(data.Projects, ProjectCard{
				ProjectSummary: ops.SummarizeProject(proj),
				PreviewSrc:     p.Blocks.Asset(proj.PreviewImage),
				Open:           p.link(proj.Title, view.Apply(s, view.OpenProject{ID: proj.ID})),
			})
		}

		for _, e := range p.Catalog.Experiences() {
			card := ExperienceCard{
				ExperienceSummary: ops.SummarizeExperience(e),
				LogoSrc:           p.Blocks.Asset(e.CompanyLogo),
				Open:              p.link(e.Title, view.Apply(s, view.OpenExperience{ID: e.ID})),
			}
			for _, pl := range e.ProjectLinks {
				card.Projects = append(card.Projects, p.link(pl.Label, view.Apply(s, view.OpenProject{ID: pl.ID})))
			}
			data.Experiences = append(data.Experiences, card)
		}

	case view.TabResume, view.TabThesis:
		if d, ok := p.Catalog.Document(string(tab)); ok {
			data.Document = &DocumentData{Document: d, Src: p.Blocks.Asset(d.Path)}
		}
	}

	return data
}

func (p *Pages) projectPage(s view.State, id int) (ProjectPageData, error) {
	proj, ok := p.Catalog.Project(id)
	if !ok {
		return ProjectPageData{}, errors.NewNotFound("project", id)
	}
	return ProjectPageData{
		PageData: p.base(proj.Title),
		Project:  ops.SummarizeProject(proj),
		Back:     p.link("Back to Projects", view.Apply(s, view.CloseProject{})),
		Body:     p.Blocks.Blocks(proj.Title, proj.Content),
	}, nil
}

func (p *Pages) experiencePage(s view.State, id int) (ExperiencePageData, error) {
	e, ok := p.Catalog.Experience(id)
	if !ok {
		return ExperiencePageData{}, errors.NewNotFound("experience", id)
	}
	data := ExperiencePageData{
		PageData:    p.base(e.Title),
		Experience:  ops.SummarizeExperience(e),
		Description: e.Description,
		LogoSrc:     p.Blocks.Asset(e.CompanyLogo),
		Back:        p.link("Back to Experience", view.Apply(s, view.CloseExperience{})),
	}
	for _, pl := range e.ProjectLinks {
		data.Projects = append(data.Projects, p.link(pl.Label, view.Apply(s, view.OpenProject{ID: pl.ID})))
	}
	return data, nil
}

// ErrorPage returns the template data for an error page.
func (p *Pages) ErrorPage(status int, message string) ErrorPageData {
	return ErrorPageData{
		PageData:   p.base("Error"),
		StatusCode: status,
		Message:    message,
		Home:       p.link("Home", view.Initial()),
	}
}
