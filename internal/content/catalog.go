package content

import (
	"bytes"
	_ "embed"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/anoonan/folio/internal/errors"
)

//go:embed data/site.yaml
var defaultSite []byte

// Catalog is the immutable, id-indexed view of a Site. It is built once and
// shared read-only by every transport. Accessors return deep copies, so
// callers may modify what they get back without touching the store.
type Catalog struct {
	site        Site
	projects    map[int]int // id -> index into site.Projects
	experiences map[int]int
	warnings    []Issue
}

// Parse decodes a YAML content document without validating it.
func Parse(data []byte) (*Site, error) {
	site := &Site{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(site); err != nil {
		if stderrors.Is(err, io.EOF) {
			return site, nil
		}
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	return site, nil
}

// New validates site and builds a Catalog. Any error-severity issue fails the
// build; warnings are kept and available through Warnings.
func New(site Site) (*Catalog, error) {
	issues := Validate(site)
	if errs := Errors(issues); len(errs) > 0 {
		lines := make([]string, len(errs))
		for i, is := range errs {
			lines[i] = is.String()
		}
		return nil, errors.NewInvalidContent(lines)
	}

	c := &Catalog{
		site:        site,
		projects:    make(map[int]int, len(site.Projects)),
		experiences: make(map[int]int, len(site.Experiences)),
		warnings:    issues,
	}
	for i, p := range site.Projects {
		c.projects[p.ID] = i
	}
	for i, e := range site.Experiences {
		c.experiences[e.ID] = i
	}
	return c, nil
}

// Load reads, parses and validates a content document.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	site, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return New(*site)
}

// LoadFile loads a content document from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.NewFileNotFound(path)
		}
		return nil, fmt.Errorf("failed to open content: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default loads the content document embedded in the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultSite))
}

// DefaultSource returns the raw embedded content document.
func DefaultSource() []byte {
	return slices.Clone(defaultSite)
}

// Profile returns the site header.
func (c *Catalog) Profile() Profile {
	return c.site.Profile
}

// Categories returns the category vocabulary in document order.
func (c *Catalog) Categories() []string {
	return slices.Clone(c.site.Categories)
}

// HasCategory reports whether cat is part of the vocabulary.
func (c *Catalog) HasCategory(cat string) bool {
	return slices.Contains(c.site.Categories, cat)
}

// About returns the About section blocks.
func (c *Catalog) About() Blocks {
	return c.site.About.Clone()
}

// Projects returns all projects in document order.
func (c *Catalog) Projects() []Project {
	out := make([]Project, len(c.site.Projects))
	for i, p := range c.site.Projects {
		out[i] = p.clone()
	}
	return out
}

// Experiences returns all experiences in document order.
func (c *Catalog) Experiences() []Experience {
	out := make([]Experience, len(c.site.Experiences))
	for i, e := range c.site.Experiences {
		out[i] = e.clone()
	}
	return out
}

// Documents returns the downloadable documents in document order.
func (c *Catalog) Documents() []Document {
	return slices.Clone(c.site.Documents)
}

// Document looks up a document by key.
func (c *Catalog) Document(key string) (Document, bool) {
	for _, d := range c.site.Documents {
		if d.Key == key {
			return d, true
		}
	}
	return Document{}, false
}

// Project looks up a project by id.
func (c *Catalog) Project(id int) (Project, bool) {
	i, ok := c.projects[id]
	if !ok {
		return Project{}, false
	}
	return c.site.Projects[i].clone(), true
}

// MustProject returns the project with the given id and panics if there is none.
// Use it only for ids read from the catalog itself (such as project links),
// which New has already checked.
func (c *Catalog) MustProject(id int) Project {
	p, ok := c.Project(id)
	if !ok {
		panic(fmt.Sprintf("content: project %d referenced but not defined", id))
	}
	return p
}

// Experience looks up an experience by id.
func (c *Catalog) Experience(id int) (Experience, bool) {
	i, ok := c.experiences[id]
	if !ok {
		return Experience{}, false
	}
	return c.site.Experiences[i].clone(), true
}

// LinkedProjects resolves an experience's project links in order.
func (c *Catalog) LinkedProjects(e Experience) []Project {
	out := make([]Project, 0, len(e.ProjectLinks))
	for _, l := range e.ProjectLinks {
		out = append(out, c.MustProject(l.ID))
	}
	return out
}

// Warnings returns the non-fatal issues found while building the catalog.
func (c *Catalog) Warnings() []Issue {
	return slices.Clone(c.warnings)
}
