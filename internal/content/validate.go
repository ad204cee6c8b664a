package content

import (
	"fmt"
	"strings"
)

// Severity classifies a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"   // the document cannot be loaded
	SeverityWarning Severity = "warning" // loaded; a runtime fallback applies
)

// Issue is one finding from Validate.
type Issue struct {
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	Message  string   `json:"message"`
}

// String formats the issue as "path: message".
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Errors returns the error-severity issues.
func Errors(issues []Issue) []Issue {
	var out []Issue
	for _, is := range issues {
		if is.Severity == SeverityError {
			out = append(out, is)
		}
	}
	return out
}

// requiredDocuments are the keys the Resume and Thesis tabs read.
var requiredDocuments = []string{DocumentResume, DocumentThesis}

// Validate checks a content document. It never stops at the first problem.
func Validate(site Site) []Issue {
	v := &validator{}

	vocab := make(map[string]bool, len(site.Categories))
	for i, c := range site.Categories {
		if strings.TrimSpace(c) == "" {
			v.errorf(fmt.Sprintf("categories[%d]", i), "category must not be empty")
			continue
		}
		if vocab[c] {
			v.errorf(fmt.Sprintf("categories[%d]", i), "duplicate category %q", c)
		}
		vocab[c] = true
	}

	v.blocks("about", site.About)

	projectIDs := make(map[int]bool, len(site.Projects))
	for i, p := range site.Projects {
		path := fmt.Sprintf("projects[%d]", i)
		if projectIDs[p.ID] {
			v.errorf(path, "duplicate project id %d", p.ID)
		}
		projectIDs[p.ID] = true

		if strings.TrimSpace(p.Title) == "" {
			v.errorf(path, "title must not be empty")
		}
		if len(p.Categories) == 0 {
			v.errorf(path, "project must have at least one category")
		}
		for _, c := range p.Categories {
			if !vocab[c] {
				v.errorf(path, "category %q is not in the vocabulary", c)
			}
		}
		if p.PreviewImage == "" {
			v.warnf(path, "no preview image; a placeholder is shown")
		}
		v.blocks(path+".content", p.Content)
	}

	experienceIDs := make(map[int]bool, len(site.Experiences))
	for i, e := range site.Experiences {
		path := fmt.Sprintf("experiences[%d]", i)
		if experienceIDs[e.ID] {
			v.errorf(path, "duplicate experience id %d", e.ID)
		}
		experienceIDs[e.ID] = true

		if strings.TrimSpace(e.Title) == "" {
			v.errorf(path, "title must not be empty")
		}
		for j, l := range e.ProjectLinks {
			if !projectIDs[l.ID] {
				v.errorf(fmt.Sprintf("%s.project_links[%d]", path, j), "dangling project link %d", l.ID)
			}
		}
	}

	docs := make(map[string]Document, len(site.Documents))
	for i, d := range site.Documents {
		if _, dup := docs[d.Key]; dup {
			v.errorf(fmt.Sprintf("documents[%d]", i), "duplicate document key %q", d.Key)
		}
		docs[d.Key] = d
	}
	for _, key := range requiredDocuments {
		d, ok := docs[key]
		if !ok {
			v.errorf("documents", "missing %s document", key)
			continue
		}
		if strings.TrimSpace(d.Path) == "" {
			v.errorf("documents."+key, "path must not be empty")
		}
	}

	return v.issues
}

type validator struct {
	issues []Issue
}

func (v *validator) errorf(path, format string, args ...any) {
	v.issues = append(v.issues, Issue{Severity: SeverityError, Path: path, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) warnf(path, format string, args ...any) {
	v.issues = append(v.issues, Issue{Severity: SeverityWarning, Path: path, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) blocks(path string, blocks Blocks) {
	for i, b := range blocks {
		bp := fmt.Sprintf("%s[%d]", path, i)
		switch b := b.(type) {
		case Paragraph:
			if b.Text == "" {
				v.errorf(bp, "paragraph text must not be empty")
			}
		case Image:
			if b.Src == "" {
				v.errorf(bp, "image src must not be empty")
			}
			if !IsKnownSize(b.Size) {
				v.warnf(bp, "unrecognized image size %q; large is used", b.Size)
			}
		case ImageRow:
			if len(b.Images) == 0 {
				v.errorf(bp, "image-row must contain at least one image")
			}
			for j, f := range b.Images {
				if f.Src == "" {
					v.errorf(fmt.Sprintf("%s.images[%d]", bp, j), "image src must not be empty")
				}
			}
		case Unknown:
			v.warnf(bp, "unknown block type %q is not rendered", b.Type)
		}
	}
}
