package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/anoonan/folio/internal/content"
	"github.com/anoonan/folio/internal/errors"
	"github.com/anoonan/folio/internal/ops"
	"github.com/anoonan/folio/internal/view"
)

// Handlers contains HTTP route handlers for the site and its JSON API.
type Handlers struct {
	cat      *content.Catalog
	renderer *Renderer
	pages    *Pages
}

// HandleIndex handles GET /. The navigation state is read from the query.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	state := view.ParseQuery(r.URL.Query()).RetainCategories(h.cat.HasCategory)

	name, data, err := h.pages.Build(state)
	if err != nil {
		h.renderer.renderError(w, r, h.pages, err)
		return
	}
	h.renderer.renderPage(w, name, data)
}

// HandleNotFound renders the error page for unknown paths.
func (h *Handlers) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderError(w, r, h.pages, &errors.FolioError{
		Code:    errors.ErrNotFound,
		Status:  http.StatusNotFound,
		Message: "page not found",
	})
}

// HandleHealth handles GET /healthz.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"projects": len(h.cat.Projects()),
	})
}

// HandleAPIProjects handles GET /api/projects with a repeatable ?category= filter.
func (h *Handlers) HandleAPIProjects(w http.ResponseWriter, r *http.Request) {
	out, err := ops.ListProjects(h.cat, ops.ListProjectsInput{
		Categories: r.URL.Query()[view.ParamCategory],
	})
	if err != nil {
		renderAPIError(w, errors.As(err))
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleAPIProject handles GET /api/projects/{id}.
func (h *Handlers) HandleAPIProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderAPIError(w, errors.As(err))
		return
	}
	out, err := ops.GetProject(h.cat, ops.GetProjectInput{ID: id})
	if err != nil {
		renderAPIError(w, errors.As(err))
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleAPIExperiences handles GET /api/experiences.
func (h *Handlers) HandleAPIExperiences(w http.ResponseWriter, r *http.Request) {
	out, err := ops.ListExperiences(h.cat)
	if err != nil {
		renderAPIError(w, errors.As(err))
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleAPIExperience handles GET /api/experiences/{id}.
func (h *Handlers) HandleAPIExperience(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderAPIError(w, errors.As(err))
		return
	}
	out, err := ops.GetExperience(h.cat, ops.GetExperienceInput{ID: id})
	if err != nil {
		renderAPIError(w, errors.As(err))
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleAPICategories handles GET /api/categories.
func (h *Handlers) HandleAPICategories(w http.ResponseWriter, r *http.Request) {
	out, err := ops.ListCategories(h.cat)
	if err != nil {
		renderAPIError(w, errors.As(err))
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleAPIAbout handles GET /api/about.
func (h *Handlers) HandleAPIAbout(w http.ResponseWriter, r *http.Request) {
	out, err := ops.GetAbout(h.cat)
	if err != nil {
		renderAPIError(w, errors.As(err))
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleAPIDocuments handles GET /api/documents.
func (h *Handlers) HandleAPIDocuments(w http.ResponseWriter, r *http.Request) {
	out, err := ops.ListDocuments(h.cat)
	if err != nil {
		renderAPIError(w, errors.As(err))
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleAPINotFound answers unknown API paths with a JSON error.
func (h *Handlers) HandleAPINotFound(w http.ResponseWriter, r *http.Request) {
	renderAPIError(w, &errors.FolioError{
		Code:    errors.ErrNotFound,
		Status:  http.StatusNotFound,
		Message: "no such endpoint: " + r.URL.Path,
	})
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, errors.NewInvalidRequest("id must be a non-negative integer")
	}
	return id, nil
}
