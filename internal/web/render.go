package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/anoonan/folio/internal/errors"
)

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	logger    *slog.Logger
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, logger *slog.Logger) *Renderer {
	// Parse layout as the base template
	layoutTmpl := template.Must(template.New("layout").ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"main":       "main.html",
		"project":    "project.html",
		"experience": "experience.html",
		"error":      "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		logger:    logger,
	}
}

// Execute renders a full page into w.
func (r *Renderer) Execute(w io.Writer, name string, data any) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// renderPage renders a named page template with the given data and HTTP 200 status.
func (r *Renderer) renderPage(w http.ResponseWriter, name string, data any) {
	r.renderPageStatus(w, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given data and HTTP status code.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := r.Execute(&buf, name, data); err != nil {
		r.logger.Error("template execution failed", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error response with content negotiation.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, pages *Pages, err error) {
	fErr := errors.As(err)
	if fErr.Status >= 500 {
		r.logger.Error("request failed", "request_id", RequestIDFrom(req.Context()), "error", err)
	}

	if strings.Contains(req.Header.Get("Accept"), "application/json") {
		renderAPIError(w, fErr)
		return
	}

	r.renderPageStatus(w, fErr.Status, "error", pages.ErrorPage(fErr.Status, fErr.Message))
}

// renderAPIError writes err as a JSON error envelope.
func renderAPIError(w http.ResponseWriter, fErr *errors.FolioError) {
	renderJSON(w, fErr.Status, map[string]any{
		"error": map[string]any{
			"code":    string(fErr.Code),
			"message": fErr.Message,
			"status":  fErr.Status,
		},
	})
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
