package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	ports "inkwell-blog-service/internal/domain/ports/output"
	"inkwell-blog-service/internal/infrastructure/inbound/http/auth"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageIndex     = "index"
	PageDashboard = "dashboard"
	PagePost      = "post"
	PageEdit      = "edit"
	PageError     = "error"
)

var pages = []string{PageIndex, PageDashboard, PagePost, PageEdit, PageError}

// layoutData is what every page sees: the page's own view plus who is looking.
type layoutData struct {
	ViewerID string
	View     any
}

// Templates renders the embedded HTML pages.
type Templates struct {
	pages map[string]*template.Template
	log   ports.Logger
}

func New(log ports.Logger) (*Templates, error) {
	funcs := template.FuncMap{
		"date": func(t time.Time) string { return t.Format("Jan 2, 2006") },
	}

	parsed := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		parsed[page] = tmpl
	}

	return &Templates{pages: parsed, log: log}, nil
}

func (t *Templates) Render(w http.ResponseWriter, r *http.Request, status int, page string, view any) {
	tmpl, ok := t.pages[page]
	if !ok {
		t.log.Error("Unknown page", slog.String("page", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	data := layoutData{ViewerID: auth.UserIDFromContext(r.Context()), View: view}
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		t.log.Error("Failed to render page", slog.String("page", page), slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		t.log.Debug("Failed to write response", slog.String("page", page), slog.String("error", err.Error()))
	}
}

func (t *Templates) Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	t.Render(w, r, status, PageError, ErrorView{
		Status:     status,
		StatusText: http.StatusText(status),
		Message:    message,
	})
}
