package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/apteka/internal/common"
	"github.com/ternarybob/apteka/internal/interfaces"
	"github.com/ternarybob/apteka/internal/services/render"
)

//go:embed pages/*.html
var pagesFS embed.FS

const pageTitle = "Znajdź Aptekę"

type PageHandler struct {
	finder    interfaces.FinderService
	logger    arbor.ILogger
	templates *template.Template
}

func NewPageHandler(finder interfaces.FinderService, logger arbor.ILogger) *PageHandler {
	return &PageHandler{
		finder:    finder,
		logger:    logger,
		templates: template.Must(template.ParseFS(pagesFS, "pages/*.html")),
	}
}

// pageData is the view model of index.html
type pageData struct {
	Title   string
	Address string
	Results template.HTML
	Version string
}

// IndexHandler serves the empty search form on GET /
func (h *PageHandler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	h.renderPage(w, pageData{Title: pageTitle})
}

// SearchPageHandler serves GET /search?address=... as a full HTML page
func (h *PageHandler) SearchPageHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	resp := h.finder.Respond(r.Context(), r.URL.Query().Get("address"))

	results, err := render.HTML(resp)
	if err != nil {
		h.logger.Error().Err(err).Str("search_id", resp.SearchID).Msg("Failed to render results")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderPage(w, pageData{
		Title:   render.Title(resp),
		Address: resp.Address,
		// goldmark output omits raw HTML, place data is escaped before rendering
		Results: template.HTML(results),
	})
}

func (h *PageHandler) renderPage(w http.ResponseWriter, data pageData) {
	data.Version = common.GetVersion()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		h.logger.Error().
			Err(err).
			Str("template", "index.html").
			Msg("Failed to render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
