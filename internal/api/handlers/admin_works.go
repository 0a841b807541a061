package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/brianpage/portfolio-server/internal/api/middleware"
	"github.com/brianpage/portfolio-server/internal/domain/works"
	"github.com/rs/zerolog"
)

// AdminWorksHandler is the CRUD surface for creative works. All routes sit
// behind the session and CSRF middleware.
type AdminWorksHandler struct {
	Works     *works.Service
	Templates *template.Template
}

func NewAdminWorksHandler(svc *works.Service, templates *template.Template) *AdminWorksHandler {
	return &AdminWorksHandler{Works: svc, Templates: templates}
}

// List handles GET /admin/works. Drafts are included.
func (h *AdminWorksHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Works.List(r.Context(), works.Filter{})
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to list works")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "works_list.html", map[string]interface{}{
		"Title":     "Creative Works - Portfolio Admin",
		"Works":     items,
		"CSRFField": middleware.CSRFField(r),
	})
}

// New handles GET /admin/works/new.
func (h *AdminWorksHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, formData{
		Heading: "Add Creative Work",
		Action:  "/admin/works",
		Work:    &works.Work{Published: true},
	})
}

// Create handles POST /admin/works. Validation failures re-render the form
// with the submitted values so nothing is lost.
func (h *AdminWorksHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	params := works.CreateParams{
		Title:       r.PostFormValue("title"),
		URL:         r.PostFormValue("url"),
		Description: r.PostFormValue("description"),
		Published:   r.PostFormValue("published") != "",
	}

	if _, err := h.Works.Create(r.Context(), params); err != nil {
		var verr works.ValidationError
		if errors.As(err, &verr) {
			h.renderForm(w, r, http.StatusUnprocessableEntity, formData{
				Heading: "Add Creative Work",
				Action:  "/admin/works",
				Error:   verr.Error(),
				Work: &works.Work{
					Title:       params.Title,
					URL:         params.URL,
					Description: params.Description,
					Published:   params.Published,
				},
			})
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to create work")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/works", http.StatusFound)
}

// Edit handles GET /admin/works/{id}/edit.
func (h *AdminWorksHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	work, err := h.Works.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, works.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Int64("id", id).Msg("failed to load work")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderForm(w, r, http.StatusOK, formData{
		Heading: "Edit Creative Work",
		Action:  "/admin/works/" + strconv.FormatInt(id, 10),
		Work:    work,
	})
}

// Update handles POST /admin/works/{id}.
func (h *AdminWorksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	params := works.UpdateParams{
		Title:       r.PostFormValue("title"),
		URL:         r.PostFormValue("url"),
		Description: r.PostFormValue("description"),
		Published:   r.PostFormValue("published") != "",
	}

	if _, err := h.Works.Update(r.Context(), id, params); err != nil {
		var verr works.ValidationError
		if errors.As(err, &verr) {
			h.renderForm(w, r, http.StatusUnprocessableEntity, formData{
				Heading: "Edit Creative Work",
				Action:  "/admin/works/" + strconv.FormatInt(id, 10),
				Error:   verr.Error(),
				Work: &works.Work{
					ID:          id,
					Title:       params.Title,
					URL:         params.URL,
					Description: params.Description,
					Published:   params.Published,
				},
			})
			return
		}
		if errors.Is(err, works.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Int64("id", id).Msg("failed to update work")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/works", http.StatusFound)
}

// Delete handles POST /admin/works/{id}/delete.
func (h *AdminWorksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Works.Delete(r.Context(), id); err != nil {
		if errors.Is(err, works.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Int64("id", id).Msg("failed to delete work")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/works", http.StatusFound)
}

type formData struct {
	Heading string
	Action  string
	Error   string
	Work    *works.Work
}

func (h *AdminWorksHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, form formData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	data := map[string]interface{}{
		"Title":     form.Heading + " - Portfolio Admin",
		"Heading":   form.Heading,
		"Action":    form.Action,
		"Error":     form.Error,
		"Work":      form.Work,
		"CSRFField": middleware.CSRFField(r),
	}
	if err := h.Templates.ExecuteTemplate(w, "work_form.html", data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("template error")
	}
}

func (h *AdminWorksHandler) render(w http.ResponseWriter, r *http.Request, name string, data map[string]interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Templates.ExecuteTemplate(w, name, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("template error")
	}
}

// pathID parses the {id} segment. A malformed value is a 404, same as a
// missing row.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}
