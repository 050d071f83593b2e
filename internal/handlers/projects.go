package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"it-library-portal/internal/middleware"
	"it-library-portal/internal/service"
)

// uploadLimit caps the project document size at 20 MiB.
const uploadLimit = 20 << 20

// ProjectsHandler serves the CSP project-title documents.
type ProjectsHandler struct {
	projects *service.Projects
}

// NewProjectsHandler wires the project-file endpoints.
func NewProjectsHandler(projects *service.Projects) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

// List returns the stored documents, newest academic year first.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	files, err := h.projects.List(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, files)
}

// Upload accepts a multipart form with academic_year and file fields and
// replaces any document already stored for that year.
func (h *ProjectsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, uploadLimit)
	if err := r.ParseMultipartForm(uploadLimit); err != nil {
		writeJSON(w, http.StatusBadRequest, "malformed upload", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "file field is required", nil)
		return
	}
	defer file.Close()

	sess := middleware.FromContext(r.Context())
	record, err := h.projects.Upload(r.Context(), r.FormValue("academic_year"), header.Filename, file, sess.ProfileID)
	if err != nil {
		fail(w, err)
		return
	}
	created(w, record)
}

// Delete removes a document and its record.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, err)
		return
	}
	ok(w, nil)
}

// Download streams the stored document as an attachment.
func (h *ProjectsHandler) Download(w http.ResponseWriter, r *http.Request) {
	record, rc, err := h.projects.Open(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", record.FileName))
	if _, err := io.Copy(w, rc); err != nil {
		log.Printf("streaming %s: %v", record.FilePath, err)
	}
}
