package profiles

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtailor/internal/extract"
	"jobtailor/internal/shared/server/respond"
	"jobtailor/internal/shared/storage/object"
	"jobtailor/internal/shared/telemetry"
	"jobtailor/internal/shared/util"
)

const maxProfileUploadSize = 16 << 20 // 16MB

// Handler exposes profile CRUD over HTTP.
type Handler struct {
	Svc     *Service
	Uploads object.ObjectStore
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, uploads object.ObjectStore) *Handler {
	return &Handler{Svc: svc, Uploads: uploads}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/profiles", h.create)
	rg.GET("/profiles", h.list)
	rg.GET("/profiles/:key", h.get)
	rg.PUT("/profiles/:key", h.update)
	rg.DELETE("/profiles/:key", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxProfileUploadSize)

	in := CreateInput{
		FirstName:     c.PostForm("first_name"),
		LastName:      c.PostForm("last_name"),
		PortfolioText: c.PostForm("portfolio_text"),
		LinkedInText:  c.PostForm("linkedin_text"),
	}

	resume, ok := h.readResumeFile(c)
	if !ok {
		return
	}
	in.Resume = resume

	p, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNoStorageKey) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save profile", nil)
		return
	}
	c.Set("profileKey", p.StorageKey())
	respond.Created(c, p)
}

func (h *Handler) list(c *gin.Context) {
	out, err := h.Svc.List()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list profiles", nil)
		return
	}
	respond.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	key, ok := h.profileKey(c)
	if !ok {
		return
	}
	p, err := h.Svc.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return
	}
	respond.OK(c, p)
}

func (h *Handler) update(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxProfileUploadSize)

	key, ok := h.profileKey(c)
	if !ok {
		return
	}

	var in UpdateInput
	if v, exists := c.GetPostForm("portfolio_text"); exists {
		in.PortfolioText = &v
	}
	if v, exists := c.GetPostForm("linkedin_text"); exists {
		in.LinkedInText = &v
	}
	resume, ok := h.readResumeFile(c)
	if !ok {
		return
	}
	in.Resume = resume

	p, err := h.Svc.Update(c.Request.Context(), key, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update profile", nil)
		}
		return
	}
	respond.OK(c, p)
}

func (h *Handler) remove(c *gin.Context) {
	key, ok := h.profileKey(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(key); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete profile", nil)
		return
	}
	respond.OK(c, gin.H{"deleted": key})
}

func (h *Handler) profileKey(c *gin.Context) (string, bool) {
	key, err := util.SanitizeFileName(c.Param("key"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid profile key", nil)
		return "", false
	}
	return key, true
}

// readResumeFile pulls the optional resume_file upload out of the form. A
// missing file is fine; an unreadable or unsupported one fails the request.
func (h *Handler) readResumeFile(c *gin.Context) (*ResumeUpload, bool) {
	fileHeader, err := c.FormFile("resume_file")
	if err != nil || fileHeader.Filename == "" {
		return nil, true
	}
	if !extract.Allowed(fileHeader.Filename) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unsupported resume file type", nil)
		return nil, false
	}
	data, err := readAll(fileHeader)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read resume file", nil)
		return nil, false
	}
	if _, _, _, err := h.Uploads.Save(c.Request.Context(), fileHeader.Filename, bytes.NewReader(data)); err != nil {
		telemetry.Error("profile.upload_save", map[string]any{"file": fileHeader.Filename, "error": err.Error()})
	}
	return &ResumeUpload{FileName: fileHeader.Filename, Data: data}, true
}

func readAll(fileHeader *multipart.FileHeader) ([]byte, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
