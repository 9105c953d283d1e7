package generate

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"jobtailor/internal/ailog"
	"jobtailor/internal/extract"
	"jobtailor/internal/profiles"
	"jobtailor/internal/shared/server/respond"
	"jobtailor/internal/shared/storage/object"
	"jobtailor/internal/shared/telemetry"
	"jobtailor/internal/shared/util"
)

const maxUploadSize = 16 << 20 // 16MB

// Handler wires the generation workflow to HTTP routes.
type Handler struct {
	Session  *Session
	Svc      *Service
	Uploads  object.ObjectStore
	Profiles *profiles.FileStore
	AILog    *ailog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(session *Session, svc *Service, uploads object.ObjectStore, profileStore *profiles.FileStore, aiLog *ailog.Logger) *Handler {
	return &Handler{Session: session, Svc: svc, Uploads: uploads, Profiles: profileStore, AILog: aiLog}
}

// RegisterRoutes attaches generation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/session", h.sessionState)
	rg.POST("/resumes", h.uploadResumes)
	rg.DELETE("/resumes", h.clearResumes)
	rg.POST("/job", h.setJobDescription)
	rg.DELETE("/job", h.clearJobDescription)
	rg.POST("/session/profile/:key", h.selectProfile)
	rg.DELETE("/session/profile", h.clearProfile)
	rg.GET("/applications", h.listApplications)
	rg.GET("/applications/:folder/files/:name", h.downloadFile)
	rg.GET("/logs", h.viewLogs)
}

// RegisterGenerateRoute attaches the generation endpoint; it is registered
// separately so the router can rate limit it.
func (h *Handler) RegisterGenerateRoute(rg *gin.RouterGroup) {
	rg.POST("/applications", h.generate)
}

func (h *Handler) sessionState(c *gin.Context) {
	state := h.Session.Snapshot()
	payload := gin.H{
		"resume_count":        len(state.ResumeTexts),
		"has_job_description": state.JobDescription != "",
		"company":             state.CompanyName,
		"style":               state.Style,
	}
	if state.HasProfile {
		payload["profile_key"] = state.ProfileKey
		payload["profile_name"] = state.Profile.FullName()
	}
	respond.OK(c, payload)
}

func (h *Handler) uploadResumes(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart form is required", nil)
		return
	}
	files := form.File["resume_files"]
	if len(files) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume_files is required", nil)
		return
	}

	if c.PostForm("clear_existing") == "yes" {
		h.Session.ClearResumes()
	}

	uploaded := make([]string, 0, len(files))
	for _, fileHeader := range files {
		name := fileHeader.Filename
		if !extract.Allowed(name) {
			telemetry.Warn("upload.unsupported_extension", map[string]any{"file": name})
			continue
		}

		data, storageKey, err := h.saveUpload(c, fileHeader)
		if err != nil {
			telemetry.Error("upload.save", map[string]any{"file": name, "error": err.Error()})
			continue
		}

		text, err := extract.Text(c.Request.Context(), data, name)
		if err != nil {
			telemetry.Error("upload.extract", map[string]any{"file": name, "key": storageKey, "error": err.Error()})
			continue
		}
		if !h.Session.AddResume(text) {
			telemetry.Warn("upload.empty_text", map[string]any{"file": name})
			continue
		}
		uploaded = append(uploaded, name)

		if strings.EqualFold(filepath.Ext(name), ".pdf") {
			if style, err := extract.Style(data); err == nil {
				h.Session.SetStyle(style)
			}
		}
	}

	if len(uploaded) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "no valid files were uploaded", nil)
		return
	}
	respond.OK(c, gin.H{
		"uploaded":     uploaded,
		"resume_count": len(h.Session.Snapshot().ResumeTexts),
	})
}

func (h *Handler) saveUpload(c *gin.Context, fileHeader *multipart.FileHeader) ([]byte, string, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}

	storageKey, _, _, err := h.Uploads.Save(c.Request.Context(), fileHeader.Filename, bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	return data, storageKey, nil
}

func (h *Handler) clearResumes(c *gin.Context) {
	h.Session.ClearResumes()
	respond.OK(c, gin.H{"resume_count": 0})
}

func (h *Handler) setJobDescription(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	// A job description arrives either as an uploaded file or as form text.
	if fileHeader, err := c.FormFile("job_file"); err == nil && fileHeader.Filename != "" {
		if !extract.Allowed(fileHeader.Filename) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unsupported job description file type", nil)
			return
		}
		f, err := fileHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read job description file", nil)
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read job description file", nil)
			return
		}
		if _, _, _, err := h.Uploads.Save(c.Request.Context(), fileHeader.Filename, bytes.NewReader(data)); err != nil {
			telemetry.Error("job.upload_save", map[string]any{"file": fileHeader.Filename, "error": err.Error()})
		}
		text, err := extract.Text(c.Request.Context(), data, fileHeader.Filename)
		if err != nil {
			telemetry.Error("job.extract", map[string]any{"file": fileHeader.Filename, "error": err.Error()})
			respond.Error(c, http.StatusBadRequest, "validation_error", "could not extract text from job description file", nil)
			return
		}
		h.Session.SetJobDescription(text)
		telemetry.Info("job.loaded_from_file", map[string]any{"file": fileHeader.Filename})
		respond.OK(c, gin.H{"has_job_description": true})
		return
	}

	text := strings.TrimSpace(c.PostForm("job_description"))
	if text == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "job_description or job_file is required", nil)
		return
	}
	h.Session.SetJobDescription(text)
	telemetry.Info("job.loaded_from_text", map[string]any{"chars": len(text)})
	respond.OK(c, gin.H{"has_job_description": true})
}

func (h *Handler) clearJobDescription(c *gin.Context) {
	h.Session.ClearJobDescription()
	respond.OK(c, gin.H{"has_job_description": false})
}

func (h *Handler) selectProfile(c *gin.Context) {
	key, err := util.SanitizeFileName(c.Param("key"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid profile key", nil)
		return
	}
	p, err := h.Profiles.Load(key)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return
	}
	h.Session.SetProfile(key, p)
	c.Set("profileKey", key)
	respond.OK(c, gin.H{"profile_key": key, "profile_name": p.FullName()})
}

func (h *Handler) clearProfile(c *gin.Context) {
	h.Session.ClearProfile()
	respond.OK(c, gin.H{"profile_key": ""})
}

func (h *Handler) generate(c *gin.Context) {
	app, err := h.Svc.ProcessApplication(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingJobDescription), errors.Is(err, ErrNoResumes):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "generation_failed", "failed to process job application", err.Error())
		}
		return
	}
	c.Set("applicationId", app.ID)
	c.Set("company", app.Company)
	respond.Created(c, app)
}

func (h *Handler) listApplications(c *gin.Context) {
	folders, err := h.Svc.ListGenerated()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list generated applications", nil)
		return
	}
	respond.OK(c, folders)
}

func (h *Handler) downloadFile(c *gin.Context) {
	folder, err := util.SanitizeFileName(c.Param("folder"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid folder name", nil)
		return
	}
	name, err := util.SanitizeFileName(c.Param("name"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return
	}

	path := filepath.Join(h.Svc.OutputDir, folder, name)
	data, err := os.ReadFile(path)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
		return
	}

	if c.Query("view") == "true" && strings.HasSuffix(name, ".html") {
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, contentTypeFor(name), data)
}

func (h *Handler) viewLogs(c *gin.Context) {
	respond.OK(c, gin.H{"entries": h.AILog.Tail()})
}

func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html":
		return "text/html; charset=utf-8"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
