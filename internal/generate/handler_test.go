package generate

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"jobtailor/internal/ailog"
	"jobtailor/internal/profiles"
	localstore "jobtailor/internal/shared/storage/object/local"
)

func newTestRouter(t *testing.T, client *fakeLLM) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := newTestService(t, client)
	profileStore := profiles.NewFileStore(t.TempDir())
	aiLog := ailog.New(filepath.Join(t.TempDir(), "ai.log"), false)
	h := NewHandler(svc.Session, svc, localstore.New(t.TempDir()), profileStore, aiLog)

	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)
	h.RegisterGenerateRoute(api)
	return r, svc
}

func postMultipart(t *testing.T, r *gin.Engine, path string, fields map[string]string, files map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for name, data := range files {
		fw, err := w.CreateFormFile("resume_files", name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUploadResumesAndSessionState(t *testing.T) {
	r, svc := newTestRouter(t, &fakeLLM{})

	rec := postMultipart(t, r, "/api/v1/resumes", nil, map[string][]byte{
		"resume.txt": []byte("ten years of Go"),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	state := svc.Session.Snapshot()
	if len(state.ResumeTexts) != 1 || state.ResumeTexts[0] != "ten years of Go" {
		t.Fatalf("resume texts = %v", state.ResumeTexts)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("session status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["resume_count"].(float64) != 1 {
		t.Errorf("resume_count = %v", body["resume_count"])
	}
	if body["has_job_description"].(bool) {
		t.Error("no job description expected yet")
	}
}

func TestUploadResumesRejectsUnsupportedOnly(t *testing.T) {
	r, _ := newTestRouter(t, &fakeLLM{})

	rec := postMultipart(t, r, "/api/v1/resumes", nil, map[string][]byte{
		"resume.exe": []byte("binary"),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUploadResumesClearExisting(t *testing.T) {
	r, svc := newTestRouter(t, &fakeLLM{})
	svc.Session.AddResume("old resume")

	rec := postMultipart(t, r, "/api/v1/resumes", map[string]string{"clear_existing": "yes"}, map[string][]byte{
		"new.txt": []byte("new resume"),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	state := svc.Session.Snapshot()
	if len(state.ResumeTexts) != 1 || state.ResumeTexts[0] != "new resume" {
		t.Fatalf("resume texts = %v", state.ResumeTexts)
	}
}

func TestSetAndClearJobDescription(t *testing.T) {
	r, svc := newTestRouter(t, &fakeLLM{})

	rec := postForm(t, r, "/api/v1/job", url.Values{"job_description": {"We need a Go engineer."}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if svc.Session.Snapshot().JobDescription != "We need a Go engineer." {
		t.Error("job description not stored")
	}

	rec = postForm(t, r, "/api/v1/job", url.Values{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty submit status = %d, want 400", rec.Code)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/job", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d", rec.Code)
	}
	if svc.Session.Snapshot().JobDescription != "" {
		t.Error("job description should be cleared")
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	client := &fakeLLM{replies: map[string]string{
		"company":      "Acme Corp",
		"resume":       "<html><head><style>p{}</style></head><body><p>resume</p></body></html>",
		"cover_letter": "<html><head><style>p{}</style></head><body><p>letter</p></body></html>",
	}}
	r, svc := newTestRouter(t, client)
	svc.Session.SetJobDescription("Acme Corp is hiring.")
	svc.Session.AddResume("my resume")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var app Application
	if err := json.Unmarshal(rec.Body.Bytes(), &app); err != nil {
		t.Fatal(err)
	}
	if app.Company != "Acme_Corp" {
		t.Errorf("company = %q", app.Company)
	}
	if len(app.Results) != 1 || app.Results[0].ResumeHTML == "" {
		t.Fatalf("results = %+v", app.Results)
	}

	// Listing shows the new folder and the files download.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var folders []FolderInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &folders); err != nil {
		t.Fatal(err)
	}
	if len(folders) != 1 {
		t.Fatalf("folders = %v", folders)
	}

	path := "/api/v1/applications/" + folders[0].Name + "/files/" + app.Results[0].ResumeHTML
	req = httptest.NewRequest(http.MethodGet, path, nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("download status = %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "attachment") {
		t.Error("download should be an attachment")
	}

	req = httptest.NewRequest(http.MethodGet, path+"?view=true", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Errorf("view content type = %q", got)
	}
	if !strings.Contains(rec.Body.String(), PrintButtonLabel) {
		t.Error("viewed document missing print button")
	}
}

func TestGenerateValidationFailure(t *testing.T) {
	r, _ := newTestRouter(t, &fakeLLM{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDownloadRejectsTraversal(t *testing.T) {
	r, svc := newTestRouter(t, &fakeLLM{})

	outside := filepath.Join(filepath.Dir(svc.OutputDir), "secret.txt")
	if err := os.WriteFile(outside, []byte("secret"), 0o644); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications/%2e%2e/files/secret.txt", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code == http.StatusOK {
		t.Error("traversal path should not be served")
	}
}

func TestViewLogs(t *testing.T) {
	client := &fakeLLM{replies: map[string]string{"company": "Acme"}}
	r, svc := newTestRouter(t, client)
	svc.Session.SetJobDescription("jd")
	svc.Session.AddResume("resume")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/logs", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("logs status = %d", rec.Code)
	}
	var body struct {
		Entries []string `json:"entries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Entries == nil {
		t.Error("entries should be present")
	}
}
