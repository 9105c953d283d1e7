package generate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"jobtailor/internal/company"
	"jobtailor/internal/llm"
	"jobtailor/internal/pdfrender"
	"jobtailor/internal/shared/metrics"
	"jobtailor/internal/shared/telemetry"
)

var (
	// ErrMissingJobDescription fails generation before any AI call.
	ErrMissingJobDescription = errors.New("job description is required")
	// ErrNoResumes fails generation before any AI call.
	ErrNoResumes = errors.New("at least one resume is required")
)

// Service orchestrates one generation run: company extraction, output
// folder creation, per-resume document generation, print-button injection,
// and the best-effort PDF step.
type Service struct {
	Session   *Session
	Generator *Generator
	LLM       llm.Client
	Renderer  pdfrender.Renderer
	OutputDir string
	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

// ProcessApplication runs the full pipeline against the current session.
func (s *Service) ProcessApplication(ctx context.Context) (Application, error) {
	state := s.Session.Snapshot()
	if state.JobDescription == "" {
		return Application{}, ErrMissingJobDescription
	}
	if len(state.ResumeTexts) == 0 {
		return Application{}, ErrNoResumes
	}

	metrics.IncGenerationStarted()
	started := time.Now()
	defer func() {
		metrics.ObserveGenerationDurationMs(float64(time.Since(started)) / float64(time.Millisecond))
	}()

	companyName := company.Extract(ctx, s.LLM, state.JobDescription)
	s.Session.SetCompanyName(companyName)

	folderName := fmt.Sprintf("%s_%s", companyName, s.now().Format("20060102_150405"))
	folder := filepath.Join(s.OutputDir, folderName)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		metrics.IncGenerationFailed()
		return Application{}, fmt.Errorf("create output folder: %w", err)
	}
	telemetry.Info("application.folder_created", map[string]any{"folder": folder})

	applicantName := ""
	if state.HasProfile {
		applicantName = state.Profile.FullName()
	}

	results := make([]DocumentSet, 0, len(state.ResumeTexts))
	for i, resumeText := range state.ResumeTexts {
		in := DocumentInput{
			ResumeText:     resumeText,
			JobDescription: state.JobDescription,
			CompanyName:    companyName,
			ApplicantName:  applicantName,
		}
		if state.HasProfile {
			in.Skills = state.Profile.Skills
			in.PortfolioText = state.Profile.PortfolioText
			in.LinkedInText = state.Profile.LinkedInText
		}
		results = append(results, s.processResume(ctx, folder, companyName, i, in))
	}

	succeeded := false
	for _, set := range results {
		if set.Error == "" {
			succeeded = true
			break
		}
	}
	if succeeded {
		metrics.IncGenerationCompleted()
	} else {
		metrics.IncGenerationFailed()
	}

	return Application{
		ID:        uuid.NewString(),
		Folder:    folder,
		Company:   companyName,
		Results:   results,
		CreatedAt: s.now().UTC(),
	}, nil
}

func (s *Service) processResume(ctx context.Context, folder, companyName string, index int, in DocumentInput) DocumentSet {
	var set DocumentSet

	resumeHTML, err := s.Generator.Resume(ctx, in)
	if err != nil {
		telemetry.Error("application.resume_generate", map[string]any{"index": index, "error": err.Error()})
		set.Error = fmt.Sprintf("resume generation failed: %v", err)
		return set
	}
	resumeHTML = MakePrintable(resumeHTML)
	resumeFile := fmt.Sprintf("Resume_%d_%s.html", index+1, companyName)
	if err := os.WriteFile(filepath.Join(folder, resumeFile), []byte(resumeHTML), 0o644); err != nil {
		telemetry.Error("application.resume_write", map[string]any{"index": index, "error": err.Error()})
		set.Error = fmt.Sprintf("resume write failed: %v", err)
		return set
	}
	set.ResumeHTML = resumeFile

	coverHTML, err := s.Generator.CoverLetter(ctx, in)
	if err != nil {
		telemetry.Error("application.cover_letter_generate", map[string]any{"index": index, "error": err.Error()})
		set.Error = fmt.Sprintf("cover letter generation failed: %v", err)
		return set
	}
	coverHTML = MakePrintable(coverHTML)
	coverFile := fmt.Sprintf("Cover_Letter_%d_%s.html", index+1, companyName)
	if err := os.WriteFile(filepath.Join(folder, coverFile), []byte(coverHTML), 0o644); err != nil {
		telemetry.Error("application.cover_letter_write", map[string]any{"index": index, "error": err.Error()})
		set.Error = fmt.Sprintf("cover letter write failed: %v", err)
		return set
	}
	set.CoverLetterHTML = coverFile

	set.ResumePDF = s.renderPDF(ctx, folder, resumeFile, resumeHTML)
	set.CoverLetterPDF = s.renderPDF(ctx, folder, coverFile, coverHTML)
	return set
}

// renderPDF is best-effort: any failure is logged and the PDF filename is
// omitted from the result, leaving the HTML as the deliverable.
func (s *Service) renderPDF(ctx context.Context, folder, htmlFile string, html string) string {
	if s.Renderer == nil {
		return ""
	}
	pdfBytes, err := s.Renderer.RenderHTML(ctx, []byte(html))
	if err != nil {
		if !errors.Is(err, pdfrender.ErrUnavailable) {
			telemetry.Warn("application.pdf_render", map[string]any{"file": htmlFile, "error": err.Error()})
		}
		return ""
	}
	pdfFile := htmlFile[:len(htmlFile)-len(".html")] + ".pdf"
	if err := os.WriteFile(filepath.Join(folder, pdfFile), pdfBytes, 0o644); err != nil {
		telemetry.Warn("application.pdf_write", map[string]any{"file": pdfFile, "error": err.Error()})
		return ""
	}
	return pdfFile
}

// ListGenerated inventories the output folders, newest first.
func (s *Service) ListGenerated() ([]FolderInfo, error) {
	entries, err := os.ReadDir(s.OutputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []FolderInfo{}, nil
		}
		return nil, fmt.Errorf("scan output dir: %w", err)
	}

	out := make([]FolderInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files, err := os.ReadDir(filepath.Join(s.OutputDir, entry.Name()))
		if err != nil {
			telemetry.Warn("application.list_folder", map[string]any{"folder": entry.Name(), "error": err.Error()})
			continue
		}
		names := make([]string, 0, len(files))
		for _, f := range files {
			if !f.IsDir() {
				names = append(names, f.Name())
			}
		}
		out = append(out, FolderInfo{
			Name:       entry.Name(),
			Files:      names,
			ModifiedAt: info.ModTime(),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ModifiedAt.After(out[j].ModifiedAt)
	})
	return out, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
