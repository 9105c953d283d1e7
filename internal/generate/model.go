package generate

import "time"

// DocumentSet records the generated files for one resume, plus a per-resume
// error when generation failed partway.
type DocumentSet struct {
	ResumeHTML      string `json:"resume_html,omitempty"`
	CoverLetterHTML string `json:"cover_letter_html,omitempty"`
	ResumePDF       string `json:"resume_pdf,omitempty"`
	CoverLetterPDF  string `json:"cover_letter_pdf,omitempty"`
	Error           string `json:"error,omitempty"`
}

// Application summarizes one generation run. It is never updated after
// creation; the output folder persists until externally deleted.
type Application struct {
	ID        string        `json:"id"`
	Folder    string        `json:"folder"`
	Company   string        `json:"company"`
	Results   []DocumentSet `json:"results"`
	CreatedAt time.Time     `json:"created_at"`
}

// FolderInfo describes one generated output folder on disk.
type FolderInfo struct {
	Name       string    `json:"name"`
	Files      []string  `json:"files"`
	ModifiedAt time.Time `json:"modified_at"`
}
