package generate

import (
	"strings"
	"sync"

	"jobtailor/internal/extract"
	"jobtailor/internal/profiles"
	"jobtailor/internal/shared/telemetry"
)

// Session is the working set for the active generation workflow: loaded
// resume texts, the job description, and the selected profile. It is shared
// across requests and mutex-guarded.
type Session struct {
	mu             sync.Mutex
	resumeTexts    []string
	jobDescription string
	companyName    string
	style          extract.StyleAttributes
	profileKey     string
	profile        profiles.Profile
	hasProfile     bool
}

// NewSession constructs an empty session.
func NewSession() *Session {
	return &Session{}
}

// State is a point-in-time copy of the session.
type State struct {
	ResumeTexts    []string
	JobDescription string
	CompanyName    string
	Style          extract.StyleAttributes
	ProfileKey     string
	Profile        profiles.Profile
	HasProfile     bool
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	texts := make([]string, len(s.resumeTexts))
	copy(texts, s.resumeTexts)
	return State{
		ResumeTexts:    texts,
		JobDescription: s.jobDescription,
		CompanyName:    s.companyName,
		Style:          s.style,
		ProfileKey:     s.profileKey,
		Profile:        s.profile,
		HasProfile:     s.hasProfile,
	}
}

// AddResume appends a resume text; blank input is ignored.
func (s *Session) AddResume(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumeTexts = append(s.resumeTexts, trimmed)
	telemetry.Info("session.resume_added", map[string]any{"chars": len(trimmed), "count": len(s.resumeTexts)})
	return true
}

// ClearResumes drops all loaded resume texts.
func (s *Session) ClearResumes() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumeTexts = nil
	telemetry.Info("session.resumes_cleared", nil)
}

// SetJobDescription replaces the job description.
func (s *Session) SetJobDescription(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobDescription = strings.TrimSpace(text)
}

// ClearJobDescription drops the job description.
func (s *Session) ClearJobDescription() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobDescription = ""
}

// SetCompanyName records the extracted company name.
func (s *Session) SetCompanyName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companyName = name
}

// SetStyle records style attributes probed from a reference PDF.
func (s *Session) SetStyle(style extract.StyleAttributes) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = style
}

// SetProfile selects the current profile. A profile with resume text
// replaces the loaded resume list with that single resume.
func (s *Session) SetProfile(key string, p profiles.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profileKey = key
	s.profile = p
	s.hasProfile = true
	if strings.TrimSpace(p.ResumeText) != "" {
		s.resumeTexts = []string{p.ResumeText}
	}
	telemetry.Info("session.profile_selected", map[string]any{"key": key})
}

// ClearProfile drops the current profile and its loaded resume.
func (s *Session) ClearProfile() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profileKey = ""
	s.profile = profiles.Profile{}
	s.hasProfile = false
	s.resumeTexts = nil
	telemetry.Info("session.profile_cleared", nil)
}

// RefreshProfileIfSelected reloads the session copy of the profile when it
// is the selected one, used after a profile is edited.
func (s *Session) RefreshProfileIfSelected(key string, p profiles.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasProfile || s.profileKey != key {
		return
	}
	s.profile = p
	if strings.TrimSpace(p.ResumeText) != "" {
		s.resumeTexts = []string{p.ResumeText}
	}
}

// DropProfileIfSelected clears the session profile when it matches key,
// used after a profile is deleted.
func (s *Session) DropProfileIfSelected(key string) {
	s.mu.Lock()
	match := s.hasProfile && s.profileKey == key
	s.mu.Unlock()
	if match {
		s.ClearProfile()
	}
}
