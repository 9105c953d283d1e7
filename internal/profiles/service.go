package profiles

import (
	"context"
	"fmt"
	"strings"

	"jobtailor/internal/extract"
	"jobtailor/internal/llm"
	"jobtailor/internal/shared/telemetry"
	"jobtailor/internal/skills"
)

// SessionSelector is the slice of the generation session the profile
// workflow touches: selecting a profile after save and dropping it after
// delete. Implemented by generate.Session.
type SessionSelector interface {
	SetProfile(key string, p Profile)
	RefreshProfileIfSelected(key string, p Profile)
	DropProfileIfSelected(key string)
}

// ResumeUpload carries an uploaded resume file through profile create and
// update.
type ResumeUpload struct {
	FileName string
	Data     []byte
}

// CreateInput holds the fields for a new profile.
type CreateInput struct {
	FirstName     string
	LastName      string
	Resume        *ResumeUpload
	PortfolioText string
	LinkedInText  string
}

// UpdateInput holds the optional edits for an existing profile. Nil text
// fields are left unchanged.
type UpdateInput struct {
	Resume        *ResumeUpload
	PortfolioText *string
	LinkedInText  *string
}

// Service handles the profile lifecycle: create with resume extraction and
// skill derivation, list, update, delete, plus session selection.
type Service struct {
	Store   *FileStore
	LLM     llm.Client
	Session SessionSelector
}

// NewService constructs a Service.
func NewService(store *FileStore, client llm.Client, session SessionSelector) *Service {
	return &Service{Store: store, LLM: client, Session: session}
}

// Create builds and saves a new profile, then selects it into the session.
// Skill extraction is best-effort: an empty skill list never fails the save.
func (s *Service) Create(ctx context.Context, in CreateInput) (Profile, error) {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	if firstName == "" || lastName == "" {
		return Profile{}, fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}

	p := New(firstName, lastName)
	p.PortfolioText = strings.TrimSpace(in.PortfolioText)
	p.LinkedInText = strings.TrimSpace(in.LinkedInText)

	if in.Resume != nil {
		text, err := extract.Text(ctx, in.Resume.Data, in.Resume.FileName)
		if err != nil {
			return Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		p.ResumeText = text
	}

	p.Skills = skills.Extract(ctx, s.LLM, p.ResumeText, p.PortfolioText, p.LinkedInText)

	if err := s.Store.Save(&p); err != nil {
		return Profile{}, err
	}

	key := p.StorageKey()
	s.Session.SetProfile(key, p)
	telemetry.Info("profile.created", map[string]any{"key": key, "skills": len(p.Skills)})
	return p, nil
}

// Update applies edits to an existing profile and refreshes the session
// copy when that profile is selected. Skills are re-derived whenever any
// source text changed.
func (s *Service) Update(ctx context.Context, key string, in UpdateInput) (Profile, error) {
	p, err := s.Store.Load(key)
	if err != nil {
		return Profile{}, err
	}

	changed := false
	if in.Resume != nil {
		text, err := extract.Text(ctx, in.Resume.Data, in.Resume.FileName)
		if err != nil {
			return Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		p.ResumeText = text
		changed = true
	}
	if in.PortfolioText != nil {
		p.PortfolioText = strings.TrimSpace(*in.PortfolioText)
		changed = true
	}
	if in.LinkedInText != nil {
		p.LinkedInText = strings.TrimSpace(*in.LinkedInText)
		changed = true
	}

	if changed {
		p.Skills = skills.Extract(ctx, s.LLM, p.ResumeText, p.PortfolioText, p.LinkedInText)
	}

	if err := s.Store.Save(&p); err != nil {
		return Profile{}, err
	}
	s.Session.RefreshProfileIfSelected(key, p)
	return p, nil
}

// Delete removes the profile and clears it from the session if selected.
func (s *Service) Delete(key string) error {
	if err := s.Store.Delete(key); err != nil {
		return err
	}
	s.Session.DropProfileIfSelected(key)
	return nil
}

// List returns all stored profiles, most recently updated first.
func (s *Service) List() ([]Profile, error) {
	return s.Store.ListAll()
}

// Get loads one profile by key.
func (s *Service) Get(key string) (Profile, error) {
	return s.Store.Load(key)
}
