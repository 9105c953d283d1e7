package profiles

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"jobtailor/internal/llm"
)

type fakeLLM struct {
	reply string
	err   error
	calls int
}

func (f *fakeLLM) Generate(ctx context.Context, req llm.Request) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeSession struct {
	selectedKey  string
	refreshedKey string
	droppedKey   string
	profile      Profile
}

func (s *fakeSession) SetProfile(key string, p Profile) {
	s.selectedKey = key
	s.profile = p
}

func (s *fakeSession) RefreshProfileIfSelected(key string, p Profile) {
	s.refreshedKey = key
	s.profile = p
}

func (s *fakeSession) DropProfileIfSelected(key string) {
	s.droppedKey = key
}

func newTestService(t *testing.T) (*Service, *fakeLLM, *fakeSession) {
	t.Helper()
	client := &fakeLLM{reply: `{"skills": ["Go", "Docker"]}`}
	session := &fakeSession{}
	return NewService(NewFileStore(t.TempDir()), client, session), client, session
}

func TestServiceCreateSelectsIntoSession(t *testing.T) {
	svc, _, session := newTestService(t)

	p, err := svc.Create(context.Background(), CreateInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Resume:    &ResumeUpload{FileName: "resume.txt", Data: []byte("ten years of Go")},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if p.ResumeText != "ten years of Go" {
		t.Errorf("resume text = %q", p.ResumeText)
	}
	if !reflect.DeepEqual(p.Skills, []string{"Go", "Docker"}) {
		t.Errorf("skills = %v", p.Skills)
	}
	if session.selectedKey != "Jane_Doe" {
		t.Errorf("session key = %q", session.selectedKey)
	}

	stored, err := svc.Get("Jane_Doe")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.FullName() != "Jane Doe" {
		t.Errorf("stored name = %q", stored.FullName())
	}
}

func TestServiceCreateRequiresNames(t *testing.T) {
	svc, client, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{FirstName: "  ", LastName: "Doe"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if client.calls != 0 {
		t.Error("no LLM call expected on validation failure")
	}
}

func TestServiceCreateSurvivesSkillFailure(t *testing.T) {
	svc, client, _ := newTestService(t)
	client.err = errors.New("model offline")

	p, err := svc.Create(context.Background(), CreateInput{FirstName: "Jane", LastName: "Doe"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(p.Skills) != 0 {
		t.Errorf("skills = %v, want empty", p.Skills)
	}
}

func TestServiceUpdateRefreshesSelection(t *testing.T) {
	svc, client, session := newTestService(t)

	if _, err := svc.Create(context.Background(), CreateInput{FirstName: "Jane", LastName: "Doe"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	callsAfterCreate := client.calls

	portfolio := "portfolio text"
	p, err := svc.Update(context.Background(), "Jane_Doe", UpdateInput{PortfolioText: &portfolio})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.PortfolioText != "portfolio text" {
		t.Errorf("portfolio = %q", p.PortfolioText)
	}
	if client.calls != callsAfterCreate+1 {
		t.Error("skills should be re-derived when text changes")
	}
	if session.refreshedKey != "Jane_Doe" {
		t.Errorf("refreshed key = %q", session.refreshedKey)
	}
}

func TestServiceUpdateMissingProfile(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, err := svc.Update(context.Background(), "Nobody", UpdateInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestServiceDeleteDropsSelection(t *testing.T) {
	svc, _, session := newTestService(t)

	if _, err := svc.Create(context.Background(), CreateInput{FirstName: "Jane", LastName: "Doe"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete("Jane_Doe"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if session.droppedKey != "Jane_Doe" {
		t.Errorf("dropped key = %q", session.droppedKey)
	}
	if _, err := svc.Get("Jane_Doe"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("profile should be gone, got %v", err)
	}
}
