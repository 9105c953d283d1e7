package skills

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"jobtailor/internal/llm"
)

type fakeClient struct {
	reply string
	err   error
}

func (f fakeClient) Generate(ctx context.Context, req llm.Request) (string, error) {
	return f.reply, f.err
}

func TestExtractValidJSON(t *testing.T) {
	client := fakeClient{reply: `{"skills": ["Go", "PostgreSQL", "Team leadership"]}`}
	got := Extract(context.Background(), client, "resume", "", "")
	want := []string{"Go", "PostgreSQL", "Team leadership"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractNotJSONFallsBackToQuotes(t *testing.T) {
	client := fakeClient{reply: `Here are the skills: "Go", "Docker" and more.`}
	got := Extract(context.Background(), client, "resume", "", "")
	want := []string{"Go", "Docker"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractNotJSONNoQuotesReturnsEmpty(t *testing.T) {
	client := fakeClient{reply: "not json"}
	got := Extract(context.Background(), client, "resume", "", "")
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestExtractClientErrorReturnsEmpty(t *testing.T) {
	client := fakeClient{err: errors.New("boom")}
	got := Extract(context.Background(), client, "resume", "", "")
	if len(got) != 0 {
		t.Fatalf("expected empty list on error, got %v", got)
	}
}

func TestParseNullSkills(t *testing.T) {
	got := Parse(`{"skills": null}`)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", got)
	}
}
