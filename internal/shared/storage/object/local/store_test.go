package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	key, size, mimeType, err := store.Save(ctx, "resume.txt", strings.NewReader("hello world"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if size != int64(len("hello world")) {
		t.Fatalf("expected size %d, got %d", len("hello world"), size)
	}
	if !strings.HasPrefix(mimeType, "text/plain") {
		t.Fatalf("expected text/plain mime, got %s", mimeType)
	}
	if !strings.HasSuffix(key, "_resume.txt") {
		t.Fatalf("expected random-prefixed key, got %s", key)
	}

	rc, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(data, []byte("hello world")) {
		t.Fatalf("round trip mismatch: %q", data)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../outside"); err == nil {
		t.Fatalf("expected error for traversal key")
	}
	if _, err := store.Open(context.Background(), "/abs/path"); err == nil {
		t.Fatalf("expected error for absolute key")
	}
}

func TestSaveRejectsBadName(t *testing.T) {
	store := New(t.TempDir())
	if _, _, _, err := store.Save(context.Background(), "../evil.txt", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error for traversal name")
	}
}
