package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	sessionout "learnhub/internal/modules/session/adapter/out"
	"learnhub/internal/modules/session/domain"
	"learnhub/internal/platform/markdown"
)

func TestVaultNoteStoreWritesFrontmatterNote(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := sessionout.NewVaultNoteStore()
	session := domain.Session{
		ID:        "7",
		Topic:     "Intro to Go",
		Progress:  30,
		CreatedAt: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
		Content:   "## Vocabulary\n\n- goroutine",
	}
	path, err := store.Save(context.Background(), dir, "42", session)
	if err != nil {
		t.Fatalf("save note: %v", err)
	}
	if want := filepath.Join(dir, "sessions", "2026", "10", "19", "7-intro-to-go.md"); path != want {
		t.Fatalf("expected %s, got %s", want, path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	var meta struct {
		LearnerID string `yaml:"learner_id"`
		Topic     string `yaml:"topic"`
		Progress  int    `yaml:"progress"`
		CreatedAt string `yaml:"created_at"`
	}
	body, err := markdown.Parse(b, &meta)
	if err != nil {
		t.Fatalf("parse frontmatter: %v", err)
	}
	if meta.LearnerID != "42" || meta.Topic != "Intro to Go" || meta.Progress != 30 || meta.CreatedAt != "2026-10-19T09:00:00Z" {
		t.Fatalf("unexpected frontmatter %#v", meta)
	}
	if !strings.HasPrefix(body, "# Intro to Go\n") || !strings.Contains(body, "- goroutine") {
		t.Fatalf("body missing content: %s", body)
	}
}

func TestVaultNoteStoreReexportKeepsLearnerNotes(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := sessionout.NewVaultNoteStore()
	session := domain.Session{ID: "9", Topic: "Functions", Progress: 10, Content: "first draft"}

	path, err := store.Save(context.Background(), dir, "42", session)
	if err != nil {
		t.Fatalf("save note: %v", err)
	}
	b, _ := os.ReadFile(path)
	if err := os.WriteFile(path, append(b, []byte("\nmy notes: practise closures\n")...), 0o644); err != nil {
		t.Fatalf("append notes: %v", err)
	}

	session.Progress = 80
	session.Content = "revised lesson"
	if _, err := store.Save(context.Background(), dir, "42", session); err != nil {
		t.Fatalf("re-save note: %v", err)
	}
	b, _ = os.ReadFile(path)
	note := string(b)
	for _, want := range []string{"progress: 80", "revised lesson", "my notes: practise closures"} {
		if !strings.Contains(note, want) {
			t.Fatalf("note missing %q:\n%s", want, note)
		}
	}
	if strings.Contains(note, "first draft") || strings.Count(note, "# Functions") != 1 {
		t.Fatalf("stale lesson left behind:\n%s", note)
	}
}

func TestVaultNoteStoreHandlesUndatedSessions(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path, err := sessionout.NewVaultNoteStore().Save(context.Background(), dir, "42", domain.Session{ID: "8", Topic: "Loops"})
	if err != nil {
		t.Fatalf("save note: %v", err)
	}
	if filepath.Base(filepath.Dir(path)) != "undated" {
		t.Fatalf("expected undated dir, got %s", path)
	}
}

func TestVaultNoteStoreKeepsCollidingSessionsApart(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := sessionout.NewVaultNoteStore()
	sessions := []domain.Session{
		{ID: "", Topic: "Loops", Content: "first"},
		{ID: "", Topic: "Loops", Content: "second"},
		{ID: "a/b", Topic: "Loops", Content: "third"},
		{ID: "a-b", Topic: "Loops", Content: "fourth"},
	}

	paths := make([]string, len(sessions))
	var wg sync.WaitGroup
	for i, session := range sessions {
		i, session := i, session // per-iteration copy (go.mod targets go1.21)
		wg.Add(1)
		go func() {
			defer wg.Done()
			path, err := store.Save(context.Background(), dir, "42", session)
			if err != nil {
				t.Errorf("save %d: %v", i, err)
				return
			}
			paths[i] = path
		}()
	}
	wg.Wait()

	seen := map[string]bool{}
	for i, path := range paths {
		if seen[path] {
			t.Fatalf("session %d overwrote %s", i, path)
		}
		seen[path] = true
		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read note %d: %v", i, err)
		}
		if !strings.Contains(string(b), sessions[i].Content) {
			t.Fatalf("note %s lost content %q:\n%s", path, sessions[i].Content, b)
		}
	}

	again, err := store.Save(context.Background(), dir, "42", domain.Session{ID: "a-b", Topic: "Loops", Content: "fifth"})
	if err != nil {
		t.Fatalf("re-save: %v", err)
	}
	if again != paths[3] {
		t.Fatalf("re-export should reuse %s, got %s", paths[3], again)
	}
}
