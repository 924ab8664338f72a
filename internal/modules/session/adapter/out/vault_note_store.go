package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"learnhub/internal/modules/session/domain"
	sessionout "learnhub/internal/modules/session/port/out"
	"learnhub/internal/platform/markdown"
	"learnhub/internal/platform/slug"
)

const lessonBlock = "lesson"

// VaultNoteStore writes sessions as markdown notes with YAML frontmatter,
// grouped by creation date. Re-exporting a session rewrites the header and
// the generated lesson block and keeps everything else the learner wrote.
//
// A note belongs to the session whose id is in its frontmatter. When two
// sessions slug to the same file name the later one gets a numbered
// suffix. Sessions without an id never reclaim an existing note.
type VaultNoteStore struct {
	mu sync.Mutex
}

func NewVaultNoteStore() sessionout.NoteStore {
	return &VaultNoteStore{}
}

type noteMeta struct {
	SchemaVersion int    `yaml:"schema_version"`
	ID            string `yaml:"id"`
	LearnerID     string `yaml:"learner_id"`
	Topic         string `yaml:"topic"`
	Progress      int    `yaml:"progress"`
	CreatedAt     string `yaml:"created_at,omitempty"`
}

func (s *VaultNoteStore) Save(_ context.Context, dir, learnerID string, session domain.Session) (string, error) {
	date := session.CreatedAt
	dayDir := "undated"
	if !date.IsZero() {
		dayDir = filepath.Join(date.Format("2006"), date.Format("01"), date.Format("02"))
	}
	target := filepath.Join(dir, "sessions", dayDir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	path, body, err := claimNote(target, slug.Make(session.ID)+"-"+slug.Make(session.Topic), session.ID)
	if err != nil {
		return "", err
	}
	if body == "" {
		body = "# " + session.Topic + "\n"
	}
	body = markdown.UpsertBlock(body, lessonBlock, session.Content)

	meta := noteMeta{
		SchemaVersion: domain.SchemaVersion,
		ID:            session.ID,
		LearnerID:     learnerID,
		Topic:         session.Topic,
		Progress:      session.ProgressPercent(),
	}
	if !date.IsZero() {
		meta.CreatedAt = date.Format(time.RFC3339)
	}
	rendered, err := markdown.Render(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, rendered, 0o644); err != nil {
		return "", fmt.Errorf("write session note: %w", err)
	}
	return path, nil
}

// claimNote returns the first path under dir named after base that is
// either free or already holds the note for id, with that note's body.
func claimNote(dir, base, id string) (string, string, error) {
	for n := 1; ; n++ {
		name := base + ".md"
		if n > 1 {
			name = fmt.Sprintf("%s-%d.md", base, n)
		}
		path := filepath.Join(dir, name)
		owner, body, exists, err := readNote(path)
		if err != nil {
			return "", "", err
		}
		if !exists {
			return path, "", nil
		}
		if id != "" && owner == id {
			return path, body, nil
		}
	}
}

func readNote(path string) (owner, body string, exists bool, err error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, fmt.Errorf("read session note: %w", err)
	}
	var meta noteMeta
	body, err = markdown.Parse(raw, &meta)
	if err != nil && !errors.Is(err, markdown.ErrNoFrontmatter) {
		return "", "", false, fmt.Errorf("parse session note %s: %w", path, err)
	}
	return meta.ID, body, true, nil
}
