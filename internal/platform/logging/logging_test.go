package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"learnhub/internal/platform/logging"
)

func TestNewFileWritesJSONLines(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "learnhub.log")
	logger, err := logging.NewFile(path, false)
	if err != nil {
		t.Fatalf("new file logger: %v", err)
	}
	logger.Info("sessions listed")
	logger.Debug("hidden at info level")
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(b)
	if !strings.Contains(text, `"msg":"sessions listed"`) {
		t.Fatalf("expected info line, got %s", text)
	}
	if strings.Contains(text, "hidden at info level") {
		t.Fatalf("debug line must be filtered at info level")
	}
}
