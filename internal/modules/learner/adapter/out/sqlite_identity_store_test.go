package out_test

import (
	"context"
	"path/filepath"
	"testing"

	learnerout "learnhub/internal/modules/learner/adapter/out"
	apperrors "learnhub/internal/platform/errors"
)

func TestIdentityStoreRoundTripAndClear(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "nested", "state.db")
	store, err := learnerout.NewSQLiteIdentityStore(dbPath)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.LoadLearnerID(ctx); err != apperrors.ErrNoLearner {
		t.Fatalf("expected no learner on empty store, got %v", err)
	}
	if err := store.SaveLearnerID(ctx, "41"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SaveLearnerID(ctx, "42"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := store.LoadLearnerID(ctx)
	if err != nil || got != "42" {
		t.Fatalf("expected 42, got %q (%v)", got, err)
	}

	reopened, err := learnerout.NewSQLiteIdentityStore(dbPath)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	if got, err := reopened.LoadLearnerID(ctx); err != nil || got != "42" {
		t.Fatalf("expected id to survive reopen, got %q (%v)", got, err)
	}

	if err := store.ClearLearnerID(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.ClearLearnerID(ctx); err != nil {
		t.Fatalf("clearing twice should be harmless: %v", err)
	}
	if _, err := store.LoadLearnerID(ctx); err != apperrors.ErrNoLearner {
		t.Fatalf("expected no learner after clear, got %v", err)
	}
}
