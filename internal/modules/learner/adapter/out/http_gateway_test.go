package out_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	learnerout "learnhub/internal/modules/learner/adapter/out"
	"learnhub/internal/modules/learner/domain"
	"learnhub/internal/platform/api"
	apperrors "learnhub/internal/platform/errors"
	"learnhub/internal/platform/id"
)

func TestCreateLearnerPostsWireShape(t *testing.T) {
	t.Parallel()
	var got map[string]any
	r := mux.NewRouter()
	r.HandleFunc("/api/learners", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 42}`))
	}).Methods(http.MethodPost)
	srv := httptest.NewServer(r)
	defer srv.Close()

	gw := learnerout.NewHTTPLearnerGateway(api.NewClient(srv.URL, 0, id.UUID{}, nil))
	learner, err := gw.CreateLearner(context.Background(), domain.Profile{
		Username:        "ana",
		LearningGoals:   "Python",
		ExperienceLevel: domain.ExperienceBeginner,
	})
	require.NoError(t, err)
	assert.Equal(t, "42", learner.ID)
	assert.Equal(t, map[string]any{
		"username":         "ana",
		"learning_goals":   "Python",
		"experience_level": "beginner",
	}, got, "learning_style must be omitted when unset")
}

func TestCreateLearnerSurfacesConflictReason(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Username already exists"}`))
	}))
	defer srv.Close()

	gw := learnerout.NewHTTPLearnerGateway(api.NewClient(srv.URL, 0, id.UUID{}, nil))
	_, err := gw.CreateLearner(context.Background(), domain.Profile{Username: "ana"})
	require.ErrorIs(t, err, apperrors.ErrRemote)
	assert.Equal(t, "Username already exists", apperrors.Reason(err))
}
