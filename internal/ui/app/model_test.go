package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/mux"

	learnerin "learnhub/internal/modules/learner/adapter/in"
	learnerout "learnhub/internal/modules/learner/adapter/out"
	learnerport "learnhub/internal/modules/learner/port/out"
	learnerservice "learnhub/internal/modules/learner/service"
	learnerusecase "learnhub/internal/modules/learner/usecase"
	sessionin "learnhub/internal/modules/session/adapter/in"
	sessionout "learnhub/internal/modules/session/adapter/out"
	sessionservice "learnhub/internal/modules/session/service"
	sessionusecase "learnhub/internal/modules/session/usecase"
	"learnhub/internal/platform/api"
	"learnhub/internal/platform/clock"
	apperrors "learnhub/internal/platform/errors"
	"learnhub/internal/platform/id"
	"learnhub/internal/platform/logging"
	"learnhub/internal/ui/app"
	"learnhub/internal/ui/components"
	"learnhub/internal/ui/nav"
)

type backend struct {
	mu      sync.Mutex
	created map[string]any
}

func (b *backend) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/learners", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(req.Body).Decode(&body)
		b.mu.Lock()
		b.created = body
		b.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":42,"username":"ana"}`))
	}).Methods(http.MethodPost)
	r.HandleFunc("/api/learners/{id}/sessions", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}).Methods(http.MethodGet)
	return r
}

type harness struct {
	store   learnerport.IdentityStore
	backend *backend
	model   tea.Model
}

func newHarness(t *testing.T, start nav.Route) *harness {
	t.Helper()
	b := &backend{}
	srv := httptest.NewServer(b.router())
	t.Cleanup(srv.Close)

	logger := logging.Nop()
	client := api.NewClient(srv.URL, 0, id.UUID{}, logger)
	store, err := learnerout.NewSQLiteIdentityStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open identity store: %v", err)
	}

	learnerUC := learnerusecase.NewInteractor(learnerservice.NewLearnerService(learnerout.NewHTTPLearnerGateway(client), store, logger))
	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(sessionout.NewHTTPSessionGateway(client, logger), sessionout.NewVaultNoteStore(), logger),
		learnerUC,
	)

	m := app.NewModel(learnerin.NewCLIHandler(learnerUC), sessionin.NewCLIHandler(sessionUC), client, app.Options{
		StartRoute: start,
		APIURL:     srv.URL,
		Clock:      clock.NewManual(time.Now()),
	})
	h := &harness{store: store, backend: b, model: m}
	h.send(t, tea.WindowSizeMsg{Width: 120, Height: 40})
	h.settle(t, m.Init())
	return h
}

// drain runs cmd and nested batches; commands that block past the timeout
// (cursor blinks, the banner tick) are dropped.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, drain(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(300 * time.Millisecond):
		return nil
	}
}

func (h *harness) settle(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var seen []tea.Msg
	queue := drain(cmd)
	for i := 0; len(queue) > 0; i++ {
		if i > 200 {
			t.Fatalf("update loop did not settle")
		}
		msg := queue[0]
		queue = queue[1:]
		seen = append(seen, msg)
		var next tea.Cmd
		h.model, next = h.model.Update(msg)
		queue = append(queue, drain(next)...)
	}
	return seen
}

func (h *harness) send(t *testing.T, msg tea.Msg) []tea.Msg {
	t.Helper()
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	return h.settle(t, cmd)
}

func (h *harness) typeText(t *testing.T, s string) {
	h.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) press(t *testing.T, k tea.KeyType) []tea.Msg {
	return h.send(t, tea.KeyMsg{Type: k})
}

func (h *harness) app() app.Model { return h.model.(app.Model) }

func TestOnboardingToDashboardScenario(t *testing.T) {
	t.Parallel()
	h := newHarness(t, nav.Onboarding)
	if h.app().Route() != nav.Onboarding {
		t.Fatalf("expected onboarding, got %s", h.app().Route())
	}

	h.typeText(t, "ana")
	h.press(t, tea.KeyEnter)
	h.typeText(t, "Python")
	h.press(t, tea.KeyEnter)
	h.press(t, tea.KeyEnter)

	stored, err := h.store.LoadLearnerID(context.Background())
	if err != nil || stored != "42" {
		t.Fatalf("expected stored learner 42, got %q (%v)", stored, err)
	}
	if h.app().Route() != nav.Dashboard {
		t.Fatalf("expected dashboard, got %s", h.app().Route())
	}
	if h.app().LearnerID() != "42" {
		t.Fatalf("dashboard opened for %q", h.app().LearnerID())
	}
	if view := h.model.View(); !strings.Contains(view, "ana") {
		t.Fatalf("banner must mention ana:\n%s", view)
	}

	h.backend.mu.Lock()
	defer h.backend.mu.Unlock()
	if h.backend.created["username"] != "ana" || h.backend.created["learning_goals"] != "Python" || h.backend.created["experience_level"] != "beginner" {
		t.Fatalf("unexpected create body %#v", h.backend.created)
	}
	if _, ok := h.backend.created["learning_style"]; ok {
		t.Fatalf("three-step wizard must not send learning_style")
	}
}

func TestDashboardWithoutLearnerRedirectsToOnboarding(t *testing.T) {
	t.Parallel()
	h := newHarness(t, nav.Dashboard)
	if h.app().Route() != nav.Onboarding {
		t.Fatalf("expected redirect to onboarding, got %s", h.app().Route())
	}
}

func TestQuitKeyIsTypedWhileWizardCapturesInput(t *testing.T) {
	t.Parallel()
	h := newHarness(t, nav.Onboarding)
	for _, msg := range h.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}) {
		if _, ok := msg.(tea.QuitMsg); ok {
			t.Fatalf("q must be typed into the username field")
		}
	}
	if h.app().Route() != nav.Onboarding {
		t.Fatalf("route changed unexpectedly")
	}
}

func TestPaletteForgetClearsLearner(t *testing.T) {
	t.Parallel()
	h := newHarness(t, nav.Landing)
	if err := h.store.SaveLearnerID(context.Background(), "7"); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	h.send(t, components.PaletteSubmitMsg{Input: "go:dashboard"})
	if h.app().Route() != nav.Dashboard || h.app().LearnerID() != "7" {
		t.Fatalf("expected dashboard for learner 7, got %s %q", h.app().Route(), h.app().LearnerID())
	}

	h.send(t, components.PaletteSubmitMsg{Input: "learner:forget"})
	if _, err := h.store.LoadLearnerID(context.Background()); !errors.Is(err, apperrors.ErrNoLearner) {
		t.Fatalf("expected ErrNoLearner after forget, got %v", err)
	}
	if h.app().Route() != nav.Landing {
		t.Fatalf("forgetting on the dashboard returns to landing, got %s", h.app().Route())
	}
}

func TestPaletteDashboardCommandsNeedDashboard(t *testing.T) {
	t.Parallel()
	h := newHarness(t, nav.Landing)
	h.send(t, components.PaletteSubmitMsg{Input: "session:start"})
	if !strings.Contains(h.model.View(), "open the dashboard first") {
		t.Fatalf("expected status hint:\n%s", h.model.View())
	}
}

func TestLateLearnerLookupDoesNotOverrideNewerNavigation(t *testing.T) {
	t.Parallel()
	h := newHarness(t, nav.Landing)
	if err := h.store.SaveLearnerID(context.Background(), "7"); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	var lookup tea.Cmd
	h.model, lookup = h.model.Update(nav.NavigateMsg{Route: nav.Dashboard})
	if lookup == nil {
		t.Fatalf("dashboard navigation should start a learner lookup")
	}
	h.send(t, nav.NavigateMsg{Route: nav.Landing})

	h.settle(t, lookup)
	if h.app().Route() != nav.Landing {
		t.Fatalf("a lookup resolved after leaving must not open the dashboard, got %s", h.app().Route())
	}
	if h.app().LearnerID() != "" {
		t.Fatalf("stale lookup must not set the learner, got %q", h.app().LearnerID())
	}
}
