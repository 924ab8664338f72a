package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"learnhub/internal/modules/session/domain"
	sessionout "learnhub/internal/modules/session/port/out"
	"learnhub/internal/platform/api"
)

type HTTPSessionGateway struct {
	client *api.Client
	logger *zap.Logger
}

func NewHTTPSessionGateway(client *api.Client, logger *zap.Logger) sessionout.SessionGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPSessionGateway{client: client, logger: logger}
}

type sessionWire struct {
	ID          api.ID   `json:"id"`
	Topic       string   `json:"topic"`
	Progress    *float64 `json:"progress"`
	CreatedAt   string   `json:"created_at"`
	CreatedAtJS string   `json:"createdAt"`
	Content     string   `json:"content"`
	Message     string   `json:"message"`
}

type generateWire struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Content string `json:"content"`
}

func sessionsPath(learnerID string) string {
	return "/api/learners/" + url.PathEscape(learnerID) + "/sessions"
}

func (g *HTTPSessionGateway) CreateSession(ctx context.Context, learnerID, topic string) (domain.Created, error) {
	resp := sessionWire{}
	body := map[string]string{"topic": topic}
	if err := g.client.Call(ctx, http.MethodPost, sessionsPath(learnerID), body, &resp); err != nil {
		return domain.Created{}, fmt.Errorf("create session: %w", err)
	}
	return domain.Created{
		ID:      resp.ID.String(),
		Topic:   resp.Topic,
		Message: resp.Message,
		Content: resp.Content,
	}, nil
}

// ListSessions fails closed: a body that is not a list of sessions yields
// an empty slice and a shape-mismatch warning instead of an error.
func (g *HTTPSessionGateway) ListSessions(ctx context.Context, learnerID string) ([]domain.Session, error) {
	var raw json.RawMessage
	if err := g.client.Call(ctx, http.MethodGet, sessionsPath(learnerID), nil, &raw); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		g.logger.Warn("sessions response shape mismatch",
			zap.String("learner_id", learnerID),
			zap.String("reason", "not a list"),
		)
		return []domain.Session{}, nil
	}
	var wire []sessionWire
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		g.logger.Warn("sessions response shape mismatch",
			zap.String("learner_id", learnerID),
			zap.String("reason", "undecodable element"),
			zap.Error(err),
		)
		return []domain.Session{}, nil
	}
	out := make([]domain.Session, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

func (g *HTTPSessionGateway) GenerateContent(ctx context.Context, learnerID string) (domain.Generation, error) {
	resp := generateWire{}
	body := map[string]string{"learner_id": learnerID}
	if err := g.client.Call(ctx, http.MethodPost, "/api/generate-content", body, &resp); err != nil {
		return domain.Generation{}, fmt.Errorf("generate content: %w", err)
	}
	return domain.Generation{Message: resp.Message, Content: resp.Content}, nil
}

func (w sessionWire) toDomain() domain.Session {
	s := domain.Session{
		ID:      w.ID.String(),
		Topic:   w.Topic,
		Content: w.Content,
	}
	if w.Progress != nil {
		s.Progress = int(math.Round(*w.Progress))
	}
	created := w.CreatedAt
	if created == "" {
		created = w.CreatedAtJS
	}
	s.CreatedAt = parseTimestamp(created)
	return s
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// parseTimestamp accepts RFC3339 and the zone-less ISO form the backend
// emits, which is read as UTC. Unknown formats give the zero time.
func parseTimestamp(v string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
