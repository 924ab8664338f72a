package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"learnhub/internal/modules/session/domain"
	sessionout "learnhub/internal/modules/session/port/out"
	apperrors "learnhub/internal/platform/errors"
)

const exportConcurrency = 4

type SessionService struct {
	gateway sessionout.SessionGateway
	notes   sessionout.NoteStore
	logger  *zap.Logger
}

func NewSessionService(gateway sessionout.SessionGateway, notes sessionout.NoteStore, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{gateway: gateway, notes: notes, logger: logger}
}

func (s *SessionService) List(ctx context.Context, learnerID string) ([]domain.Session, error) {
	sessions, err := s.gateway.ListSessions(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}
	return sessions, nil
}

func (s *SessionService) Start(ctx context.Context, learnerID, topic string) (domain.Created, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = domain.DefaultTopic
	}
	created, err := s.gateway.CreateSession(ctx, learnerID, topic)
	if err != nil {
		s.logger.Warn("create session failed", zap.String("learner_id", learnerID), zap.Error(err))
		return domain.Created{}, err
	}
	if strings.TrimSpace(created.ID) == "" {
		return domain.Created{}, &apperrors.RemoteError{Reason: "session id missing from response"}
	}
	s.logger.Info("session created", zap.String("learner_id", learnerID), zap.String("session_id", created.ID))
	return created, nil
}

// Generate substitutes the fallback reason when the server reports failure
// without a message.
func (s *SessionService) Generate(ctx context.Context, learnerID string) (domain.Generation, error) {
	gen, err := s.gateway.GenerateContent(ctx, learnerID)
	if err == nil {
		return gen, nil
	}
	s.logger.Warn("generate content failed", zap.String("learner_id", learnerID), zap.Error(err))
	var remote *apperrors.RemoteError
	if errors.As(err, &remote) && strings.TrimSpace(remote.Reason) == "" {
		return domain.Generation{}, &apperrors.RemoteError{Status: remote.Status, Reason: domain.GenerateFallbackReason}
	}
	return domain.Generation{}, err
}

// Export writes one note per session into dir and returns the note paths in
// list order.
func (s *SessionService) Export(ctx context.Context, learnerID, dir string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: export dir is required", apperrors.ErrInvalidInput)
	}
	sessions, err := s.List(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(sessions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(exportConcurrency)
	for i, session := range sessions {
		i, session := i, session // per-iteration copy (go.mod targets go1.21)
		g.Go(func() error {
			path, err := s.notes.Save(gctx, dir, learnerID, session)
			if err != nil {
				return fmt.Errorf("export session %s: %w", session.ID, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.logger.Info("sessions exported", zap.String("dir", dir), zap.Int("count", len(paths)))
	return paths, nil
}
