package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"learnhub/internal/modules/learner/domain"
	learnerout "learnhub/internal/modules/learner/port/out"
	apperrors "learnhub/internal/platform/errors"
)

type LearnerService struct {
	gateway learnerout.LearnerGateway
	store   learnerout.IdentityStore
	logger  *zap.Logger
}

func NewLearnerService(gateway learnerout.LearnerGateway, store learnerout.IdentityStore, logger *zap.Logger) *LearnerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LearnerService{gateway: gateway, store: store, logger: logger}
}

// Register creates the learner remotely and persists the returned id. This
// is the only place the identity store is written.
func (s *LearnerService) Register(ctx context.Context, profile domain.Profile) (domain.Learner, error) {
	if err := profile.Validate(); err != nil {
		return domain.Learner{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	learner, err := s.gateway.CreateLearner(ctx, profile)
	if err != nil {
		s.logger.Warn("create learner failed", zap.String("username", profile.Username), zap.Error(err))
		return domain.Learner{}, err
	}
	if strings.TrimSpace(learner.ID) == "" {
		s.logger.Warn("create learner response has no id", zap.String("username", profile.Username))
		return domain.Learner{}, &apperrors.RemoteError{Reason: "learner id missing from response"}
	}
	if err := s.store.SaveLearnerID(ctx, learner.ID); err != nil {
		return domain.Learner{}, err
	}
	if learner.Username == "" {
		learner.Username = profile.Username
	}
	s.logger.Info("learner registered", zap.String("learner_id", learner.ID))
	return learner, nil
}

func (s *LearnerService) Current(ctx context.Context) (string, error) {
	return s.store.LoadLearnerID(ctx)
}

func (s *LearnerService) Forget(ctx context.Context) error {
	if err := s.store.ClearLearnerID(ctx); err != nil {
		return err
	}
	s.logger.Info("learner forgotten")
	return nil
}
