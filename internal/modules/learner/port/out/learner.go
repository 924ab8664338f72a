package out

import (
	"context"

	"learnhub/internal/modules/learner/domain"
)

type LearnerGateway interface {
	CreateLearner(ctx context.Context, profile domain.Profile) (domain.Learner, error)
}

// IdentityStore persists the learner id between runs. LoadLearnerID returns
// apperrors.ErrNoLearner when nothing is stored.
type IdentityStore interface {
	SaveLearnerID(ctx context.Context, learnerID string) error
	LoadLearnerID(ctx context.Context) (string, error)
	ClearLearnerID(ctx context.Context) error
}
