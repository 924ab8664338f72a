package in

import (
	"context"

	"learnhub/internal/modules/session/dto"
)

// Usecase resolves an empty LearnerID through the learner module and fails
// with apperrors.ErrNoLearner when none is registered.
type Usecase interface {
	List(ctx context.Context, input dto.ListInput) ([]dto.SessionOutput, error)
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	Generate(ctx context.Context, input dto.GenerateInput) (dto.GenerateOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
