package in

import (
	"context"

	"learnhub/internal/modules/learner/dto"
)

type Usecase interface {
	Register(ctx context.Context, input dto.RegisterInput) (dto.RegisterOutput, error)
	Current(ctx context.Context) (dto.CurrentOutput, error)
	Forget(ctx context.Context) error
}
