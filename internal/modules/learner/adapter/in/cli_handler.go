package in

import (
	"context"

	"learnhub/internal/modules/learner/dto"
	learnerin "learnhub/internal/modules/learner/port/in"
)

type CLIHandler struct {
	usecase learnerin.Usecase
}

func NewCLIHandler(usecase learnerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Register(ctx context.Context, username, goals, experience, style string) (dto.RegisterOutput, error) {
	return h.usecase.Register(ctx, dto.RegisterInput{
		Username:        username,
		LearningGoals:   goals,
		ExperienceLevel: experience,
		LearningStyle:   style,
	})
}

func (h CLIHandler) Current(ctx context.Context) (dto.CurrentOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) Forget(ctx context.Context) error {
	return h.usecase.Forget(ctx)
}
