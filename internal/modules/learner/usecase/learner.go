package usecase

import (
	"context"

	"learnhub/internal/modules/learner/domain"
	"learnhub/internal/modules/learner/dto"
	learnerin "learnhub/internal/modules/learner/port/in"
	"learnhub/internal/modules/learner/service"
)

type Interactor struct {
	svc *service.LearnerService
}

func NewInteractor(svc *service.LearnerService) learnerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Register(ctx context.Context, input dto.RegisterInput) (dto.RegisterOutput, error) {
	learner, err := i.svc.Register(ctx, domain.Profile{
		Username:        input.Username,
		LearningGoals:   input.LearningGoals,
		ExperienceLevel: domain.ExperienceLevel(input.ExperienceLevel),
		LearningStyle:   domain.LearningStyle(input.LearningStyle),
	})
	if err != nil {
		return dto.RegisterOutput{}, err
	}
	return dto.RegisterOutput{LearnerID: learner.ID, Username: learner.Username}, nil
}

func (i *Interactor) Current(ctx context.Context) (dto.CurrentOutput, error) {
	learnerID, err := i.svc.Current(ctx)
	if err != nil {
		return dto.CurrentOutput{}, err
	}
	return dto.CurrentOutput{LearnerID: learnerID}, nil
}

func (i *Interactor) Forget(ctx context.Context) error {
	return i.svc.Forget(ctx)
}
