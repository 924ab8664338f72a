package usecase

import (
	"context"

	learnerin "learnhub/internal/modules/learner/port/in"
	"learnhub/internal/modules/session/domain"
	sessiondto "learnhub/internal/modules/session/dto"
	sessionin "learnhub/internal/modules/session/port/in"
	"learnhub/internal/modules/session/service"
	apperrors "learnhub/internal/platform/errors"
)

type Interactor struct {
	svc     *service.SessionService
	learner learnerin.Usecase
}

func NewInteractor(svc *service.SessionService, learner learnerin.Usecase) sessionin.Usecase {
	return &Interactor{svc: svc, learner: learner}
}

func (i *Interactor) List(ctx context.Context, input sessiondto.ListInput) ([]sessiondto.SessionOutput, error) {
	learnerID, err := i.resolveLearner(ctx, input.LearnerID)
	if err != nil {
		return nil, err
	}
	sessions, err := i.svc.List(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toOutput(s))
	}
	return out, nil
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.StartOutput, error) {
	learnerID, err := i.resolveLearner(ctx, input.LearnerID)
	if err != nil {
		return sessiondto.StartOutput{}, err
	}
	created, err := i.svc.Start(ctx, learnerID, input.Topic)
	if err != nil {
		return sessiondto.StartOutput{}, err
	}
	return sessiondto.StartOutput{SessionID: created.ID, Topic: created.Topic, Message: created.Message}, nil
}

func (i *Interactor) Generate(ctx context.Context, input sessiondto.GenerateInput) (sessiondto.GenerateOutput, error) {
	learnerID, err := i.resolveLearner(ctx, input.LearnerID)
	if err != nil {
		return sessiondto.GenerateOutput{}, err
	}
	gen, err := i.svc.Generate(ctx, learnerID)
	if err != nil {
		return sessiondto.GenerateOutput{}, err
	}
	return sessiondto.GenerateOutput{Message: gen.Message, Content: gen.Content}, nil
}

func (i *Interactor) Export(ctx context.Context, input sessiondto.ExportInput) (sessiondto.ExportOutput, error) {
	learnerID, err := i.resolveLearner(ctx, input.LearnerID)
	if err != nil {
		return sessiondto.ExportOutput{}, err
	}
	paths, err := i.svc.Export(ctx, learnerID, input.Dir)
	if err != nil {
		return sessiondto.ExportOutput{}, err
	}
	return sessiondto.ExportOutput{Paths: paths}, nil
}

func (i *Interactor) resolveLearner(ctx context.Context, learnerID string) (string, error) {
	if learnerID != "" {
		return learnerID, nil
	}
	if i.learner == nil {
		return "", apperrors.ErrNoLearner
	}
	current, err := i.learner.Current(ctx)
	if err != nil {
		return "", err
	}
	return current.LearnerID, nil
}

func toOutput(s domain.Session) sessiondto.SessionOutput {
	return sessiondto.SessionOutput{
		ID:        s.ID,
		Topic:     s.Topic,
		Progress:  s.ProgressPercent(),
		CreatedAt: s.CreatedAt,
		Content:   s.Content,
	}
}
