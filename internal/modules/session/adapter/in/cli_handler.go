package in

import (
	"context"

	sessiondto "learnhub/internal/modules/session/dto"
	sessionin "learnhub/internal/modules/session/port/in"
)

// CLIHandler methods fall back to the registered learner when learnerID is
// empty.
type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, learnerID string) ([]sessiondto.SessionOutput, error) {
	return h.usecase.List(ctx, sessiondto.ListInput{LearnerID: learnerID})
}

func (h CLIHandler) Start(ctx context.Context, learnerID, topic string) (sessiondto.StartOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{LearnerID: learnerID, Topic: topic})
}

func (h CLIHandler) Generate(ctx context.Context, learnerID string) (sessiondto.GenerateOutput, error) {
	return h.usecase.Generate(ctx, sessiondto.GenerateInput{LearnerID: learnerID})
}

func (h CLIHandler) Export(ctx context.Context, learnerID, dir string) (sessiondto.ExportOutput, error) {
	return h.usecase.Export(ctx, sessiondto.ExportInput{LearnerID: learnerID, Dir: dir})
}
