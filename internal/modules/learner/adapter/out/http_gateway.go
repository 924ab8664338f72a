package out

import (
	"context"
	"fmt"
	"net/http"

	"learnhub/internal/modules/learner/domain"
	learnerout "learnhub/internal/modules/learner/port/out"
	"learnhub/internal/platform/api"
)

type HTTPLearnerGateway struct {
	client *api.Client
}

func NewHTTPLearnerGateway(client *api.Client) learnerout.LearnerGateway {
	return &HTTPLearnerGateway{client: client}
}

type createLearnerRequest struct {
	Username        string `json:"username"`
	LearningGoals   string `json:"learning_goals"`
	ExperienceLevel string `json:"experience_level"`
	LearningStyle   string `json:"learning_style,omitempty"`
}

type createLearnerResponse struct {
	ID       api.ID `json:"id"`
	Username string `json:"username"`
}

func (g *HTTPLearnerGateway) CreateLearner(ctx context.Context, profile domain.Profile) (domain.Learner, error) {
	req := createLearnerRequest{
		Username:        profile.Username,
		LearningGoals:   profile.LearningGoals,
		ExperienceLevel: string(profile.ExperienceLevel),
		LearningStyle:   string(profile.LearningStyle),
	}
	resp := createLearnerResponse{}
	if err := g.client.Call(ctx, http.MethodPost, "/api/learners", req, &resp); err != nil {
		return domain.Learner{}, fmt.Errorf("create learner: %w", err)
	}
	return domain.Learner{ID: resp.ID.String(), Username: resp.Username}, nil
}
