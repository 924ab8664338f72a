package out

import (
	"context"

	"learnhub/internal/modules/session/domain"
)

type SessionGateway interface {
	CreateSession(ctx context.Context, learnerID, topic string) (domain.Created, error)
	// ListSessions returns an empty slice, not an error, when the response
	// is not a list of sessions.
	ListSessions(ctx context.Context, learnerID string) ([]domain.Session, error)
	GenerateContent(ctx context.Context, learnerID string) (domain.Generation, error)
}

type NoteStore interface {
	Save(ctx context.Context, dir, learnerID string, session domain.Session) (string, error)
}
