package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoLearner    = errors.New("no learner registered")
	ErrRemote       = errors.New("remote rejected request")
	ErrTransport    = errors.New("transport failure")
)

// RemoteError is a response that arrived intact but reports failure,
// either through an {error} body or an explicit success=false.
type RemoteError struct {
	Status int
	Reason string
}

func (e *RemoteError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (status %d)", e.Reason, e.Status)
	}
	return e.Reason
}

func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}

// Reason returns the user-facing text of err: the server reason for remote
// failures and the error text otherwise.
func Reason(err error) string {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Reason
	}
	return err.Error()
}
