package apperrors

import (
	"errors"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrNoOpenSession     = errors.New("no open session")
	ErrOpenSessionExists = errors.New("an open session already exists")
	ErrRolloverNotDue    = errors.New("open session has not crossed a day boundary")
	ErrNoProfile         = errors.New("no profile configured")
	ErrUnknownMethod     = errors.New("unknown contraception method")
	ErrNoNotifier        = errors.New("no notifier plugin configured")
)

// ValidationError carries the full list of reasons a session edit was
// rejected. No mutation happens when one is returned.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "edit rejected: " + strings.Join(e.Reasons, "; ")
}
