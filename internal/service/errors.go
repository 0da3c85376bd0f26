package service

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"university-backend/foundation/web"
	"university-backend/internal/repository"
)

// Error kinds. Every request error the service returns wraps one of these,
// so callers can test with errors.Is.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid state transition")
)

// failure carries a client facing message over one of the kinds above.
type failure struct {
	kind error
	msg  string
}

func (f *failure) Error() string { return f.msg }
func (f *failure) Unwrap() error { return f.kind }

func invalidf(format string, args ...interface{}) error {
	return web.NewRequestError(&failure{ErrInvalidInput, fmt.Sprintf(format, args...)}, http.StatusBadRequest)
}

func notFound(what string) error {
	return web.NewRequestError(&failure{ErrNotFound, what + " not found"}, http.StatusNotFound)
}

// storeErr maps a store failure to a request error, wrapping anything
// unexpected for the 500 path.
func storeErr(err error, what string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound(what)
	case errors.Is(err, repository.ErrInvalidTransition):
		return web.NewRequestError(&failure{ErrInvalidTransition, what + " has already been responded to"}, http.StatusConflict)
	case errors.Is(err, repository.ErrDuplicate):
		return invalidf("%s already exists", what)
	}
	return errors.Wrap(err, what)
}
