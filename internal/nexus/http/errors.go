package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/nexus/internal/nexus/authz"
	"github.com/aussiebroadwan/nexus/internal/nexus/blob"
	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/service"
	"github.com/aussiebroadwan/nexus/internal/nexus/session"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
	"github.com/aussiebroadwan/nexus/pkg/httpx"
	"github.com/aussiebroadwan/nexus/pkg/nexusapi"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
)

// apiError maps a service error to its wire form. Unknown errors map to nil.
func apiError(err error) *nexusapi.APIError {
	var maxBytes *http.MaxBytesError

	switch {
	case errors.Is(err, authz.ErrUnauthenticated), errors.Is(err, session.ErrNoSession):
		return nexusapi.ErrUnauthenticated
	case errors.Is(err, authz.ErrForbidden):
		return nexusapi.ErrForbidden
	case errors.Is(err, service.ErrInvalidCredentials):
		return nexusapi.ErrInvalidCredentials
	case errors.Is(err, service.ErrInvalidMFAToken):
		return nexusapi.ErrInvalidMFAToken
	case errors.Is(err, service.ErrPasswordMismatch):
		return nexusapi.ErrCurrentPasswordIncorrect
	case errors.Is(err, service.ErrMFAAlreadyEnabled):
		return nexusapi.ErrMFAAlreadyEnabled
	case errors.Is(err, service.ErrUsernameTaken):
		return nexusapi.ErrUsernameTaken
	case errors.Is(err, service.ErrAlreadyAssigned):
		return nexusapi.ErrAlreadyAssigned
	case errors.Is(err, blob.ErrTooLarge), errors.As(err, &maxBytes):
		return nexusapi.ErrTooLarge
	case errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrInvalidProject),
		errors.Is(err, service.ErrInvalidDocument),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, blob.ErrInvalidName),
		errors.Is(err, httpx.ErrBadJSON):
		return nexusapi.ErrInvalidRequest.WithDescription(err.Error())
	case errors.Is(err, store.ErrNotFound):
		return nexusapi.ErrNotFound
	}
	return nil
}

// writeError writes the mapped error, or logs err and writes server_error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if e := apiError(err); e != nil {
		e.WriteError(w)
		return
	}

	slogx.FromContext(r.Context()).Error("request failed", "error", err)
	nexusapi.ErrServerError.WriteError(w)
}
