package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/neighborfit/internal/adapters/repository"
	"github.com/okian/neighborfit/internal/domain/scoring"
	"github.com/okian/neighborfit/internal/validation"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// Error codes written in errorResponse.Code.
const (
	codeBadRequest = "bad_request"
	codeNotFound   = "not_found"
	codeTimeout    = "timeout"
	codeInternal   = "internal_error"
)

// writeServiceError translates an upstream error into a status code and body.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *validation.RequestValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, verr.ToAPIError())
	case isBadRequest(err):
		writeError(w, http.StatusBadRequest, codeBadRequest, err)
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, scoring.ErrInput):
		writeError(w, http.StatusNotFound, codeNotFound, err)
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, codeTimeout, err)
	default:
		writeError(w, http.StatusInternalServerError, codeInternal, err)
	}
}

func isBadRequest(err error) bool {
	for _, kind := range []error{
		ErrBadRequest,
		repository.ErrInvalidLimit,
		repository.ErrInvalidCategory,
		repository.ErrInvalidInteraction,
		repository.ErrInvalidRating,
		repository.ErrMissingUserID,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
