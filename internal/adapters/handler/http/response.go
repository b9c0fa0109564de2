package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeError maps a service error to its HTTP status. Unexpected errors are
// logged and reported without detail.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, err error) {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validation.Message, Field: validation.Field})
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrProposalNotFound),
		errors.Is(err, domain.ErrSpaceNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrVoteNotFound):
		writeMessage(w, http.StatusNotFound, rootMessage(err))
	case errors.Is(err, domain.ErrNotSpaceMember),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrKYCRequired):
		writeMessage(w, http.StatusForbidden, rootMessage(err))
	case errors.Is(err, domain.ErrAlreadyMember),
		errors.Is(err, domain.ErrProposalNotActive),
		errors.Is(err, domain.ErrVotingClosed),
		errors.Is(err, domain.ErrNotOnChain):
		writeMessage(w, http.StatusConflict, rootMessage(err))
	case errors.Is(err, domain.ErrInvalidSignature),
		errors.Is(err, domain.ErrNonceNotFound):
		writeMessage(w, http.StatusUnauthorized, rootMessage(err))
	case errors.Is(err, domain.ErrStoreUnavailable),
		errors.Is(err, domain.ErrChainUnavailable):
		logger.Warnw("dependency unavailable", "error", err)
		writeMessage(w, http.StatusServiceUnavailable, "service temporarily unavailable, retry later")
	default:
		logger.Errorw("request failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}

// rootMessage returns the message of the domain sentinel err wraps so that
// driver details never reach the client.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		domain.ErrProposalNotFound, domain.ErrSpaceNotFound, domain.ErrUserNotFound, domain.ErrVoteNotFound,
		domain.ErrNotSpaceMember, domain.ErrForbidden, domain.ErrKYCRequired, domain.ErrAlreadyMember,
		domain.ErrProposalNotActive, domain.ErrVotingClosed, domain.ErrNotOnChain,
		domain.ErrInvalidSignature, domain.ErrNonceNotFound,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// queryInt reads an optional integer query parameter, returning 0 when it
// is absent.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func userIDFrom(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
