package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/directory/internal/directory/listing"
	"github.com/aussiebroadwan/directory/internal/directory/service"
	"github.com/aussiebroadwan/directory/pkg/adminsdk"
	"github.com/aussiebroadwan/directory/pkg/httpx"
	"github.com/aussiebroadwan/directory/pkg/slogx"
)

// writeServiceError maps service errors onto the error envelope. Anything
// unrecognised is logged and reported as a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *listing.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteError(w, http.StatusBadRequest, adminsdk.ErrorCodeValidation, verr.Message)
	case errors.Is(err, service.ErrRoleNotFound), errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, adminsdk.ErrorCodeNotFound, err.Error())
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, adminsdk.ErrorCodeServerError, "Failed to process request")
	}
}

func writeBadRequest(w http.ResponseWriter, description string) {
	httpx.WriteError(w, http.StatusBadRequest, adminsdk.ErrorCodeInvalidRequest, description)
}
