package server

import (
	"encoding/json"
	"errors"
	"net/http"

	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/storage"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errNotFound(format string, args ...any) error {
	return tlerrors.New(tlerrors.ErrCodeNotFound, format, args...)
}

// statusFor maps an error code to an HTTP status.
func statusFor(code tlerrors.Code) int {
	switch {
	case code.IsInvalid(),
		code == tlerrors.ErrCodeIndexOutOfRange,
		code == tlerrors.ErrCodePositionOutOfBounds:
		return http.StatusBadRequest
	case code.IsNotFound():
		return http.StatusNotFound
	case code == tlerrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case code == tlerrors.ErrCodeNetwork:
		return http.StatusBadGateway
	case code == tlerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		err = tlerrors.Wrap(tlerrors.ErrCodeLayoutNotFound, err, "layout not found")
	}
	code := tlerrors.GetCode(err)
	if code == "" {
		code = tlerrors.ErrCodeInternal
	}
	status := statusFor(code)
	msg := tlerrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Code: string(code), Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
