package common

import (
	"encoding/json"
	"net/http"

	pkgerrors "stockledger/pkg/errors"
)

// APIResponse is the response envelope every endpoint returns: code mirrors
// the HTTP status, msg is "ok" on success and a human-readable message on
// failure, data carries the payload.
type APIResponse struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// RespondOK sends a success envelope with the given payload
func RespondOK(w http.ResponseWriter, data interface{}) {
	writeEnvelope(w, http.StatusOK, APIResponse{
		Code: http.StatusOK,
		Msg:  "ok",
		Data: data,
	})
}

// RespondError maps an error onto the envelope. Typed application errors
// carry their own HTTP status; anything else is an internal failure.
func RespondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	if appErr := pkgerrors.GetAppError(err); appErr != nil {
		if appErr.HTTPStatus != 0 {
			status = appErr.HTTPStatus
		}
		message = appErr.Message
	} else if err != nil {
		message = err.Error()
	}

	writeEnvelope(w, status, APIResponse{
		Code: status,
		Msg:  message,
	})
}

// RespondBadRequest sends a validation failure envelope
func RespondBadRequest(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusBadRequest, APIResponse{
		Code: http.StatusBadRequest,
		Msg:  message,
	})
}

func writeEnvelope(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
