package server

import (
	"encoding/json"
	"net/http"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/host/memtree"
)

// Result is the answer to a rendered document.
type Result struct {
	// HTML is the host tree after the operation.
	HTML string `json:"html"`

	// Mutations are the host operations the reconciler applied.
	Mutations []memtree.Mutation `json:"mutations"`

	// Error is set when the document failed.
	Error *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a failed document.
type ErrorBody struct {
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
	Path       string `json:"path,omitempty"`
	Component  string `json:"component,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func errorBody(err error) *ErrorBody {
	var ve *errors.VtreeError
	if !errors.As(err, &ve) {
		return &ErrorBody{Message: err.Error()}
	}
	return &ErrorBody{
		Code:       ve.Code,
		Message:    ve.Error(),
		Path:       ve.Path,
		Component:  ve.Component,
		Suggestion: ve.Suggestion,
	}
}

// statusFor maps an error to an HTTP status. Document and tree errors are
// the client's fault; everything else is ours.
func statusFor(err error) int {
	var ve *errors.VtreeError
	if !errors.As(err, &ve) {
		return http.StatusInternalServerError
	}
	switch ve.Category {
	case errors.CategoryValidation, errors.CategoryDocument:
		return http.StatusUnprocessableEntity
	case errors.CategoryLifecycle:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
