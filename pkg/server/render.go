package server

import (
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/document"
)

// handleRender mounts the request body into a fresh host tree.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxDocumentBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, Result{Error: errorBody(
				errors.New("E031").WithDetailf("document exceeds %d bytes", tooLarge.Limit),
			)})
			return
		}
		writeJSON(w, http.StatusBadRequest, Result{Error: errorBody(errors.New("E031").Wrap(err))})
		return
	}

	format := requestFormat(r)
	tree, err := document.Decode(body, format, s.registry)
	if err != nil {
		writeJSON(w, statusFor(err), Result{Error: errorBody(err)})
		return
	}

	sess := s.newSession()
	defer sess.close()
	res, _, err := sess.apply(r.Context(), tree)
	if err != nil {
		writeJSON(w, statusFor(err), res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// requestFormat reads the document format from ?format= or the
// Content-Type header. JSON is the default.
func requestFormat(r *http.Request) document.Format {
	if f, err := document.ParseFormat(r.URL.Query().Get("format")); err == nil && r.URL.Query().Has("format") {
		return f
	}
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		return document.FormatYAML
	}
	return document.FormatJSON
}
