package site

import (
	"bytes"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler serves the rendered page on GET and HEAD.
func (r *Renderer) Handler(log *zap.SugaredLogger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet && req.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		id := uuid.NewString()
		start := time.Now()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		var buf bytes.Buffer
		if err := r.Render(req.Context(), &buf); err != nil {
			log.Errorw("render page; serving hidden section", "request_id", id, "err", err)
			buf.Reset()
			_ = r.Fallback(&buf)
		} else {
			log.Debugw("rendered page", "request_id", id, "elapsed", time.Since(start))
		}

		if req.Method == http.MethodHead {
			return
		}
		if _, err := buf.WriteTo(w); err != nil {
			log.Warnw("write response", "request_id", id, "err", err)
		}
	})
}
