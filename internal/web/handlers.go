package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/csvasset/internal/source"
)

const rawSuffix = "/raw"

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDataset serves GET /api/datasets/{name} as a parsed table and
// GET /api/datasets/{name}/raw as the resolved text.
func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	name, raw, err := datasetName(chi.URLParam(r, "*"), r.URL.RawPath != "")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.limiter.Acquire(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	defer s.limiter.Release()

	if raw {
		text, err := s.loader.LoadAssetFile(r.Context(), name)
		if err != nil {
			respondError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Write([]byte(text))
		return
	}

	table, err := s.loader.LoadAndParse(r.Context(), name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// handleParse parses the request body as CSV.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	if err := s.limiter.Acquire(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	defer s.limiter.Release()

	table, err := s.loader.ParseReader(r.Body)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// datasetName splits off the /raw suffix and validates the name. chi routes
// on RawPath when the request carries one, and only then is the wildcard
// still escaped.
func datasetName(param string, escaped bool) (name string, raw bool, err error) {
	name = param
	if escaped {
		if name, err = url.PathUnescape(param); err != nil {
			return "", false, source.ErrInvalidName
		}
	}
	if trimmed, ok := strings.CutSuffix(name, rawSuffix); ok {
		name, raw = trimmed, true
	}
	if err := source.ValidateName(name); err != nil {
		return "", false, err
	}
	return name, raw, nil
}
