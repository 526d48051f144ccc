package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdeck/pkg/domain"
	"github.com/umputun/newsdeck/pkg/session"
)

// cardResponse is a card with its estimated display height
type cardResponse struct {
	domain.Card
	Height float64 `json:"height,omitempty"`
}

// feedResponse is the session state as served by the api
type feedResponse struct {
	Phase session.Phase  `json:"phase"`
	Error string         `json:"error,omitempty"`
	Cards []cardResponse `json:"cards"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	st := s.session.State()
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
		"phase":   st.Phase,
		"cards":   len(st.Cards),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// feedHandler returns the current state and cards. With width set each card carries its estimated height.
func (s *Server) feedHandler(w http.ResponseWriter, r *http.Request) {
	width, err := widthParam(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	renderJSON(w, r, http.StatusOK, s.feedResponse(s.session.State(), width))
}

// feedEventsHandler streams the current state and every later transition as server-sent events
func (s *Server) feedEventsHandler(w http.ResponseWriter, r *http.Request) {
	width, err := widthParam(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{}) // stream outlives the server write timeout

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_ = rc.Flush()

	// closed when the client goes away or the session is closed
	for st := range s.session.Subscribe(r.Context()) {
		data, err := json.Marshal(s.feedResponse(st, width))
		if err != nil {
			lgr.Printf("[ERROR] can't marshal feed event: %v", err)
			continue
		}
		if _, err := fmt.Fprintf(w, "event: state\ndata: %s\n\n", data); err != nil {
			lgr.Printf("[DEBUG] feed events for %s stopped: %v", r.RemoteAddr, err)
			return
		}
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			lgr.Printf("[DEBUG] can't flush feed event: %v", err)
			return
		}
	}
}

// loadHandler loads the feed and returns the resulting state
func (s *Server) loadHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Load(r.Context()); err != nil {
		lgr.Printf("[WARN] feed load requested by %s failed: %v", r.RemoteAddr, err)
		renderJSON(w, r, http.StatusBadGateway, s.feedResponse(s.session.State(), 0))
		return
	}
	renderJSON(w, r, http.StatusOK, s.feedResponse(s.session.State(), 0))
}

// sourcesHandler returns current sources, grouped by category with ?group=category
func (s *Server) sourcesHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("group") == "category" {
		renderJSON(w, r, http.StatusOK, s.session.SourcesByCategory())
		return
	}
	sources := s.session.Sources()
	if sources == nil {
		sources = []domain.Source{}
	}
	renderJSON(w, r, http.StatusOK, sources)
}

// toggleSourceHandler enables or disables a source
func (s *Server) toggleSourceHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled *bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
		renderError(w, r, errors.New("invalid request, enabled is required"), http.StatusBadRequest)
		return
	}

	if st := s.session.State(); st.Phase != session.PhaseSuccess {
		renderError(w, r, errors.New("feed is not loaded"), http.StatusConflict)
		return
	}

	id := r.PathValue("id")
	sources := s.session.Sources()
	idx := slices.IndexFunc(sources, func(src domain.Source) bool { return src.ID == id })
	if idx < 0 {
		renderError(w, r, errors.New("source not found"), http.StatusNotFound)
		return
	}

	s.session.ToggleSource(r.Context(), sources[idx], *req.Enabled)

	for _, src := range s.session.Sources() {
		if src.ID == id {
			renderJSON(w, r, http.StatusOK, src)
			return
		}
	}
	renderError(w, r, errors.New("source not found"), http.StatusNotFound)
}

// resetSourceHandler drops the stored flag of a source, the fetched default applies from the next load
func (s *Server) resetSourceHandler(w http.ResponseWriter, r *http.Request) {
	if s.overrides == nil {
		renderError(w, r, errors.New("source overrides are not stored"), http.StatusServiceUnavailable)
		return
	}
	id := r.PathValue("id")
	if err := s.overrides.DeleteOverride(r.Context(), id); err != nil {
		lgr.Printf("[ERROR] failed to reset source %s: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	lgr.Printf("[INFO] source %s reset to default", id)
	w.WriteHeader(http.StatusNoContent)
}

// visitHandler records a visited article url
func (s *Server) visitHandler(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		renderError(w, r, errors.New("history is disabled"), http.StatusServiceUnavailable)
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		renderError(w, r, errors.New("invalid request, url is required"), http.StatusBadRequest)
		return
	}
	if domain.RegistrableDomain(req.URL) == "" {
		renderError(w, r, errors.New("invalid url"), http.StatusBadRequest)
		return
	}

	if err := s.history.RecordVisit(r.Context(), req.URL); err != nil {
		lgr.Printf("[ERROR] failed to record visit: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// widthParam returns the optional ?width, 0 if not set
func widthParam(r *http.Request) (float64, error) {
	ws := r.URL.Query().Get("width")
	if ws == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(ws, 64)
	if err != nil || v < 0 {
		return 0, errors.New("invalid width")
	}
	return v, nil
}

func (s *Server) feedResponse(st session.State, width float64) feedResponse {
	res := feedResponse{Phase: st.Phase, Cards: make([]cardResponse, 0, len(st.Cards))}
	if st.Err != nil {
		res.Error = st.Err.Error()
	}
	metrics := s.config.GetLayout()
	for _, c := range st.Cards {
		cr := cardResponse{Card: c}
		if width > 0 {
			cr.Height = c.EstimatedHeight(width, metrics)
		}
		res.Cards = append(res.Cards, cr)
	}
	return res
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
