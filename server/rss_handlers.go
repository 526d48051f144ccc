package server

import (
	"net/http"

	"github.com/go-pkgz/lgr"
)

// rssHandler serves the loaded cards as an RSS feed, empty until the feed is loaded
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	st := s.session.State()

	rss, err := s.generator.GenerateRSS(st.Cards, r.URL.Query().Get("title"))
	if err != nil {
		lgr.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		lgr.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// opmlHandler serves enabled sources as OPML
func (s *Server) opmlHandler(w http.ResponseWriter, r *http.Request) {
	opml, err := s.generator.GenerateOPML(s.session.Sources())
	if err != nil {
		lgr.Printf("[ERROR] failed to generate OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="newsdeck.opml"`)
	if _, err := w.Write([]byte(opml)); err != nil {
		lgr.Printf("[ERROR] failed to write OPML response: %v", err)
	}
}
