package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdeck/pkg/domain"
	"github.com/umputun/newsdeck/pkg/session"
	"github.com/umputun/newsdeck/server/mocks"
)

func testConfig(listen string) *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return listen, 30 * time.Second },
		GetBaseURLFunc:      func() string { return "https://deck.example.com" },
		GetLayoutFunc:       domain.DefaultMetrics,
	}
}

func TestServer_New(t *testing.T) {
	srv := New(testConfig(":8080"), &mocks.SessionMock{}, nil, nil, "1.0.0", false)
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
	assert.NotNil(t, srv.generator)
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	sess := &mocks.SessionMock{
		StateFunc: func() session.State { return session.State{Phase: session.PhaseInitial} },
	}
	srv := New(testConfig(fmt.Sprintf("127.0.0.1:%d", port)), sess, nil, nil, "test", true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url + "/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Get(url + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "newsdeck", resp.Header.Get("App-Name"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestServer_Middleware(t *testing.T) {
	srv := New(testConfig(":8080"), &mocks.SessionMock{}, nil, nil, "1.2.3", false)

	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, "1.2.3", w.Header().Get("App-Version"))

	// unknown route
	req = httptest.NewRequest(http.MethodGet, "/nope", http.NoBody)
	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// wrong method inside the mounted api group is reported as not found
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/feed", http.NoBody)
	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_RSS(t *testing.T) {
	src := domain.Source{ID: "p1", Name: "Daily", Enabled: true, FeedURL: "https://daily.com/rss"}
	item := domain.ScoredItem{Source: src, Content: domain.ContentItem{ID: "a1", PublisherID: "p1", Title: "Hello",
		URL: "https://daily.com/a1", Published: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}}

	sess := &mocks.SessionMock{
		StateFunc: func() session.State {
			return session.State{Phase: session.PhaseSuccess, Cards: []domain.Card{domain.HeadlineCard(item)}}
		},
		SourcesFunc: func() []domain.Source {
			return []domain.Source{src, {ID: "p2", Name: "Off", FeedURL: "https://off.com/rss"}}
		},
	}
	srv := New(testConfig(":8080"), sess, nil, nil, "test", false)

	t.Run("rss", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/rss?title=My+Deck", http.NoBody)
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/rss+xml; charset=utf-8", w.Header().Get("Content-Type"))
		body := w.Body.String()
		assert.Contains(t, body, "<title>My Deck</title>")
		assert.Contains(t, body, "<guid>a1</guid>")
		assert.Contains(t, body, `href="https://deck.example.com/rss"`)
	})

	t.Run("opml", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/opml", http.NoBody)
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/x-opml"))
		assert.Contains(t, w.Body.String(), `xmlUrl="https://daily.com/rss"`)
		assert.NotContains(t, w.Body.String(), "off.com")
	})

	t.Run("rss before load", func(t *testing.T) {
		empty := New(testConfig(":8080"), &mocks.SessionMock{
			StateFunc: func() session.State { return session.State{Phase: session.PhaseLoading} },
		}, nil, nil, "test", false)
		req := httptest.NewRequest(http.MethodGet, "/rss", http.NoBody)
		w := httptest.NewRecorder()
		empty.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "<item>")
	})
}

func TestRenderError(t *testing.T) {
	w := httptest.NewRecorder()
	renderError(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody), errors.New("boom"), http.StatusTeapot)
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.JSONEq(t, `{"error":"boom"}`, w.Body.String())

	w = httptest.NewRecorder()
	renderError(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody), nil, http.StatusBadRequest)
	assert.JSONEq(t, `{"error":"unknown error"}`, w.Body.String())
}
