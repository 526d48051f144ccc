package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdeck/pkg/domain"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Test Feed</title>
		<link>https://example.com</link>
		<item>
			<title>First</title>
			<link>https://example.com/1</link>
			<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
			<enclosure url="https://example.com/1.jpg" type="image/jpeg" length="1"/>
		</item>
		<item>
			<title>Second</title>
			<link>https://example.com/2</link>
			<pubDate>Tue, 03 Jan 2006 15:04:05 -0700</pubDate>
		</item>
	</channel>
</rss>`

func writeTestConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "newsdeck.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: writeTestConfig(t, "invalid: yaml: content: [")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_Dump(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testFeed))
	}))
	defer ts.Close()

	dir := t.TempDir()
	cfgPath := writeTestConfig(t, fmt.Sprintf(`
store:
  dsn: "file:%s?mode=rwc"
fetch:
  rate_limit: 1ms
  publishers:
    - id: tf
      name: Test Feed
      url: %s
`, filepath.Join(dir, "test.db"), ts.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, run(ctx, Opts{Config: cfgPath, Dump: true, Width: 320}))
}

func TestRun_DumpFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	cfgPath := writeTestConfig(t, fmt.Sprintf(`
store:
  dsn: "file:%s?mode=rwc"
fetch:
  sources_url: %s/sources
  content_url: %s/content
`, filepath.Join(t.TempDir(), "test.db"), ts.URL, ts.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := run(ctx, Opts{Config: cfgPath, Dump: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load feed")
}

func TestRun_ServerStartStop(t *testing.T) {
	feedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testFeed))
	}))
	defer feedSrv.Close()

	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfgPath := writeTestConfig(t, fmt.Sprintf(`
server:
  listen: "127.0.0.1:%d"
store:
  dsn: "file:%s?mode=rwc"
fetch:
  publishers:
    - id: tf
      url: %s
`, port, filepath.Join(t.TempDir(), "test.db"), feedSrv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, Opts{Config: cfgPath}) }()

	url := fmt.Sprintf("http://127.0.0.1:%d", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url + "/api/v1/feed")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && bytes.Contains(body, []byte(`"phase":"success"`))
	}, 10*time.Second, 50*time.Millisecond)

	resp, err := http.Post(url+"/api/v1/visits", "application/json", bytes.NewBufferString(`{"url":"https://example.com/1"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run didn't stop")
	}
}

func TestDumpCards(t *testing.T) {
	src := domain.Source{ID: "p1", Name: "Daily"}
	item := func(id, title string) domain.ScoredItem {
		return domain.ScoredItem{Source: src, Score: 1.25, Content: domain.ContentItem{ID: id, Title: title, URL: "https://d.com/" + id}}
	}
	cards := []domain.Card{
		domain.HeadlineCard(item("a1", "Hello")),
		domain.GroupCard([]domain.ScoredItem{item("a2", ""), item("a3", "Third")}, "news", domain.AxisVertical, false),
	}

	var buf bytes.Buffer
	m := domain.DefaultMetrics()
	dumpCards(&buf, cards, 320, m)

	out := buf.String()
	assert.Contains(t, out, "  1. headline, height 300\n")
	assert.Contains(t, out, "     - [Daily] Hello (1.25)\n")
	assert.Contains(t, out, `  2. group/vertical "news", height 264`)
	assert.Contains(t, out, "     - [Daily] https://d.com/a2 (1.25)\n")
	assert.Contains(t, out, "2 cards, total height 564\n")
}
