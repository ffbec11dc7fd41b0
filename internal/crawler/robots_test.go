package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func robotsServer(t *testing.T, robots string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var pageHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			if robots == "" {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte(robots))
			return
		}
		pageHits.Add(1)
		_, _ = w.Write([]byte("<title>ok</title>"))
	}))
	t.Cleanup(srv.Close)
	return srv, &pageHits
}

func TestRobotsGate_Disallowed(t *testing.T) {
	srv, _ := robotsServer(t, "User-agent: *\nDisallow: /private\n")
	gate := NewRobotsGate(srv.Client(), "")

	err := gate.Check(context.Background(), srv.URL+"/private/page")
	assert.ErrorIs(t, err, ErrDisallowedByRobots)

	assert.NoError(t, gate.Check(context.Background(), srv.URL+"/public"))
}

func TestRobotsGate_MissingRobotsAllows(t *testing.T) {
	srv, _ := robotsServer(t, "")
	gate := NewRobotsGate(srv.Client(), "MyAgent")
	assert.NoError(t, gate.Check(context.Background(), srv.URL+"/anything"))
}

func TestRobotsGate_AgentSpecificGroup(t *testing.T) {
	srv, _ := robotsServer(t, "User-agent: BadBot\nDisallow: /\n\nUser-agent: *\nAllow: /\n")

	assert.ErrorIs(t, NewRobotsGate(srv.Client(), "BadBot").Check(context.Background(), srv.URL+"/"), ErrDisallowedByRobots)
	assert.NoError(t, NewRobotsGate(srv.Client(), "GoodBot").Check(context.Background(), srv.URL+"/"))
}

func TestHTTPFetcher_WithRobotsSkipsDisallowedPage(t *testing.T) {
	srv, pageHits := robotsServer(t, "User-agent: *\nDisallow: /\n")

	f := NewHTTPFetcher(time.Second)
	f = NewHTTPFetcher(time.Second, WithRobots(NewRobotsGate(f.Client(), "")))

	_, err := f.Fetch(context.Background(), srv.URL+"/page")
	require.ErrorIs(t, err, ErrDisallowedByRobots)
	assert.Equal(t, int32(0), pageHits.Load(), "page must not be requested")
}
