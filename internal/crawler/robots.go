package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/temoto/robotstxt"
)

// ErrDisallowedByRobots is returned when robots.txt forbids the page.
var ErrDisallowedByRobots = errors.New("disallowed by robots.txt")

const defaultRobotsAgent = "seo-analyzer"

// RobotsGate checks a URL against its host's robots.txt. Nothing is cached:
// every analysis fetches robots.txt again.
type RobotsGate struct {
	client    *http.Client
	userAgent string
	agent     string
}

// NewRobotsGate matches rules for userAgent, or for "seo-analyzer" when it is
// empty. The header is only sent when userAgent is set.
func NewRobotsGate(client *http.Client, userAgent string) *RobotsGate {
	if client == nil {
		client = http.DefaultClient
	}
	agent := userAgent
	if agent == "" {
		agent = defaultRobotsAgent
	}
	return &RobotsGate{client: client, userAgent: userAgent, agent: agent}
}

// Check returns ErrDisallowedByRobots when the agent may not fetch targetURL.
// A robots.txt that cannot be fetched or parsed allows everything.
func (g *RobotsGate) Check(ctx context.Context, targetURL string) error {
	u, err := url.Parse(targetURL)
	if err != nil {
		return err
	}

	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return err
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := g.client.Do(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		if resp != nil {
			resp.Body.Close()
		}
		return nil
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if !data.FindGroup(g.agent).Test(path) {
		return fmt.Errorf("%w: %s", ErrDisallowedByRobots, targetURL)
	}
	return nil
}
