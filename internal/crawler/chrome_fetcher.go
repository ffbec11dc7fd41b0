package crawler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"go-seo-analyzer/pkg/models"
)

// ChromeFetcher loads a page in headless Chrome and returns the DOM after
// scripts have run. Each Fetch starts and stops its own browser.
type ChromeFetcher struct {
	Timeout   time.Duration
	UserAgent string
	Robots    *RobotsGate

	// AllocatorOptions are appended to chromedp's defaults.
	AllocatorOptions []chromedp.ExecAllocatorOption
}

func (f *ChromeFetcher) Fetch(ctx context.Context, targetURL string) (*models.RawPage, error) {
	if f.Robots != nil {
		if err := f.Robots.Check(ctx, targetURL); err != nil {
			return nil, err
		}
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:], f.AllocatorOptions...)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	if f.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		taskCtx, cancelTimeout = context.WithTimeout(taskCtx, f.Timeout)
		defer cancelTimeout()
	}

	var (
		mu          sync.Mutex
		statusCode  int
		contentType string
	)
	chromedp.ListenTarget(taskCtx, func(ev any) {
		e, ok := ev.(*network.EventResponseReceived)
		if !ok || e.Type != network.ResourceTypeDocument {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		// first document response is the page itself, later ones are frames
		if statusCode == 0 {
			statusCode = int(e.Response.Status)
			contentType = e.Response.MimeType
		}
	})

	actions := []chromedp.Action{network.Enable()}
	if f.UserAgent != "" {
		actions = append(actions, emulation.SetUserAgentOverride(f.UserAgent))
	}

	var outerHTML string
	actions = append(actions,
		chromedp.Navigate(targetURL),
		chromedp.OuterHTML("html", &outerHTML, chromedp.ByQuery),
	)

	start := time.Now()
	if err := chromedp.Run(taskCtx, actions...); err != nil {
		return nil, fmt.Errorf("chrome: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	return &models.RawPage{
		URL:         targetURL,
		StatusCode:  statusCode,
		ContentType: contentType,
		Body:        []byte(outerHTML),
		LoadTime:    time.Since(start),
	}, nil
}
