// Package analyzer runs the single-URL SEO pipeline: fetch, extract, count
// keywords and prepare the word-cloud terms.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"go-seo-analyzer/internal/keywords"
	"go-seo-analyzer/internal/metrics"
	"go-seo-analyzer/pkg/models"
)

// State of an Analyzer. There is no intermediate state and no cancellation
// once Running. Running ends when Analyze returns; presenters render the
// result after that, so a new analysis may start while a page is still being
// written.
type State int32

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// PageSource fetches and parses one page.
type PageSource interface {
	Parse(ctx context.Context, targetURL string) (models.PageData, error)
}

type Options struct {
	// TopN bounds both keyword tables.
	TopN int
	// NormalizeLemmaInput feeds the lemma counter the normalized text instead
	// of the raw page text.
	NormalizeLemmaInput bool
	// FetchMode is reported with every analysis.
	FetchMode string
}

type Analyzer struct {
	source    PageSource
	extractor *keywords.Extractor
	opts      Options
	logger    *slog.Logger
	metrics   *metrics.Metrics

	state atomic.Int32
}

// New builds an Analyzer. A nil extractor makes every analysis fail with
// ErrModelUnavailable.
func New(source PageSource, extractor *keywords.Extractor, opts Options, logger *slog.Logger) *Analyzer {
	if opts.TopN <= 0 {
		opts.TopN = 20
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		source:    source,
		extractor: extractor,
		opts:      opts,
		logger:    logger,
	}
}

// WithMetrics records outcomes and keyword gauges into m.
func (a *Analyzer) WithMetrics(m *metrics.Metrics) *Analyzer {
	a.metrics = m
	return a
}

func (a *Analyzer) State() State {
	return State(a.state.Load())
}

func (a *Analyzer) TopN() int {
	return a.opts.TopN
}

// Analyze runs the pipeline for rawURL. Only one analysis runs at a time; a
// call made while Running returns ErrBusy immediately.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (analysis *models.Analysis, err error) {
	if !a.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return nil, ErrBusy
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			analysis, err = nil, fmt.Errorf("analysis of %s panicked: %v", rawURL, r)
		}
		a.finish(rawURL, analysis, err, time.Since(start))
		a.state.Store(int32(Idle))
	}()

	return a.run(ctx, rawURL)
}

func (a *Analyzer) run(ctx context.Context, rawURL string) (*models.Analysis, error) {
	if !strings.HasPrefix(rawURL, "http") {
		return nil, fmt.Errorf("%w: URL must start with http or https: %q", ErrInvalidInput, rawURL)
	}
	if a.extractor == nil {
		return nil, fmt.Errorf("%w: no language model loaded", ErrModelUnavailable)
	}

	a.logger.Debug("analysing", "url", rawURL, "mode", a.opts.FetchMode)
	data, err := a.source.Parse(ctx, rawURL)
	if err != nil {
		if errors.Is(err, ErrFetchFailed) || errors.Is(err, ErrParseFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	if a.metrics != nil {
		a.metrics.ObserveFetch(data.LoadTime)
	}

	surface := a.extractor.Surface(data.TextContent)

	lemmaInput := data.TextContent
	if a.opts.NormalizeLemmaInput {
		lemmaInput = keywords.Normalize(lemmaInput)
	}
	semantic := a.extractor.Semantic(lemmaInput)

	return &models.Analysis{
		URL:              rawURL,
		StatusCode:       data.StatusCode,
		ContentType:      data.ContentType,
		LoadTime:         data.LoadTime,
		FetchMode:        a.opts.FetchMode,
		SEO:              data.SEO,
		Keywords:         surface.MostCommon(a.opts.TopN),
		SemanticKeywords: semantic.MostCommon(a.opts.TopN),
		CloudTerms:       surface.MostCommon(0),
	}, nil
}

func (a *Analyzer) finish(rawURL string, analysis *models.Analysis, err error, elapsed time.Duration) {
	if err != nil {
		kind := KindOf(err)
		a.logger.Warn("analysis failed", "url", rawURL, "kind", kind, "error", err, "elapsed", elapsed)
		if a.metrics != nil {
			a.metrics.ObserveAnalysis(kind)
		}
		return
	}

	a.logger.Info("analysis finished",
		"url", rawURL,
		"status", analysis.StatusCode,
		"distinct_keywords", len(analysis.CloudTerms),
		"elapsed", elapsed,
	)
	if a.metrics != nil {
		a.metrics.ObserveAnalysis("ok")
		a.metrics.UpdateKeywords(analysis.Keywords)
	}
}
