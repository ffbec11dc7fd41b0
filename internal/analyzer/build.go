package analyzer

import (
	"context"
	"log/slog"

	"go-seo-analyzer/internal/config"
	"go-seo-analyzer/internal/crawler"
	"go-seo-analyzer/internal/keywords"
	"go-seo-analyzer/internal/metrics"
	"go-seo-analyzer/internal/nlp"
)

// Build wires an Analyzer from configuration. The language model is loaded
// here, once, before anything is served; an error wrapping
// ErrModelUnavailable means both the load and the download retry failed.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*Analyzer, error) {
	httpFetcher := crawler.NewHTTPFetcher(cfg.FetchTimeout,
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithMaxBodyBytes(cfg.MaxBodyBytes),
	)

	var robots *crawler.RobotsGate
	if cfg.RespectRobots {
		robots = crawler.NewRobotsGate(httpFetcher.Client(), cfg.UserAgent)
		crawler.WithRobots(robots)(httpFetcher)
	}

	var fetcher crawler.Fetcher = httpFetcher
	if cfg.FetchMode == config.FetchModeChrome {
		fetcher = &crawler.ChromeFetcher{
			Timeout:   cfg.FetchTimeout,
			UserAgent: cfg.UserAgent,
			Robots:    robots,
		}
	}

	loader := &nlp.Loader{
		Path:    cfg.ModelPath,
		URL:     cfg.ModelURL,
		Stemmer: cfg.Lemmatizer == config.LemmatizerSnowball,
		Logger:  logger,
	}
	model, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	parser := crawler.NewParser(fetcher)
	parser.ArticleOnly = cfg.TextSource == config.TextSourceArticle

	a := New(parser, keywords.NewExtractor(model), Options{
		TopN:                cfg.TopN,
		NormalizeLemmaInput: cfg.LemmaInput == config.LemmaInputNormalized,
		FetchMode:           cfg.FetchMode,
	}, logger)
	if m != nil {
		a.WithMetrics(m)
	}

	logger.Info("analyzer ready",
		"model", model.Name(),
		"fetch_mode", cfg.FetchMode,
		"text_source", cfg.TextSource,
		"lemma_input", cfg.LemmaInput,
		"respect_robots", cfg.RespectRobots,
	)
	return a, nil
}
