package cli

import (
	"net/http"

	"github.com/spf13/cobra"

	"go-seo-analyzer/internal/analyzer"
	"go-seo-analyzer/internal/metrics"
	"go-seo-analyzer/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis page",
	Long: `Loads the lemma model once and serves the single-page UI, the JSON
endpoint /api/analyze and, when enabled, Prometheus metrics on /metrics.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address; overrides LISTEN_ADDR")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if cmd.Flags().Changed("addr") {
		cfg.ListenAddr = serveAddr
	}

	var (
		m              *metrics.Metrics
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		m = metrics.New()
		metricsHandler = m.Handler()
	}

	a, err := analyzer.Build(ctx, cfg, log, m)
	if err != nil {
		return err
	}

	srv, err := web.NewServer(a, log, metricsHandler, web.WithWordCloudAssetsHost(cfg.WordCloudAssetsHost))
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx, cfg.ListenAddr)
}
