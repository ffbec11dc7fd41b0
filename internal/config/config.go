package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	FetchModeHTTP   = "http"
	FetchModeChrome = "chrome"

	TextSourcePage    = "page"
	TextSourceArticle = "article"

	LemmatizerLookup   = "lookup"
	LemmatizerSnowball = "snowball"

	LemmaInputNormalized = "normalized"
	LemmaInputRaw        = "raw"
)

type Config struct {
	// ListenAddr maps to LISTEN_ADDR.
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8501"`

	// FetchTimeout bounds the single GET of an analysis.
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`

	// FetchMode is "http" or "chrome" (headless browser, renders JavaScript).
	FetchMode string `envconfig:"FETCH_MODE" default:"http"`

	// UserAgent is only sent when set; otherwise the client default is used.
	UserAgent string `envconfig:"USER_AGENT"`

	RespectRobots bool  `envconfig:"RESPECT_ROBOTS" default:"false"`
	MaxBodyBytes  int64 `envconfig:"MAX_BODY_BYTES" default:"10485760"`

	// TextSource picks the text fed to the keyword counters: the whole page or
	// only the main article.
	TextSource string `envconfig:"TEXT_SOURCE" default:"page"`

	Lemmatizer string `envconfig:"LEMMATIZER" default:"lookup"`
	LemmaInput string `envconfig:"LEMMA_INPUT" default:"normalized"`
	ModelPath  string `envconfig:"MODEL_PATH" default:"models/lemmatization-es.txt"`
	ModelURL   string `envconfig:"MODEL_URL" default:"https://raw.githubusercontent.com/michmech/lemmatization-lists/master/lemmatization-es.txt"`

	TopN int `envconfig:"TOP_N" default:"20"`

	// WordCloudAssetsHost is where the word-cloud page loads the echarts
	// scripts from. Empty uses the go-echarts public host.
	WordCloudAssetsHost string `envconfig:"WORDCLOUD_ASSETS_HOST"`

	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
}

// Load processes environment variables and populates the Config struct.
func Load() (*Config, error) {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			log.Printf("Warning: .env file found but could not be loaded: %v", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	if err := oneOf("FETCH_MODE", c.FetchMode, FetchModeHTTP, FetchModeChrome); err != nil {
		return err
	}
	if err := oneOf("TEXT_SOURCE", c.TextSource, TextSourcePage, TextSourceArticle); err != nil {
		return err
	}
	if err := oneOf("LEMMATIZER", c.Lemmatizer, LemmatizerLookup, LemmatizerSnowball); err != nil {
		return err
	}
	if err := oneOf("LEMMA_INPUT", c.LemmaInput, LemmaInputNormalized, LemmaInputRaw); err != nil {
		return err
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("TOP_N must be positive, got %d", c.TopN)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

func oneOf(name, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %v, got %q", name, allowed, value)
}
