package nlp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ErrModelUnavailable is returned when the model can be neither loaded nor
// downloaded and loaded again.
var ErrModelUnavailable = errors.New("nlp model unavailable")

const downloadTimeout = 2 * time.Minute

// Loader bootstraps the Model once at process start.
type Loader struct {
	// Path of the lemma table on disk.
	Path string
	// URL the table is downloaded from when Path cannot be loaded.
	URL string
	// Stemmer selects the Snowball stemmer instead of the lemma table.
	Stemmer bool

	Client *http.Client
	Logger *slog.Logger
}

// Load reads the model. A failed first load triggers one download of the table
// followed by one more load attempt.
func (l *Loader) Load(ctx context.Context) (*Model, error) {
	if l.Stemmer {
		l.logger().Info("using snowball stemmer for lemmas")
		return NewModel("snowball-es", StemLemmatizer{}), nil
	}

	model, err := l.loadFile()
	if err == nil {
		return model, nil
	}

	l.logger().Warn("Descargando modelo de lemas...", "model", ModelName, "path", l.Path, "error", err)
	if dlErr := l.download(ctx); dlErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, errors.Join(err, dlErr))
	}

	model, retryErr := l.loadFile()
	if retryErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, retryErr)
	}
	return model, nil
}

func (l *Loader) loadFile() (*Model, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lemmas, err := ParseLemmaTable(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.Path, err)
	}
	l.logger().Info("loaded nlp model", "model", ModelName, "forms", len(lemmas))
	return NewModel(ModelName, NewLookupLemmatizer(lemmas)), nil
}

func (l *Loader) download(ctx context.Context) error {
	if l.URL == "" {
		return errors.New("no model URL configured")
	}

	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := l.client().Do(req)
	if err != nil {
		return fmt.Errorf("download model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download model: unexpected status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(l.Path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(l.Path), ".model-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("write model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), l.Path)
}

func (l *Loader) client() *http.Client {
	if l.Client != nil {
		return l.Client
	}
	return http.DefaultClient
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}
