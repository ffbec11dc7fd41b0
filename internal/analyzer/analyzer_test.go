package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-seo-analyzer/internal/config"
	"go-seo-analyzer/internal/crawler"
	"go-seo-analyzer/internal/keywords"
	"go-seo-analyzer/internal/logger"
	"go-seo-analyzer/internal/metrics"
	"go-seo-analyzer/internal/nlp"
	"go-seo-analyzer/pkg/models"
)

type fakeSource struct {
	data  models.PageData
	err   error
	calls int
	block chan struct{}
}

func (f *fakeSource) Parse(_ context.Context, targetURL string) (models.PageData, error) {
	f.calls++
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return models.PageData{}, f.err
	}
	data := f.data
	data.URL = targetURL
	return data, nil
}

type lowerLemmas map[string]string

func (l lowerLemmas) Lemma(word string) string {
	w := strings.ToLower(word)
	if lemma, ok := l[w]; ok {
		return lemma
	}
	return w
}

func newExtractor() *keywords.Extractor {
	return keywords.NewExtractor(nlp.NewModel("test", lowerLemmas{"corre": "correr", "corren": "correr"}))
}

func pageWithText(text string) models.PageData {
	seo := models.NewSEOElements()
	seo.Title = "Home"
	return models.PageData{TextContent: text, StatusCode: 200, LoadTime: time.Millisecond, SEO: seo}
}

func TestAnalyze_InvalidInputMakesNoNetworkCall(t *testing.T) {
	source := &fakeSource{data: pageWithText("hola")}
	a := New(source, newExtractor(), Options{}, logger.Discard())

	for _, in := range []string{"", "ftp://example.com", "www.example.com", " http://example.com", "HTTP://EXAMPLE.COM"} {
		_, err := a.Analyze(context.Background(), in)
		require.Error(t, err, "input %q", in)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", in)
		assert.Equal(t, KindInvalidInput, KindOf(err))
	}
	assert.Equal(t, 0, source.calls)
	assert.Equal(t, Idle, a.State())
}

func TestAnalyze_Scenario(t *testing.T) {
	source := &fakeSource{data: pageWithText("el perro corre y el gato corre")}
	a := New(source, newExtractor(), Options{TopN: 20, NormalizeLemmaInput: true, FetchMode: "http"}, logger.Discard())

	got, err := a.Analyze(context.Background(), "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls)
	assert.Equal(t, "https://example.com", got.URL)
	assert.Equal(t, "Home", got.SEO.Title)
	assert.Equal(t, []models.TermCount{
		{Term: "corre", Count: 2},
		{Term: "perro", Count: 1},
		{Term: "gato", Count: 1},
	}, got.Keywords)
	assert.Equal(t, []models.TermCount{
		{Term: "correr", Count: 2},
		{Term: "perro", Count: 1},
		{Term: "gato", Count: 1},
	}, got.SemanticKeywords)
	assert.Equal(t, got.Keywords, got.CloudTerms)
	assert.Equal(t, Idle, a.State())
}

func TestAnalyze_RawLemmaInput(t *testing.T) {
	source := &fakeSource{data: pageWithText("Para perros, Para gatos.")}

	normalized := New(source, newExtractor(), Options{NormalizeLemmaInput: true}, logger.Discard())
	got, err := normalized.Analyze(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, []models.TermCount{{Term: "perros", Count: 1}, {Term: "gatos", Count: 1}}, got.SemanticKeywords)

	raw := New(source, newExtractor(), Options{NormalizeLemmaInput: false}, logger.Discard())
	got, err = raw.Analyze(context.Background(), "https://example.com")
	require.NoError(t, err)
	// "Para" is not the stopword "para" until the text is lowercased
	assert.Equal(t, []models.TermCount{
		{Term: "para", Count: 2},
		{Term: "perros", Count: 1},
		{Term: "gatos", Count: 1},
	}, got.SemanticKeywords)
	assert.Equal(t, []models.TermCount{{Term: "perros", Count: 1}, {Term: "gatos", Count: 1}}, got.Keywords)
}

func TestAnalyze_TopNTruncation(t *testing.T) {
	var words []string
	for i := 0; i < 30; i++ {
		for j := 0; j <= i; j++ {
			words = append(words, "palabra"+strings.Repeat("x", i))
		}
	}
	a := New(&fakeSource{data: pageWithText(strings.Join(words, " "))}, newExtractor(), Options{TopN: 20}, logger.Discard())

	got, err := a.Analyze(context.Background(), "https://example.com")
	require.NoError(t, err)

	require.Len(t, got.Keywords, 20)
	require.Len(t, got.SemanticKeywords, 20)
	assert.Len(t, got.CloudTerms, 30)
	for i := 1; i < len(got.Keywords); i++ {
		assert.GreaterOrEqual(t, got.Keywords[i-1].Count, got.Keywords[i].Count)
	}
	assert.Equal(t, 30, got.Keywords[0].Count)
}

func TestAnalyze_FetchErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
		kind string
	}{
		{"connection error", fmt.Errorf("%w: dial tcp: connection refused", crawler.ErrFetch), ErrFetchFailed, KindFetchFailed},
		{"unclassified error", errors.New("boom"), ErrFetchFailed, KindFetchFailed},
		{"parse error", fmt.Errorf("%w: bad charset", crawler.ErrParse), ErrParseFailed, KindParseFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(&fakeSource{err: tt.err}, newExtractor(), Options{}, logger.Discard())
			got, err := a.Analyze(context.Background(), "https://example.com")
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.kind, KindOf(err))
			assert.Equal(t, Idle, a.State())
		})
	}
}

func TestAnalyze_NoModel(t *testing.T) {
	source := &fakeSource{data: pageWithText("hola")}
	a := New(source, nil, Options{}, logger.Discard())

	_, err := a.Analyze(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, ErrModelUnavailable)
	assert.Equal(t, KindModelUnavailable, KindOf(err))
	assert.Equal(t, 0, source.calls)
}

func TestAnalyze_BusyWhileRunning(t *testing.T) {
	source := &fakeSource{data: pageWithText("hola mundo"), block: make(chan struct{})}
	a := New(source, newExtractor(), Options{}, logger.Discard())

	done := make(chan error, 1)
	go func() {
		_, err := a.Analyze(context.Background(), "https://example.com/one")
		done <- err
	}()

	require.Eventually(t, func() bool { return a.State() == Running }, time.Second, time.Millisecond)

	_, err := a.Analyze(context.Background(), "https://example.com/two")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, KindBusy, KindOf(err))

	close(source.block)
	require.NoError(t, <-done)
	assert.Equal(t, Idle, a.State())
}

type panickingSource struct{}

func (panickingSource) Parse(context.Context, string) (models.PageData, error) {
	panic("unexpected nil node")
}

func TestAnalyze_RecoversPanics(t *testing.T) {
	a := New(panickingSource{}, newExtractor(), Options{}, logger.Discard())

	_, err := a.Analyze(context.Background(), "https://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected nil node")
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, Idle, a.State())
}

func TestKindOf_Nil(t *testing.T) {
	assert.Empty(t, KindOf(nil))
}

func TestBuild_ModelUnavailable(t *testing.T) {
	cfg := &config.Config{
		FetchTimeout: time.Second,
		FetchMode:    config.FetchModeHTTP,
		TextSource:   config.TextSourcePage,
		Lemmatizer:   config.LemmatizerLookup,
		LemmaInput:   config.LemmaInputNormalized,
		ModelPath:    filepath.Join(t.TempDir(), "missing.txt"),
		ModelURL:     "",
		TopN:         20,
		MaxBodyBytes: 1 << 20,
	}

	_, err := Build(context.Background(), cfg, logger.Discard(), nil)
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestBuild_Snowball(t *testing.T) {
	cfg := &config.Config{
		FetchTimeout:  time.Second,
		FetchMode:     config.FetchModeHTTP,
		TextSource:    config.TextSourceArticle,
		Lemmatizer:    config.LemmatizerSnowball,
		LemmaInput:    config.LemmaInputRaw,
		RespectRobots: true,
		TopN:          5,
		MaxBodyBytes:  1 << 20,
	}

	a, err := Build(context.Background(), cfg, logger.Discard(), nil)
	require.NoError(t, err)
	assert.Equal(t, 5, a.TopN())
	assert.Equal(t, Idle, a.State())
}

func TestAnalyze_MetricsKeepOnlyLatestKeywords(t *testing.T) {
	m := metrics.New()
	source := &fakeSource{data: pageWithText("perro perro gato")}
	a := New(source, newExtractor(), Options{}, logger.Discard()).WithMetrics(m)

	_, err := a.Analyze(context.Background(), "https://one.example.com")
	require.NoError(t, err)

	source.data = pageWithText("casa casa casa")
	_, err = a.Analyze(context.Background(), "https://two.example.com")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	out := rec.Body.String()

	assert.Equal(t, 1, strings.Count(out, "seo_analyzer_word_frequency{"))
	assert.Contains(t, out, `seo_analyzer_word_frequency{word="casa"} 3`)
	assert.NotContains(t, out, "one.example.com")
	assert.NotContains(t, out, `word="perro"`)
}
