// Package wordcloud renders a keyword frequency table as a word-cloud chart.
// Layout and colours are left to the ECharts word-cloud extension; the chart is
// drawn onto an 800x400 canvas in the browser.
package wordcloud

import (
	"bytes"
	"errors"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"go-seo-analyzer/pkg/models"
)

const (
	Width    = 800
	Height   = 400
	MaxWords = 200
)

// ErrEmpty is returned when there is no word to draw.
var ErrEmpty = errors.New("wordcloud: no words to render")

// Renderer draws word clouds. AssetsHost is the URL prefix the document loads
// the echarts scripts from; empty keeps the go-echarts public host, which the
// browser must be able to reach.
type Renderer struct {
	AssetsHost string
}

// Render writes a standalone HTML document containing the cloud for terms
// using the default assets host.
func Render(w io.Writer, terms []models.TermCount) error {
	return Renderer{}.Render(w, terms)
}

// RenderString is Render into a string.
func RenderString(terms []models.TermCount) (string, error) {
	return Renderer{}.RenderString(terms)
}

// Render writes a standalone HTML document containing the cloud for terms.
// Terms are expected highest count first; only the first MaxWords are drawn.
func (r Renderer) Render(w io.Writer, terms []models.TermCount) error {
	if len(terms) == 0 {
		return ErrEmpty
	}
	if len(terms) > MaxWords {
		terms = terms[:MaxWords]
	}

	items := make([]opts.WordCloudData, 0, len(terms))
	for _, tc := range terms {
		items = append(items, opts.WordCloudData{Name: tc.Term, Value: tc.Count})
	}

	wc := charts.NewWordCloud()
	wc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       "Nube de palabras clave",
			Width:           "800px",
			Height:          "400px",
			BackgroundColor: "white",
			AssetsHost:      r.AssetsHost,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	wc.AddSeries("keywords", items).
		SetSeriesOptions(charts.WithWorldCloudChartOpts(opts.WordCloudChart{
			Shape:     "basic",
			SizeRange: []float32{12, 72},
		}))

	return wc.Render(w)
}

func (r Renderer) RenderString(terms []models.TermCount) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, terms); err != nil {
		return "", err
	}
	return buf.String(), nil
}
