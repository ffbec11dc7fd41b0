package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rodaine/table"

	"go-seo-analyzer/pkg/models"
)

// WriteReport prints an analysis as three tables: SEO elements, surface
// keywords and lemmas.
func WriteReport(w io.Writer, a *models.Analysis) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()
	title := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(w, "%s %s (HTTP %d, %s)\n\n", title("URL:"), a.URL, a.StatusCode, a.LoadTime.Round(time.Millisecond))

	fmt.Fprintln(w, title("Elementos SEO"))
	seo := table.New("Elemento", "Valor").
		WithWriter(w).
		WithHeaderFormatter(headerFmt).
		WithFirstColumnFormatter(columnFmt)
	for _, e := range a.SEO.Entries() {
		value := e.Value
		if e.IsList {
			value = strings.Join(e.Values, " | ")
			if value == "" {
				value = "-"
			}
		}
		seo.AddRow(e.Key, value)
	}
	seo.Print()

	fmt.Fprintln(w)
	fmt.Fprintln(w, title("Palabras clave más frecuentes"))
	termTable(w, "Palabra clave", a.Keywords, headerFmt, columnFmt)

	fmt.Fprintln(w)
	fmt.Fprintln(w, title("Palabras clave semánticas (lematizadas)"))
	termTable(w, "Lema", a.SemanticKeywords, headerFmt, columnFmt)
}

func termTable(w io.Writer, label string, rows []models.TermCount, headerFmt, columnFmt table.Formatter) {
	tbl := table.New("#", label, "Frecuencia").
		WithWriter(w).
		WithHeaderFormatter(headerFmt).
		WithFirstColumnFormatter(columnFmt)
	for i, tc := range rows {
		tbl.AddRow(i+1, tc.Term, tc.Count)
	}
	tbl.Print()
}
