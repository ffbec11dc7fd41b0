package crawler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"go-seo-analyzer/pkg/models"
)

// ExtractSEO reads the title, the description and keywords meta tags and the
// h1-h3 headings of doc. Absent single values keep their "not found" text;
// absent headings give empty lists.
func ExtractSEO(doc *goquery.Document) models.SEOElements {
	seo := models.NewSEOElements()

	if title := doc.Find("title").First(); title.Length() > 0 {
		seo.Title = strings.TrimSpace(title.Text())
	}
	if content, ok := metaContent(doc, "description"); ok {
		seo.MetaDescription = content
	}
	if content, ok := metaContent(doc, "keywords"); ok {
		seo.MetaKeywords = content
	}

	seo.H1 = headings(doc, "h1")
	seo.H2 = headings(doc, "h2")
	seo.H3 = headings(doc, "h3")
	return seo
}

// metaContent returns the content attribute of the first <meta name=...>.
func metaContent(doc *goquery.Document, name string) (string, bool) {
	meta := doc.Find(`meta[name="` + name + `"]`).First()
	if meta.Length() == 0 {
		return "", false
	}
	return meta.Attr("content")
}

func headings(doc *goquery.Document, tag string) []string {
	texts := []string{}
	doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, collapseSpace(s.Text()))
	})
	return texts
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
