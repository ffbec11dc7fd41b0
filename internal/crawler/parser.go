package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"go-seo-analyzer/pkg/models"
)

// Failure classes returned by Parse. The underlying error is wrapped as well.
var (
	ErrFetch = errors.New("fetch failed")
	ErrParse = errors.New("parse failed")
)

type Parser struct {
	fetcher Fetcher

	// ArticleOnly replaces the page text with the main article text.
	ArticleOnly bool
}

func NewParser(fetcher Fetcher) *Parser {
	return &Parser{fetcher: fetcher}
}

// Parse fetches targetURL and extracts its SEO elements and text.
func (p *Parser) Parse(ctx context.Context, targetURL string) (models.PageData, error) {
	// 1. Fetch the raw page
	raw, err := p.fetcher.Fetch(ctx, targetURL)
	if err != nil {
		if errors.Is(err, ErrDecode) {
			return models.PageData{URL: targetURL}, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return models.PageData{URL: targetURL}, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	// 2. Extract SEO elements and text
	data, err := p.Extract(bytes.NewReader(raw.Body), targetURL)
	if err != nil {
		return models.PageData{URL: targetURL, StatusCode: raw.StatusCode}, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if p.ArticleOnly {
		text, err := ArticleText(raw.Body, targetURL)
		if err != nil {
			return models.PageData{URL: targetURL, StatusCode: raw.StatusCode}, fmt.Errorf("%w: %w", ErrParse, err)
		}
		data.TextContent = text
	}

	// 3. Enrich with metadata
	data.StatusCode = raw.StatusCode
	data.ContentType = raw.ContentType
	data.LoadTime = raw.LoadTime
	return data, nil
}

// Extract reads the SEO elements and the visible text of an HTML document.
func (p *Parser) Extract(r io.Reader, baseURL string) (models.PageData, error) {
	data := models.PageData{URL: baseURL}

	doc, err := html.Parse(r)
	if err != nil {
		return data, err
	}

	var textBuilder strings.Builder

	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedText[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if len(text) > 0 {
				textBuilder.WriteString(text + " ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)

	data.TextContent = strings.TrimSpace(textBuilder.String())
	data.SEO = ExtractSEO(goquery.NewDocumentFromNode(doc))
	return data, nil
}

// Elements whose text is never part of the page text.
var skippedText = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// ArticleText returns the main readable content of an HTML document.
func ArticleText(body []byte, pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	article, err := readability.FromReader(bytes.NewReader(body), u)
	if err != nil {
		return "", fmt.Errorf("readability: %w", err)
	}
	return strings.TrimSpace(article.TextContent), nil
}
