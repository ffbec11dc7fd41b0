package models

import "time"

// RawPage is a fetched document before parsing. Body is always UTF-8.
type RawPage struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
	LoadTime    time.Duration
}

// PageData is what the parser reads out of one document.
type PageData struct {
	URL         string
	TextContent string
	StatusCode  int
	ContentType string
	LoadTime    time.Duration
	SEO         SEOElements
}

// TermCount is one row of a frequency table.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

type Analysis struct {
	URL              string        `json:"url"`
	StatusCode       int           `json:"status_code"`
	ContentType      string        `json:"content_type,omitempty"`
	LoadTime         time.Duration `json:"load_time_ns"`
	FetchMode        string        `json:"fetch_mode"`
	SEO              SEOElements   `json:"seo"`
	Keywords         []TermCount   `json:"keywords"`
	SemanticKeywords []TermCount   `json:"semantic_keywords"`

	// CloudTerms is the full surface-form table, highest counts first.
	CloudTerms []TermCount `json:"-"`
}
