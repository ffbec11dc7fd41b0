package models

import "encoding/json"

// Fallback values for single-valued SEO elements that are absent from a page.
const (
	TitleNotFound           = "No encontrado"
	MetaDescriptionNotFound = "No encontrada"
	MetaKeywordsNotFound    = "No encontradas"
)

// SEO element keys, in display order.
const (
	KeyTitle           = "Title"
	KeyMetaDescription = "Meta Description"
	KeyMetaKeywords    = "Meta Keywords"
	KeyH1              = "H1"
	KeyH2              = "H2"
	KeyH3              = "H3"
)

var SEOKeys = []string{KeyTitle, KeyMetaDescription, KeyMetaKeywords, KeyH1, KeyH2, KeyH3}

// SEOElements is the fixed set of on-page elements read from a document.
// Headings keep document order and are never nil once extracted.
type SEOElements struct {
	Title           string
	MetaDescription string
	MetaKeywords    string
	H1              []string
	H2              []string
	H3              []string
}

// SEOEntry is one key of SEOElements. List entries carry Values, the others Value.
type SEOEntry struct {
	Key    string
	Value  string
	Values []string
	IsList bool
}

// NewSEOElements returns an element set where every key holds its "not found" value.
func NewSEOElements() SEOElements {
	return SEOElements{
		Title:           TitleNotFound,
		MetaDescription: MetaDescriptionNotFound,
		MetaKeywords:    MetaKeywordsNotFound,
		H1:              []string{},
		H2:              []string{},
		H3:              []string{},
	}
}

// Entries returns the six elements in display order.
func (s SEOElements) Entries() []SEOEntry {
	return []SEOEntry{
		{Key: KeyTitle, Value: s.Title},
		{Key: KeyMetaDescription, Value: s.MetaDescription},
		{Key: KeyMetaKeywords, Value: s.MetaKeywords},
		{Key: KeyH1, Values: nonNil(s.H1), IsList: true},
		{Key: KeyH2, Values: nonNil(s.H2), IsList: true},
		{Key: KeyH3, Values: nonNil(s.H3), IsList: true},
	}
}

// Map returns the elements keyed by their display names.
func (s SEOElements) Map() map[string]any {
	m := make(map[string]any, len(SEOKeys))
	for _, e := range s.Entries() {
		if e.IsList {
			m[e.Key] = e.Values
		} else {
			m[e.Key] = e.Value
		}
	}
	return m
}

func (s SEOElements) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
