// Package keywords turns page text into surface-form and lemma frequency tables.
package keywords

import (
	"unicode/utf8"

	"go-seo-analyzer/internal/nlp"
)

// Processor is the part of the language model the extractor needs.
type Processor interface {
	Process(text string) []nlp.Token
}

type Extractor struct {
	model Processor
}

func NewExtractor(model Processor) *Extractor {
	return &Extractor{model: model}
}

// Surface normalizes text and counts the surface form of every keyword token.
func (e *Extractor) Surface(text string) *Counter {
	counter := NewCounter()
	for _, tok := range e.model.Process(Normalize(text)) {
		if keep(tok) {
			counter.Add(tok.Text)
		}
	}
	return counter
}

// Semantic counts the lemma of every keyword token. The text is used as given;
// callers decide whether to normalize it first.
func (e *Extractor) Semantic(text string) *Counter {
	counter := NewCounter()
	for _, tok := range e.model.Process(text) {
		if keep(tok) {
			counter.Add(tok.Lemma)
		}
	}
	return counter
}

func keep(tok nlp.Token) bool {
	return tok.IsAlpha &&
		!IsStopword(tok.Text) &&
		utf8.RuneCountInString(tok.Text) > MinTokenLength
}
