// Package nlp provides the Spanish language model used by the keyword counters:
// Unicode word segmentation plus a lemmatizer, loaded once at start-up.
package nlp

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// ModelName identifies the lemma table the loader looks for.
const ModelName = "lemmatization-es"

// Token is one word-segmentation unit of a text.
type Token struct {
	Text    string
	Lemma   string
	IsAlpha bool
}

// Lemmatizer maps a surface form to its dictionary form.
type Lemmatizer interface {
	Lemma(word string) string
}

// Model tokenizes text and annotates each token with its lemma. It is read-only
// after construction and safe for concurrent use.
type Model struct {
	name       string
	lemmatizer Lemmatizer
}

func NewModel(name string, lemmatizer Lemmatizer) *Model {
	return &Model{name: name, lemmatizer: lemmatizer}
}

func (m *Model) Name() string {
	return m.name
}

// Process splits text into tokens. Whitespace and punctuation come back as
// non-alphabetic tokens so callers can filter them the same way as numbers.
func (m *Model) Process(text string) []Token {
	var tokens []Token
	seg := words.FromString(text)
	for seg.Next() {
		value := seg.Value()
		tok := Token{Text: value, IsAlpha: isAlpha(value)}
		if tok.IsAlpha {
			tok.Lemma = m.lemmatizer.Lemma(value)
		} else {
			tok.Lemma = value
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r) {
			return false
		}
	}
	return true
}

func lowerWord(word string) string {
	return strings.ToLower(word)
}
