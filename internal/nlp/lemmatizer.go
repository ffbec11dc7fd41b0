package nlp

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kljensen/snowball/spanish"
)

// LookupLemmatizer resolves lemmas from a form→lemma table. Unknown forms are
// their own lemma (lowercased).
type LookupLemmatizer struct {
	lemmas map[string]string
}

func NewLookupLemmatizer(lemmas map[string]string) *LookupLemmatizer {
	return &LookupLemmatizer{lemmas: lemmas}
}

func (l *LookupLemmatizer) Lemma(word string) string {
	w := lowerWord(word)
	if lemma, ok := l.lemmas[w]; ok {
		return lemma
	}
	return w
}

func (l *LookupLemmatizer) Len() int {
	return len(l.lemmas)
}

// ParseLemmaTable reads "lemma<TAB>form" lines. The first lemma listed for a
// form wins. Blank lines and lines starting with '#' are skipped.
func ParseLemmaTable(r io.Reader) (map[string]string, error) {
	lemmas := make(map[string]string)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lemma, form, ok := strings.Cut(text, "\t")
		if !ok {
			return nil, fmt.Errorf("line %d: expected lemma<TAB>form", line)
		}
		form = lowerWord(strings.TrimSpace(form))
		lemma = lowerWord(strings.TrimSpace(lemma))
		if form == "" || lemma == "" {
			return nil, fmt.Errorf("line %d: empty lemma or form", line)
		}
		if _, seen := lemmas[form]; !seen {
			lemmas[form] = lemma
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lemmas) == 0 {
		return nil, fmt.Errorf("lemma table is empty")
	}
	return lemmas, nil
}

// StemLemmatizer approximates lemmas with the Spanish Snowball stemmer. It needs
// no model file.
type StemLemmatizer struct{}

func (StemLemmatizer) Lemma(word string) string {
	return spanish.Stem(word, true)
}
