package keywords

// MinTokenLength is exclusive: a token must be longer than this to be counted.
const MinTokenLength = 3

// Stopwords are the Spanish function words never counted as keywords.
var Stopwords = map[string]struct{}{
	"de": {}, "la": {}, "que": {}, "el": {}, "en": {}, "y": {}, "a": {},
	"los": {}, "del": {}, "se": {}, "las": {}, "por": {}, "un": {},
	"para": {}, "con": {}, "no": {}, "una": {}, "su": {}, "al": {},
	"lo": {}, "como": {}, "más": {}, "pero": {}, "sus": {}, "le": {},
}

func IsStopword(word string) bool {
	_, ok := Stopwords[word]
	return ok
}
