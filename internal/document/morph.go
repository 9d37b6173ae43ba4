package document

import "strings"

// Case is a Russian grammatical case tag, matching the OpenCorpora notation
// used by morphological analyzers.
type Case string

const (
	CaseNominative Case = "nomn"
	CaseGenitive   Case = "gent"
	CaseDative     Case = "datv"
	CaseAccusative Case = "accs"
)

// Inflector converts a single word into the requested grammatical case.
// Implementations must preserve the capitalization of the input word and
// return the word unchanged when no inflection is known.
type Inflector interface {
	Inflect(word string, c Case) string
}

type passthroughInflector struct{}

func (passthroughInflector) Inflect(word string, _ Case) string {
	return word
}

// NewPassthroughInflector returns an Inflector that leaves every word as-is.
// It stands in wherever no morphological backend is wired.
func NewPassthroughInflector() Inflector {
	return passthroughInflector{}
}

// InflectPhrase inflects a phrase word by word.
func InflectPhrase(inf Inflector, phrase string, c Case) string {
	words := strings.Fields(phrase)
	for i, w := range words {
		words[i] = inf.Inflect(w, c)
	}
	return strings.Join(words, " ")
}

// firstRune returns the leading rune of s as a string, used for initials.
func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
