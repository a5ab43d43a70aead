package metadata

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// The detector is expensive to build, so it is shared process-wide and built
// on first use.
var detector = sync.OnceValue(func() lingua.LanguageDetector {
	languages := []lingua.Language{
		lingua.English,
		lingua.German,
		lingua.French,
		lingua.Spanish,
		lingua.Portuguese,
		lingua.Italian,
		lingua.Dutch,
		lingua.Russian,
		lingua.Japanese,
		lingua.Chinese,
		lingua.Korean,
		lingua.Arabic,
	}
	return lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		Build()
})

// DetectLanguage guesses the language of a text sample, returning an
// ISO-639-1 code and a confidence in [0,1]. Empty input yields no guess.
func DetectLanguage(sample string) (string, float64) {
	if strings.TrimSpace(sample) == "" {
		return "", 0
	}

	d := detector()
	lang, ok := d.DetectLanguageOf(sample)
	if !ok {
		return "", 0
	}

	code := strings.ToLower(lang.IsoCode639_1().String())
	confidence := d.ComputeLanguageConfidence(sample, lang)
	return code, confidence
}
