//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package feat

import (
	"strings"

	"github.com/m-kellner/RumorLensGo/internal/gen"
	"github.com/m-kellner/RumorLensGo/internal/vv"
)

//
// LEXICON SENTIMENT FEATURES
//

// a deliberately small hand lexicon: the classifier only needs a coarse
// affect signal next to the topic vector, not a full sentiment model

var positivewords = gen.ToSet([]string{
	"good", "great", "excellent", "amazing", "wonderful", "best", "love",
	"happy", "glad", "true", "confirmed", "verified", "official", "accurate",
	"trusted", "reliable", "honest", "safe", "win", "success", "hope",
})

var negativewords = gen.ToSet([]string{
	"bad", "terrible", "awful", "worst", "hate", "fake", "hoax", "lie",
	"lies", "false", "fraud", "scam", "shocking", "exposed", "conspiracy",
	"dangerous", "panic", "fear", "outrage", "banned", "secret", "urgent",
})

var negationwords = gen.ToSet([]string{
	"not", "no", "never", "nobody", "nothing", "neither", "nor", "cannot",
	"won't", "don't", "didn't", "isn't", "wasn't", "aren't", "doesn't",
})

// SentimentVector - project a text onto the fixed-width affect features
func SentimentVector(text string) []float64 {
	words := strings.Fields(strings.ToLower(text))

	pos := 0.0
	neg := 0.0
	negations := 0.0
	bangs := 0.0

	for _, w := range words {
		bare := strings.Trim(w, ".,;:!?\"'()[]")
		if _, ok := positivewords[bare]; ok {
			pos++
		}
		if _, ok := negativewords[bare]; ok {
			neg++
		}
		if _, ok := negationwords[bare]; ok {
			negations++
		}
		bangs += float64(strings.Count(w, "!"))
	}

	n := float64(len(words))
	if n == 0 {
		return make([]float64, vv.DEFAULTSENTDIM)
	}

	polarity := 0.0
	if pos+neg > 0 {
		polarity = (pos - neg) / (pos + neg)
	}

	return []float64{pos / n, neg / n, negations / n, polarity, bangs / n}
}
