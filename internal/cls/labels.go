//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package cls

import (
	"fmt"
	"strings"
)

//
// CANONICAL LABELS
//

// every spelling of fake/real and positive/negative that the datasets and
// the llm produce maps through one table; anything not in a table is
// rejected at load time or flagged at parse time

const (
	LABELFAKE = 0
	LABELREAL = 1

	SENTNEGATIVE = 0
	SENTPOSITIVE = 1
)

type labelalias struct {
	word string
	lab  int
}

// answer scanning iterates these slices, not the maps: a slice has a fixed
// order, so a same-position tie always resolves the same way
var canonaliases = []labelalias{
	{"fake", LABELFAKE},
	{"false", LABELFAKE},
	{"0", LABELFAKE},
	{"假", LABELFAKE},
	{"rumor", LABELFAKE},
	{"rumour", LABELFAKE},
	{"real", LABELREAL},
	{"true", LABELREAL},
	{"1", LABELREAL},
	{"真", LABELREAL},
	{"genuine", LABELREAL},
}

var sentaliases = []labelalias{
	{"negative", SENTNEGATIVE},
	{"负面", SENTNEGATIVE},
	{"positive", SENTPOSITIVE},
	{"正面", SENTPOSITIVE},
}

var canonlabels = tomap(canonaliases)

func tomap(aliases []labelalias) map[string]int {
	m := make(map[string]int, len(aliases))
	for _, a := range aliases {
		m[a.word] = a.lab
	}
	return m
}

// CanonicalLabel - map a raw label string onto {0, 1}
func CanonicalLabel(raw string) (int, error) {
	const (
		FAIL1 = "CanonicalLabel() cannot map '%s' onto {fake, real}"
	)

	if lab, ok := canonlabels[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return lab, nil
	}
	return -1, fmt.Errorf(FAIL1, raw)
}

// ParseAnswer - pull a canonical fake/real label out of free llm text
func ParseAnswer(reply string) (int, bool) {
	return scananswer(reply, canonaliases)
}

// ParseSentiment - pull a canonical positive/negative label out of free llm text
func ParseSentiment(reply string) (int, bool) {
	return scananswer(reply, sentaliases)
}

// scananswer - the earliest recognizable token wins; false when nothing matched
func scananswer(reply string, aliases []labelalias) (int, bool) {
	r := strings.ToLower(reply)

	best := -1
	bestpos := len(r) + 1
	for _, a := range aliases {
		if pos := strings.Index(r, a.word); pos >= 0 && pos < bestpos {
			bestpos = pos
			best = a.lab
		}
	}

	if best < 0 {
		return -1, false
	}
	return best, true
}

// LabelName - the display name of a canonical fake/real label
func LabelName(lab int) string {
	if lab == LABELFAKE {
		return "fake"
	}
	return "real"
}

// SentimentName - the display name of a canonical sentiment label
func SentimentName(lab int) string {
	if lab == SENTNEGATIVE {
		return "negative"
	}
	return "positive"
}
