//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package cls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-kellner/RumorLensGo/internal/str"
)

func TestCanonicalLabel(t *testing.T) {
	fakes := []string{"fake", "FAKE", " Fake ", "0", "false", "假", "rumor"}
	for _, s := range fakes {
		lab, err := CanonicalLabel(s)
		require.NoError(t, err, s)
		assert.Equal(t, LABELFAKE, lab, s)
	}

	reals := []string{"real", "TRUE", "1", "真", "genuine"}
	for _, s := range reals {
		lab, err := CanonicalLabel(s)
		require.NoError(t, err, s)
		assert.Equal(t, LABELREAL, lab, s)
	}

	_, err := CanonicalLabel("maybe")
	assert.Error(t, err)
}

func TestParseAnswer(t *testing.T) {
	lab, ok := ParseAnswer("This post is FAKE news.")
	assert.True(t, ok)
	assert.Equal(t, LABELFAKE, lab)

	lab, ok = ParseAnswer("real")
	assert.True(t, ok)
	assert.Equal(t, LABELREAL, lab)

	// the earliest recognizable token wins
	lab, ok = ParseAnswer("real, though some say fake")
	assert.True(t, ok)
	assert.Equal(t, LABELREAL, lab)

	_, ok = ParseAnswer("no idea, sorry")
	assert.False(t, ok)
}

func TestParseAnswerIsDeterministic(t *testing.T) {
	// alias scanning walks a fixed-order slice, so repeated calls on the
	// same reply always land on the same label
	for i := 0; i < 50; i++ {
		lab, ok := ParseAnswer("0 out of 10, this is fake")
		require.True(t, ok)
		assert.Equal(t, LABELFAKE, lab)
	}
}

func TestParseSentiment(t *testing.T) {
	lab, ok := ParseSentiment("Positive.")
	assert.True(t, ok)
	assert.Equal(t, SENTPOSITIVE, lab)

	lab, ok = ParseSentiment("the tone is clearly negative here")
	assert.True(t, ok)
	assert.Equal(t, SENTNEGATIVE, lab)

	lab, ok = ParseSentiment("总体上是正面的")
	assert.True(t, ok)
	assert.Equal(t, SENTPOSITIVE, lab)

	_, ok = ParseSentiment("hard to say")
	assert.False(t, ok)
}

func TestSentimentName(t *testing.T) {
	assert.Equal(t, "negative", SentimentName(SENTNEGATIVE))
	assert.Equal(t, "positive", SentimentName(SENTPOSITIVE))
}

func TestEvaluate(t *testing.T) {
	allright := []str.ClassifiedPost{
		{PostID: "a", TrueLabel: LABELFAKE, Answer: LABELFAKE},
		{PostID: "b", TrueLabel: LABELREAL, Answer: LABELREAL},
		{PostID: "c", TrueLabel: LABELFAKE, Answer: LABELFAKE},
	}
	acc := Evaluate(allright)
	assert.Equal(t, 1.0, acc.Overall)
	assert.Equal(t, 1.0, acc.Fake)
	assert.Equal(t, 1.0, acc.Real)

	none := Evaluate(nil)
	assert.Equal(t, 0.0, none.Overall)
	assert.Equal(t, 0.0, none.Fake)
	assert.Equal(t, 0.0, none.Real)
	assert.Equal(t, 0, none.Total)

	mixed := []str.ClassifiedPost{
		{PostID: "a", TrueLabel: LABELFAKE, Answer: LABELREAL},
		{PostID: "b", TrueLabel: LABELREAL, Answer: LABELREAL},
		{PostID: "c", TrueLabel: LABELREAL, Answer: LABELREAL, Failed: true},
	}
	macc := Evaluate(mixed)
	assert.InDelta(t, 1.0/3.0, macc.Overall, 1e-12)
	assert.Equal(t, 0.0, macc.Fake)
	assert.InDelta(t, 0.5, macc.Real, 1e-12)
}
