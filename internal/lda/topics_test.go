//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanCorpus(t *testing.T) {
	in := []string{
		"Check this out: https://example.com/x?y=1 #breaking",
		"@alice said it's FAKE!!! &amp; so did <b>bob</b>",
		"",
	}
	out := CleanCorpus(in)

	// indices must survive cleaning so topic vectors map back to posts
	require.Len(t, out, len(in))

	assert.Equal(t, "check this out breaking", out[0])
	assert.Equal(t, "said it's fake so did bob", out[1])
	assert.Equal(t, "", out[2])
}

func TestCleanCorpusKeepsUnicodeLetters(t *testing.T) {
	in := []string{
		"疫苗是安全的，医生推荐接种",
		"Vaccines are safe!",
	}
	out := CleanCorpus(in)

	require.Len(t, out, 2)

	// cjk posts must survive cleaning, not collapse to ""
	assert.Equal(t, "疫苗是安全的医生推荐接种", out[0])
	assert.Equal(t, "vaccines are safe", out[1])
}

func smallcorpus() []string {
	return []string{
		"the vaccine is safe and the doctors recommend the vaccine",
		"doctors and nurses trust the vaccine trials",
		"the election was stolen by fraud and rigged machines",
		"rigged voting machines flipped the election results",
		"vaccine trials show the doctors were right",
		"fraud in the election machines was never proven",
	}
}

func TestFitTopics(t *testing.T) {
	tm, err := FitTopics(smallcorpus(), 2, 50, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, tm.NumTopics)
	assert.Len(t, tm.Dominant, len(smallcorpus()))
	assert.Len(t, tm.Corpus, len(smallcorpus()))

	for i := range tm.Dominant {
		assert.GreaterOrEqual(t, tm.Dominant[i], 0)
		assert.Less(t, tm.Dominant[i], 2)

		v := tm.DocVector(i)
		require.Len(t, v, 2)
		sum := 0.0
		for _, f := range v {
			assert.GreaterOrEqual(t, f, 0.0)
			sum += f
		}
		assert.InDelta(t, 1.0, sum, 1e-6)
	}

	require.Len(t, tm.TopWords, 2)
	require.Len(t, tm.TopWeights, 2)
	for topic := range tm.TopWords {
		assert.NotEmpty(t, tm.TopWords[topic])
		require.Len(t, tm.TopWeights[topic], len(tm.TopWords[topic]))
		for i := 1; i < len(tm.TopWeights[topic]); i++ {
			assert.GreaterOrEqual(t, tm.TopWeights[topic][i-1], tm.TopWeights[topic][i])
		}
	}

	counts := tm.DocsPerTopic()
	total := 0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, len(smallcorpus()), total)
}

func TestFitTopicsEmptyCorpus(t *testing.T) {
	_, err := FitTopics(nil, 2, 10, 1)
	assert.Error(t, err)
}

func TestHeatGrid(t *testing.T) {
	tm, err := FitTopics(smallcorpus(), 2, 50, 1)
	require.NoError(t, err)

	words, grid := tm.HeatGrid()
	require.NotEmpty(t, words)
	require.Len(t, grid, 2)
	for _, row := range grid {
		assert.Len(t, row, len(words))
	}

	// the union list holds no duplicates
	seen := make(map[string]bool)
	for _, w := range words {
		assert.False(t, seen[w], w)
		seen[w] = true
	}
}
