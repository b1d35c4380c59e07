//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/james-bowman/nlp"
	"gonum.org/v1/gonum/mat"

	"github.com/m-kellner/RumorLensGo/internal/mm"
	"github.com/m-kellner/RumorLensGo/internal/str"
	"github.com/m-kellner/RumorLensGo/internal/vv"
)

//
// TOPIC MODELING
//

// one model per corpus: fit once, then ask it for top words, per-document
// topic vectors, and the dominant topic of each document

// TopicModel - a fitted LDA model plus the vocabulary to read it with
type TopicModel struct {
	NumTopics   int
	TopWords    [][]string  // per topic, weight-ordered
	TopWeights  [][]float64 // parallel to TopWords
	DocTopics   *mat.Dense  // documents x topics
	Dominant    []int       // per document
	Corpus      []string    // the cleaned documents that were fitted
	vocab       []string
	topicswords mat.Matrix // topics x words
}

// FitTopics - clean the texts and fit an LDA topic model over them
func FitTopics(texts []string, numtopics int, iterations int, workers int) (*TopicModel, error) {
	const (
		FAIL1 = "FitTopics() has no documents to model"
		FAIL2 = "FitTopics() could not fit the model: %v"
		MSG1  = "modeling %d topics over %d documents (%d iterations)"
	)

	corpus := CleanCorpus(texts)
	if len(corpus) == 0 {
		return nil, fmt.Errorf(FAIL1)
	}

	mm.Msg(fmt.Sprintf(MSG1, numtopics, len(corpus), iterations), mm.MSGNOTE)

	vectoriser := nlp.NewCountVectoriser(StopSlice()...)

	model := nlp.NewLatentDirichletAllocation(numtopics)
	model.Processes = workers
	model.Iterations = iterations
	model.TransformationPasses = vv.LDAXFORMPASSES

	pipeline := nlp.NewPipeline(vectoriser, model)

	docsovertopics, err := pipeline.FitTransform(corpus...)
	if err != nil {
		return nil, fmt.Errorf(FAIL2, err)
	}

	// rows = topics; columns = documents
	rows, columns := docsovertopics.Dims()

	doctopics := mat.NewDense(columns, rows, nil)
	dominant := make([]int, columns)
	for doc := 0; doc < columns; doc++ {
		best := 0
		for topic := 0; topic < rows; topic++ {
			f := docsovertopics.At(topic, doc)
			doctopics.Set(doc, topic, f)
			if f > docsovertopics.At(best, doc) {
				best = topic
			}
		}
		dominant[doc] = best
	}

	vocab := make([]string, len(vectoriser.Vocabulary))
	for k, v := range vectoriser.Vocabulary {
		vocab[v] = k
	}

	tm := &TopicModel{
		NumTopics:   numtopics,
		DocTopics:   doctopics,
		Dominant:    dominant,
		Corpus:      corpus,
		vocab:       vocab,
		topicswords: model.Components(),
	}
	tm.TopWords, tm.TopWeights = tm.topwords(vv.LDATOPWORDS)

	return tm, nil
}

// topwords - the N heaviest words of each topic, heaviest first
func (tm *TopicModel) topwords(n int) ([][]string, [][]float64) {
	_, words := tm.topicswords.Dims()
	if n > words {
		n = words
	}

	topwords := make([][]string, tm.NumTopics)
	topweights := make([][]float64, tm.NumTopics)

	for topic := 0; topic < tm.NumTopics; topic++ {
		idx := make([]int, words)
		for i := range idx {
			idx[i] = i
		}
		sort.Slice(idx, func(a, b int) bool {
			return tm.topicswords.At(topic, idx[a]) > tm.topicswords.At(topic, idx[b])
		})

		ww := make([]string, n)
		wt := make([]float64, n)
		for i := 0; i < n; i++ {
			ww[i] = tm.vocab[idx[i]]
			wt[i] = tm.topicswords.At(topic, idx[i])
		}
		topwords[topic] = ww
		topweights[topic] = wt
	}

	return topwords, topweights
}

// DocVector - the topic distribution of document i
func (tm *TopicModel) DocVector(i int) []float64 {
	v := make([]float64, tm.NumTopics)
	for t := 0; t < tm.NumTopics; t++ {
		v[t] = tm.DocTopics.At(i, t)
	}
	return v
}

// HeatGrid - the weight of every topic's top word in every topic
// words is the union of the per-topic top lists; grid is topics x words
func (tm *TopicModel) HeatGrid() ([]string, [][]float64) {
	seen := make(map[string]int)
	var words []string
	for _, tw := range tm.TopWords {
		for _, w := range tw {
			if _, ok := seen[w]; !ok {
				seen[w] = len(words)
				words = append(words, w)
			}
		}
	}

	lookup := make(map[string]int, len(tm.vocab))
	for i, w := range tm.vocab {
		lookup[w] = i
	}

	grid := make([][]float64, tm.NumTopics)
	for t := 0; t < tm.NumTopics; t++ {
		row := make([]float64, len(words))
		for j, w := range words {
			row[j] = tm.topicswords.At(t, lookup[w])
		}
		grid[t] = row
	}

	return words, grid
}

// DocsPerTopic - how many documents each topic dominates
func (tm *TopicModel) DocsPerTopic() []int {
	counts := make([]int, tm.NumTopics)
	for _, d := range tm.Dominant {
		counts[d]++
	}
	return counts
}

// Summaries - hand each topic's top words to a summarizer
func (tm *TopicModel) Summaries(fn func(topic int, words []string) str.TopicSummary) []str.TopicSummary {
	out := make([]str.TopicSummary, tm.NumTopics)
	for t := 0; t < tm.NumTopics; t++ {
		out[t] = fn(t, tm.TopWords[t])
	}
	return out
}

//
// CLEANING
//

// CleanCorpus - lowercase and strip markup and noise
// the output stays parallel to the input so document indices keep meaning
func CleanCorpus(texts []string) []string {
	// \p{L} rather than a-z: the datasets carry chinese posts too
	strip := []string{`https?://\S+`, `@\w+`, `#`, `&\w+;`, `<.*?>`, `[^\s\p{L}']`}

	out := make([]string, len(texts))
	for i, t := range texts {
		c := stripper(strings.ToLower(t), strip)
		out[i] = strings.Join(strings.Fields(c), " ")
	}
	return out
}

// stripper - delete each in a list of patterns from a string
func stripper(item string, purge []string) string {
	for i := 0; i < len(purge); i++ {
		re := regexp.MustCompile(purge[i])
		item = re.ReplaceAllString(item, "")
	}
	return item
}
