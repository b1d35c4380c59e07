//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package w2v

import (
	"bytes"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/e-gun/wego/pkg/embedding"
	"github.com/e-gun/wego/pkg/model/modelutil/vector"
	"github.com/e-gun/wego/pkg/model/word2vec"
	"github.com/e-gun/wego/pkg/search"

	"github.com/m-kellner/RumorLensGo/internal/gen"
	"github.com/m-kellner/RumorLensGo/internal/mm"
	"github.com/m-kellner/RumorLensGo/internal/vv"
)

//
// WORD EMBEDDINGS
//

// a small word2vec model over the cleaned corpus lets you ask what company a
// topic's top words keep; this is a reading aid next to the lda output, not
// an input to the classifier

var defaultw2voptions = word2vec.Options{
	BatchSize:          1024,
	Dim:                vv.W2VDIMENSIONS,
	DocInMemory:        true,
	Goroutines:         runtime.NumCPU(),
	Initlr:             0.025,
	Iter:               vv.W2VITERATIONS,
	LogBatch:           100000,
	MaxCount:           -1,
	MaxDepth:           150,
	MinCount:           2, // social posts are short; the usual 10 starves the vocabulary
	MinLR:              0.0000025,
	ModelType:          "skipgram",
	NegativeSampleSize: 5,
	OptimizerType:      "hs",
	SubsampleThreshold: 0.001,
	ToLower:            true,
	UpdateLRBatch:      100000,
	Verbose:            false,
	Window:             vv.W2VWINDOW,
}

// Searcher - a trained embedding space you can query for neighbors
type Searcher struct {
	s *search.Searcher
}

// Train - fit word2vec over the corpus and wrap a searcher around it
func Train(corpus []string) (*Searcher, error) {
	const (
		FAIL1 = "Train() could not initialize the model: %v"
		FAIL2 = "Train() could not fit the model: %v"
		MSG1  = "training a %d-dimension word2vec model over %d documents"
	)

	mm.Msg(fmt.Sprintf(MSG1, defaultw2voptions.Dim, len(corpus)), mm.MSGNOTE)

	vmodel, err := word2vec.NewForOptions(defaultw2voptions)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}

	// Train() wants an io.ReadSeeker, so the corpus becomes one text block
	block := bytes.NewReader([]byte(strings.Join(corpus, " ")))
	if err := vmodel.Train(block); err != nil {
		return nil, fmt.Errorf(FAIL2, err)
	}

	// use buffers; skip the disk
	var buf bytes.Buffer
	if err := vmodel.Save(io.Writer(&buf), vector.Agg); err != nil {
		return nil, err
	}

	embs, err := embedding.Load(io.Reader(&buf))
	if err != nil {
		return nil, err
	}

	searcher, err := search.New(embs...)
	if err != nil {
		return nil, err
	}

	return &Searcher{s: searcher}, nil
}

// Neighbors - the nearest words of one word; empty when the word is unknown
func (sr *Searcher) Neighbors(word string, count int) search.Neighbors {
	const (
		FAIL1 = "Neighbors() found no neighbors for '%s'"
	)

	if count < 1 || count > vv.W2VNEIGHBORSMAX {
		count = vv.W2VNEIGHBORS
	}

	nn, err := sr.s.SearchInternal(word, count)
	if err != nil {
		mm.Msg(fmt.Sprintf(FAIL1, word), mm.MSGFYI)
		return search.Neighbors{}
	}
	return nn
}

// TopicNeighbors - neighbors for every top word of every topic; topics share words
func TopicNeighbors(sr *Searcher, topwords [][]string, count int) map[string]search.Neighbors {
	var flat []string
	for _, words := range topwords {
		flat = append(flat, words...)
	}

	nn := make(map[string]search.Neighbors)
	for _, w := range gen.Unique(flat) {
		nn[w] = sr.Neighbors(w, count)
	}
	return nn
}
