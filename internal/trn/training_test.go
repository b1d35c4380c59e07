//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package trn

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-kellner/RumorLensGo/internal/enc"
	"github.com/m-kellner/RumorLensGo/internal/mdl"
	"github.com/m-kellner/RumorLensGo/internal/str"
)

func toysamples() []str.Sample {
	return []str.Sample{
		{Text: "great product", TopicVec: []float64{0.9, 0.1}, SentimentVec: []float64{0.5, 0.0, 0.0, 1.0, 0.0}, Label: 1},
		{Text: "terrible", TopicVec: []float64{0.2, 0.8}, SentimentVec: []float64{0.0, 1.0, 0.0, -1.0, 0.0}, Label: 0},
		{Text: "okay", TopicVec: []float64{0.5, 0.5}, SentimentVec: []float64{0.0, 0.0, 0.0, 0.0, 0.0}, Label: 0},
		{Text: "fantastic", TopicVec: []float64{0.8, 0.2}, SentimentVec: []float64{1.0, 0.0, 0.0, 1.0, 0.0}, Label: 1},
	}
}

func TestTrainingEndToEnd(t *testing.T) {
	encoder := enc.NewHashingEncoder(32)

	model, err := mdl.NewModel(2, 5, encoder.Dim(), 8, 16, 0.1, 42)
	require.NoError(t, err)

	ckpt := filepath.Join(t.TempDir(), "best.gob")
	trainer := &Trainer{
		Model:        model,
		Encoder:      encoder,
		Epochs:       3,
		BatchSize:    2,
		LearningRate: 0.01,
		CheckpointFl: ckpt,
		Seed:         42,
	}

	samples := toysamples()
	sum, err := trainer.Run(context.Background(), samples, samples)
	require.NoError(t, err)

	assert.Len(t, sum.Epochs, 3)
	assert.GreaterOrEqual(t, sum.BestAcc, 0.0)
	assert.LessOrEqual(t, sum.BestAcc, 1.0)

	if sum.Saved {
		_, err := os.Stat(ckpt)
		assert.NoError(t, err)
	}

	preds, err := PredictAll(context.Background(), model, encoder, samples, 2)
	require.NoError(t, err)
	require.Len(t, preds, len(samples))

	for _, p := range preds {
		assert.Contains(t, []int{0, 1}, p.Label)
		assert.InDelta(t, 1.0, p.Probs[0]+p.Probs[1], 1e-9)
	}
}

func TestRunRejectsEmptySets(t *testing.T) {
	encoder := enc.NewHashingEncoder(16)
	model, err := mdl.NewModel(2, 5, encoder.Dim(), 4, 8, 0.0, 1)
	require.NoError(t, err)

	trainer := &Trainer{Model: model, Encoder: encoder, Epochs: 1, BatchSize: 2, LearningRate: 0.01}
	_, err = trainer.Run(context.Background(), nil, toysamples())
	assert.Error(t, err)
}

func TestRunRejectsMalformedBatch(t *testing.T) {
	encoder := enc.NewHashingEncoder(16)
	model, err := mdl.NewModel(3, 5, encoder.Dim(), 4, 8, 0.0, 1)
	require.NoError(t, err)

	// topic vectors are 2-wide but the model wants 3: the whole run aborts
	trainer := &Trainer{Model: model, Encoder: encoder, Epochs: 1, BatchSize: 2, LearningRate: 0.01, Seed: 1}
	_, err = trainer.Run(context.Background(), toysamples(), toysamples())
	assert.Error(t, err)
}

func TestBuildReport(t *testing.T) {
	perfect := BuildReport([]int{0, 1, 1, 0}, []int{0, 1, 1, 0})
	assert.Equal(t, 1.0, perfect.Accuracy)
	for c := 0; c < 2; c++ {
		assert.Equal(t, 1.0, perfect.PerClass[c].Precision)
		assert.Equal(t, 1.0, perfect.PerClass[c].Recall)
		assert.Equal(t, 1.0, perfect.PerClass[c].F1)
		assert.Equal(t, 2, perfect.PerClass[c].Support)
	}

	empty := BuildReport(nil, nil)
	assert.Equal(t, 0.0, empty.Accuracy)
	assert.Equal(t, 0, empty.Total)

	mixed := BuildReport([]int{0, 0, 1, 1}, []int{0, 1, 1, 1})
	assert.InDelta(t, 0.75, mixed.Accuracy, 1e-12)
	assert.NotEmpty(t, mixed.String())
}
