//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package trn

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/mat"

	"github.com/m-kellner/RumorLensGo/internal/enc"
	"github.com/m-kellner/RumorLensGo/internal/gen"
	"github.com/m-kellner/RumorLensGo/internal/mdl"
	"github.com/m-kellner/RumorLensGo/internal/mm"
	"github.com/m-kellner/RumorLensGo/internal/str"
)

//
// THE TRAINING LOOP
//

// each epoch is a train phase over shuffled minibatches followed by a full
// validation pass; only a strictly better validation accuracy overwrites the
// checkpoint on disk, and the running best lives in the loop, not on the Trainer

// Trainer - everything one training run needs
type Trainer struct {
	Model        *mdl.Model
	Encoder      enc.TextEncoder
	Epochs       int
	BatchSize    int
	LearningRate float64
	CheckpointFl string
	Seed         int64
}

// EpochStats - the numbers for one epoch
type EpochStats struct {
	Epoch     int
	TrainLoss float64
	TrainAcc  float64
	ValLoss   float64
	ValAcc    float64
	Took      time.Duration
}

// RunSummary - the outcome of a full training run
type RunSummary struct {
	Epochs    []EpochStats
	BestAcc   float64
	BestEpoch int
	Saved     bool
	Report    ClassificationReport
}

// Run - train for the configured number of epochs and checkpoint the best model
func (t *Trainer) Run(ctx context.Context, train []str.Sample, val []str.Sample) (*RunSummary, error) {
	const (
		MSG1 = "training on %d samples; validating on %d"
		MSG2 = "epoch %d/%d: train loss %.4f acc %.4f | val loss %.4f acc %.4f (%v)"
		MSG3 = "epoch %d: validation accuracy improved from %.4f to %.4f; saved '%s'"
		MSG4 = "best validation accuracy %.4f at epoch %d"
	)

	if len(train) == 0 || len(val) == 0 {
		return nil, fmt.Errorf("Run() needs both training and validation samples; got %d and %d", len(train), len(val))
	}
	if t.Epochs < 1 || t.BatchSize < 1 {
		return nil, fmt.Errorf("Run() refused epochs=%d batchsize=%d", t.Epochs, t.BatchSize)
	}

	p := message.NewPrinter(language.English)
	mm.Msg(p.Sprintf(MSG1, len(train), len(val)), mm.MSGCRIT)

	opt := mdl.NewAdam(t.Model, t.LearningRate)
	rng := rand.New(rand.NewSource(t.Seed))

	sum := &RunSummary{}
	bestacc := 0.0
	bestepoch := 0

	for e := 1; e <= t.Epochs; e++ {
		start := time.Now()

		trainloss, trainacc, err := t.trainphase(ctx, train, opt, rng)
		if err != nil {
			return nil, err
		}

		valloss, valacc, report, err := t.validate(ctx, val)
		if err != nil {
			return nil, err
		}

		es := EpochStats{
			Epoch:     e,
			TrainLoss: trainloss,
			TrainAcc:  trainacc,
			ValLoss:   valloss,
			ValAcc:    valacc,
			Took:      time.Since(start).Round(time.Millisecond),
		}
		sum.Epochs = append(sum.Epochs, es)
		sum.Report = report

		mm.Msg(fmt.Sprintf(MSG2, e, t.Epochs, trainloss, trainacc, valloss, valacc, es.Took), mm.MSGCRIT)

		// ties do not overwrite: an equal score keeps the earlier checkpoint
		if valacc > bestacc {
			if t.CheckpointFl != "" {
				if err := t.Model.Save(t.CheckpointFl); err != nil {
					return nil, err
				}
				sum.Saved = true
				mm.Msg(fmt.Sprintf(MSG3, e, bestacc, valacc, t.CheckpointFl), mm.MSGNOTE)
			}
			bestacc = valacc
			bestepoch = e
		}
	}

	sum.BestAcc = bestacc
	sum.BestEpoch = bestepoch
	mm.Msg(fmt.Sprintf(MSG4, bestacc, bestepoch), mm.MSGCRIT)
	mm.Msg(sum.Report.String(), mm.MSGNOTE)

	return sum, nil
}

// trainphase - one shuffled pass over the training set with Adam updates
func (t *Trainer) trainphase(ctx context.Context, samples []str.Sample, opt *mdl.Adam, rng *rand.Rand) (float64, float64, error) {
	order := make([]int, len(samples))
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	losssum := 0.0
	correct := 0

	for _, batch := range gen.ChunkSlice(order, t.BatchSize) {
		emb, topics, sents, labels, err := t.buildbatch(ctx, samples, batch)
		if err != nil {
			return 0, 0, err
		}

		fc, err := t.Model.Forward(emb, topics, sents, true)
		if err != nil {
			return 0, 0, err
		}

		loss, err := t.Model.Loss(fc, labels)
		if err != nil {
			return 0, 0, err
		}
		losssum += loss * float64(len(batch))
		correct += countcorrect(fc.Probs, labels)

		grads, err := t.Model.Backward(fc, labels)
		if err != nil {
			return 0, 0, err
		}
		opt.Step(t.Model, grads)
	}

	n := float64(len(samples))
	return losssum / n, float64(correct) / n, nil
}

// validate - a no-gradient pass that also yields the classification report
func (t *Trainer) validate(ctx context.Context, samples []str.Sample) (float64, float64, ClassificationReport, error) {
	order := make([]int, len(samples))
	for i := range order {
		order[i] = i
	}

	losssum := 0.0
	var preds []int
	var labels []int

	for _, batch := range gen.ChunkSlice(order, t.BatchSize) {
		emb, topics, sents, lab, err := t.buildbatch(ctx, samples, batch)
		if err != nil {
			return 0, 0, ClassificationReport{}, err
		}

		fc, err := t.Model.Forward(emb, topics, sents, false)
		if err != nil {
			return 0, 0, ClassificationReport{}, err
		}

		loss, err := t.Model.Loss(fc, lab)
		if err != nil {
			return 0, 0, ClassificationReport{}, err
		}
		losssum += loss * float64(len(batch))

		for i := range batch {
			preds = append(preds, argmaxrow(fc.Probs, i))
		}
		labels = append(labels, lab...)
	}

	report := BuildReport(preds, labels)
	return losssum / float64(len(samples)), report.Accuracy, report, nil
}

// buildbatch - encode the texts and stack the modality vectors for one minibatch
func (t *Trainer) buildbatch(ctx context.Context, samples []str.Sample, batch []int) (*mat.Dense, *mat.Dense, *mat.Dense, []int, error) {
	const (
		FAIL1 = "buildbatch() found a %d-wide topic vector on sample %d; the model wants %d"
		FAIL2 = "buildbatch() found a %d-wide sentiment vector on sample %d; the model wants %d"
	)

	texts := make([]string, len(batch))
	labels := make([]int, len(batch))
	topics := mat.NewDense(len(batch), t.Model.TopicDim, nil)
	sents := mat.NewDense(len(batch), t.Model.SentDim, nil)

	for i, idx := range batch {
		s := samples[idx]
		if len(s.TopicVec) != t.Model.TopicDim {
			return nil, nil, nil, nil, fmt.Errorf(FAIL1, len(s.TopicVec), idx, t.Model.TopicDim)
		}
		if len(s.SentimentVec) != t.Model.SentDim {
			return nil, nil, nil, nil, fmt.Errorf(FAIL2, len(s.SentimentVec), idx, t.Model.SentDim)
		}
		texts[i] = s.Text
		labels[i] = s.Label
		topics.SetRow(i, s.TopicVec)
		sents.SetRow(i, s.SentimentVec)
	}

	emb, err := enc.EncodeBatch(ctx, t.Encoder, texts)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return emb, topics, sents, labels, nil
}

// PredictAll - batched inference over a sample set with a loaded model
func PredictAll(ctx context.Context, model *mdl.Model, encoder enc.TextEncoder, samples []str.Sample, batchsize int) ([]str.Prediction, error) {
	if batchsize < 1 {
		batchsize = 1
	}

	t := &Trainer{Model: model, Encoder: encoder, BatchSize: batchsize}

	order := make([]int, len(samples))
	for i := range order {
		order[i] = i
	}

	var preds []str.Prediction
	for _, batch := range gen.ChunkSlice(order, batchsize) {
		emb, topics, sents, _, err := t.buildbatch(ctx, samples, batch)
		if err != nil {
			return nil, err
		}
		pp, err := model.Predict(emb, topics, sents)
		if err != nil {
			return nil, err
		}
		preds = append(preds, pp...)
	}
	return preds, nil
}

// countcorrect - how many argmax predictions match their labels
func countcorrect(probs *mat.Dense, labels []int) int {
	c := 0
	for i, y := range labels {
		if argmaxrow(probs, i) == y {
			c++
		}
	}
	return c
}

func argmaxrow(m *mat.Dense, i int) int {
	best := 0
	_, cols := m.Dims()
	for j := 1; j < cols; j++ {
		if m.At(i, j) > m.At(i, best) {
			best = j
		}
	}
	return best
}
