//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mdl

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/m-kellner/RumorLensGo/internal/str"
	"github.com/m-kellner/RumorLensGo/internal/vv"
)

//
// THE MULTIMODAL CLASSIFIER
//

// the text encoder is an opaque frozen capability that lives in "enc";
// everything below it is trained here: two modality projectors, a learned
// fusion gate, and a two-layer classifier head

// the gate is a per-sample sigmoid: each sample decides for itself whether
// its topic or its sentiment signal should dominate

// Model - all trainable parameters of the classifier
type Model struct {
	TopicDim   int
	SentDim    int
	Hidden     int // must equal the text encoder's embedding width
	GateHidden int
	HeadHidden int
	Dropout    float64

	// modality projectors: native dim -> hidden
	Wp, Bp *mat.Dense // topic
	Ws, Bs *mat.Dense // sentiment

	// fusion gate scorer: concat(2*hidden) -> gatehidden -> 1
	Wg1, Bg1 *mat.Dense
	Wg2, Bg2 *mat.Dense

	// classifier head: concat(3*hidden) -> headhidden -> 2
	Wc1, Bc1 *mat.Dense
	Wc2, Bc2 *mat.Dense

	rng *rand.Rand
}

// NewModel - build a model with uniform +/- 1/sqrt(fanin) init
func NewModel(topicdim int, sentdim int, hidden int, gatehidden int, headhidden int, dropout float64, seed int64) (*Model, error) {
	if topicdim < 1 || sentdim < 1 || hidden < 1 || gatehidden < 1 || headhidden < 1 {
		return nil, fmt.Errorf("NewModel() refused a non-positive dimension: topic=%d sentiment=%d hidden=%d gate=%d head=%d",
			topicdim, sentdim, hidden, gatehidden, headhidden)
	}
	if dropout < 0 || dropout >= 1 {
		return nil, fmt.Errorf("NewModel() refused dropout %.3f; want [0, 1)", dropout)
	}

	rng := rand.New(rand.NewSource(uint64(seed)))

	m := &Model{
		TopicDim:   topicdim,
		SentDim:    sentdim,
		Hidden:     hidden,
		GateHidden: gatehidden,
		HeadHidden: headhidden,
		Dropout:    dropout,
		Wp:         mat.NewDense(topicdim, hidden, randomarray(topicdim*hidden, float64(topicdim), rng)),
		Bp:         mat.NewDense(1, hidden, nil),
		Ws:         mat.NewDense(sentdim, hidden, randomarray(sentdim*hidden, float64(sentdim), rng)),
		Bs:         mat.NewDense(1, hidden, nil),
		Wg1:        mat.NewDense(2*hidden, gatehidden, randomarray(2*hidden*gatehidden, float64(2*hidden), rng)),
		Bg1:        mat.NewDense(1, gatehidden, nil),
		Wg2:        mat.NewDense(gatehidden, 1, randomarray(gatehidden, float64(gatehidden), rng)),
		Bg2:        mat.NewDense(1, 1, nil),
		Wc1:        mat.NewDense(3*hidden, headhidden, randomarray(3*hidden*headhidden, float64(3*hidden), rng)),
		Bc1:        mat.NewDense(1, headhidden, nil),
		Wc2:        mat.NewDense(headhidden, vv.NUMCLASSES, randomarray(headhidden*vv.NUMCLASSES, float64(headhidden), rng)),
		Bc2:        mat.NewDense(1, vv.NUMCLASSES, nil),
		rng:        rng,
	}

	return m, nil
}

// randomarray - uniform +/- 1/sqrt(v) weights
func randomarray(size int, v float64, rng *rand.Rand) []float64 {
	dist := distuv.Uniform{
		Min: -1 / math.Sqrt(v),
		Max: 1 / math.Sqrt(v),
		Src: rng,
	}

	data := make([]float64, size)
	for i := range data {
		data[i] = dist.Rand()
	}
	return data
}

// ForwardCache - every intermediate the backward pass needs
type ForwardCache struct {
	Emb    *mat.Dense // B x H (frozen input)
	Topics *mat.Dense // B x Td
	Sents  *mat.Dense // B x Sd
	P      *mat.Dense // projected topic, B x H
	Q      *mat.Dense // projected sentiment, B x H
	Z      *mat.Dense // concat(P, Q), B x 2H
	Hg     *mat.Dense // tanh gate hidden, B x G
	Alpha  []float64  // per-sample gate, each in (0, 1)
	F      *mat.Dense // fused, B x H
	M      *mat.Dense // interaction P .* Q, B x H
	X      *mat.Dense // concat(Emb, F, M), B x 3H
	U1     *mat.Dense // head pre-activation, B x Hh
	Ud     *mat.Dense // relu + dropout output, B x Hh
	Mask   *mat.Dense // inverted dropout mask (0 or 1/(1-p)), B x Hh
	Logits *mat.Dense // B x 2
	Probs  *mat.Dense // B x 2
}

// Forward - run the batch through projectors, gate, and head
// dimension mismatches are configuration errors and come back as errors, not per-sample skips
func (m *Model) Forward(emb *mat.Dense, topics *mat.Dense, sents *mat.Dense, train bool) (*ForwardCache, error) {
	br, bc := emb.Dims()
	tr, tc := topics.Dims()
	sr, sc := sents.Dims()

	if bc != m.Hidden {
		return nil, fmt.Errorf("embedding width %d does not match model hidden size %d", bc, m.Hidden)
	}
	if tr != br || sr != br {
		return nil, fmt.Errorf("ragged batch: %d embeddings vs %d topic rows vs %d sentiment rows", br, tr, sr)
	}
	if tc != m.TopicDim || sc != m.SentDim {
		return nil, fmt.Errorf("feature dims (%d, %d) do not match model dims (%d, %d)", tc, sc, m.TopicDim, m.SentDim)
	}

	fc := &ForwardCache{Emb: emb, Topics: topics, Sents: sents}

	// [a] project each modality into the embedding space
	fc.P = linearforward(topics, m.Wp, m.Bp)
	fc.Q = linearforward(sents, m.Ws, m.Bs)

	// [b] score the gate: concat -> tanh layer -> scalar -> sigmoid
	fc.Z = hconcat(fc.P, fc.Q)
	fc.Hg = linearforward(fc.Z, m.Wg1, m.Bg1)
	applyinplace(fc.Hg, math.Tanh)

	scores := linearforward(fc.Hg, m.Wg2, m.Bg2) // B x 1
	fc.Alpha = make([]float64, br)
	for i := 0; i < br; i++ {
		fc.Alpha[i] = sigmoid(scores.At(i, 0))
	}

	// [c] fuse: alpha * topic + (1 - alpha) * sentiment, plus the elementwise interaction
	fc.F = mat.NewDense(br, m.Hidden, nil)
	fc.M = mat.NewDense(br, m.Hidden, nil)
	for i := 0; i < br; i++ {
		a := fc.Alpha[i]
		for j := 0; j < m.Hidden; j++ {
			p := fc.P.At(i, j)
			q := fc.Q.At(i, j)
			fc.F.Set(i, j, a*p+(1-a)*q)
			fc.M.Set(i, j, p*q)
		}
	}

	// [d] the head: concat(text, fused, interaction) -> relu -> dropout -> logits
	fc.X = hconcat(hconcat(emb, fc.F), fc.M)
	fc.U1 = linearforward(fc.X, m.Wc1, m.Bc1)

	relu := mat.NewDense(br, m.HeadHidden, nil)
	relu.Apply(func(_, _ int, v float64) float64 { return math.Max(0, v) }, fc.U1)

	fc.Mask = mat.NewDense(br, m.HeadHidden, nil)
	if train && m.Dropout > 0 {
		keep := 1 - m.Dropout
		fc.Mask.Apply(func(_, _ int, _ float64) float64 {
			if m.rng.Float64() < keep {
				return 1 / keep
			}
			return 0
		}, fc.Mask)
	} else {
		fc.Mask.Apply(func(_, _ int, _ float64) float64 { return 1 }, fc.Mask)
	}

	fc.Ud = mat.NewDense(br, m.HeadHidden, nil)
	fc.Ud.MulElem(relu, fc.Mask)

	fc.Logits = linearforward(fc.Ud, m.Wc2, m.Bc2)

	// [e] softmax for the callers that want probabilities
	fc.Probs = mat.NewDense(br, vv.NUMCLASSES, nil)
	for i := 0; i < br; i++ {
		softmaxrow(fc.Logits, fc.Probs, i)
	}

	return fc, nil
}

// Predict - label + confidence per sample; softmax and argmax live here, not in the head
func (m *Model) Predict(emb *mat.Dense, topics *mat.Dense, sents *mat.Dense) ([]str.Prediction, error) {
	fc, err := m.Forward(emb, topics, sents, false)
	if err != nil {
		return nil, err
	}

	br, _ := emb.Dims()
	preds := make([]str.Prediction, br)
	for i := 0; i < br; i++ {
		p0 := fc.Probs.At(i, 0)
		p1 := fc.Probs.At(i, 1)
		lab := 0
		conf := p0
		if p1 > p0 {
			lab = 1
			conf = p1
		}
		preds[i] = str.Prediction{Label: lab, Confidence: conf, Probs: [2]float64{p0, p1}}
	}
	return preds, nil
}

// FusedPair - the gate's view of a single sample: both projected vectors,
// the fused result, and the blending weight
type FusedPair struct {
	ProjTopic []float64
	ProjSent  []float64
	Fused     []float64
	Alpha     float64
}

// FuseOne - run one isolated sample through the projectors and the gate
func (m *Model) FuseOne(topicvec []float64, sentvec []float64) (*FusedPair, error) {
	if len(topicvec) != m.TopicDim || len(sentvec) != m.SentDim {
		return nil, fmt.Errorf("FuseOne() dims (%d, %d) do not match model dims (%d, %d)",
			len(topicvec), len(sentvec), m.TopicDim, m.SentDim)
	}

	t := mat.NewDense(1, m.TopicDim, topicvec)
	s := mat.NewDense(1, m.SentDim, sentvec)

	p := linearforward(t, m.Wp, m.Bp)
	q := linearforward(s, m.Ws, m.Bs)

	z := hconcat(p, q)
	hg := linearforward(z, m.Wg1, m.Bg1)
	applyinplace(hg, math.Tanh)
	score := linearforward(hg, m.Wg2, m.Bg2)
	a := sigmoid(score.At(0, 0))

	fp := &FusedPair{
		ProjTopic: make([]float64, m.Hidden),
		ProjSent:  make([]float64, m.Hidden),
		Fused:     make([]float64, m.Hidden),
		Alpha:     a,
	}
	for j := 0; j < m.Hidden; j++ {
		fp.ProjTopic[j] = p.At(0, j)
		fp.ProjSent[j] = q.At(0, j)
		fp.Fused[j] = a*fp.ProjTopic[j] + (1-a)*fp.ProjSent[j]
	}
	return fp, nil
}

//
// SMALL MATRIX HELPERS
//

// linearforward - x*W + b with the bias row broadcast over the batch
func linearforward(x *mat.Dense, w *mat.Dense, b *mat.Dense) *mat.Dense {
	xr, _ := x.Dims()
	_, wc := w.Dims()

	out := mat.NewDense(xr, wc, nil)
	out.Mul(x, w)
	for i := 0; i < xr; i++ {
		for j := 0; j < wc; j++ {
			out.Set(i, j, out.At(i, j)+b.At(0, j))
		}
	}
	return out
}

// hconcat - [a | b]
func hconcat(a *mat.Dense, b *mat.Dense) *mat.Dense {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br {
		panic(fmt.Sprintf("hconcat row mismatch: %d vs %d", ar, br))
	}

	out := mat.NewDense(ar, ac+bc, nil)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			out.Set(i, j, a.At(i, j))
		}
		for j := 0; j < bc; j++ {
			out.Set(i, ac+j, b.At(i, j))
		}
	}
	return out
}

func applyinplace(m *mat.Dense, fn func(float64) float64) {
	m.Apply(func(_, _ int, v float64) float64 { return fn(v) }, m)
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// softmaxrow - numerically stable softmax of row i of src into dst
func softmaxrow(src *mat.Dense, dst *mat.Dense, i int) {
	_, c := src.Dims()
	max := src.At(i, 0)
	for j := 1; j < c; j++ {
		if src.At(i, j) > max {
			max = src.At(i, j)
		}
	}
	var sum float64
	for j := 0; j < c; j++ {
		e := math.Exp(src.At(i, j) - max)
		dst.Set(i, j, e)
		sum += e
	}
	for j := 0; j < c; j++ {
		dst.Set(i, j, dst.At(i, j)/sum)
	}
}
