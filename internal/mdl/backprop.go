//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mdl

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/m-kellner/RumorLensGo/internal/vv"
)

//
// HAND-WRITTEN BACKWARD PASS
//

// Gradients - one gradient matrix per parameter, same shapes as the parameters
type Gradients struct {
	Wp, Bp   *mat.Dense
	Ws, Bs   *mat.Dense
	Wg1, Bg1 *mat.Dense
	Wg2, Bg2 *mat.Dense
	Wc1, Bc1 *mat.Dense
	Wc2, Bc2 *mat.Dense
}

// Loss - mean cross-entropy of a forward pass against the true labels
func (m *Model) Loss(fc *ForwardCache, labels []int) (float64, error) {
	br, _ := fc.Probs.Dims()
	if len(labels) != br {
		return 0, fmt.Errorf("Loss() got %d labels for %d samples", len(labels), br)
	}

	var loss float64
	for i, y := range labels {
		if y < 0 || y >= vv.NUMCLASSES {
			return 0, fmt.Errorf("Loss() saw label %d; want 0..%d", y, vv.NUMCLASSES-1)
		}
		p := fc.Probs.At(i, y)
		if p < 1e-12 {
			p = 1e-12
		}
		loss -= math.Log(p)
	}
	return loss / float64(br), nil
}

// Backward - gradients of the mean cross-entropy w.r.t. every parameter.
// The text embedding is a frozen input: its gradient is computed into the
// concat and then discarded.
func (m *Model) Backward(fc *ForwardCache, labels []int) (*Gradients, error) {
	br, _ := fc.Probs.Dims()
	if len(labels) != br {
		return nil, fmt.Errorf("Backward() got %d labels for %d samples", len(labels), br)
	}

	h := m.Hidden
	g := &Gradients{
		Wp: mat.NewDense(m.TopicDim, h, nil), Bp: mat.NewDense(1, h, nil),
		Ws: mat.NewDense(m.SentDim, h, nil), Bs: mat.NewDense(1, h, nil),
		Wg1: mat.NewDense(2*h, m.GateHidden, nil), Bg1: mat.NewDense(1, m.GateHidden, nil),
		Wg2: mat.NewDense(m.GateHidden, 1, nil), Bg2: mat.NewDense(1, 1, nil),
		Wc1: mat.NewDense(3*h, m.HeadHidden, nil), Bc1: mat.NewDense(1, m.HeadHidden, nil),
		Wc2: mat.NewDense(m.HeadHidden, vv.NUMCLASSES, nil), Bc2: mat.NewDense(1, vv.NUMCLASSES, nil),
	}

	// [a] softmax + cross-entropy: dLogits = probs - onehot, averaged over the batch
	dlogits := mat.NewDense(br, vv.NUMCLASSES, nil)
	for i := 0; i < br; i++ {
		for j := 0; j < vv.NUMCLASSES; j++ {
			d := fc.Probs.At(i, j)
			if j == labels[i] {
				d -= 1
			}
			dlogits.Set(i, j, d/float64(br))
		}
	}

	// [b] output layer of the head
	g.Wc2.Mul(fc.Ud.T(), dlogits)
	colsuminto(g.Bc2, dlogits)

	dud := mat.NewDense(br, m.HeadHidden, nil)
	dud.Mul(dlogits, m.Wc2.T())

	// [c] dropout then relu
	du1 := mat.NewDense(br, m.HeadHidden, nil)
	for i := 0; i < br; i++ {
		for j := 0; j < m.HeadHidden; j++ {
			v := dud.At(i, j) * fc.Mask.At(i, j)
			if fc.U1.At(i, j) <= 0 {
				v = 0
			}
			du1.Set(i, j, v)
		}
	}

	// [d] first layer of the head
	g.Wc1.Mul(fc.X.T(), du1)
	colsuminto(g.Bc1, du1)

	dx := mat.NewDense(br, 3*h, nil)
	dx.Mul(du1, m.Wc1.T())

	// [e] split the concat: text gradient is dropped, fused and interaction flow on
	dp := mat.NewDense(br, h, nil)
	dq := mat.NewDense(br, h, nil)
	dalpha := make([]float64, br)

	for i := 0; i < br; i++ {
		a := fc.Alpha[i]
		for j := 0; j < h; j++ {
			df := dx.At(i, h+j)
			dm := dx.At(i, 2*h+j)
			p := fc.P.At(i, j)
			q := fc.Q.At(i, j)

			dp.Set(i, j, dm*q+a*df)
			dq.Set(i, j, dm*p+(1-a)*df)
			dalpha[i] += df * (p - q)
		}
	}

	// [f] through the sigmoid gate and its scorer
	ds := mat.NewDense(br, 1, nil)
	for i := 0; i < br; i++ {
		a := fc.Alpha[i]
		ds.Set(i, 0, dalpha[i]*a*(1-a))
	}

	g.Wg2.Mul(fc.Hg.T(), ds)
	colsuminto(g.Bg2, ds)

	dhg := mat.NewDense(br, m.GateHidden, nil)
	dhg.Mul(ds, m.Wg2.T())

	dg1 := mat.NewDense(br, m.GateHidden, nil)
	for i := 0; i < br; i++ {
		for j := 0; j < m.GateHidden; j++ {
			t := fc.Hg.At(i, j)
			dg1.Set(i, j, dhg.At(i, j)*(1-t*t))
		}
	}

	g.Wg1.Mul(fc.Z.T(), dg1)
	colsuminto(g.Bg1, dg1)

	dz := mat.NewDense(br, 2*h, nil)
	dz.Mul(dg1, m.Wg1.T())
	for i := 0; i < br; i++ {
		for j := 0; j < h; j++ {
			dp.Set(i, j, dp.At(i, j)+dz.At(i, j))
			dq.Set(i, j, dq.At(i, j)+dz.At(i, h+j))
		}
	}

	// [g] the projectors
	g.Wp.Mul(fc.Topics.T(), dp)
	colsuminto(g.Bp, dp)
	g.Ws.Mul(fc.Sents.T(), dq)
	colsuminto(g.Bs, dq)

	return g, nil
}

// colsuminto - sum the rows of src into the 1 x C dst
func colsuminto(dst *mat.Dense, src *mat.Dense) {
	r, c := src.Dims()
	for j := 0; j < c; j++ {
		var s float64
		for i := 0; i < r; i++ {
			s += src.At(i, j)
		}
		dst.Set(0, j, s)
	}
}
