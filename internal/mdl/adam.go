//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mdl

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

//
// ADAM (in-place, bias-corrected)
//

const (
	ADAMBETA1 = 0.9
	ADAMBETA2 = 0.999
	ADAMEPS   = 1e-8
)

// Adam - first/second moment state for every model parameter
type Adam struct {
	LR float64
	t  int
	m  []*mat.Dense
	v  []*mat.Dense
}

// NewAdam - zeroed optimizer state shaped like the model
func NewAdam(model *Model, lr float64) *Adam {
	params := model.parameters()
	a := &Adam{LR: lr}
	for _, p := range params {
		r, c := p.Dims()
		a.m = append(a.m, mat.NewDense(r, c, nil))
		a.v = append(a.v, mat.NewDense(r, c, nil))
	}
	return a
}

// Step - one optimizer step: p -= lr * mhat / (sqrt(vhat) + eps)
func (a *Adam) Step(model *Model, g *Gradients) {
	a.t++

	params := model.parameters()
	grads := g.gradients()

	b1t := math.Pow(ADAMBETA1, float64(a.t))
	b2t := math.Pow(ADAMBETA2, float64(a.t))
	c1 := 1.0 / (1.0 - b1t)
	c2 := 1.0 / (1.0 - b2t)

	for k, p := range params {
		pr, pc := p.Dims()
		for i := 0; i < pr; i++ {
			for j := 0; j < pc; j++ {
				gij := grads[k].At(i, j)
				mij := ADAMBETA1*a.m[k].At(i, j) + (1.0-ADAMBETA1)*gij
				vij := ADAMBETA2*a.v[k].At(i, j) + (1.0-ADAMBETA2)*gij*gij
				mhat := mij * c1
				vhat := vij * c2
				a.m[k].Set(i, j, mij)
				a.v[k].Set(i, j, vij)
				p.Set(i, j, p.At(i, j)-a.LR*mhat/(math.Sqrt(vhat)+ADAMEPS))
			}
		}
	}
}

// parameters - fixed ordering; Gradients.gradients() must match it
func (m *Model) parameters() []*mat.Dense {
	return []*mat.Dense{m.Wp, m.Bp, m.Ws, m.Bs, m.Wg1, m.Bg1, m.Wg2, m.Bg2, m.Wc1, m.Bc1, m.Wc2, m.Bc2}
}

func (g *Gradients) gradients() []*mat.Dense {
	return []*mat.Dense{g.Wp, g.Bp, g.Ws, g.Bs, g.Wg1, g.Bg1, g.Wg2, g.Bg2, g.Wc1, g.Bc1, g.Wc2, g.Bc2}
}
