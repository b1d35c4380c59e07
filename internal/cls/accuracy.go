//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package cls

import (
	"fmt"

	"github.com/m-kellner/RumorLensGo/internal/mm"
	"github.com/m-kellner/RumorLensGo/internal/str"
)

//
// ACCURACY
//

// Accuracy - overall and per-class hit rates over a classification run
// an empty result set scores 0.0 across the board rather than erroring
type Accuracy struct {
	Overall float64
	Fake    float64
	Real    float64
	Total   int
}

// Evaluate - score the classified posts against their true labels
func Evaluate(results []str.ClassifiedPost) Accuracy {
	var acc Accuracy
	acc.Total = len(results)
	if acc.Total == 0 {
		return acc
	}

	correct := 0
	fakeright, fakeall := 0, 0
	realright, realall := 0, 0

	for _, r := range results {
		hit := !r.Failed && r.Answer == r.TrueLabel
		if hit {
			correct++
		}
		switch r.TrueLabel {
		case LABELFAKE:
			fakeall++
			if hit {
				fakeright++
			}
		case LABELREAL:
			realall++
			if hit {
				realright++
			}
		}
	}

	acc.Overall = float64(correct) / float64(acc.Total)
	if fakeall > 0 {
		acc.Fake = float64(fakeright) / float64(fakeall)
	}
	if realall > 0 {
		acc.Real = float64(realright) / float64(realall)
	}

	return acc
}

// Report - print the accuracies at the standard level
func (a Accuracy) Report() {
	const (
		MSG1 = "accuracy over %d posts: overall %.4f | fake %.4f | real %.4f"
	)
	mm.Msg(fmt.Sprintf(MSG1, a.Total, a.Overall, a.Fake, a.Real), mm.MSGCRIT)
}
