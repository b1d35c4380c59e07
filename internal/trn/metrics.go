//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package trn

import (
	"fmt"
	"strings"

	"github.com/m-kellner/RumorLensGo/internal/vv"
)

//
// EVALUATION METRICS
//

// ClassMetrics - precision/recall/f1 plus support for one class
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// ClassificationReport - per-class metrics and overall accuracy
type ClassificationReport struct {
	PerClass [vv.NUMCLASSES]ClassMetrics
	Accuracy float64
	Total    int
}

// BuildReport - score predictions against true labels
func BuildReport(preds []int, labels []int) ClassificationReport {
	var rep ClassificationReport
	rep.Total = len(labels)
	if rep.Total == 0 {
		return rep
	}

	var tp, fp, fn [vv.NUMCLASSES]int
	correct := 0

	for i := range labels {
		y := labels[i]
		p := preds[i]
		rep.PerClass[y].Support++
		if p == y {
			correct++
			tp[y]++
		} else {
			fp[p]++
			fn[y]++
		}
	}

	rep.Accuracy = float64(correct) / float64(rep.Total)

	for c := 0; c < vv.NUMCLASSES; c++ {
		if tp[c]+fp[c] > 0 {
			rep.PerClass[c].Precision = float64(tp[c]) / float64(tp[c]+fp[c])
		}
		if tp[c]+fn[c] > 0 {
			rep.PerClass[c].Recall = float64(tp[c]) / float64(tp[c]+fn[c])
		}
		pr := rep.PerClass[c].Precision
		rc := rep.PerClass[c].Recall
		if pr+rc > 0 {
			rep.PerClass[c].F1 = 2 * pr * rc / (pr + rc)
		}
	}

	return rep
}

// String - a terminal table in the sklearn manner
func (r ClassificationReport) String() string {
	const (
		HEAD = "class      precision  recall     f1         support"
		ROW  = "%-10d %-10.4f %-10.4f %-10.4f %d"
		FOOT = "accuracy: %.4f (%d samples)"
	)

	var sb strings.Builder
	sb.WriteString(HEAD + "\n")
	for c := 0; c < vv.NUMCLASSES; c++ {
		m := r.PerClass[c]
		sb.WriteString(fmt.Sprintf(ROW, c, m.Precision, m.Recall, m.F1, m.Support) + "\n")
	}
	sb.WriteString(fmt.Sprintf(FOOT, r.Accuracy, r.Total))
	return sb.String()
}
