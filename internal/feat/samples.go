//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package feat

import (
	"fmt"

	"github.com/m-kellner/RumorLensGo/internal/lda"
	"github.com/m-kellner/RumorLensGo/internal/str"
)

//
// SAMPLE ASSEMBLY
//

// BuildSamples - fuse posts with their topic and sentiment vectors
// the topic model must have been fitted on these posts in this order
func BuildSamples(posts []str.PostRecord, tm *lda.TopicModel) ([]str.Sample, error) {
	const (
		FAIL1 = "BuildSamples() got %d posts but a topic model over %d documents"
	)

	if len(tm.Dominant) != len(posts) {
		return nil, fmt.Errorf(FAIL1, len(posts), len(tm.Dominant))
	}

	samples := make([]str.Sample, len(posts))
	for i, p := range posts {
		samples[i] = str.Sample{
			Text:         p.Text,
			TopicVec:     tm.DocVector(i),
			SentimentVec: SentimentVector(p.Text),
			Label:        p.Label,
		}
	}
	return samples, nil
}
