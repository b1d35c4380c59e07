//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package cls

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-kellner/RumorLensGo/internal/llm"
	"github.com/m-kellner/RumorLensGo/internal/mm"
	"github.com/m-kellner/RumorLensGo/internal/str"
	"github.com/m-kellner/RumorLensGo/internal/vv"
)

//
// TOPIC SUMMARIES
//

const SUMMARYPROMPT = "These are the most prominent words of one topic from a collection of social media posts: %s. " +
	"Offer a short phrase (five words or fewer) naming the theme they share."

// SummarizeTopic - ask the llm to name one topic; a failed call yields a placeholder
func SummarizeTopic(ctx context.Context, client *llm.Client, topic int, words []string) str.TopicSummary {
	const (
		WARN1 = "topic %d: summary call failed: %v"
	)

	ts := str.TopicSummary{Topic: topic, TopWords: words}

	reply, err := client.Generate(ctx, fmt.Sprintf(SUMMARYPROMPT, strings.Join(words, ", ")))
	if err != nil {
		mm.Msg(fmt.Sprintf(WARN1, topic, err), mm.MSGWARN)
		ts.Summary = vv.SUMMARYPLACEHOLD
		ts.Failed = true
		return ts
	}

	ts.Summary = strings.TrimSpace(reply)
	return ts
}
