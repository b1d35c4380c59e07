//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package cls

import (
	"context"
	"fmt"

	"github.com/m-kellner/RumorLensGo/internal/llm"
	"github.com/m-kellner/RumorLensGo/internal/mm"
	"github.com/m-kellner/RumorLensGo/internal/str"
	"github.com/m-kellner/RumorLensGo/internal/vdb"
	"github.com/m-kellner/RumorLensGo/internal/vv"
)

//
// PROMPT CLASSIFICATION
//

// one blocking llm call per post, strictly sequential; a failed call marks
// that post and the run moves on: the llm server being flaky should not
// cost you the previous hour of answers (which the cache keeps anyway)

const (
	TASKSENTIMENT = "sentiment"
	TASKFAKENEWS  = "fakenews"

	SENTIMENTPROMPT = "You are a sentiment rater. Reply with exactly one word, positive or negative, for the following post:\n\n%s"
	FAKENEWSPROMPT  = "You are a fact checker. Reply with exactly one word, fake or real, for the following news post:\n\n%s"
)

// Classifier - an llm client plus the cache its answers land in
type Classifier struct {
	Client *llm.Client
	Cache  *vdb.Cache
}

// ClassifyPosts - run one task over every post; per-post failures do not stop the run
func (cl *Classifier) ClassifyPosts(ctx context.Context, task string, posts []str.PostRecord) []str.ClassifiedPost {
	const (
		WARN1 = "post '%s': llm call failed: %v"
		WARN2 = "post '%s': unparseable answer '%.40s'; counting it as wrong"
		MSG1  = "classified %d/%d posts (%d cached, %d failed)"
	)

	prompt := FAKENEWSPROMPT
	if task == TASKSENTIMENT {
		prompt = SENTIMENTPROMPT
	}

	out := make([]str.ClassifiedPost, 0, len(posts))
	cached := 0
	failed := 0

	for _, p := range posts {
		cp := str.ClassifiedPost{PostID: p.ID, Text: p.Text, TrueLabel: p.Label, Answer: -1}

		reply, hit := "", false
		if cl.Cache != nil {
			reply, hit = cl.Cache.Lookup(cl.Client.Model, task, p.ID)
		}
		if hit {
			cached++
		} else {
			var err error
			reply, err = cl.Client.Generate(ctx, fmt.Sprintf(prompt, p.Text))
			if err != nil {
				mm.Msg(fmt.Sprintf(WARN1, p.ID, err), mm.MSGWARN)
				cp.Failed = true
				cp.RawReply = vv.FAILEDPLACEHOLD
				out = append(out, cp)
				failed++
				continue
			}
			if cl.Cache != nil {
				if err := cl.Cache.Store(cl.Client.Model, task, p.ID, reply); err != nil {
					mm.Msg(fmt.Sprintf(WARN1, p.ID, err), mm.MSGWARN)
				}
			}
		}

		cp.RawReply = reply

		switch task {
		case TASKFAKENEWS:
			ans, ok := ParseAnswer(reply)
			if !ok {
				mm.Msg(fmt.Sprintf(WARN2, p.ID, reply), mm.MSGWARN)
				// an unreadable answer is a wrong prediction, not an error
				ans = wrongpick(p.Label)
			}
			cp.Answer = ans
		case TASKSENTIMENT:
			ans, ok := ParseSentiment(reply)
			if !ok {
				mm.Msg(fmt.Sprintf(WARN2, p.ID, reply), mm.MSGWARN)
				ans = -1
			}
			cp.Answer = ans
		}

		out = append(out, cp)
	}

	mm.Msg(fmt.Sprintf(MSG1, len(out), len(posts), cached, failed), mm.MSGCRIT)
	return out
}

// wrongpick - the label that is not the true one; fake when there is no truth to miss
func wrongpick(truelabel int) int {
	if truelabel == LABELFAKE {
		return LABELREAL
	}
	return LABELFAKE
}
