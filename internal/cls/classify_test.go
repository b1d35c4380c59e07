//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package cls

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-kellner/RumorLensGo/internal/llm"
	"github.com/m-kellner/RumorLensGo/internal/str"
)

// a server that answers by echoing a verdict keyed on the post text
func verdictserver(t *testing.T, verdicts map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		reply := "no comment"
		for key, v := range verdicts {
			if strings.Contains(req.Prompt, key) {
				reply = v
			}
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"response": reply, "done": true})
	}))
}

func TestClassifyPostsSentiment(t *testing.T) {
	srv := verdictserver(t, map[string]string{
		"love":  "Positive.",
		"awful": "that post reads as negative to me",
		"odd":   "hard to say",
	})
	defer srv.Close()

	cl := &Classifier{Client: llm.NewClient(srv.URL, "testmodel", false)}
	posts := []str.PostRecord{
		{ID: "a", Text: "love this", Label: -1},
		{ID: "b", Text: "awful stuff", Label: -1},
		{ID: "c", Text: "odd one", Label: -1},
	}

	out := cl.ClassifyPosts(context.Background(), TASKSENTIMENT, posts)
	require.Len(t, out, 3)

	// replies come back through the canonical sentiment table
	assert.Equal(t, SENTPOSITIVE, out[0].Answer)
	assert.Equal(t, SENTNEGATIVE, out[1].Answer)

	// an unreadable reply carries no canonical verdict but is not a failure
	assert.Equal(t, -1, out[2].Answer)
	assert.False(t, out[2].Failed)
	assert.Equal(t, "hard to say", out[2].RawReply)
}

func TestClassifyPostsFakenews(t *testing.T) {
	srv := verdictserver(t, map[string]string{
		"moon": "FAKE news.",
		"rain": "real",
	})
	defer srv.Close()

	cl := &Classifier{Client: llm.NewClient(srv.URL, "testmodel", false)}
	posts := []str.PostRecord{
		{ID: "a", Text: "moon landing hoax", Label: LABELFAKE},
		{ID: "b", Text: "rain expected tomorrow", Label: LABELREAL},
	}

	out := cl.ClassifyPosts(context.Background(), TASKFAKENEWS, posts)
	require.Len(t, out, 2)
	assert.Equal(t, LABELFAKE, out[0].Answer)
	assert.Equal(t, LABELREAL, out[1].Answer)

	acc := Evaluate(out)
	assert.Equal(t, 1.0, acc.Overall)
}
