//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/m-kellner/RumorLensGo/internal/mm"
	"github.com/m-kellner/RumorLensGo/internal/vv"
)

//
// THE LOCAL LLM CLIENT
//

// a thin client against an ollama-style server: one generate call per
// prompt, no retries; a failed call is the caller's problem to record

// Client - talks to one model on one server
type Client struct {
	URL    string
	Model  string
	Stream bool
	HC     *http.Client
}

// NewClient - a client with the default timeout
func NewClient(url string, model string, stream bool) *Client {
	return &Client{
		URL:    strings.TrimRight(url, "/"),
		Model:  model,
		Stream: stream,
		HC:     &http.Client{Timeout: vv.LLMTIMEOUT * time.Second},
	}
}

type generaterequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateresponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate - send one prompt and return the full reply text
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	const (
		FAIL1 = "Generate() got HTTP %d from '%s'"
	)

	body, err := json.Marshal(generaterequest{Model: c.Model, Prompt: prompt, Stream: c.Stream})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HC.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf(FAIL1, resp.StatusCode, c.URL)
	}

	if c.Stream {
		return readstream(resp)
	}

	var gr generateresponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", err
	}
	return gr.Response, nil
}

// readstream - concatenate the newline-delimited json fragments until "done"
func readstream(resp *http.Response) (string, error) {
	var sb strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, vv.LLMSCANBUFFER), vv.LLMSCANBUFFER)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var gr generateresponse
		if err := json.Unmarshal(line, &gr); err != nil {
			return "", err
		}
		sb.WriteString(gr.Response)
		if gr.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type showrequest struct {
	Name string `json:"name"`
}

// CheckModel - ask the server whether it knows our model
func (c *Client) CheckModel(ctx context.Context) error {
	const (
		FAIL1 = "CheckModel() got HTTP %d from '%s'; is the model '%s' pulled?"
		MSG1  = "model '%s' is available at '%s'"
	)

	body, err := json.Marshal(showrequest{Name: c.Model})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL+"/api/show", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HC.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf(FAIL1, resp.StatusCode, c.URL, c.Model)
	}

	mm.Msg(fmt.Sprintf(MSG1, c.Model, c.URL), mm.MSGNOTE)
	return nil
}
