//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/generate", r.URL.Path)

		var req generaterequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "testmodel", req.Model)
		assert.Equal(t, "one word please", req.Prompt)
		assert.False(t, req.Stream)

		json.NewEncoder(w).Encode(generateresponse{Response: "fake", Done: true})
	}))
	defer srv.Close()

	cl := NewClient(srv.URL, "testmodel", false)
	reply, err := cl.Generate(context.Background(), "one word please")
	require.NoError(t, err)
	assert.Equal(t, "fake", reply)
}

func TestGenerateStreaming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generaterequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)

		fmt.Fprintln(w, `{"response":"the ","done":false}`)
		fmt.Fprintln(w, ``)
		fmt.Fprintln(w, `{"response":"post is ","done":false}`)
		fmt.Fprintln(w, `{"response":"real","done":true}`)
	}))
	defer srv.Close()

	cl := NewClient(srv.URL, "testmodel", true)
	reply, err := cl.Generate(context.Background(), "stream it")
	require.NoError(t, err)
	assert.Equal(t, "the post is real", reply)
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such model", http.StatusNotFound)
	}))
	defer srv.Close()

	cl := NewClient(srv.URL, "missing", false)
	_, err := cl.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestCheckModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/show", r.URL.Path)
		var req showrequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Name == "present" {
			w.Write([]byte(`{}`))
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	assert.NoError(t, NewClient(srv.URL, "present", false).CheckModel(context.Background()))
	assert.Error(t, NewClient(srv.URL, "absent", false).CheckModel(context.Background()))
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	cl := NewClient("http://localhost:11434/", "m", false)
	assert.Equal(t, "http://localhost:11434", cl.URL)
}
