//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package enc

import (
	"context"
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"
)

//
// FEATURE ENCODER
//

// TextEncoder - an opaque capability that maps raw text to a pooled fixed-size embedding.
// The model behind it is frozen: nothing in this repository backpropagates into it.
type TextEncoder interface {
	Encode(ctx context.Context, text string) ([]float64, error)
	Dim() int
}

// EncodeBatch - encode N texts into an N x Dim matrix; one row per text
func EncodeBatch(ctx context.Context, te TextEncoder, texts []string) (*mat.Dense, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("EncodeBatch() received no texts")
	}

	out := mat.NewDense(len(texts), te.Dim(), nil)
	for i, t := range texts {
		v, err := te.Encode(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("EncodeBatch() failed on text %d: %w", i, err)
		}
		if len(v) != te.Dim() {
			return nil, fmt.Errorf("EncodeBatch() dimension drift: got %d, want %d", len(v), te.Dim())
		}
		out.SetRow(i, v)
	}
	return out, nil
}

// CachingEncoder - memoize embeddings; epochs revisit the same texts many
// times, and the echo routes call in from concurrent goroutines
type CachingEncoder struct {
	Inner TextEncoder
	mu    sync.RWMutex
	seen  map[string][]float64
}

func NewCachingEncoder(inner TextEncoder) *CachingEncoder {
	return &CachingEncoder{
		Inner: inner,
		seen:  make(map[string][]float64),
	}
}

func (c *CachingEncoder) Encode(ctx context.Context, text string) ([]float64, error) {
	c.mu.RLock()
	v, ok := c.seen[text]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err := c.Inner.Encode(ctx, text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.seen[text] = v
	c.mu.Unlock()
	return v, nil
}

func (c *CachingEncoder) Dim() int {
	return c.Inner.Dim()
}
