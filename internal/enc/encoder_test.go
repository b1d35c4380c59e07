//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package enc

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashingEncoder(t *testing.T) {
	he := NewHashingEncoder(64)
	assert.Equal(t, 64, he.Dim())

	ctx := context.Background()

	v1, err := he.Encode(ctx, "the same text every time")
	require.NoError(t, err)
	require.Len(t, v1, 64)

	v2, err := he.Encode(ctx, "the same text every time")
	require.NoError(t, err)
	assert.Equal(t, v1, v2)

	norm := 0.0
	for _, f := range v1 {
		norm += f * f
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)

	empty, err := he.Encode(ctx, "")
	require.NoError(t, err)
	for _, f := range empty {
		assert.Equal(t, 0.0, f)
	}
}

func TestEncodeBatch(t *testing.T) {
	he := NewHashingEncoder(16)
	m, err := EncodeBatch(context.Background(), he, []string{"one post", "another post", "a third"})
	require.NoError(t, err)

	r, c := m.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 16, c)

	single, err := he.Encode(context.Background(), "another post")
	require.NoError(t, err)
	for j := 0; j < 16; j++ {
		assert.Equal(t, single[j], m.At(1, j))
	}

	_, err = EncodeBatch(context.Background(), he, nil)
	assert.Error(t, err)
}

type countingencoder struct {
	inner *HashingEncoder
	calls int
}

func (ce *countingencoder) Encode(ctx context.Context, text string) ([]float64, error) {
	ce.calls++
	return ce.inner.Encode(ctx, text)
}

func (ce *countingencoder) Dim() int { return ce.inner.Dim() }

func TestCachingEncoder(t *testing.T) {
	ce := &countingencoder{inner: NewHashingEncoder(8)}
	cached := NewCachingEncoder(ce)

	ctx := context.Background()
	_, err := cached.Encode(ctx, "a post")
	require.NoError(t, err)
	_, err = cached.Encode(ctx, "a post")
	require.NoError(t, err)
	_, err = cached.Encode(ctx, "a different post")
	require.NoError(t, err)

	assert.Equal(t, 2, ce.calls)
	assert.Equal(t, 8, cached.Dim())
}

func TestCachingEncoderConcurrent(t *testing.T) {
	// the echo routes encode from concurrent goroutines; the memo map has
	// to survive simultaneous readers and writers
	cached := NewCachingEncoder(NewHashingEncoder(16))
	ctx := context.Background()

	texts := []string{"one post", "another post", "a third", "one post"}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				v, err := cached.Encode(ctx, texts[i%len(texts)])
				assert.NoError(t, err)
				assert.Len(t, v, 16)
			}
		}()
	}
	wg.Wait()
}
