//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package enc

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

//
// HASHING ENCODER
//

// HashingEncoder - the "hashing trick": map words to vector indices and l2-normalize.
// No weights, no downloads, fully deterministic; the offline and testing encoder.
type HashingEncoder struct {
	size int
}

func NewHashingEncoder(size int) *HashingEncoder {
	return &HashingEncoder{size: size}
}

func (h *HashingEncoder) Encode(_ context.Context, text string) ([]float64, error) {
	vec := make([]float64, h.size)

	// minimal preprocessing: punctuation stays, it is signal for short posts
	words := strings.Fields(strings.ToLower(text))
	for _, w := range words {
		hs := fnv.New32a()
		_, _ = hs.Write([]byte(w))
		idx := int(hs.Sum32()) % h.size
		vec[idx] += 1.0
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}

	return vec, nil
}

func (h *HashingEncoder) Dim() int {
	return h.size
}
