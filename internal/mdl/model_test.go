//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mdl

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func randbatch(rows int, cols int, seed float64) *mat.Dense {
	data := make([]float64, rows*cols)
	x := seed
	for i := range data {
		// a cheap deterministic pseudo-random fill
		x = math.Mod(x*997.13+0.31, 1.0)
		data[i] = x - 0.5
	}
	return mat.NewDense(rows, cols, data)
}

func TestForwardYieldsTwoLogits(t *testing.T) {
	triples := [][3]int{{4, 3, 16}, {8, 5, 32}, {2, 2, 8}}

	for _, tr := range triples {
		m, err := NewModel(tr[0], tr[1], tr[2], 8, 16, 0.0, 42)
		require.NoError(t, err)

		b := 5
		fc, err := m.Forward(randbatch(b, tr[2], 0.17), randbatch(b, tr[0], 0.29), randbatch(b, tr[1], 0.41), false)
		require.NoError(t, err)

		rows, cols := fc.Logits.Dims()
		assert.Equal(t, b, rows)
		assert.Equal(t, 2, cols)

		for i := 0; i < b; i++ {
			sum := fc.Probs.At(i, 0) + fc.Probs.At(i, 1)
			assert.InDelta(t, 1.0, sum, 1e-9)
		}
	}
}

func TestForwardRejectsDimensionMismatch(t *testing.T) {
	m, err := NewModel(4, 3, 16, 8, 16, 0.0, 42)
	require.NoError(t, err)

	// topic width 5 against a model wanting 4
	_, err = m.Forward(randbatch(2, 16, 0.1), randbatch(2, 5, 0.2), randbatch(2, 3, 0.3), false)
	assert.Error(t, err)
}

func TestNewModelRejectsBadConfig(t *testing.T) {
	_, err := NewModel(0, 3, 16, 8, 16, 0.0, 42)
	assert.Error(t, err)

	_, err = NewModel(4, 3, 16, 8, 16, 1.0, 42)
	assert.Error(t, err)

	_, err = NewModel(4, 3, 16, 8, 16, -0.1, 42)
	assert.Error(t, err)
}

func TestFuseOneStaysBetweenTheProjections(t *testing.T) {
	m, err := NewModel(4, 3, 16, 8, 16, 0.0, 42)
	require.NoError(t, err)

	fp, err := m.FuseOne([]float64{0.2, -0.4, 0.9, 0.1}, []float64{-0.3, 0.8, 0.5})
	require.NoError(t, err)

	assert.Greater(t, fp.Alpha, 0.0)
	assert.Less(t, fp.Alpha, 1.0)

	for i := range fp.Fused {
		lo := math.Min(fp.ProjTopic[i], fp.ProjSent[i])
		hi := math.Max(fp.ProjTopic[i], fp.ProjSent[i])
		if hi-lo < 1e-12 {
			continue
		}
		assert.Greater(t, fp.Fused[i], lo)
		assert.Less(t, fp.Fused[i], hi)
	}
}

func TestCheckpointRoundTrip(t *testing.T) {
	m, err := NewModel(4, 3, 16, 8, 16, 0.3, 42)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.gob")
	require.NoError(t, m.Save(path))

	m2, err := Load(path, 42)
	require.NoError(t, err)

	emb := randbatch(3, 16, 0.7)
	topics := randbatch(3, 4, 0.11)
	sents := randbatch(3, 3, 0.13)

	p1, err := m.Predict(emb, topics, sents)
	require.NoError(t, err)
	p2, err := m2.Predict(emb, topics, sents)
	require.NoError(t, err)

	require.Equal(t, len(p1), len(p2))
	for i := range p1 {
		assert.Equal(t, p1[i].Label, p2[i].Label)
		assert.InDelta(t, p1[i].Probs[0], p2[i].Probs[0], 1e-12)
		assert.InDelta(t, p1[i].Probs[1], p2[i].Probs[1], 1e-12)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "no-such.gob"), 42)
	assert.Error(t, err)
}
