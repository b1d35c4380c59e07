//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mdl

import (
	"encoding/gob"
	"fmt"
	"golang.org/x/exp/rand"
	"os"

	"gonum.org/v1/gonum/mat"
)

//
// CHECKPOINTS
//

// one opaque gob blob per run; the file is overwritten in place whenever
// validation accuracy improves; there is no versioning and no schema

type checkpointmatrix struct {
	Rows int
	Cols int
	Data []float64
}

type checkpointfile struct {
	TopicDim   int
	SentDim    int
	Hidden     int
	GateHidden int
	HeadHidden int
	Dropout    float64
	Matrices   []checkpointmatrix
}

// Save - persist every parameter to a single file, overwriting it
func (m *Model) Save(path string) error {
	cpf := checkpointfile{
		TopicDim:   m.TopicDim,
		SentDim:    m.SentDim,
		Hidden:     m.Hidden,
		GateHidden: m.GateHidden,
		HeadHidden: m.HeadHidden,
		Dropout:    m.Dropout,
	}

	for _, p := range m.parameters() {
		r, c := p.Dims()
		data := make([]float64, r*c)
		copy(data, p.RawMatrix().Data)
		cpf.Matrices = append(cpf.Matrices, checkpointmatrix{Rows: r, Cols: c, Data: data})
	}

	fl, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("checkpoint save failed to create '%s': %w", path, err)
	}
	defer fl.Close()

	if err = gob.NewEncoder(fl).Encode(cpf); err != nil {
		return fmt.Errorf("checkpoint save failed to encode '%s': %w", path, err)
	}
	return nil
}

// Load - rebuild a model from a checkpoint file
func Load(path string, seed int64) (*Model, error) {
	fl, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("checkpoint load failed to open '%s': %w", path, err)
	}
	defer fl.Close()

	var cpf checkpointfile
	if err = gob.NewDecoder(fl).Decode(&cpf); err != nil {
		return nil, fmt.Errorf("checkpoint load failed to decode '%s': %w", path, err)
	}

	m, err := NewModel(cpf.TopicDim, cpf.SentDim, cpf.Hidden, cpf.GateHidden, cpf.HeadHidden, cpf.Dropout, seed)
	if err != nil {
		return nil, err
	}

	params := m.parameters()
	if len(cpf.Matrices) != len(params) {
		return nil, fmt.Errorf("checkpoint '%s' carries %d matrices; the model wants %d", path, len(cpf.Matrices), len(params))
	}

	for k, cm := range cpf.Matrices {
		r, c := params[k].Dims()
		if cm.Rows != r || cm.Cols != c {
			return nil, fmt.Errorf("checkpoint '%s' matrix %d is %dx%d; the model wants %dx%d", path, k, cm.Rows, cm.Cols, r, c)
		}
		params[k].Copy(mat.NewDense(cm.Rows, cm.Cols, cm.Data))
	}

	m.rng = rand.New(rand.NewSource(uint64(seed)))

	return m, nil
}
