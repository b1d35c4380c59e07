//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package enc

import (
	"context"
	"fmt"

	"github.com/nlpodyssey/cybertron/pkg/tasks"
	"github.com/nlpodyssey/cybertron/pkg/tasks/textencoding"

	"github.com/m-kellner/RumorLensGo/internal/mm"
)

//
// PRETRAINED TEXT ENCODER (cybertron)
//

// the first run will download the model into the configured model directory;
// subsequent runs load from disk

const (
	MEANPOOLING = 1 // bert.MeanPooling
)

// CybertronEncoder - a pretrained transformer encoder behind the TextEncoder interface
type CybertronEncoder struct {
	model textencoding.Interface
	name  string
	dim   int
}

// NewCybertronEncoder - load (or fetch) the named model from modelsdir
func NewCybertronEncoder(modelsdir string, modelname string) (*CybertronEncoder, error) {
	const (
		MSG1 = "loading text encoder '%s' (the first run will download it)"
		PRB  = "probe"
	)

	mm.Msg(fmt.Sprintf(MSG1, modelname), mm.MSGNOTE)

	m, err := tasks.Load[textencoding.Interface](&tasks.Config{
		ModelsDir: modelsdir,
		ModelName: modelname,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load text encoder '%s': %w", modelname, err)
	}

	ce := &CybertronEncoder{model: m, name: modelname}

	// the embedding width is a property of the weights; probe for it once
	probe, err := m.Encode(context.Background(), PRB, MEANPOOLING)
	if err != nil {
		return nil, fmt.Errorf("text encoder '%s' failed its probe encoding: %w", modelname, err)
	}
	ce.dim = probe.Vector.Size()

	return ce, nil
}

func (ce *CybertronEncoder) Encode(ctx context.Context, text string) ([]float64, error) {
	result, err := ce.model.Encode(ctx, text, MEANPOOLING)
	if err != nil {
		return nil, fmt.Errorf("text encoder '%s' failed: %w", ce.name, err)
	}
	return result.Vector.Data().F64(), nil
}

func (ce *CybertronEncoder) Dim() int {
	return ce.dim
}
