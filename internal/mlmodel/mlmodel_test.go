package mlmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HarmoniqaOrg/PharmOS/internal/registry"
)

func TestQSARPredict(t *testing.T) {
	m := &QSARModel{
		Name:        "solubility",
		TargetLabel: "logS",
		Coefficients: map[string]float64{
			"logp":       -0.5,
			"mol_weight": -0.01,
		},
		Intercept: 0.2,
	}

	score := m.Predict(map[string]float64{
		"logp":       2.0,
		"mol_weight": 300,
		"unused":     99, // no coefficient, ignored
	})
	assert.InDelta(t, 0.2-1.0-3.0, score, 1e-9)

	// missing descriptors count as zero
	assert.InDelta(t, 0.2, m.Predict(nil), 1e-9)
}

func TestEnsemblePredict(t *testing.T) {
	a := QSARModel{Coefficients: map[string]float64{"x": 1}, Intercept: 0}
	b := QSARModel{Coefficients: map[string]float64{"x": 3}, Intercept: 0}

	m := &EnsembleModel{
		Name:    "pair",
		Members: []QSARModel{a, b},
		Weights: []float64{1, 3},
	}

	// (1*1 + 3*3) / 4
	assert.InDelta(t, 2.5, m.Predict(map[string]float64{"x": 1}), 1e-9)

	// missing weights default to 1
	m.Weights = nil
	assert.InDelta(t, 2.0, m.Predict(map[string]float64{"x": 1}), 1e-9)

	empty := &EnsembleModel{}
	assert.Zero(t, empty.Predict(map[string]float64{"x": 1}))
}

func TestCodecRoundTrip(t *testing.T) {
	codecs := registry.NewCodecs()
	RegisterCodecs(codecs)

	original := &QSARModel{
		Name:         "solubility",
		TargetLabel:  "logS",
		Coefficients: map[string]float64{"logp": -0.5},
		Intercept:    0.2,
	}
	payload, err := original.Serialize()
	assert.NoError(t, err)

	decoded, err := codecs.Decode(TypeQSAR, payload)
	assert.NoError(t, err)
	assert.Equal(t, original, decoded)

	ensemble := &EnsembleModel{Name: "e", Members: []QSARModel{*original}, Weights: []float64{1}}
	payload, err = ensemble.Serialize()
	assert.NoError(t, err)
	decoded, err = codecs.Decode(TypeEnsemble, payload)
	assert.NoError(t, err)
	assert.Equal(t, ensemble, decoded)

	_, err = codecs.Decode("unknown", payload)
	assert.ErrorIs(t, err, registry.ErrInvalidOperation)

	_, err = codecs.Decode(TypeQSAR, []byte("not json"))
	assert.Error(t, err)
}
