package mlmodel

import (
	"encoding/json"
	"fmt"

	"github.com/HarmoniqaOrg/PharmOS/internal/registry"
)

const TypeEnsemble = "ensemble"

// EnsembleModel averages the predictions of member QSAR models with
// per-member weights. Weights are normalized at prediction time.
type EnsembleModel struct {
	Name    string      `json:"name"`
	Members []QSARModel `json:"members"`
	Weights []float64   `json:"weights"`
}

func (m *EnsembleModel) ModelType() string { return TypeEnsemble }

func (m *EnsembleModel) Serialize() ([]byte, error) {
	return json.Marshal(m)
}

func (m *EnsembleModel) Predict(descriptors map[string]float64) float64 {
	if len(m.Members) == 0 {
		return 0
	}

	var weighted, total float64
	for i := range m.Members {
		w := 1.0
		if i < len(m.Weights) {
			w = m.Weights[i]
		}
		weighted += w * m.Members[i].Predict(descriptors)
		total += w
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

func deserializeEnsemble(payload []byte) (registry.ModelArtifact, error) {
	var m EnsembleModel
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("failed to decode ensemble model: %w", err)
	}
	return &m, nil
}

// RegisterCodecs wires every concrete model kind into the registry's
// codec table.
func RegisterCodecs(c *registry.Codecs) {
	c.Register(TypeQSAR, deserializeQSAR)
	c.Register(TypeEnsemble, deserializeEnsemble)
}
