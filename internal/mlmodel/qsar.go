package mlmodel

import (
	"encoding/json"
	"fmt"

	"github.com/HarmoniqaOrg/PharmOS/internal/registry"
)

const TypeQSAR = "qsar"

// QSARModel is a linear quantitative structure-activity model: a weighted
// sum over molecular descriptor values plus an intercept. The registry
// treats it as an opaque payload; prediction is the model's own contract.
type QSARModel struct {
	Name         string             `json:"name"`
	TargetLabel  string             `json:"target_label"`
	Coefficients map[string]float64 `json:"coefficients"`
	Intercept    float64            `json:"intercept"`
}

func (m *QSARModel) ModelType() string { return TypeQSAR }

func (m *QSARModel) Serialize() ([]byte, error) {
	return json.Marshal(m)
}

// Predict scores one compound from its descriptor values. Descriptors the
// model carries no coefficient for are ignored.
func (m *QSARModel) Predict(descriptors map[string]float64) float64 {
	score := m.Intercept
	for name, coeff := range m.Coefficients {
		score += coeff * descriptors[name]
	}
	return score
}

func deserializeQSAR(payload []byte) (registry.ModelArtifact, error) {
	var m QSARModel
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("failed to decode qsar model: %w", err)
	}
	return &m, nil
}
