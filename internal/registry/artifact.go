package registry

import "fmt"

// ModelArtifact is the capability the registry requires of a model
// instance: a stable type name and a byte serialization. The registry
// never inspects the payload beyond fingerprinting it.
type ModelArtifact interface {
	ModelType() string
	Serialize() ([]byte, error)
}

// DeserializeFunc rebuilds a model instance from its stored payload.
type DeserializeFunc func(payload []byte) (ModelArtifact, error)

// Codecs maps model types to their deserializers. Each concrete model
// kind registers itself once at startup.
type Codecs struct {
	byType map[string]DeserializeFunc
}

func NewCodecs() *Codecs {
	return &Codecs{byType: make(map[string]DeserializeFunc)}
}

func (c *Codecs) Register(modelType string, fn DeserializeFunc) {
	c.byType[modelType] = fn
}

func (c *Codecs) Decode(modelType string, payload []byte) (ModelArtifact, error) {
	fn, ok := c.byType[modelType]
	if !ok {
		return nil, fmt.Errorf("%w: no codec registered for model type %q", ErrInvalidOperation, modelType)
	}
	return fn(payload)
}

// RawArtifact wraps an already-serialized payload, e.g. one delivered by
// a training pipeline over HTTP. Deserialization still goes through the
// codec registered for the model type.
type RawArtifact struct {
	Type    string
	Payload []byte
}

func (a *RawArtifact) ModelType() string { return a.Type }

func (a *RawArtifact) Serialize() ([]byte, error) { return a.Payload, nil }
