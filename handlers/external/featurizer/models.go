package featurizer

// FeaturizeRequest carries one chunk of raw image payloads. encoding/json
// serializes each []byte as base64.
type FeaturizeRequest struct {
	Instances [][]byte `json:"instances"`
}

type FeaturizeResponse struct {
	Vectors [][]float32 `json:"vectors"`
	Error   string      `json:"error,omitempty"`
}
