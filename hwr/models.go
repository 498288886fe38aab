package hwr

// Wire types of the digit recognition service.

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

func (h HealthResponse) Ready() bool {
	return h.Status == "healthy" && h.ModelLoaded
}

// PredictRequest is the body of POST /predict
type PredictRequest struct {
	Image string `json:"image"` // data:image/png;base64,...
}

// PredictResponse is returned by POST /predict. Only Success is always
// present.
type PredictResponse struct {
	Success          bool               `json:"success"`
	Digit            *int               `json:"digit,omitempty"`
	Confidence       *float64           `json:"confidence,omitempty"`
	AllProbabilities map[string]float64 `json:"all_probabilities,omitempty"`
	Error            string             `json:"error,omitempty"`
}
