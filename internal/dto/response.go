package dto

// ErrorResponse represents a failed request
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// IngestEventResponse is returned after a durable event write. Bucket and
// Key point at the stored object so callers can verify persistence.
type IngestEventResponse struct {
	OK     bool   `json:"ok"`
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// HealthResponse represents a health check response
type HealthResponse struct {
	OK   bool   `json:"ok"`
	Time string `json:"time"`
}
