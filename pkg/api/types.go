// Package api holds the wire types shared by the intake server, the mock
// GitHub app, and their tests.
package api

// UploadResponse is the body returned for a successfully archived submission.
type UploadResponse struct {
	Status string `json:"status"`
	Path   string `json:"path"`
}

// ErrorResponse is the body returned on any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body returned by the liveness endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// ContentsRequest is the GitHub contents-API "create file" request body, as
// consumed by the mock GitHub app and asserted on in adapter tests.
type ContentsRequest struct {
	Message string `json:"message"`
	Content string `json:"content"` // base64-encoded file bytes
	Branch  string `json:"branch,omitempty"`
}
