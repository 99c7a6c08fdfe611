// Package api provides the REST introspection API over a library
// context: provider and algorithm listings and a dry-run fetch endpoint.
package api

// APIError represents a standardized error response.
type APIError struct {
	// Code is a machine-readable error code.
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// FetchRequest represents a dry-run fetch request.
type FetchRequest struct {
	// Operation is the operation name, e.g. "digest".
	Operation string `json:"operation"`

	// Algorithm is the algorithm identifier, e.g. "SHA2-256".
	Algorithm string `json:"algorithm"`

	// Properties is the optional property query, e.g. "provider=default".
	Properties string `json:"properties,omitempty"`
}

// FetchResponse describes the method a fetch resolved to.
type FetchResponse struct {
	Operation  string `json:"operation"`
	Algorithm  string `json:"algorithm"`
	Provider   string `json:"provider"`
	Properties string `json:"properties,omitempty"`
}
