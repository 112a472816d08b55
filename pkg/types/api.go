package types

// MouseRequest is the body of POST /sources/{name}/mouse.
type MouseRequest struct {
	// Horizontal position of the click.
	// example: 25
	X int `json:"x"`
	// Vertical position of the click.
	// example: 48
	Y int `json:"y"`
}

// KeyRequest is the body of POST /sources/{name}/key.
type KeyRequest struct {
	// Key code of the pressed key.
	// example: 65
	Code int `json:"code"`
}

// SourcesResponse wraps the list returned by GET /sources.
type SourcesResponse struct {
	Sources []SourceInfo `json:"sources"`
}

// EventsResponse wraps the deliveries returned by GET /events.
type EventsResponse struct {
	Events []Delivery `json:"events"`
}

// ReleaseResponse is returned by POST /sources/{name}/release.
type ReleaseResponse struct {
	// Name of the source.
	Source string `json:"source"`
	// Whether any listener ownership was dropped by this call.
	Released bool `json:"released"`
}

// EmitResponse acknowledges an emitted event.
type EmitResponse struct {
	Source string `json:"source"`
	Event  string `json:"event"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error"`
	// HTTP status code.
	// example: 400
	Code int `json:"code"`
}
