package httpapi

import (
	"net/http"
	"slices"
)

const defaultMaxBodyBytes int64 = 1 << 20

// Options tunes the playground API. Zero values select the defaults.
type Options struct {
	// MaxBodyBytes caps event request bodies. Default 1 MiB.
	MaxBodyBytes int64
	// CORS adds the CORS middleware. With no origins every origin is allowed.
	CORS        bool
	CORSOrigins []string
}

// Event bodies are JSON, and clients may send the per-request log override
// and a request id, so those are the only headers cross-origin callers need.
var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsHeaders = []string{"Content-Type", "X-Log-Level", "X-Request-Id"}
)

var current = Options{}.withDefaults()

// Configure replaces the options used by handlers built afterwards with NewMux.
func Configure(o Options) { current = o.withDefaults() }

func (o Options) withDefaults() Options {
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = defaultMaxBodyBytes
	}
	o.CORSOrigins = slices.Clone(o.CORSOrigins)
	if o.CORS && len(o.CORSOrigins) == 0 {
		o.CORSOrigins = []string{"*"}
	}
	return o
}
