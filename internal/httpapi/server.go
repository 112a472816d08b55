package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"observerkit/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
// Implementations serialize access to their sources.
type Service interface {
	Sources() []types.SourceInfo
	Mouse(source string, x, y int) error
	Key(source string, code int) error
	Release(source string) (bool, error)
	Events() []types.Delivery
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Recoverer)
	opts := current
	if opts.CORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: corsMethods,
			AllowedHeaders: corsHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(inflightMiddleware)

		r.Get("/sources", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, types.SourcesResponse{Sources: svc.Sources()})
		})

		r.Get("/events", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, types.EventsResponse{Events: svc.Events()})
		})

		r.Post("/sources/{name}/mouse", func(w http.ResponseWriter, r *http.Request) {
			var req types.MouseRequest
			if !decodeJSON(w, r, "mouse", opts.MaxBodyBytes, &req) {
				return
			}
			name := chi.URLParam(r, "name")
			emit(w, name, "mouse", svc.Mouse(name, req.X, req.Y))
		})

		r.Post("/sources/{name}/key", func(w http.ResponseWriter, r *http.Request) {
			var req types.KeyRequest
			if !decodeJSON(w, r, "key", opts.MaxBodyBytes, &req) {
				return
			}
			name := chi.URLParam(r, "name")
			emit(w, name, "key", svc.Key(name, req.Code))
		})

		r.Post("/sources/{name}/release", func(w http.ResponseWriter, r *http.Request) {
			name := chi.URLParam(r, "name")
			released, err := svc.Release(name)
			if err != nil {
				writeJSONError(w, statusFor(err), err.Error())
				return
			}
			writeJSON(w, types.ReleaseResponse{Source: name, Released: released})
		})
	})

	return r
}

// decodeJSON validates the content type and decodes the body of an event
// request into v. It writes the error response and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, event string, limit int64, v any) bool {
	if shuttingDown() {
		countRejected(event, "shutting_down")
		writeJSONError(w, http.StatusServiceUnavailable, "server is shutting down")
		return false
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		countRejected(event, "content_type")
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		countRejected(event, "bad_body")
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// emit answers an event request once the board has handled it.
func emit(w http.ResponseWriter, source, event string, err error) {
	if err != nil {
		countRejected(event, rejectReason(err))
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	countEmitted(source, event)
	writeJSON(w, types.EmitResponse{Source: source, Event: event})
}
