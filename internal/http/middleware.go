package http

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares to a handler. The first middleware in the list
// becomes the outermost wrapper.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// contextKey is a private type so context values cannot collide with other packages.
type contextKey string

const dryRunKey contextKey = "dryRun"

// paramsMiddleware logs each request and interprets the shared query
// parameters: 'verbose=true' raises the log level for the duration of the
// request, 'dry_run=true' is stashed in the context for handlers that send
// notifications or publish events.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Info("incoming request", "method", r.Method, "url", r.URL.String())

		if r.URL.Query().Get("verbose") == "true" {
			previous := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			defer log.SetLevel(previous)
		}

		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx := context.WithValue(r.Context(), dryRunKey, isDryRun)

		next.ServeHTTP(w, r.WithContext(ctx))
		log.Debug("request completed", "method", r.Method, "url", r.URL.Path, "duration_ms", time.Since(start).Milliseconds())
	})
}

// isDryRunFromContext reports whether the request carried dry_run=true.
func isDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(dryRunKey).(bool)
	return ok && dryRun
}
