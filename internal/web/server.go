package web

import (
	"log/slog"
	"net/http"
	"time"

	api "github.com/glekoz/rvdesk/api/v1"
	"github.com/glekoz/rvdesk/pkg/logger"
	"github.com/rs/xid"
)

const RequestIDHeader = "X-Request-Id"

// RequestID кладёт id запроса в контекст логгера и в ответ. Пришедший id сохраняется.
func RequestID(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = xid.New().String()
			}
			w.Header().Set(RequestIDHeader, id)
			ctx := logger.WithRequestID(r.Context(), id)

			start := time.Now()
			next.ServeHTTP(w, r.WithContext(ctx))
			log.DebugContext(ctx, "request served",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Duration("took", time.Since(start)))
		})
	}
}

// NewServer создаёт http.Handler с маршрутами api/v1,
// плюс /healthz и /metrics.
func NewServer(handler *Handler, metrics *Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	opts := api.StdHTTPServerOptions{
		BaseRouter: mux,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			handler.handleError(w, r, err)
		},
	}
	if metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
		opts.Middlewares = []api.MiddlewareFunc{metrics.Middleware}
	}

	return RequestID(handler.logger)(api.HandlerWithOptions(handler, opts))
}
