package transport

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"codedoc/internal/infrastructure/logging"
	"codedoc/internal/infrastructure/tracing"
)

// NewRouter wires the handler's routes behind CORS for all origins, request IDs,
// panic recovery and tracing.
func NewRouter(h *DocsHandler, service string, logger *slog.Logger) http.Handler {
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", logging.HeaderRequestID}),
		handlers.ExposedHeaders([]string{logging.HeaderRequestID}),
	)(r)

	recovered := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{logger}),
	)(logging.RequestIDMiddleware(corsHandler))

	return tracing.HTTPMiddleware(service)(recovered)
}

type recoveryLogger struct {
	logger *slog.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("panic recovered", "panic", fmt.Sprint(v...))
}
