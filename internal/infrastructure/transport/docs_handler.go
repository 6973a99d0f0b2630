package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"codedoc/app/usecase"
	"codedoc/internal/domain/entity"
	"codedoc/internal/infrastructure/logging"
	"codedoc/internal/infrastructure/metrics"
)

const maxBodyBytes = 1 << 20

type DocsHandler struct {
	docsService usecase.DocsUsecase
	logger      *slog.Logger
	upgrader    websocket.Upgrader

	// metrics
	reqDuration *prometheus.HistogramVec
	reqCount    *prometheus.CounterVec
	errCount    *prometheus.CounterVec
}

// NewDocsHandler registers its HTTP metrics on reg.
func NewDocsHandler(
	docsService usecase.DocsUsecase,
	logger *slog.Logger,
	reg prometheus.Registerer,
) *DocsHandler {

	reqDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codedoc_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	reqCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codedoc_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "path"},
	)

	errCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codedoc_http_errors_total",
			Help: "Total number of HTTP request errors.",
		},
		[]string{"method", "path", "status"},
	)

	reg.MustRegister(reqDuration, reqCount, errCount)

	return &DocsHandler{
		docsService: docsService,
		logger:      logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		reqDuration: reqDuration,
		reqCount:    reqCount,
		errCount:    errCount,
	}
}

func (h *DocsHandler) withMetrics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := r.URL.Path
		method := r.Method

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rw, r)

		duration := time.Since(start).Seconds()
		statusStr := strconv.Itoa(rw.status)

		h.reqCount.WithLabelValues(method, path).Inc()
		h.reqDuration.WithLabelValues(method, path, statusStr).Observe(duration)

		if rw.status >= 400 {
			h.errCount.WithLabelValues(method, path, statusStr).Inc()
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (h *DocsHandler) RegisterRoutes(r *mux.Router) {
	// Routes live on the root router so a method mismatch answers 405, not 404.
	r.HandleFunc("/api/docs/generate", h.withMetrics(h.handleGenerate)).Methods(http.MethodPost)
	r.HandleFunc("/api/docs/ws", h.handleGenerateWS).Methods(http.MethodGet)
	r.HandleFunc("/api/health", h.withMetrics(h.handleHealth)).Methods(http.MethodGet)

	// Prometheus
	r.Handle("/metrics", promhttp.Handler())
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, errorResponse{Error: message})
}

type generateReq struct {
	RepoURL interface{} `json:"repoUrl"`
}

// parseGenerateRequest accepts only a JSON object whose repoUrl is a non-empty string.
func parseGenerateRequest(data []byte) (entity.GenerationRequest, bool) {
	var req generateReq
	if err := json.Unmarshal(data, &req); err != nil {
		return entity.GenerationRequest{}, false
	}
	repoURL, ok := req.RepoURL.(string)
	if !ok || repoURL == "" {
		return entity.GenerationRequest{}, false
	}
	return entity.GenerationRequest{RepoURL: repoURL}, true
}

// errorStatus maps a use case error to its HTTP status and caller-safe message.
func errorStatus(err error) (int, string) {
	if entity.KindOf(err) == entity.KindInvalidInput {
		return http.StatusBadRequest, entity.PublicMessage(err, usecase.MsgRepoURLRequired)
	}
	return http.StatusInternalServerError, usecase.MsgProcessingFailed
}

// POST /api/docs/generate
func (h *DocsHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	defer func() {
		if p := recover(); p != nil {
			logger.Error("generate documentation panicked", "panic", fmt.Sprint(p))
			writeError(w, http.StatusInternalServerError, usecase.MsgProcessingFailed)
		}
	}()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		logger.Warn("read request body failed", "err", err)
	}

	req, ok := parseGenerateRequest(body)
	if !ok {
		metrics.IncGenerationRequest("invalid_input")
		writeError(w, http.StatusBadRequest, usecase.MsgRepoURLRequired)
		return
	}

	res, err := h.docsService.Generate(r.Context(), req)
	if err != nil {
		code, message := errorStatus(err)
		if code >= http.StatusInternalServerError {
			logger.Error("generate documentation failed", "repo_url", req.RepoURL, "err", err)
		}
		writeError(w, code, message)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// GET /api/docs/ws
// Each text message {"repoUrl": ...} gets exactly one reply: a result or {"error": ...}.
func (h *DocsHandler) handleGenerateWS(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()
	conn.SetReadLimit(maxBodyBytes)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("websocket read failed", "err", err)
			}
			return
		}

		var reply interface{}
		req, ok := parseGenerateRequest(data)
		if !ok {
			metrics.IncGenerationRequest("invalid_input")
			reply = errorResponse{Error: usecase.MsgRepoURLRequired}
		} else if res, err := h.docsService.Generate(r.Context(), req); err != nil {
			code, message := errorStatus(err)
			if code >= http.StatusInternalServerError {
				logger.Error("generate documentation failed", "repo_url", req.RepoURL, "err", err)
			}
			reply = errorResponse{Error: message}
		} else {
			reply = res
		}

		if err := conn.WriteJSON(reply); err != nil {
			logger.Warn("websocket write failed", "err", err)
			return
		}
	}
}

// GET /api/health
func (h *DocsHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"ok": true,
		"ts": time.Now().UTC(),
	}
	writeJSON(w, http.StatusOK, status)
}
