package observability

import (
	"context"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	apiReqError *Counter

	aiInvocations *CounterVec
	aiLatency     *HistogramVec

	llmRequests *CounterVec
	llmLatency  *HistogramVec

	recordOps *CounterVec

	realtimeClients   *Gauge
	realtimeDelivered *CounterVec
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	v := strings.TrimSpace(os.Getenv("METRICS_ENABLED"))
	if v == "" {
		return false
	}
	return strings.EqualFold(v, "true") || v == "1" || strings.EqualFold(v, "yes")
}

// Current returns the process-wide metrics, or nil when metrics are disabled.
// Every method on a nil *Metrics is a no-op.
func Current() *Metrics {
	return instance
}

func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics()
		if log != nil {
			log.Info("metrics enabled")
		}
	})
	return instance
}

func NewMetrics() *Metrics {
	latency := []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30}
	modelLatency := []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120}
	return &Metrics{
		apiRequests: NewCounterVec("gd_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec("gd_api_request_duration_seconds", "API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"}, latency),
		apiInflight: NewGauge("gd_api_inflight_requests", "In-flight API requests."),
		apiReqError: NewCounter("gd_api_requests_error_total", "Total API requests answered with a 5xx status."),

		aiInvocations: NewCounterVec("gd_ai_invocations_total", "Capability invocations by flow/outcome.", []string{"flow", "outcome"}),
		aiLatency: NewHistogramVec("gd_ai_invocation_duration_seconds", "Capability invocation latency in seconds by flow/outcome.",
			[]string{"flow", "outcome"}, modelLatency),

		llmRequests: NewCounterVec("gd_llm_requests_total", "Model backend requests by provider/model/status.", []string{"provider", "model", "status"}),
		llmLatency: NewHistogramVec("gd_llm_request_duration_seconds", "Model backend latency in seconds by provider/model/status.",
			[]string{"provider", "model", "status"}, modelLatency),

		recordOps: NewCounterVec("gd_record_operations_total", "Record store operations by collection/op/status.", []string{"collection", "op", "status"}),

		realtimeClients:   NewGauge("gd_realtime_clients", "Connected realtime stream clients."),
		realtimeDelivered: NewCounterVec("gd_realtime_messages_total", "Realtime messages delivered by event.", []string{"event"}),
	}
}

func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err, "addr", addr)
			}
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight, m.apiReqError,
		m.aiInvocations, m.aiLatency,
		m.llmRequests, m.llmLatency,
		m.recordOps,
		m.realtimeClients, m.realtimeDelivered,
	}
	for _, mw := range writers {
		if err := mw.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
	if isServerErrorStatus(status) {
		m.apiReqError.Inc()
	}
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveAIInvocation(flow, outcome string, dur time.Duration) {
	if m == nil {
		return
	}
	m.aiInvocations.Inc(flow, outcome)
	m.aiLatency.Observe(dur.Seconds(), flow, outcome)
}

func (m *Metrics) ObserveLLMRequest(provider, model, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.llmRequests.Inc(provider, model, status)
	m.llmLatency.Observe(dur.Seconds(), provider, model, status)
}

func (m *Metrics) IncRecordOp(collection, op, status string) {
	if m == nil {
		return
	}
	m.recordOps.Inc(collection, op, status)
}

func (m *Metrics) RealtimeClients(n int) {
	if m == nil {
		return
	}
	m.realtimeClients.Set(float64(n))
}

func (m *Metrics) IncRealtimeDelivered(event string) {
	if m == nil {
		return
	}
	m.realtimeDelivered.Inc(event)
}

func parseBoolEnv(key string, fallback bool) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if val == "" {
		return fallback
	}
	switch val {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func parseFloatEnv(key string, fallback float64) float64 {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return f
}

func isServerErrorStatus(status string) bool {
	status = strings.TrimSpace(status)
	if len(status) < 3 {
		return false
	}
	return status[0] == '5'
}
