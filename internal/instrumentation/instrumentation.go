package instrumentation

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"hostprobe/internal/hostinfo"
	"hostprobe/internal/shared/loggers"
	"hostprobe/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	metricRequestsTotal = "http_requests_total"
	metricMemoryUsage   = "memory_usage_bytes"
	metricCPULoad       = "cpu_load_average"

	// RouteUnmatched labels requests that matched no route, including 405s.
	RouteUnmatched = "unmatched"
)

// Options configures an Instrumentation.
type Options struct {
	Registry     *metrics.Registry
	Sampler      hostinfo.Sampler
	HostIdentity string

	// RequestLog receives one record per completed request.
	RequestLog loggers.Logger
	// OpsLog receives instrumentation failures. They never reach the client.
	OpsLog loggers.Logger

	// RequestID extracts the request id attached by an outer middleware. Optional.
	RequestID func(r *http.Request) string
}

// Instrumentation observes every request/response pair once, updating the
// registry and emitting a request log record.
type Instrumentation struct {
	registry *metrics.Registry
	requests *metrics.Handle
	memory   *metrics.Handle
	cpuLoad  *metrics.Handle

	sampler      hostinfo.Sampler
	hostIdentity string
	requestLog   loggers.Logger
	opsLog       loggers.Logger
	requestID    func(r *http.Request) string
}

// errorCoder is implemented by response writers that know the service error
// code written by the handler.
type errorCoder interface {
	ErrorCode() string
}

// New registers the request metrics on opts.Registry. A registration conflict
// is returned as metrics.ErrConfiguration and is meant to be fatal at startup.
func New(opts Options) (*Instrumentation, error) {
	if opts.Registry == nil {
		return nil, errors.New("instrumentation: registry is required")
	}
	if opts.Sampler == nil {
		return nil, errors.New("instrumentation: sampler is required")
	}

	requests, err := opts.Registry.GetOrRegister(metricRequestsTotal, metrics.KindCounter,
		"Total HTTP requests by method, route and status code.",
		metrics.LabelMethod, metrics.LabelRoute, metrics.LabelStatusCode)
	if err != nil {
		return nil, fmt.Errorf("register request counter: %w", err)
	}
	memory, err := opts.Registry.GetOrRegister(metricMemoryUsage, metrics.KindGauge,
		"Resident memory of the process in bytes, sampled per request.")
	if err != nil {
		return nil, fmt.Errorf("register memory gauge: %w", err)
	}
	cpuLoad, err := opts.Registry.GetOrRegister(metricCPULoad, metrics.KindGauge,
		"One minute system load average, sampled per request.")
	if err != nil {
		return nil, fmt.Errorf("register cpu load gauge: %w", err)
	}

	hostIdentity := opts.HostIdentity
	if hostIdentity == "" {
		hostIdentity = hostinfo.UnknownHost
	}

	return &Instrumentation{
		registry:     opts.Registry,
		requests:     requests,
		memory:       memory,
		cpuLoad:      cpuLoad,
		sampler:      opts.Sampler,
		hostIdentity: hostIdentity,
		requestLog:   opts.RequestLog,
		opsLog:       opts.OpsLog,
		requestID:    opts.RequestID,
	}, nil
}

// Middleware wraps next. The response is passed through untouched; metrics and
// the log record are produced after next returns, on every exit path.
func (in *Instrumentation) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww, ok := w.(middleware.WrapResponseWriter)
		if !ok {
			ww = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		}

		start := time.Now()
		defer func() {
			p := recover()
			in.observe(ww, r, time.Since(start), p != nil)
			if p != nil {
				panic(p)
			}
		}()

		next.ServeHTTP(ww, r)
	})
}

func (in *Instrumentation) observe(ww middleware.WrapResponseWriter, r *http.Request, elapsed time.Duration, panicked bool) {
	defer func() {
		if p := recover(); p != nil {
			in.report(r, fmt.Errorf("instrumentation panic: %v", p))
		}
	}()

	status := ww.Status()
	switch {
	case panicked:
		status = http.StatusInternalServerError
	case status == 0:
		status = http.StatusOK
	}

	if err := in.registry.Inc(in.requests, r.Method, routeLabel(r), strconv.Itoa(status)); err != nil {
		in.report(r, err)
	}

	in.sampleProcess(r)

	event := in.requestLog.Info().
		Str(loggers.FieldMethod, r.Method).
		Str(loggers.FieldPath, r.URL.Path).
		Int(loggers.FieldStatusCode, status).
		Float64(loggers.FieldDurationMs, float64(elapsed.Microseconds())/1000).
		Str(loggers.FieldHostIdentity, in.hostIdentity).
		Str(loggers.FieldClientAddress, hostinfo.ClientAddress(r))
	if agent := hostinfo.ParseClientAgent(r); agent.Family != "" {
		event = event.Str(loggers.FieldUserAgent, agent.Family).Bool(loggers.FieldBot, agent.Bot)
	}
	if in.requestID != nil {
		if id := in.requestID(r); id != "" {
			event = event.Str(loggers.FieldRequestID, id)
		}
	}
	if coder, ok := ww.(errorCoder); ok {
		if code := coder.ErrorCode(); code != "" {
			event = event.Str(loggers.FieldErrorCode, code)
		}
	}
	event.Msg("request completed")
}

// sampleProcess refreshes the process gauges from a new OS reading.
func (in *Instrumentation) sampleProcess(r *http.Request) {
	sample, err := in.sampler.Sample()
	if err != nil {
		in.report(r, fmt.Errorf("%w: %w", loggers.ErrInstrumentationSink, err))
		return
	}
	if err := in.registry.Set(in.memory, nil, sample.ResidentMemoryBytes); err != nil {
		in.report(r, err)
	}
	if err := in.registry.Set(in.cpuLoad, nil, sample.LoadAverage1); err != nil {
		in.report(r, err)
	}
}

func (in *Instrumentation) report(r *http.Request, err error) {
	in.opsLog.Warn().
		Err(err).
		Str(loggers.FieldMethod, r.Method).
		Str(loggers.FieldPath, r.URL.Path).
		Msg("instrumentation failure")
}

// routeLabel returns the matched route pattern, or RouteUnmatched. The raw path
// is never a label value.
func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return RouteUnmatched
}
