package metrics

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

// Handle references a registered metric.
// Handles returned for the same name share the same underlying values.
type Handle struct {
	owner      *Registry
	name       string
	kind       Kind
	labelNames []string

	counter *prometheus.CounterVec
	gauge   *prometheus.GaugeVec
}

// Name returns the fully qualified metric name.
func (h *Handle) Name() string { return h.name }

// Kind returns the metric kind.
func (h *Handle) Kind() Kind { return h.kind }

// LabelNames returns the ordered label schema fixed at registration.
func (h *Handle) LabelNames() []string { return slices.Clone(h.labelNames) }

// Registry owns a set of named counters and gauges and renders them in the
// Prometheus text exposition format. It is safe for concurrent use.
//
// Each Registry is backed by its own prometheus.Registry; nothing is
// registered on the prometheus default registry.
type Registry struct {
	namespace string
	gatherer  *prometheus.Registry

	mu      sync.Mutex
	handles map[string]*Handle
}

// NewRegistry creates an empty registry. Names passed to GetOrRegister are
// prefixed with namespace unless it is empty.
func NewRegistry(namespace string) *Registry {
	return &Registry{
		namespace: namespace,
		gatherer:  prometheus.NewRegistry(),
		handles:   make(map[string]*Handle),
	}
}

// GetOrRegister returns the handle for name, registering it on first use.
// Requesting an existing name with a different kind or label schema fails
// with ErrConfiguration.
func (r *Registry) GetOrRegister(name string, kind Kind, help string, labelNames ...string) (*Handle, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: metric name cannot be empty", ErrConfiguration)
	}
	fqName := prometheus.BuildFQName(r.namespace, "", name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.handles[fqName]; ok {
		if h.kind != kind {
			return nil, fmt.Errorf("%w: metric %s already registered as %s, requested %s", ErrConfiguration, fqName, h.kind, kind)
		}
		if !slices.Equal(h.labelNames, labelNames) {
			return nil, fmt.Errorf("%w: metric %s already registered with labels [%s], requested [%s]",
				ErrConfiguration, fqName, strings.Join(h.labelNames, ","), strings.Join(labelNames, ","))
		}
		return h, nil
	}

	h := &Handle{
		owner:      r,
		name:       fqName,
		kind:       kind,
		labelNames: slices.Clone(labelNames),
	}

	var collector prometheus.Collector
	switch kind {
	case KindCounter:
		h.counter = prometheus.NewCounterVec(prometheus.CounterOpts{Name: fqName, Help: help}, h.labelNames)
		collector = h.counter
	case KindGauge:
		h.gauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: fqName, Help: help}, h.labelNames)
		collector = h.gauge
	default:
		return nil, fmt.Errorf("%w: metric %s has unknown kind %q", ErrConfiguration, fqName, kind)
	}

	if err := r.gatherer.Register(collector); err != nil {
		return nil, fmt.Errorf("%w: metric %s: %w", ErrConfiguration, fqName, err)
	}

	r.handles[fqName] = h
	return h, nil
}

// Increment adds delta to the counter sample identified by labelValues.
// A negative delta, a gauge handle, or a label count mismatch fails with
// ErrUsage and leaves the counter unchanged.
func (r *Registry) Increment(h *Handle, labelValues []string, delta float64) error {
	if err := r.checkHandle(h, KindCounter); err != nil {
		return err
	}
	if delta < 0 || math.IsNaN(delta) {
		return fmt.Errorf("%w: counter %s cannot be decreased (delta=%v)", ErrUsage, h.name, delta)
	}

	counter, err := h.counter.GetMetricWithLabelValues(labelValues...)
	if err != nil {
		return fmt.Errorf("%w: counter %s: %w", ErrUsage, h.name, err)
	}
	counter.Add(delta)
	return nil
}

// Inc increments the counter sample identified by labelValues by one.
func (r *Registry) Inc(h *Handle, labelValues ...string) error {
	return r.Increment(h, labelValues, 1)
}

// Set replaces the gauge sample identified by labelValues.
func (r *Registry) Set(h *Handle, labelValues []string, value float64) error {
	if err := r.checkHandle(h, KindGauge); err != nil {
		return err
	}

	gauge, err := h.gauge.GetMetricWithLabelValues(labelValues...)
	if err != nil {
		return fmt.Errorf("%w: gauge %s: %w", ErrUsage, h.name, err)
	}
	gauge.Set(value)
	return nil
}

func (r *Registry) checkHandle(h *Handle, want Kind) error {
	if h == nil {
		return fmt.Errorf("%w: nil metric handle", ErrUsage)
	}
	if h.owner != r {
		return fmt.Errorf("%w: metric %s belongs to another registry", ErrUsage, h.name)
	}
	if h.kind != want {
		return fmt.Errorf("%w: metric %s is a %s, not a %s", ErrUsage, h.name, h.kind, want)
	}
	return nil
}

// RegisterProcessCollectors adds the process and Go runtime collectors.
// Both read their values when Render is called, not in the background.
func (r *Registry) RegisterProcessCollectors() error {
	for _, c := range []prometheus.Collector{
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	} {
		if err := r.gatherer.Register(c); err != nil {
			return fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
	}
	return nil
}

// Render returns a snapshot of every metric family in text exposition format,
// sorted by name and label values. When some collector fails, Render returns
// the families it could gather together with the error.
func (r *Registry) Render() (string, error) {
	families, gatherErr := r.gatherer.Gather()

	var b strings.Builder
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&b, mf); err != nil {
			return b.String(), fmt.Errorf("render metric family %s: %w", mf.GetName(), err)
		}
	}

	if gatherErr != nil {
		return b.String(), fmt.Errorf("gather metrics: %w", gatherErr)
	}
	return b.String(), nil
}
