package metrics

import (
	"errors"

	"github.com/prometheus/common/expfmt"
)

const (
	// Namespace prefixes every metric registered by the service.
	Namespace = "app"

	LabelMethod     = "method"
	LabelRoute      = "route"
	LabelStatusCode = "status_code"
)

var (
	// ErrConfiguration is returned when a metric is re-registered with an
	// incompatible kind or label set, or when its name or labels are invalid.
	ErrConfiguration = errors.New("metric configuration error")

	// ErrUsage is returned when a handle is used in a way its kind does not allow,
	// such as decreasing a counter.
	ErrUsage = errors.New("metric usage error")
)

// Kind identifies the type of a registered metric.
type Kind string

const (
	KindCounter Kind = "counter"
	KindGauge   Kind = "gauge"
)

// ContentType is the MIME type of the text produced by Registry.Render.
var ContentType = string(expfmt.NewFormat(expfmt.TypeTextPlain))
