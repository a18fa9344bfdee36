package medialit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medialit_checks_total",
		Help: "Pages run through the media literacy pre-filter.",
	})
	skippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medialit_skipped_total",
		Help: "Pages scored neutral without model analysis.",
	})
	analyzedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medialit_analyzed_total",
		Help: "Pages analyzed by a model.",
	})
	errorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medialit_errors_total",
		Help: "Escalations that degraded to the neutral score.",
	})
	fallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medialit_fallback_total",
		Help: "Escalations routed to the fallback model.",
	})
)
