package scoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pagesScoredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoring_pages_scored_total",
		Help: "Pages run through the composite scorer.",
	})
	pagesIndexableTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoring_pages_indexable_total",
		Help: "Pages that met the indexability threshold.",
	})
	pagesBlockedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoring_pages_org_blocked_total",
		Help: "Pages disqualified by the organizational blocklist.",
	})
	scoringErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoring_errors_total",
		Help: "Pages whose scoring or persistence failed.",
	})
)
