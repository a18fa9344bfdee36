package crawler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pagesCrawledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_pages_crawled_total",
		Help: "Pages fetched, extracted, and persisted.",
	})
	pagesBlockedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crawler_pages_blocked_total",
		Help: "Pages skipped before fetch or after redirect.",
	}, []string{"reason"})
	pagesFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_pages_failed_total",
		Help: "Pages that failed to fetch, extract, or persist.",
	})
	linksFoundTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_links_found_total",
		Help: "Outbound links discovered on crawled pages.",
	})
	urlsQueuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_urls_queued_total",
		Help: "URLs admitted to the frontier.",
	})
)
