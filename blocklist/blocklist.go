// Package blocklist implements the Tier-1 hard filter: clearly harmful
// domains, TLDs, and URL patterns are rejected before any network cost is
// incurred. The list is a constructed value owned by its caller, not a
// package singleton, so tests can run against custom rule sets.
package blocklist

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
)

// List answers "is this URL blocked?" against exact domains, domain
// suffixes, TLD suffixes, and compiled URL patterns. It is read-heavy and
// rarely mutated; an RWMutex covers runtime add/remove.
type List struct {
	mu       sync.RWMutex
	domains  map[string]struct{}
	tlds     map[string]struct{}
	patterns []*regexp.Regexp
}

// Stats reports rule counts for startup logging.
type Stats struct {
	Domains  int
	TLDs     int
	Patterns int
}

// New returns a List preloaded with the default harmful-content rules.
func New() *List {
	l := &List{
		domains: make(map[string]struct{}),
		tlds:    make(map[string]struct{}),
	}

	for _, d := range defaultDomains {
		l.domains[d] = struct{}{}
	}
	for _, t := range defaultTLDs {
		l.tlds[t] = struct{}{}
	}
	for _, p := range defaultPatterns {
		l.patterns = append(l.patterns, regexp.MustCompile("(?i)"+p))
	}

	return l
}

// Empty returns a List with no rules, for callers that build their own set.
func Empty() *List {
	return &List{
		domains: make(map[string]struct{}),
		tlds:    make(map[string]struct{}),
	}
}

// IsBlocked checks a URL against all rules in order: exact domain, domain
// suffix, TLD suffix, then URL patterns. First match wins. URLs that cannot
// be parsed are blocked (fail closed).
func (l *List) IsBlocked(rawURL string) (bool, string) {
	lowered := strings.ToLower(rawURL)

	parsed, err := url.Parse(lowered)
	if err != nil {
		return true, fmt.Sprintf("Invalid URL format: %v", err)
	}
	domain := parsed.Host
	if domain == "" {
		return true, "Invalid URL format: no host"
	}
	if i := strings.Index(domain, ":"); i >= 0 {
		domain = domain[:i]
	}
	domain = strings.TrimPrefix(domain, "www.")

	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.domains[domain]; ok {
		return true, "Blocked domain: " + domain
	}

	for blocked := range l.domains {
		if strings.HasSuffix(domain, "."+blocked) {
			return true, "Blocked domain: " + blocked
		}
	}

	for tld := range l.tlds {
		if strings.HasSuffix(domain, tld) {
			return true, "Blocked TLD: " + tld
		}
	}

	for _, p := range l.patterns {
		if p.MatchString(lowered) {
			return true, "Blocked pattern: " + p.String()
		}
	}

	return false, ""
}

// AddDomain adds a domain rule. The domain is normalized the same way
// lookups are (lower-cased, leading www. stripped) so add and lookup agree.
func (l *List) AddDomain(domain string) {
	d := normalizeDomain(domain)
	if d == "" {
		return
	}
	l.mu.Lock()
	l.domains[d] = struct{}{}
	l.mu.Unlock()
}

// RemoveDomain removes a domain rule. Removing an absent domain is a no-op.
func (l *List) RemoveDomain(domain string) {
	d := normalizeDomain(domain)
	l.mu.Lock()
	delete(l.domains, d)
	l.mu.Unlock()
}

// AddPattern compiles and adds a case-insensitive URL pattern rule.
func (l *List) AddPattern(pattern string) error {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return fmt.Errorf("invalid blocklist pattern %q: %w", pattern, err)
	}
	l.mu.Lock()
	l.patterns = append(l.patterns, re)
	l.mu.Unlock()
	return nil
}

// Stats returns current rule counts.
func (l *List) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Stats{
		Domains:  len(l.domains),
		TLDs:     len(l.tlds),
		Patterns: len(l.patterns),
	}
}

func normalizeDomain(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	return strings.TrimPrefix(d, "www.")
}
