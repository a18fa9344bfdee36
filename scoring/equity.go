package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bcdodgeme-bot/nothere/models"
)

const maxEquityBoost = 30

// CuratedLists supplies the curated per-domain tables.
type CuratedLists interface {
	GetEquity(ctx context.Context, domain string) (*models.EquityRecord, error)
	GetOrgBlocklist(ctx context.Context, domain string) (*models.OrgBlocklistRecord, error)
}

type orgDecision struct {
	blocked bool
	reason  string
}

type equityEntry struct {
	boost  int
	detail models.EquityDetail
}

// curatedLookup memoizes the org-blocklist and equity table lookups per
// bare domain for the process lifetime. Curated lists change between runs,
// not during one, so one query per domain is enough. Failed lookups are not
// cached.
type curatedLookup struct {
	lists       CuratedLists
	orgCache    *TTLCache[string, orgDecision]
	equityCache *TTLCache[string, equityEntry]
	logger      *slog.Logger
}

func newCuratedLookup(lists CuratedLists, logger *slog.Logger) *curatedLookup {
	return &curatedLookup{
		lists:       lists,
		orgCache:    NewTTLCache[string, orgDecision](0),
		equityCache: NewTTLCache[string, equityEntry](0),
		logger:      logger,
	}
}

// equityBoost sums ownership certification boosts for a domain, capped at 30.
// Lookup failures score zero.
func (c *curatedLookup) equityBoost(ctx context.Context, domain string) (int, *models.EquityDetail) {
	if entry, ok := c.equityCache.Get(domain); ok {
		detail := entry.detail
		return entry.boost, &detail
	}

	rec, err := c.lists.GetEquity(ctx, domain)
	if err != nil {
		c.logger.Warn("failed to check equity list", "domain", domain, "error", err)
		return 0, &models.EquityDetail{Reason: "lookup_failed"}
	}
	if rec == nil {
		c.equityCache.Set(domain, equityEntry{detail: models.EquityDetail{Reason: "not_in_equity_list"}})
		return 0, &models.EquityDetail{Reason: "not_in_equity_list"}
	}

	boost := 0
	var flags []string
	add := func(set bool, points int, name string) {
		if set {
			boost += points
			flags = append(flags, name)
		}
	}
	add(rec.MinorityOwned, 15, "minority_owned")
	add(rec.WomenOwned, 15, "women_owned")
	add(rec.VeteranOwned, 15, "veteran_owned")
	add(rec.BCorp, 10, "b_corp")
	add(rec.LGBTQOwned, 15, "lgbtq_owned")
	add(rec.DisabilityOwned, 15, "disability_owned")

	if boost > maxEquityBoost {
		boost = maxEquityBoost
	}
	if boost > 0 {
		c.logger.Info("equity boost", "domain", domain, "boost", boost)
	}

	detail := models.EquityDetail{Flags: flags, TotalBoost: boost}
	c.equityCache.Set(domain, equityEntry{boost: boost, detail: detail})
	result := detail
	return boost, &result
}

// checkOrgBlocklist reports whether a domain is disqualified by the curated
// organizational blocklist, and why. Lookup failures fail open so a database
// blip does not zero out a page.
func (c *curatedLookup) checkOrgBlocklist(ctx context.Context, domain string) (bool, string) {
	if decision, ok := c.orgCache.Get(domain); ok {
		return decision.blocked, decision.reason
	}

	rec, err := c.lists.GetOrgBlocklist(ctx, domain)
	if err != nil {
		c.logger.Error("failed to check org blocklist", "domain", domain, "error", err)
		return false, ""
	}
	if rec == nil {
		c.orgCache.Set(domain, orgDecision{})
		return false, ""
	}

	var flags []string
	if rec.SPLCFlagged {
		flags = append(flags, "SPLC")
	}
	if rec.ACLUFlagged {
		flags = append(flags, "ACLU")
	}
	if rec.CAIRFlagged {
		flags = append(flags, "CAIR")
	}
	if rec.ADLFlagged {
		flags = append(flags, "ADL")
	}
	if rec.OtherOrg {
		flags = append(flags, "Other")
	}
	if len(flags) == 0 {
		c.orgCache.Set(domain, orgDecision{})
		return false, ""
	}

	reason := fmt.Sprintf("Flagged by: %s", strings.Join(flags, ", "))
	if rec.Reason != "" {
		reason += " - " + rec.Reason
	}
	c.logger.Warn("domain blocked by org blocklist", "domain", domain, "reason", reason)
	c.orgCache.Set(domain, orgDecision{blocked: true, reason: reason})
	return true, reason
}
