// Package db is the PostgreSQL store for crawled pages, the link graph,
// theme keywords, the curated blocklist and equity tables, and the scoring
// audit log.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/bcdodgeme-bot/nothere/models"
)

// categoryWeights maps a theme category to the per-match weight applied by
// the alignment scorer. Unknown categories contribute nothing.
var categoryWeights = map[string]int{
	"haram_prohibited": -10,
	"halal_encouraged": 5,
	"core_values":      3,
	"social_ethics":    3,
}

// DB wraps the database connection and provides data access methods.
type DB struct {
	conn *sql.DB
}

// Config contains database configuration.
type Config struct {
	DSN string // PostgreSQL connection string
}

// New opens a pooled connection, verifies it with a ping, and runs pending
// migrations.
func New(config Config) (*DB, error) {
	conn, err := sql.Open("postgres", config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := Migrate(conn); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// DB returns the underlying connection for metrics collection.
func (db *DB) DB() *sql.DB {
	return db.conn
}

// UpsertPage inserts a page keyed by its URL hash, or refreshes
// title/content/crawled_at on a re-crawl. The page ID is written back into
// the given struct.
func (db *DB) UpsertPage(ctx context.Context, page *models.Page) error {
	query := `
		INSERT INTO pages (url, url_hash, domain, title, content, crawled_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (url_hash) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			crawled_at = NOW()
		RETURNING id
	`
	err := db.conn.QueryRowContext(ctx, query,
		page.URL, page.URLHash, page.Domain, page.Title, page.Content,
	).Scan(&page.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert page: %w", err)
	}
	return nil
}

// PageExists reports whether a page with the given URL hash has been crawled.
func (db *DB) PageExists(ctx context.Context, urlHash string) (bool, error) {
	var exists bool
	err := db.conn.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM pages WHERE url_hash = $1)", urlHash,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check page existence: %w", err)
	}
	return exists, nil
}

// PageCount returns the total number of crawled pages.
func (db *DB) PageCount(ctx context.Context) (int64, error) {
	var count int64
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return count, nil
}

// SaveLinks records outbound links from a page. Duplicate edges are ignored.
func (db *DB) SaveLinks(ctx context.Context, sourcePageID int64, links []models.Link) error {
	if len(links) == 0 {
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO links (source_page_id, target_url, link_text)
		VALUES ($1, $2, $3)
		ON CONFLICT (source_page_id, target_url) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare link insert: %w", err)
	}
	defer stmt.Close()

	for _, link := range links {
		if _, err := stmt.ExecContext(ctx, sourcePageID, link.TargetURL, link.Text); err != nil {
			return fmt.Errorf("failed to insert link: %w", err)
		}
	}

	return tx.Commit()
}

// LoadThemeKeywords returns the full keyword -> theme mapping with weights
// resolved from each theme's category.
func (db *DB) LoadThemeKeywords(ctx context.Context) ([]models.ThemeKeyword, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT tk.keyword, tk.theme_id, it.principle, it.category
		FROM theme_keywords tk
		JOIN islamic_themes it ON tk.theme_id = it.id
		ORDER BY tk.keyword
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load theme keywords: %w", err)
	}
	defer rows.Close()

	var keywords []models.ThemeKeyword
	for rows.Next() {
		var kw models.ThemeKeyword
		if err := rows.Scan(&kw.Keyword, &kw.ThemeID, &kw.Principle, &kw.Category); err != nil {
			return nil, fmt.Errorf("failed to scan theme keyword: %w", err)
		}
		kw.Weight = categoryWeights[kw.Category]
		keywords = append(keywords, kw)
	}
	return keywords, rows.Err()
}

// UpsertTheme ensures a theme row exists and returns its ID.
func (db *DB) UpsertTheme(ctx context.Context, principle, category, description string) (int64, error) {
	var id int64
	err := db.conn.QueryRowContext(ctx, `
		INSERT INTO islamic_themes (principle, category, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (principle) DO UPDATE SET
			category = EXCLUDED.category,
			description = EXCLUDED.description
		RETURNING id
	`, principle, category, description).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert theme: %w", err)
	}
	return id, nil
}

// AddThemeKeyword attaches a keyword to a theme. Duplicates are ignored.
func (db *DB) AddThemeKeyword(ctx context.Context, themeID int64, keyword string) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO theme_keywords (theme_id, keyword)
		VALUES ($1, $2)
		ON CONFLICT (theme_id, keyword) DO NOTHING
	`, themeID, keyword)
	if err != nil {
		return fmt.Errorf("failed to add theme keyword: %w", err)
	}
	return nil
}

// GetOrgBlocklist looks up a domain in the curated organizational blocklist.
// Returns nil when the domain is not listed.
func (db *DB) GetOrgBlocklist(ctx context.Context, domain string) (*models.OrgBlocklistRecord, error) {
	rec := models.OrgBlocklistRecord{Domain: domain}
	var reason sql.NullString
	err := db.conn.QueryRowContext(ctx, `
		SELECT splc_flagged, aclu_flagged, cair_flagged, adl_flagged, other_org_flagged, reason
		FROM org_blocklist
		WHERE domain = $1
	`, domain).Scan(&rec.SPLCFlagged, &rec.ACLUFlagged, &rec.CAIRFlagged, &rec.ADLFlagged, &rec.OtherOrg, &reason)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query org blocklist: %w", err)
	}
	rec.Reason = reason.String
	return &rec, nil
}

// UpsertOrgBlocklist records or refreshes a curated blocklist entry.
func (db *DB) UpsertOrgBlocklist(ctx context.Context, rec *models.OrgBlocklistRecord) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO org_blocklist (domain, splc_flagged, aclu_flagged, cair_flagged, adl_flagged, other_org_flagged, reason, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (domain) DO UPDATE SET
			splc_flagged = EXCLUDED.splc_flagged,
			aclu_flagged = EXCLUDED.aclu_flagged,
			cair_flagged = EXCLUDED.cair_flagged,
			adl_flagged = EXCLUDED.adl_flagged,
			other_org_flagged = EXCLUDED.other_org_flagged,
			reason = EXCLUDED.reason,
			updated_at = NOW()
	`, rec.Domain, rec.SPLCFlagged, rec.ACLUFlagged, rec.CAIRFlagged, rec.ADLFlagged, rec.OtherOrg, rec.Reason)
	if err != nil {
		return fmt.Errorf("failed to upsert org blocklist entry: %w", err)
	}
	return nil
}

// MarkSPLCFlagged sets the SPLC flag for a domain, preserving any flags set
// by other organizations.
func (db *DB) MarkSPLCFlagged(ctx context.Context, domain, reason string) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO org_blocklist (domain, splc_flagged, reason, updated_at)
		VALUES ($1, TRUE, $2, NOW())
		ON CONFLICT (domain) DO UPDATE SET
			splc_flagged = TRUE,
			reason = EXCLUDED.reason,
			updated_at = NOW()
	`, domain, reason)
	if err != nil {
		return fmt.Errorf("failed to flag domain: %w", err)
	}
	return nil
}

// GetEquity looks up a domain's ownership certifications. Returns nil when
// the domain has none recorded.
func (db *DB) GetEquity(ctx context.Context, domain string) (*models.EquityRecord, error) {
	rec := models.EquityRecord{Domain: domain}
	err := db.conn.QueryRowContext(ctx, `
		SELECT minority_owned, women_owned, veteran_owned, b_corp, lgbtq_owned, disability_owned
		FROM equity_domains
		WHERE domain = $1
	`, domain).Scan(&rec.MinorityOwned, &rec.WomenOwned, &rec.VeteranOwned, &rec.BCorp, &rec.LGBTQOwned, &rec.DisabilityOwned)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query equity domains: %w", err)
	}
	return &rec, nil
}

// UpsertEquity records or refreshes a domain's equity certifications.
func (db *DB) UpsertEquity(ctx context.Context, rec *models.EquityRecord) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO equity_domains (domain, minority_owned, women_owned, veteran_owned, b_corp, lgbtq_owned, disability_owned, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (domain) DO UPDATE SET
			minority_owned = EXCLUDED.minority_owned,
			women_owned = EXCLUDED.women_owned,
			veteran_owned = EXCLUDED.veteran_owned,
			b_corp = EXCLUDED.b_corp,
			lgbtq_owned = EXCLUDED.lgbtq_owned,
			disability_owned = EXCLUDED.disability_owned,
			updated_at = NOW()
	`, rec.Domain, rec.MinorityOwned, rec.WomenOwned, rec.VeteranOwned, rec.BCorp, rec.LGBTQOwned, rec.DisabilityOwned)
	if err != nil {
		return fmt.Errorf("failed to upsert equity entry: %w", err)
	}
	return nil
}

// MarkBCorp sets the B-Corp certification for a domain, preserving any
// ownership flags already recorded.
func (db *DB) MarkBCorp(ctx context.Context, domain string) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO equity_domains (domain, b_corp, updated_at)
		VALUES ($1, TRUE, NOW())
		ON CONFLICT (domain) DO UPDATE SET
			b_corp = TRUE,
			updated_at = NOW()
	`, domain)
	if err != nil {
		return fmt.Errorf("failed to mark B-Corp: %w", err)
	}
	return nil
}

// BacklinkCount counts distinct pages linking to the exact target URL.
func (db *DB) BacklinkCount(ctx context.Context, targetURL string) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT source_page_id)
		FROM links
		WHERE target_url = $1
	`, targetURL).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count backlinks: %w", err)
	}
	return count, nil
}

// ReferrerDomainsWithSuffix counts distinct referring domains with the given
// suffix (".edu", ".gov") that link to the target URL.
func (db *DB) ReferrerDomainsWithSuffix(ctx context.Context, targetURL, suffix string) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT p.domain)
		FROM links l
		JOIN pages p ON l.source_page_id = p.id
		WHERE l.target_url = $1 AND p.domain LIKE '%' || $2
	`, targetURL, suffix).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count referrer domains: %w", err)
	}
	return count, nil
}

// FirstCrawlForDomain returns the earliest crawled_at for a domain, or the
// zero time when the domain has never been seen.
func (db *DB) FirstCrawlForDomain(ctx context.Context, domain string) (time.Time, error) {
	var first sql.NullTime
	err := db.conn.QueryRowContext(ctx,
		"SELECT MIN(crawled_at) FROM pages WHERE domain = $1", domain,
	).Scan(&first)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query first crawl: %w", err)
	}
	if !first.Valid {
		return time.Time{}, nil
	}
	return first.Time, nil
}

// GetUnscoredPages returns pages awaiting scoring, oldest crawl first.
func (db *DB) GetUnscoredPages(ctx context.Context, limit int) ([]models.Page, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, url, url_hash, domain, COALESCE(title, ''), COALESCE(content, ''), crawled_at, created_at
		FROM pages
		WHERE scored_at IS NULL
		ORDER BY crawled_at
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query unscored pages: %w", err)
	}
	defer rows.Close()

	var pages []models.Page
	for rows.Next() {
		var p models.Page
		if err := rows.Scan(&p.ID, &p.URL, &p.URLHash, &p.Domain, &p.Title, &p.Content, &p.CrawledAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// GetPage fetches a single page by id.
func (db *DB) GetPage(ctx context.Context, id int64) (*models.Page, error) {
	var p models.Page
	err := db.conn.QueryRowContext(ctx, `
		SELECT id, url, url_hash, domain, COALESCE(title, ''), COALESCE(content, ''), crawled_at, created_at
		FROM pages
		WHERE id = $1
	`, id).Scan(&p.ID, &p.URL, &p.URLHash, &p.Domain, &p.Title, &p.Content, &p.CrawledAt, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to query page %d: %w", id, err)
	}
	return &p, nil
}

// PageIDsWithContent returns the ids of pages that have content, scored or
// not. A limit of 0 means no limit.
func (db *DB) PageIDsWithContent(ctx context.Context, limit int) ([]int64, error) {
	query := "SELECT id FROM pages WHERE content IS NOT NULL ORDER BY id"
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query page ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan page id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SaveScores writes a scoring result to the pages row and appends an audit
// record to page_scoring_logs, atomically.
func (db *DB) SaveScores(ctx context.Context, result *models.ScoringResult) error {
	components, err := json.Marshal(result.Components)
	if err != nil {
		return fmt.Errorf("failed to marshal score components: %w", err)
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE pages
		SET islamic_alignment_score = $1,
			quality_score = $2,
			authority_score = $3,
			media_literacy_score = $4,
			equity_boost = $5,
			final_composite_score = $6,
			indexable = $7,
			scored_at = $8
		WHERE id = $9
	`,
		result.IslamicAlignmentScore,
		result.QualityScore,
		result.AuthorityScore,
		result.MediaLiteracyScore,
		result.EquityBoost,
		result.FinalCompositeScore,
		result.Indexable,
		result.ScoredAt,
		result.PageID,
	)
	if err != nil {
		return fmt.Errorf("failed to update page scores: %w", err)
	}

	var reason sql.NullString
	if result.BlocklistReason != "" {
		reason = sql.NullString{String: result.BlocklistReason, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO page_scoring_logs (
			id, page_id, url,
			islamic_alignment_score, quality_score, authority_score,
			media_literacy_score, equity_boost, final_composite_score,
			indexable, blocklist_reason, components, scored_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		uuid.New().String(),
		result.PageID,
		result.URL,
		result.IslamicAlignmentScore,
		result.QualityScore,
		result.AuthorityScore,
		result.MediaLiteracyScore,
		result.EquityBoost,
		result.FinalCompositeScore,
		result.Indexable,
		reason,
		components,
		result.ScoredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert scoring log: %w", err)
	}

	return tx.Commit()
}
