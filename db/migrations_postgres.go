package db

// Schema migrations for the crawl store and scoring tables.

var postgresMigrations = []Migration{
	{
		Version: 1,
		Name:    "create_pages_table",
		Up: `
			CREATE TABLE IF NOT EXISTS pages (
				id BIGSERIAL PRIMARY KEY,
				url TEXT NOT NULL,
				url_hash TEXT NOT NULL UNIQUE,
				domain TEXT NOT NULL,
				title TEXT,
				content TEXT,
				crawled_at TIMESTAMPTZ DEFAULT NOW(),
				created_at TIMESTAMPTZ DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_pages_domain ON pages(domain);
			CREATE INDEX IF NOT EXISTS idx_pages_crawled_at ON pages(crawled_at);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_pages_crawled_at;
			DROP INDEX IF EXISTS idx_pages_domain;
			DROP TABLE IF EXISTS pages;
		`,
	},
	{
		Version: 2,
		Name:    "create_links_table",
		Up: `
			CREATE TABLE IF NOT EXISTS links (
				id BIGSERIAL PRIMARY KEY,
				source_page_id BIGINT NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
				target_url TEXT NOT NULL,
				link_text TEXT,
				created_at TIMESTAMPTZ DEFAULT NOW(),
				UNIQUE (source_page_id, target_url)
			);
			CREATE INDEX IF NOT EXISTS idx_links_target_url ON links(target_url);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_links_target_url;
			DROP TABLE IF EXISTS links;
		`,
	},
	{
		Version: 3,
		Name:    "create_theme_tables",
		Up: `
			CREATE TABLE IF NOT EXISTS islamic_themes (
				id SERIAL PRIMARY KEY,
				principle TEXT NOT NULL UNIQUE,
				category TEXT NOT NULL,
				description TEXT
			);
			CREATE TABLE IF NOT EXISTS theme_keywords (
				id SERIAL PRIMARY KEY,
				theme_id INTEGER NOT NULL REFERENCES islamic_themes(id) ON DELETE CASCADE,
				keyword TEXT NOT NULL,
				UNIQUE (theme_id, keyword)
			);
			CREATE INDEX IF NOT EXISTS idx_theme_keywords_keyword ON theme_keywords(keyword);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_theme_keywords_keyword;
			DROP TABLE IF EXISTS theme_keywords;
			DROP TABLE IF EXISTS islamic_themes;
		`,
	},
	{
		Version: 4,
		Name:    "create_org_blocklist_table",
		Up: `
			CREATE TABLE IF NOT EXISTS org_blocklist (
				domain TEXT PRIMARY KEY,
				splc_flagged BOOLEAN NOT NULL DEFAULT FALSE,
				aclu_flagged BOOLEAN NOT NULL DEFAULT FALSE,
				cair_flagged BOOLEAN NOT NULL DEFAULT FALSE,
				adl_flagged BOOLEAN NOT NULL DEFAULT FALSE,
				other_org_flagged BOOLEAN NOT NULL DEFAULT FALSE,
				reason TEXT,
				updated_at TIMESTAMPTZ DEFAULT NOW()
			);
		`,
		Down: `
			DROP TABLE IF EXISTS org_blocklist;
		`,
	},
	{
		Version: 5,
		Name:    "create_equity_domains_table",
		Up: `
			CREATE TABLE IF NOT EXISTS equity_domains (
				domain TEXT PRIMARY KEY,
				minority_owned BOOLEAN NOT NULL DEFAULT FALSE,
				women_owned BOOLEAN NOT NULL DEFAULT FALSE,
				veteran_owned BOOLEAN NOT NULL DEFAULT FALSE,
				b_corp BOOLEAN NOT NULL DEFAULT FALSE,
				lgbtq_owned BOOLEAN NOT NULL DEFAULT FALSE,
				disability_owned BOOLEAN NOT NULL DEFAULT FALSE,
				updated_at TIMESTAMPTZ DEFAULT NOW()
			);
		`,
		Down: `
			DROP TABLE IF EXISTS equity_domains;
		`,
	},
	{
		Version: 6,
		Name:    "add_score_columns_to_pages",
		Up: `
			ALTER TABLE pages
				ADD COLUMN IF NOT EXISTS islamic_alignment_score INTEGER,
				ADD COLUMN IF NOT EXISTS quality_score INTEGER,
				ADD COLUMN IF NOT EXISTS authority_score INTEGER,
				ADD COLUMN IF NOT EXISTS media_literacy_score INTEGER,
				ADD COLUMN IF NOT EXISTS equity_boost INTEGER,
				ADD COLUMN IF NOT EXISTS final_composite_score INTEGER,
				ADD COLUMN IF NOT EXISTS indexable BOOLEAN,
				ADD COLUMN IF NOT EXISTS scored_at TIMESTAMPTZ;
			CREATE INDEX IF NOT EXISTS idx_pages_unscored ON pages(crawled_at) WHERE scored_at IS NULL;
			CREATE INDEX IF NOT EXISTS idx_pages_indexable ON pages(indexable) WHERE indexable = TRUE;
		`,
		Down: `
			DROP INDEX IF EXISTS idx_pages_indexable;
			DROP INDEX IF EXISTS idx_pages_unscored;
			ALTER TABLE pages
				DROP COLUMN IF EXISTS scored_at,
				DROP COLUMN IF EXISTS indexable,
				DROP COLUMN IF EXISTS final_composite_score,
				DROP COLUMN IF EXISTS equity_boost,
				DROP COLUMN IF EXISTS media_literacy_score,
				DROP COLUMN IF EXISTS authority_score,
				DROP COLUMN IF EXISTS quality_score,
				DROP COLUMN IF EXISTS islamic_alignment_score;
		`,
	},
	{
		Version: 7,
		Name:    "create_page_scoring_logs_table",
		Up: `
			CREATE TABLE IF NOT EXISTS page_scoring_logs (
				id TEXT PRIMARY KEY,
				page_id BIGINT NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
				url TEXT NOT NULL,
				islamic_alignment_score INTEGER,
				quality_score INTEGER,
				authority_score INTEGER,
				media_literacy_score INTEGER,
				equity_boost INTEGER,
				final_composite_score INTEGER,
				indexable BOOLEAN,
				blocklist_reason TEXT,
				components JSONB NOT NULL DEFAULT '{}',
				scored_at TIMESTAMPTZ NOT NULL,
				created_at TIMESTAMPTZ DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_page_scoring_logs_page_id ON page_scoring_logs(page_id);
			CREATE INDEX IF NOT EXISTS idx_page_scoring_logs_scored_at ON page_scoring_logs(scored_at);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_page_scoring_logs_scored_at;
			DROP INDEX IF EXISTS idx_page_scoring_logs_page_id;
			DROP TABLE IF EXISTS page_scoring_logs;
		`,
	},
}
