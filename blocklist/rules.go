package blocklist

// Default Tier-1 rules. Domain-level blocks are exact hosts (subdomains are
// covered by the suffix check); patterns match anywhere in the lower-cased
// URL.

var defaultDomains = []string{
	// Adult content
	"pornhub.com", "xvideos.com", "xnxx.com", "redtube.com", "youporn.com",
	"tube8.com", "spankbang.com", "xhamster.com", "eporner.com", "motherless.com",
	"livejasmin.com", "chaturbate.com", "cam4.com", "stripchat.com", "camsoda.com",

	// Gambling
	"bet365.com", "pokerstars.com", "bwin.com", "draftkings.com", "fanduel.com",
	"betfair.com", "casino.com", "bovada.lv", "888casino.com", "williamhill.com",
	"paddypower.com", "betway.com", "unibet.com", "betonline.ag",

	// Alcohol/drug promotion
	"totalwine.com", "wine.com", "drizly.com", "reservebar.com",
	"leafly.com", "weedmaps.com", "eaze.com",

	// Payday loans & predatory lending
	"cashnetusa.com", "checkintocash.com", "cashadvance.com", "speedycash.com",
	"moneylion.com", "advanceamerica.net", "titlemax.com", "checkngo.com",

	// Known MLM/pyramid schemes
	"amway.com", "herbalife.com", "monat.com", "lularoe.com", "itworks.com",
	"younique.com", "avon.com", "marykay.com", "arbonne.com", "beachbody.com",
	"rodan-fields.com", "pampered-chef.com", "usana.com", "isagenix.com",

	// Hate groups (SPLC-flagged examples)
	"stormfront.org", "dailystormer.name", "vdare.com", "americanrenaissance.com",
	"counter-currents.com", "theoccidentalobserver.net", "unz.com",

	// Misinformation & conspiracy
	"infowars.com", "prisonplanet.com", "naturalnews.com", "beforeitsnews.com",
	"veteranstoday.com", "rense.com", "davidicke.com", "thetruthseeker.co.uk",
	"conspiracyplanet.com", "rumormillnews.com", "qmap.pub", "qanon.pub",
	"thegatewaypundit.com", "tfrlive.com", "theepochtimes.com",

	// Antivax & dangerous pseudoscience
	"mercola.com", "greenmedinfo.com", "tenpenny.com",
	"learntherisk.org", "childrenshealthdefense.org", "nvic.org",

	// Content farms & spam
	"ehow.com", "answers.com", "ask.com", "answerbag.com", "chacha.com",
	"mahalo.com", "wikihow.com", "buzzle.com", "listverse.com",
}

var defaultTLDs = []string{
	".xxx", ".adult", ".porn", ".sex", ".sexy", ".casino", ".bet",
	".poker", ".loan", ".loans", ".date", ".download", ".click",
}

var defaultPatterns = []string{
	// Adult content indicators
	`/porn/`,
	`/xxx/`,
	`/sex/`,
	`/adult/`,
	`/nude/`,
	`/escort/`,
	`/hookup/`,
	`/camgirl/`,
	`/onlyfans/`,

	// Gambling
	`/casino/`,
	`/poker/`,
	`/betting/`,
	`/slots/`,
	`/blackjack/`,
	`/roulette/`,

	// Drugs/alcohol
	`/buy-weed/`,
	`/marijuana-delivery/`,
	`/liquor-store/`,
	`/order-alcohol/`,

	// Payday loans
	`/payday-loan/`,
	`/cash-advance/`,
	`/title-loan/`,
	`/quick-cash/`,

	// MLM indicators
	`/join-my-team/`,
	`/be-your-own-boss/`,
	`/work-from-home-opportunity/`,

	// Conspiracy/misinformation keywords
	`/flat-earth/`,
	`/holocaust-hoax/`,
	`/crisis-actors/`,
	`/false-flag/`,
	`/qanon/`,
	`/moon-landing-fake/`,
	`/chemtrails/`,
	`/5g-conspiracy/`,
	`/covid-hoax/`,
	`/plandemic/`,
	`/vaccine-injury/`,
	`/anti-vax/`,
}
