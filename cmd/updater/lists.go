package main

// Curated per-domain lists maintained from published research by civil
// rights organizations and the public B-Corp directory. Updated by hand
// when the sources publish changes.

type flaggedDomain struct {
	domain string
	reason string
}

// splcDomains are hate group websites documented by the SPLC.
var splcDomains = []flaggedDomain{
	// White nationalist / neo-Nazi
	{"stormfront.org", "White nationalist forum - SPLC listed"},
	{"dailystormer.name", "Neo-Nazi website - SPLC listed"},
	{"dailystormer.su", "Neo-Nazi website - SPLC listed"},
	{"vdare.com", "White nationalist publication - SPLC listed"},
	{"americanrenaissance.com", "White nationalist publication - SPLC listed"},
	{"counter-currents.com", "White nationalist publication - SPLC listed"},
	{"theoccidentalobserver.net", "White nationalist publication - SPLC listed"},
	{"nationalvanguard.org", "Neo-Nazi organization - SPLC listed"},
	{"nsm88.org", "Neo-Nazi organization - SPLC listed"},
	{"therightstuff.biz", "Neo-Nazi podcast network - SPLC listed"},
	{"altright.com", "White nationalist - SPLC listed"},
	{"radixjournal.com", "White nationalist - SPLC listed"},

	// Anti-Muslim hate
	{"jihadwatch.org", "Anti-Muslim hate site - SPLC listed"},
	{"barenakedislam.com", "Anti-Muslim hate site - SPLC listed"},
	{"atlasshrugs.com", "Anti-Muslim hate site - SPLC listed"},
	{"pamelageller.com", "Anti-Muslim hate - SPLC listed"},
	{"thereligionofpeace.com", "Anti-Muslim hate site - SPLC listed"},
	{"gatesofvienna.net", "Anti-Muslim hate site - SPLC listed"},

	// Conspiracy / extremist
	{"infowars.com", "Conspiracy theories, extremist content - SPLC listed"},
	{"prisonplanet.com", "Conspiracy theories - SPLC listed"},
	{"naturalnews.com", "Dangerous health misinformation - SPLC listed"},
	{"beforeitsnews.com", "Conspiracy theories - SPLC listed"},
	{"veteranstoday.com", "Conspiracy theories, antisemitism - SPLC listed"},
}

type certifiedDomain struct {
	domain string
	note   string
}

// bcorpDomains are certified B Corporations from the public directory.
var bcorpDomains = []certifiedDomain{
	{"patagonia.com", "Outdoor clothing, environmental activism"},
	{"benandjerrys.com", "Ice cream, social justice"},
	{"warbyparker.com", "Eyewear, buy-one-give-one"},
	{"allbirds.com", "Sustainable footwear"},
	{"etsy.com", "Handmade goods marketplace"},
	{"kickstarter.com", "Crowdfunding platform"},
	{"cabot.coop", "Farmer-owned dairy cooperative"},
	{"seventhgeneration.com", "Eco-friendly household products"},
	{"newbelgium.com", "Craft brewery"},
	{"method.com", "Eco-friendly cleaning products"},
	{"kingarthurbaking.com", "Employee-owned baking company"},
	{"greyston.org", "Social enterprise bakery"},
	{"altereco.com", "Fair trade chocolate"},
	{"thistle.co", "Plant-based meal delivery"},
	{"ifixit.com", "Repair guides and parts"},
	{"plumorganics.com", "Organic baby food"},
	{"happyfamilyorganics.com", "Organic baby food"},
	{"nutiva.com", "Organic superfoods"},
	{"beneficial-state.org", "Community development bank"},
	{"lemonade.com", "Insurance tech with giveback"},
	{"reformation.com", "Sustainable fashion"},
	{"everlane.com", "Ethical fashion"},
	{"bombas.com", "Socks with donation model"},
	{"toms.com", "Shoes with giving model"},
	{"tentree.com", "Apparel, plants ten trees per item"},
}
