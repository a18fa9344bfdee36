package medialit

// redFlagKeywords is the fast pre-filter: content matching fewer than two of
// these never reaches the model.
var redFlagKeywords = []string{
	// Miracle cure / snake oil
	"miracle cure", "doctors hate", "one weird trick",
	"scientists don't want you to know", "big pharma",
	"they don't want you to", "shocking truth",
	"government hiding", "mainstream media lies",
	"breakthrough discovery", "suppressed information",
	"what they won't tell you", "banned by",
	"secret that", "industry doesn't want",
	"proven to cure", "guaranteed results",

	// Conspiracy indicators
	"new world order", "illuminati", "deep state",
	"false flag", "crisis actors", "hoax",
	"cover up", "conspiracy", "they're hiding",

	// Specific conspiracy theories
	"flat earth", "earth is flat", "globe lie",
	"moon landing fake", "moon landing hoax", "never went to moon",
	"chemtrails", "chem trails", "spraying chemicals",
	"5g causes", "5g conspiracy", "5g radiation",
	"vaccines cause autism", "autism from vaccines", "vaccine injury",
	"anti-vax", "anti-vaxx", "vaccine danger", "vaccine poison",
	"big pharma conspiracy", "pharmaceutical conspiracy",
	"qanon", "wwg1wga", "trust the plan", "the storm",
	"adrenochrome", "pizzagate", "pedophile ring",
	"covid hoax", "plandemic", "scamdemic", "covid fake",
	"coronavirus hoax", "virus doesn't exist",
	"microchip vaccine", "vaccine tracking", "bill gates microchip",
	"lizard people", "reptilians", "shape shifters",
	"sandy hook hoax", "parkland hoax", "shooting hoax",
	"holocaust didn't happen", "holocaust denial", "holocaust hoax",
	"9/11 inside job", "9/11 controlled demolition", "twin towers explosives",
	"agenda 21", "agenda 2030", "un takeover",
	"jade helm", "fema camps", "martial law coming",
	"crisis actor", "paid protesters", "soros funded",
	"george soros conspiracy", "soros controls",
	"rothschild conspiracy", "banking elite conspiracy",
	"freemasons control", "satanic ritual", "satanic panic",

	// MLM / get rich quick
	"be your own boss", "financial freedom",
	"work from home unlimited", "passive income guaranteed",
	"join my team", "ground floor opportunity",
	"unlimited earning potential", "retired at 30",

	// Predatory health claims
	"detox", "toxins", "cleanse", "boost your immune system",
	"natural alternative to", "big pharma doesn't want",
	"fda doesn't approve because", "alternative to chemotherapy",

	// Historical revisionism
	"false flag operation",

	// Statistical manipulation indicators
	"correlation equals causation", "100% of people",
	"studies show", "experts agree", "research proves",
	"science says",
}
