// Package extract implements the heuristic field extractors and the
// relevance filter for contract-news text.
package extract

import "strings"

// Filter decides whether an announcement is plausibly infrastructure and
// steel relevant.
type Filter struct {
	infraKeywords   []string
	excludeKeywords []string
	valueIndicators []string
	strongKeywords  []string
}

// NewFilter creates a filter over the default keyword tables.
func NewFilter() *Filter {
	return &Filter{
		infraKeywords:   infraKeywords,
		excludeKeywords: excludeKeywords,
		valueIndicators: valueIndicators,
		strongKeywords:  strongKeywords,
	}
}

// NewFilterWithTables creates a filter over custom keyword tables.
func NewFilterWithTables(infra, exclude, value, strong []string) *Filter {
	return &Filter{
		infraKeywords:   infra,
		excludeKeywords: exclude,
		valueIndicators: value,
		strongKeywords:  strong,
	}
}

// Relevant reports whether the announcement is worth processing further.
// Exclusion keywords in the title are an absolute veto. Otherwise the item
// must carry an infrastructure keyword (in title or company) together with
// either a value indicator or a strong keyword in the title.
func (f *Filter) Relevant(title, company string) bool {
	titleLower := strings.ToLower(title)
	companyLower := strings.ToLower(company)

	for _, kw := range f.excludeKeywords {
		if strings.Contains(titleLower, kw) {
			return false
		}
	}

	hasValue := false
	for _, ind := range f.valueIndicators {
		if strings.Contains(titleLower, ind) {
			hasValue = true
			break
		}
	}

	hasInfraKeyword := false
	for _, kw := range f.infraKeywords {
		if strings.Contains(titleLower, kw) || strings.Contains(companyLower, kw) {
			hasInfraKeyword = true
			break
		}
	}
	if !hasInfraKeyword {
		return false
	}

	if hasValue {
		return true
	}

	for _, kw := range f.strongKeywords {
		if strings.Contains(titleLower, kw) {
			return true
		}
	}
	return false
}

// valueIndicators signal a monetary amount or physical magnitude in a title.
var valueIndicators = []string{
	"rs.", "rs", "inr", "usd", "₹", "$", "crore", "million", "billion",
	"tonnes", "tons", "tpa", "mtpa", "mw", "gw", "sqft", "acres",
}

// strongKeywords are the small subset that alone justify keeping an item.
var strongKeywords = []string{
	"project", "infrastructure", "construction", "awarded", "contract", "order",
	"steel", "factory", "plant", "production", "manufacturing", "capacity",
	"facility", "commissioning", "commercial production",
}

// excludeKeywords veto administrative and regulatory boilerplate.
var excludeKeywords = []string{
	// Corporate events
	"trading window", "board meeting", "agm", "egm", "postal ballot",
	"investor meet", "investor presentation", "annual report",
	"quarterly results", "financial results", "dividend",

	// Regulatory
	"compliance", "regulation 30", "sebi", "disclosure requirements",
	"listing obligations", "corporate governance",

	// Administrative
	"appointment", "resignation", "key managerial", "director",
	"company secretary", "auditor", "closure of register",

	// Others
	"credit rating", "share transfer", "shareholding pattern",
	"certificate", "intimation", "clarification",

	// Routine updates
	"trading update", "business update", "covid update",
	"operational update", "status update", "progress update",
}

// infraKeywords is the curated inclusion set spanning the sectors that
// consume steel.
var infraKeywords = []string{
	// Steel and metal
	"steel", "stainless steel", "metal", "metallurgy", "iron", "ore",
	"pig iron", "sponge iron", "steel plant", "rolling mill", "furnace",
	"steel capacity", "steel production", "steel manufacturing",

	// Manufacturing and production
	"factory", "plant", "production", "manufacturing", "assembly line",
	"capacity expansion", "new facility", "greenfield", "brownfield",
	"production capacity", "manufacturing unit", "industrial unit",
	"commissioning", "commercial production", "trial production",

	// Automotive
	"automotive", "vehicle", "car", "truck", "bus", "two-wheeler",
	"electric vehicle", "ev", "automobile", "auto component",
	"vehicle production", "car manufacturing", "assembly plant",

	// Construction and infrastructure
	"infrastructure", "construction", "project", "civil works",
	"building", "development", "infrastructure work", "construction work",
	"infra project", "infrastructure development", "civil construction",

	// Transportation
	"highway", "road", "bridge", "metro", "railway", "airport",
	"port", "terminal", "transport", "flyover", "tunnel", "station",
	"rail corridor", "expressway", "roadway", "freight corridor",

	// Energy and power
	"power plant", "energy", "solar", "wind", "transmission",
	"substation", "renewable", "hydro", "thermal", "electricity",
	"power generation", "power project", "solar park", "wind farm",
	"power transmission", "power distribution", "grid", "megawatt",

	// Urban development and real estate
	"smart city", "urban", "township", "municipal", "city development",
	"real estate", "residential", "commercial", "industrial",
	"housing", "property development", "mixed-use", "tech park",
	"it park", "sez", "special economic zone",

	// Water and environment
	"water supply", "water treatment", "sewage", "irrigation",
	"pipeline", "water project", "desalination", "effluent",
	"water infrastructure", "drainage", "reservoir",

	// Project awards and contracts
	"order", "contract", "awarded", "secured", "bagged",
	"tender", "bid", "loa", "letter of award", "work order",
	"order win", "new order", "contract win", "project win",
	"order book", "order inflow", "order received",

	// Engineering
	"epc", "engineering", "procurement", "technical", "design build",
	"turnkey", "design and build", "engineering works",

	// Industrial and process
	"cement", "chemical", "refinery", "petrochemical", "textile",
	"pharma", "food processing", "industrial park", "logistics park",
	"warehouse", "storage terminal", "data center", "industrial corridor",

	// Value and size indicators
	"crore", "million", "billion", "value", "worth", "capacity",
	"tonnes", "tons", "tpa", "mtpa", "mw", "gw", "sqft", "acres",
}
