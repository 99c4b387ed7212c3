// Package taxonomy classifies free text into project-type categories using
// an ordered keyword table with longest-match-wins resolution.
package taxonomy

import (
	"strings"

	"github.com/steelscan/leadscan/internal/model"
)

// Entry maps a keyword phrase to a project-type category.
type Entry struct {
	Keyword  string
	Category string
}

// Matcher resolves the most specific project type for a text.
type Matcher struct {
	entries []Entry
}

// NewMatcher creates a matcher over the default project-type table.
func NewMatcher() *Matcher {
	return &Matcher{entries: projectTypeTable}
}

// NewMatcherWithTable creates a matcher over a custom table. Table order
// breaks ties between keywords of equal length.
func NewMatcherWithTable(entries []Entry) *Matcher {
	return &Matcher{entries: entries}
}

// Match returns the category of the longest keyword found in text, or the
// default project type if nothing matches. Longer keywords outrank shorter
// ones, so "solar power" beats "power". Deterministic for identical input.
func (m *Matcher) Match(text string) string {
	lower := strings.ToLower(text)

	best := ""
	bestLen := 0
	for _, e := range m.entries {
		if len(e.Keyword) <= bestLen {
			continue
		}
		if strings.Contains(lower, strings.ToLower(e.Keyword)) {
			best = e.Category
			bestLen = len(e.Keyword)
		}
	}

	if best == "" {
		return model.DefaultProjectType
	}
	return best
}

// projectTypeTable is the fixed keyword-to-category mapping. Order matters
// only for equal-length keywords (earlier entry wins).
var projectTypeTable = []Entry{
	// Energy and power
	{"solar", "Renewable Energy - Solar"},
	{"solar park", "Renewable Energy - Solar"},
	{"solar power", "Renewable Energy - Solar"},
	{"solar plant", "Renewable Energy - Solar"},
	{"solar project", "Renewable Energy - Solar"},
	{"solar energy", "Renewable Energy - Solar"},
	{"wind", "Renewable Energy - Wind"},
	{"wind farm", "Renewable Energy - Wind"},
	{"wind power", "Renewable Energy - Wind"},
	{"wind energy", "Renewable Energy - Wind"},
	{"hydro", "Renewable Energy - Hydro"},
	{"hydroelectric", "Renewable Energy - Hydro"},
	{"hydropower", "Renewable Energy - Hydro"},
	{"thermal", "Power - Thermal"},
	{"coal", "Power - Thermal"},
	{"gas", "Power - Thermal/Gas"},
	{"power plant", "Power Generation"},
	{"power generation", "Power Generation"},
	{"electricity", "Power Generation"},
	{"transmission", "Power Transmission"},
	{"substation", "Power Transmission"},
	{"grid", "Power Transmission"},

	// Transportation
	{"highway", "Transportation - Highway"},
	{"expressway", "Transportation - Highway"},
	{"road", "Transportation - Road"},
	{"roadway", "Transportation - Road"},
	{"bridge", "Transportation - Bridge"},
	{"flyover", "Transportation - Bridge"},
	{"metro", "Transportation - Metro"},
	{"railway", "Transportation - Railway"},
	{"rail", "Transportation - Railway"},
	{"airport", "Transportation - Airport"},
	{"port", "Transportation - Port"},
	{"terminal", "Transportation - Port/Terminal"},
	{"logistics", "Transportation - Logistics"},

	// Construction and real estate
	{"construction", "Construction"},
	{"building", "Construction - Building"},
	{"residential", "Construction - Residential"},
	{"commercial", "Construction - Commercial"},
	{"housing", "Construction - Residential"},
	{"real estate", "Real Estate"},
	{"property", "Real Estate"},
	{"township", "Urban Development"},
	{"smart city", "Urban Development"},
	{"mixed-use", "Real Estate - Mixed Use"},
	{"sez", "Special Economic Zone"},
	{"industrial park", "Industrial Park"},
	{"tech park", "IT/Tech Park"},
	{"it park", "IT/Tech Park"},
	{"data center", "Data Center"},

	// Water
	{"water supply", "Water Infrastructure"},
	{"water treatment", "Water Infrastructure"},
	{"sewage", "Water Infrastructure"},
	{"irrigation", "Water Infrastructure"},
	{"pipeline", "Pipeline"},
	{"water project", "Water Infrastructure"},
	{"desalination", "Water Infrastructure"},
	{"drainage", "Water Infrastructure"},
	{"reservoir", "Water Infrastructure"},

	// Manufacturing
	{"steel", "Manufacturing - Steel"},
	{"iron", "Manufacturing - Steel"},
	{"metal", "Manufacturing - Metal"},
	{"metallurgy", "Manufacturing - Metal"},
	{"cement", "Manufacturing - Cement"},
	{"chemical", "Manufacturing - Chemical"},
	{"petrochemical", "Manufacturing - Petrochemical"},
	{"refinery", "Manufacturing - Refinery"},
	{"textile", "Manufacturing - Textile"},
	{"pharma", "Manufacturing - Pharmaceutical"},
	{"food processing", "Manufacturing - Food Processing"},
	{"factory", "Manufacturing"},
	{"plant", "Manufacturing"},
	{"manufacturing", "Manufacturing"},
	{"production", "Manufacturing"},

	// Generic fallbacks
	{"infrastructure", "Infrastructure"},
	{"project", "General Project"},
	{"epc", "EPC"},
	{"engineering", "Engineering Services"},
	{"contract", "Contract"},
	{"order", "Order/Contract"},
}
