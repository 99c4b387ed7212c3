package extract

import (
	"regexp"
	"strings"

	"github.com/steelscan/leadscan/internal/textutil"
)

// inLocationPattern matches "in <Capitalized Word(s)>" as a fallback when
// no gazetteer entry is present.
var inLocationPattern = regexp.MustCompile(`in\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)

// LocationExtractor returns a best-guess Indian place name from free text.
type LocationExtractor struct {
	gazetteer []string
}

// NewLocationExtractor creates an extractor over the default gazetteer.
func NewLocationExtractor() *LocationExtractor {
	return &LocationExtractor{gazetteer: indianLocations}
}

// NewLocationExtractorWithGazetteer creates an extractor over a custom
// gazetteer. Entries must be lowercase.
func NewLocationExtractorWithGazetteer(gazetteer []string) *LocationExtractor {
	return &LocationExtractor{gazetteer: gazetteer}
}

// Extract returns a title-cased gazetteer hit if any, otherwise the first
// "in <Place>" capture, otherwise empty. Gazetteer lookup always wins over
// the regex fallback regardless of position in text.
func (e *LocationExtractor) Extract(text string) string {
	lower := strings.ToLower(text)

	for _, loc := range e.gazetteer {
		if strings.Contains(lower, loc) {
			return textutil.TitleCase(loc)
		}
	}

	if m := inLocationPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	return ""
}

// indianLocations lists Indian states, union territories, and major cities,
// all lowercase.
var indianLocations = []string{
	"andhra pradesh", "arunachal pradesh", "assam", "bihar", "chhattisgarh", "goa", "gujarat",
	"haryana", "himachal pradesh", "jharkhand", "karnataka", "kerala", "madhya pradesh",
	"maharashtra", "manipur", "meghalaya", "mizoram", "nagaland", "odisha", "punjab", "rajasthan",
	"sikkim", "tamil nadu", "telangana", "tripura", "uttar pradesh", "uttarakhand", "west bengal",
	"delhi", "chandigarh", "puducherry", "ladakh", "jammu and kashmir", "lakshadweep",
	"andaman and nicobar",
	// Major cities
	"mumbai", "bangalore", "bengaluru", "hyderabad", "chennai", "kolkata", "ahmedabad",
	"pune", "jaipur", "lucknow", "kanpur", "nagpur", "indore", "thane", "bhopal", "visakhapatnam",
	"surat", "coimbatore", "kochi", "vadodara", "agra", "nashik", "patna", "faridabad", "meerut",
	"rajkot", "kalyan", "vasai", "varanasi", "srinagar", "ghaziabad", "amritsar", "raipur",
}
