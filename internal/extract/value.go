package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// The four value patterns run in strict priority order. A hit at a higher
// pass skips every later pass; there is no semantic "best value" choice.
var (
	inrPattern = regexp.MustCompile(
		`(?:rs\.?|inr|₹)\s*(\d+(?:,\d+)*(?:\.\d+)?)\s*(?:crore|cr\.?|lakh|lac|million|mn|billion|bn)`)
	usdPattern = regexp.MustCompile(
		`(?:usd|\$)\s*(\d+(?:,\d+)*(?:\.\d+)?)\s*(?:million|mn|billion|bn)`)
	valueOfPattern = regexp.MustCompile(
		`(?:value|worth|amount|order value|contract value|size) of (?:rs\.?|inr|₹|usd|\$)?\s*(\d+(?:,\d+)*(?:\.\d+)?)\s*(?:crore|cr\.?|lakh|lac|million|mn|billion|bn)`)
	barePattern = regexp.MustCompile(
		`(\d+(?:,\d+)*(?:\.\d+)?)\s*(?:crore|cr\.?|lakh|lac|million|mn|billion|bn|mw|gw|mwp)`)
)

// ExtractContractValue returns a formatted contract value from free text,
// or empty when no pattern matches.
//
// Priority: INR-prefixed amount, then USD-prefixed amount, then a
// "value/worth/amount of ..." phrase with currency inferred from nearby
// markers, then a bare number-with-unit as last resort.
func ExtractContractValue(text string) string {
	lower := strings.ToLower(text)

	if m := inrPattern.FindStringSubmatch(lower); m != nil {
		return fmt.Sprintf("Rs. %s crore", m[1])
	}

	if m := usdPattern.FindStringSubmatch(lower); m != nil {
		return fmt.Sprintf("USD %s million", m[1])
	}

	if m := valueOfPattern.FindStringSubmatch(lower); m != nil {
		switch {
		case strings.Contains(lower, "rs") || strings.Contains(lower, "inr") || strings.Contains(lower, "₹"):
			return fmt.Sprintf("Rs. %s crore", m[1])
		case strings.Contains(lower, "usd") || strings.Contains(lower, "$"):
			return fmt.Sprintf("USD %s million", m[1])
		default:
			return fmt.Sprintf("%s crore", m[1])
		}
	}

	if m := barePattern.FindStringSubmatch(lower); m != nil {
		return fmt.Sprintf("%s crore", m[1])
	}

	return ""
}
