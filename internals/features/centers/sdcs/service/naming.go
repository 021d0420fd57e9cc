package service

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// normalizeToken uppercases s and joins its whitespace-separated words with underscores.
func normalizeToken(s string) string {
	// a Caser is stateful; build one per call
	return strings.Join(strings.Fields(cases.Upper(language.Und).String(s)), "_")
}

// BuildSDCName returns SDC_<DISTRICT><suffix>, e.g. ("north goa", "_2") → "SDC_NORTH_GOA_2".
func BuildSDCName(district, suffix string) string {
	return "SDC_" + normalizeToken(district) + normalizeToken(suffix)
}

// sameDistrict compares district names the way SDC names are built from them.
func sameDistrict(a, b string) bool {
	return normalizeToken(a) == normalizeToken(b)
}
