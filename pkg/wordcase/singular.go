package wordcase

import "strings"

// singularRule strips strip bytes from a word ending in suffix and appends
// replacement. A rule with strip 0 and no replacement pins the word as-is.
type singularRule struct {
	suffix      string
	strip       int
	replacement string
}

// singularRules is consulted in order and the first match wins. A new rule
// must go before any broader rule that would otherwise shadow it.
var singularRules = []singularRule{
	{"series", 0, ""},
	{"cookies", 1, ""},
	{"movies", 1, ""},
	{"ies", 3, "y"},
	{"les", 1, ""},
	{"pes", 1, ""},
	{"ss", 0, ""},
	{"es", 0, ""},
	{"is", 0, ""},
	{"as", 0, ""},
	{"us", 0, ""},
	{"os", 0, ""},
	{"news", 0, ""},
	{"s", 1, ""},
}

// ToSingular singularizes a plural key for use as a type name. It errs on
// the side of leaving the word alone: a missed singularization is harmless,
// a wrong one ends up as a visible type name. Suffixes are matched
// case-insensitively and the case of the kept part is preserved.
func ToSingular(s string) string {
	lower := asciiLower(s)
	for _, r := range singularRules {
		if !strings.HasSuffix(lower, r.suffix) || len(s) <= r.strip {
			continue
		}
		kept := s[:len(s)-r.strip]
		if r.replacement == "" {
			return kept
		}
		if isUpper(rune(s[len(s)-r.strip])) {
			return kept + asciiUpper(r.replacement)
		}
		return kept + r.replacement
	}
	return s
}
