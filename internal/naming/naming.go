package naming

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DigitPrefix is prepended to identifiers that would otherwise start with a digit.
const DigitPrefix = "$"

var (
	// lowerUpper matches a lowercase letter followed by an uppercase one ("aB").
	lowerUpper = regexp.MustCompile(`([a-z])([A-Z])`)
	// acronymEnd matches the end of an acronym run followed by a word ("LHt" in "XMLHttp").
	acronymEnd = regexp.MustCompile(`([A-Z])([A-Z][a-z])`)

	invalidFieldChars = regexp.MustCompile(`[^a-zA-Z0-9_$]`)
	invalidEnumChars  = regexp.MustCompile(`[^A-Z0-9$_]`)
	leadingDigits     = regexp.MustCompile(`^(?:_+(\d+)|(\d+))`)
	startsWithDigit   = regexp.MustCompile(`^[0-9]`)
	underscoreRun     = regexp.MustCompile(`_+`)
)

// splitCamel inserts an underscore at every camel-case word boundary.
func splitCamel(s string) string {
	s = lowerUpper.ReplaceAllString(s, "${1}_${2}")
	return acronymEnd.ReplaceAllString(s, "${1}_${2}")
}

// ToFieldIdentifier converts s to a lower camel case field identifier.
// Example: "test value" -> "testValue"
// Example: "123 test" -> "$123Test"
// Example: "_TEST_VALUE" -> "_TestValue"
func ToFieldIdentifier(s string) string {
	sanitized := invalidFieldChars.ReplaceAllString(splitCamel(s), "_")
	sanitized = leadingDigits.ReplaceAllString(sanitized, DigitPrefix+"${1}${2}")

	keepUnderscore := strings.HasPrefix(sanitized, "_")
	camel := underscoreToCamel(strings.TrimLeft(sanitized, "_"))
	if !keepUnderscore {
		return camel
	}
	if camel == "" {
		return "_"
	}
	return "_" + upperFirst(camel)
}

// ToTypeIdentifier converts s to an upper camel case type identifier.
// Leading underscores are dropped.
// Example: "test value" -> "TestValue"
// Example: "_TestValue" -> "TestValue"
func ToTypeIdentifier(s string) string {
	return upperFirst(strings.TrimLeft(ToFieldIdentifier(s), "_"))
}

// ToEnumConstantIdentifier converts s to an upper snake case constant identifier.
// Runs of separators collapse to a single underscore.
// Example: "testValue" -> "TEST_VALUE"
// Example: "123 $ test" -> "$123_$_TEST"
func ToEnumConstantIdentifier(s string) string {
	out := invalidEnumChars.ReplaceAllString(toUpper(splitCamel(s)), "_")
	if startsWithDigit.MatchString(out) {
		out = DigitPrefix + out
	}
	return underscoreRun.ReplaceAllString(out, "_")
}

// underscoreToCamel joins underscore-separated words: the first word is
// lowercased, every later word is capitalized. Empty words vanish.
func underscoreToCamel(s string) string {
	words := strings.Split(s, "_")
	var b strings.Builder
	b.Grow(len(s))
	for i, w := range words {
		if i == 0 {
			b.WriteString(toLower(w))
			continue
		}
		if w == "" {
			continue
		}
		b.WriteString(toUpper(w[:1]))
		b.WriteString(toLower(w[1:]))
	}
	return b.String()
}

func upperFirst(s string) string {
	if s == "" {
		return ""
	}
	return toUpper(s[:1]) + s[1:]
}

// Casers carry state, so each call gets its own.
func toUpper(s string) string { return cases.Upper(language.Und).String(s) }

func toLower(s string) string { return cases.Lower(language.Und).String(s) }
