package usecase

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// whitespaceClass lists every character treated as whitespace when
// splitting titles, including the Unicode spaces that show up in scraped text.
const whitespaceClass = `\s\x{0B}\x{A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

// Compiled regex patterns for canonicalization.
// Titles are lower-cased before any of these run, so none needs (?i).
var (
	separatorPattern = regexp.MustCompile(`[` + whitespaceClass + `-]+`)

	litroPattern = regexp.MustCompile(`litros?`)
	quiloPattern = regexp.MustCompile(`quilos?`)

	// Matches the first quantity like "1kg", "500 g", "1,5 l", "2 kilos".
	// Alternatives are tried in order, so "1 lt" matches "1 l".
	quantityPattern = regexp.MustCompile(
		`(\d+[.,]?\d*)[` + whitespaceClass + `]*(kg|g|kilo|quilo|quilos|kilos|l|lt|litro|litros|ml|mililitro|mililitros)`,
	)

	// Anything outside ASCII word characters and whitespace is dropped
	nonWordPattern = regexp.MustCompile(`[^\w` + whitespaceClass + `]`)

	spacePattern = regexp.MustCompile(`[` + whitespaceClass + `]+`)
)

// canonicalStopWords are connectives and articles that never discriminate products
var canonicalStopWords = map[string]bool{
	"de": true, "da": true, "do": true, "e": true, "com": true, "tipo": true,
	"a": true, "o": true, "as": true, "os": true, "para": true,
}

// Units grouped by the base unit they convert to
var (
	gramUnits      = map[string]bool{"g": true, "grama": true, "gramas": true}
	kilogramUnits  = map[string]bool{"kg": true, "kilo": true, "kilos": true, "quilo": true, "quilos": true}
	milliliterUnit = map[string]bool{"ml": true, "mililitro": true, "mililitros": true}
	literUnits     = map[string]bool{"l": true, "lt": true, "litro": true, "litros": true}
)

// CanonicalKey maps a free-text product title to its grouping key.
//
// Two titles describing the same item in a different word order, with a
// different unit spelling or with a quantity written in grams instead of
// kilograms produce the same key, e.g. "Arroz Branco 1kg" and
// "branco arroz 1000 g" both yield "arroz branco 1kg".
func CanonicalKey(title string) string {
	normalized := cases.Lower(language.Und).String(title)
	normalized = strings.TrimSpace(separatorPattern.ReplaceAllString(normalized, " "))

	normalized = litroPattern.ReplaceAllString(normalized, "l")
	normalized = quiloPattern.ReplaceAllString(normalized, "kg")

	var quantityText, standardizedQuantity string
	if m := quantityPattern.FindStringSubmatch(normalized); m != nil {
		quantityText = m[0]
		standardizedQuantity = standardizeQuantity(m[0], m[1], m[2])
	}

	terms := make([]string, 0, 8)
	for _, term := range strings.Split(nonWordPattern.ReplaceAllString(normalized, ""), " ") {
		if term == "" || canonicalStopWords[term] {
			continue
		}
		if quantityText != "" && strings.Contains(quantityText, term) {
			continue
		}
		if isNumeric(term) {
			continue
		}
		terms = append(terms, term)
	}

	sort.Strings(terms)

	if standardizedQuantity != "" {
		terms = append(terms, spacePattern.ReplaceAllString(standardizedQuantity, ""))
	}

	return strings.Join(terms, " ")
}

// standardizeQuantity converts a matched quantity to kilograms or liters,
// e.g. ("500g", "500", "g") -> "0,5 kg". Unknown units return raw unchanged.
func standardizeQuantity(raw, amount, unit string) string {
	value := parseAmount(amount)

	switch {
	case gramUnits[unit]:
		return formatAmount(value/1000) + " kg"
	case kilogramUnits[unit]:
		return formatAmount(value) + " kg"
	case milliliterUnit[unit]:
		return formatAmount(value/1000) + " l"
	case literUnits[unit]:
		return formatAmount(value) + " l"
	default:
		return raw
	}
}

// parseAmount reads "1,5" or "1.5" as 1.5. Overflowing amounts become +Inf.
func parseAmount(amount string) float64 {
	value, err := strconv.ParseFloat(strings.Replace(amount, ",", ".", 1), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return value
}

// formatAmount renders v with one decimal and a comma separator, then drops
// a ",0" suffix: 2 -> "2", 1.5 -> "1,5", 0.05 -> "0,1".
func formatAmount(v float64) string {
	return strings.Replace(strings.Replace(toFixedOne(v), ".", ",", 1), ",0", "", 1)
}

var (
	ten  = big.NewFloat(10)
	half = big.NewFloat(0.5)
)

// toFixedOne formats a non-negative v with exactly one decimal digit.
// Rounding works on the exact binary value of v and ties go up: 0.25 gives
// "0.3", while 0.35 is stored slightly below its literal and gives "0.3" too.
// Values of 1e21 and above use the shortest exponent form.
func toFixedOne(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsNaN(v):
		return "NaN"
	case v >= 1e21:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	scaled := new(big.Float).SetPrec(256).Mul(new(big.Float).SetFloat64(v), ten)
	tenths, _ := scaled.Int(nil)

	frac := new(big.Float).SetPrec(256).Sub(scaled, new(big.Float).SetInt(tenths))
	if frac.Cmp(half) >= 0 {
		tenths.Add(tenths, big.NewInt(1))
	}

	digits := tenths.String()
	if len(digits) < 2 {
		digits = "0" + digits
	}
	return digits[:len(digits)-1] + "." + digits[len(digits)-1:]
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
