package odds

import (
	"fmt"
	"strconv"
	"strings"
)

// Sportsbook pages render negative prices with U+2212 rather than ASCII '-'.
var minusReplacer = strings.NewReplacer("−", "-", "–", "-")

// ParseMoneyline parses an American-odds price from scraped text. A leading
// '+' and Unicode minus signs are accepted.
func ParseMoneyline(raw string) (int, error) {
	cleaned := minusReplacer.Replace(strings.TrimSpace(raw))
	cleaned = strings.TrimPrefix(cleaned, "+")
	value, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid moneyline %q", raw)
	}
	return value, nil
}

// ParseTotal parses an over/under line from scraped text.
func ParseTotal(raw string) (float64, error) {
	cleaned := minusReplacer.Replace(strings.TrimSpace(raw))
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid total %q", raw)
	}
	return value, nil
}

// NormalizeSpread canonicalizes spread text so equal lines compare equal
// across scrapes regardless of sign rendering or padding.
func NormalizeSpread(raw string) string {
	return minusReplacer.Replace(strings.Join(strings.Fields(raw), " "))
}
