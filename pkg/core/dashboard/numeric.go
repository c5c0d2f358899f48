package dashboard

import (
	"strconv"
	"strings"

	"finsight/pkg/core/analyze"
)

// ExtractNumeric parses a formatted KPI string into a number. Currency
// symbols, commas, percent signs and whitespace are stripped; a value wrapped
// in parentheses is negative (accounting convention); a trailing magnitude
// suffix (K/M/B) scales the value so "$1.2M" and "$1,200,000" chart the same.
// Returns nil for "N/A" or anything that does not parse.
func ExtractNumeric(formatted string) *float64 {
	cleaned := strings.TrimSpace(formatted)
	if cleaned == "" || strings.EqualFold(cleaned, analyze.KPIUnavailable) {
		return nil
	}

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	scale := 1.0
	var sb strings.Builder
scan:
	for i, r := range cleaned {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+':
			sb.WriteRune(r)
		case r == ',', r == '$', r == '%', r == '€', r == '£', r == '¥', r == ' ', r == '\t':
			// formatting noise
		default:
			s, ok := magnitudeScale(r, strings.TrimSpace(cleaned[i:]))
			if !ok {
				return nil
			}
			scale = s
			break scan
		}
	}

	value, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		return nil
	}
	value *= scale
	if negative {
		value = -value
	}
	return &value
}

// magnitudeScale resolves a magnitude suffix starting at rest. Accepts the
// single-letter forms and their spelled-out variants ("1.2 million").
func magnitudeScale(r rune, rest string) (float64, bool) {
	lower := strings.ToLower(rest)
	switch r {
	case 'k', 'K':
		if lower == "k" {
			return 1e3, true
		}
	case 'm', 'M':
		if lower == "m" || lower == "mm" || lower == "million" {
			return 1e6, true
		}
	case 'b', 'B':
		if lower == "b" || lower == "bn" || lower == "billion" {
			return 1e9, true
		}
	case 't', 'T':
		if lower == "thousand" {
			return 1e3, true
		}
	}
	return 0, false
}
