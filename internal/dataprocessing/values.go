package dataprocessing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericText matches a cleaned decimal literal. strconv.ParseFloat alone
// would also accept "NaN", "Inf" and hex floats.
var numericText = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber converts a raw cell into a finite number. It never fails:
// nil, empty, malformed and non-finite input all yield 0.
//
// Strings are read in the pt-BR convention: a dot followed by exactly three
// digits is a thousands separator and a comma is the decimal mark, so
// "1.234,56" is 1234.56. When a string uses both marks and the last one is a
// dot ("1,234.56") the roles are swapped.
func ParseNumber(raw any) float64 {
	v, _ := TryParseNumber(raw)
	return v
}

// TryParseNumber is ParseNumber that also reports whether a number was
// actually read. ok is false whenever the result is the 0 fallback.
func TryParseNumber(raw any) (v float64, ok bool) {
	switch x := raw.(type) {
	case nil:
		return 0, false
	case string:
		return parseNumberText(x)
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case bool:
		return 0, false
	}
	return 0, false
}

func finite(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseNumberText(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	cleaned := normalizeSeparators(s)
	if !numericText.MatchString(cleaned) {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return finite(v)
}

// normalizeSeparators rewrites locale punctuation into a Go float literal.
func normalizeSeparators(s string) string {
	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')
	if lastDot >= 0 && lastComma >= 0 && lastDot > lastComma {
		// en-US grouping: "1,234.56"
		return strings.ReplaceAll(s, ",", "")
	}
	if lastDot < 0 && strings.Count(s, ",") > 1 && commasGroupThousands(s) {
		// en-US grouping without decimals: "1,234,567"
		return strings.ReplaceAll(s, ",", "")
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' && isThousandsCluster(s, i+1) {
			continue
		}
		if c == ',' {
			c = '.'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// isThousandsCluster reports whether s[from:] starts with exactly three
// digits not followed by another digit.
func isThousandsCluster(s string, from int) bool {
	if from+3 > len(s) {
		return false
	}
	for i := from; i < from+3; i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return from+3 == len(s) || !isDigit(s[from+3])
}

// commasGroupThousands reports whether every comma in s precedes a
// three-digit cluster. A single comma is still read as the decimal mark.
func commasGroupThousands(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == ',' && !isThousandsCluster(s, i+1) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// ParseCount reads the absolute count of an annotated cell such as
// "1.234 (12%)". The text before the first "(" is parsed and truncated to
// an integer. Numbers pass through unchanged.
func ParseCount(raw any) float64 {
	v, _ := TryParseCount(raw)
	return v
}

// TryParseCount is ParseCount with a success flag.
func TryParseCount(raw any) (float64, bool) {
	s, isText := raw.(string)
	if !isText {
		return TryParseNumber(raw)
	}
	v, ok := parseNumberText(beforeParen(s))
	if !ok {
		return 0, false
	}
	return math.Trunc(v), true
}

// ParsePercentage reads the parenthesized weight of a cell such as
// "Apple (40%)" or "120 (33,5%)". Cells without an annotation yield 0.
func ParsePercentage(raw any) float64 {
	s, ok := raw.(string)
	if !ok {
		return 0
	}
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return 0
	}
	inner := s[open+1:]
	if end := strings.IndexByte(inner, ')'); end >= 0 {
		inner = inner[:end]
	}
	inner = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(inner), "%"))
	return ParseNumber(inner)
}

// ParseCoordinate parses a latitude or longitude. Only the decimal comma is
// rewritten; thousands grouping is never applied, so "-8.047" stays -8.047.
func ParseCoordinate(raw any) float64 {
	v, _ := TryParseCoordinate(raw)
	return v
}

// TryParseCoordinate is ParseCoordinate with a success flag.
func TryParseCoordinate(raw any) (float64, bool) {
	s, isText := raw.(string)
	if !isText {
		return TryParseNumber(raw)
	}
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	if !numericText.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return finite(v)
}

// CanonicalLabel strips a trailing parenthesized annotation:
// "Apple (40%)" becomes "Apple".
func CanonicalLabel(s string) string {
	return strings.TrimSpace(beforeParen(s))
}

func beforeParen(s string) string {
	if i := strings.IndexByte(s, '('); i >= 0 {
		return s[:i]
	}
	return s
}

// looksNumeric is the generic heuristic used for unknown columns: the text
// contains a comma or parses cleanly as a number once trimmed.
func looksNumeric(s string) bool {
	if strings.Contains(s, ",") {
		return true
	}
	_, ok := parseNumberText(s)
	return ok
}
