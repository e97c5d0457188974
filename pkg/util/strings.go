package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LevenshteinDistance counts rune edits so accented names cost one edit per letter.
func LevenshteinDistance(s1, s2 string) int {
	a, b := []rune(s1), []rune(s2)
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// FuzzyMatchScore returns 1.0 for identical strings (after trimming and lower-casing)
// down to 0.0 for completely different ones.
func FuzzyMatchScore(str1, str2 string) float64 {
	str1 = strings.ToLower(strings.TrimSpace(str1))
	str2 = strings.ToLower(strings.TrimSpace(str2))
	maxLen := max(len([]rune(str1)), len([]rune(str2)))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(LevenshteinDistance(str1, str2))/float64(maxLen)
}

// IsFuzzyMatch reports whether the two terms score at or above threshold.
func IsFuzzyMatch(str1, str2 string, threshold float64) bool {
	return FuzzyMatchScore(str1, str2) >= threshold
}

// GetAsString converts cell and parameter values to their textual form
func GetAsString(s any) (string, error) {
	switch v := s.(type) {
	case nil:
		return "", fmt.Errorf("cannot convert nil to string")
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// GetAsInteger accepts ints, integral floats and numeric strings ("3", " 3 ", "3.0").
// Anything with a fractional part is rejected.
func GetAsInteger(s any) (int, error) {
	switch v := s.(type) {
	case nil:
		return 0, fmt.Errorf("cannot convert nil to integer")
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case []byte:
		return GetAsInteger(string(v))
	case string:
		t := strings.TrimSpace(v)
		if t == "" {
			return 0, fmt.Errorf("cannot convert empty string to integer")
		}
		if i, err := strconv.Atoi(t); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to integer", v)
		}
		return floatToInt(f)
	default:
		return 0, fmt.Errorf("cannot convert %T to integer", s)
	}
}

func floatToInt(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not a whole number", f)
	}
	return int(f), nil
}
