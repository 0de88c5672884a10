package textutil

import (
	"strings"
	"unicode"
)

// NormalizeToken lowercases and trims a raw token so it can be used
// as a lookup key.
func NormalizeToken(token string) string {
	return strings.ToLower(strings.Trim(token, " \n\t"))
}

// ContainsAny reports whether the uppercased name contains any of the
// given uppercase phrases.
func ContainsAny(name string, phrases []string) bool {
	upper := strings.ToUpper(name)
	for _, p := range phrases {
		if strings.Contains(upper, p) {
			return true
		}
	}
	return false
}

// IsShouting reports whether a name is written entirely in capital
// letters and spans at least minWords words. Menu pages mark up
// section banners ("FRESH FROM THE GRILL") identically to food
// entries, so this is used as a noise signal.
func IsShouting(name string, minWords int) bool {
	hasLetter := false
	for _, c := range name {
		if unicode.IsLetter(c) {
			hasLetter = true
			if unicode.IsLower(c) {
				return false
			}
		}
	}
	if !hasLetter {
		return false
	}
	return len(strings.Fields(name)) >= minWords
}
