package quantumviz

import "regexp"

var (
	heightPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?px$`)
	widthPattern  = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?(px|%)$`)
)

// ValidHeight accepts "<number>px".
func ValidHeight(s string) bool {
	return heightPattern.MatchString(s)
}

// ValidWidth accepts "<number>px" or "<number>%".
func ValidWidth(s string) bool {
	return widthPattern.MatchString(s)
}

// dimension reads an optional dimension key, keeping fallback when absent.
func dimension(obj map[string]any, key, fallback string, valid func(string) bool) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return fallback, nil
	}
	s, isString := raw.(string)
	if !isString || !valid(s) {
		return "", renderErr(KindInvalidDimension, "invalid %s %v", key, raw)
	}
	return s, nil
}
