// Package textutils provides text extraction and manipulation utilities.
package textutils

import (
	"regexp"
	"strings"
)

var spaces = regexp.MustCompile(`\s+`)

// FirstSubmatch matches re against text and returns the first non-empty named group,
// trying names in order. When every listed group is empty the whole match is returned.
// ok is false only when re does not match at all.
func FirstSubmatch(re *regexp.Regexp, text string, names ...string) (value string, ok bool) {
	matches := re.FindStringSubmatch(text)
	if matches == nil {
		return "", false
	}

	for _, name := range names {
		idx := re.SubexpIndex(name)
		if idx > 0 && idx < len(matches) && matches[idx] != "" {
			return matches[idx], true
		}
	}

	return matches[0], true
}

// CollapseSpaces trims s and replaces every run of whitespace with a single space.
func CollapseSpaces(s string) string {
	return spaces.ReplaceAllString(strings.TrimSpace(s), " ")
}

// CleanName normalizes a captured name such as a merchant or payee: whitespace is
// collapsed and trailing sentence punctuation removed.
func CleanName(s string) string {
	return strings.TrimRight(CollapseSpaces(s), ".,;:-")
}
