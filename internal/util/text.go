package util

import (
	"regexp"
	"strings"
)

var (
	reSeparators = regexp.MustCompile(`[\s.]+`)
	reDisallowed = regexp.MustCompile(`[^\w\-]`)
	reDashRuns   = regexp.MustCompile(`-+`)

	reXHandle       = regexp.MustCompile(`x\.com/([^/?]+)`)
	reTwitterHandle = regexp.MustCompile(`twitter\.com/([^/?]+)`)
)

// Slugify converts a display name into a lowercase kebab-case identifier.
// A name made entirely of punctuation yields an empty slug.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = reSeparators.ReplaceAllString(s, "-")
	s = reDisallowed.ReplaceAllString(s, "")
	s = reDashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// TwitterHandle extracts the username from an x.com or twitter.com URL.
func TwitterHandle(url string) string {
	if url == "" {
		return ""
	}
	if m := reXHandle.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	if m := reTwitterHandle.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

// StripSpaces removes every space character. The path planner and the
// repair pass both use it so directory names and stored references
// normalize the same way.
func StripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
