package animal

import (
	"strconv"
	"strings"
)

// Slugify lower-cases a name, replaces spaces with underscores, and strips
// apostrophes. The result is the shelter-independent part of a slug.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, "’", "")
	return s
}

// SlugCandidate builds the nth candidate slug for a name owned by a shelter.
// Suffix 0 is the bare candidate; positive suffixes append "-{n}".
func SlugCandidate(shelterUsername, name string, suffix int) string {
	base := shelterUsername + "-" + Slugify(name)
	if suffix <= 0 {
		return base
	}
	return base + "-" + strconv.Itoa(suffix)
}
