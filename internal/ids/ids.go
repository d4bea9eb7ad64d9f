package ids

import (
	"regexp"
	"strings"

	"github.com/Nomadcxx/nfosink/internal/plex"
)

// Method records which extraction strategy produced the identifiers
type Method string

const (
	MethodPrimary   Method = "primary"
	MethodSecondary Method = "secondary"
)

// Set holds the external identifiers recovered for one catalog item.
// TMDb is only populated for movies, TVDB only for TV shows; IMDb may
// appear for either.
type Set struct {
	IMDb string `json:"imdb,omitempty"`
	TMDb string `json:"tmdb,omitempty"`
	TVDB string `json:"tvdb,omitempty"`
}

// Pre-compiled regexes for the secondary (legacy guid) extraction
var (
	imdbRegex = regexp.MustCompile(`tt\d+`)
	tmdbRegex = regexp.MustCompile(`tmdb://(\d+)`)
	tvdbRegex = regexp.MustCompile(`tvdb://(\d+)`)
)

// HasFor reports whether the set carries an identifier usable for the
// given library type
func (s Set) HasFor(libType plex.LibraryType) bool {
	if s.IMDb != "" {
		return true
	}
	switch libType {
	case plex.LibraryMovie:
		return s.TMDb != ""
	case plex.LibraryTV:
		return s.TVDB != ""
	}
	return false
}

// Extract recovers external identifiers from an item's metadata.
//
// The primary method scans the structured guid annotations
// (scheme://value?query). If that yields nothing applicable for the
// library type, the secondary method probes the raw legacy guid field
// with regexes. Extraction never fails; an empty Set is a valid result.
func Extract(item plex.Item, libType plex.LibraryType) (Set, Method) {
	set := extractFromGuids(item.Guids, libType)
	if set.HasFor(libType) {
		return set, MethodPrimary
	}

	return extractFromFields(set, item.Fields, libType), MethodSecondary
}

// extractFromGuids scans structured annotations like "imdb://tt1375666"
// or "tmdb://27205?lang=en". First match per scheme wins.
func extractFromGuids(guids []string, libType plex.LibraryType) Set {
	var set Set

	for _, guid := range guids {
		guid = strings.ToLower(guid)

		switch {
		case strings.Contains(guid, "imdb://"):
			if set.IMDb == "" {
				set.IMDb = guidValue(guid, "imdb://")
			}
		case strings.Contains(guid, "tmdb://") && libType == plex.LibraryMovie:
			if set.TMDb == "" {
				set.TMDb = guidValue(guid, "tmdb://")
			}
		case strings.Contains(guid, "tvdb://") && libType == plex.LibraryTV:
			if set.TVDB == "" {
				set.TVDB = guidValue(guid, "tvdb://")
			}
		}
	}

	return set
}

// guidValue extracts the identifier between the scheme marker and the
// first query separator
func guidValue(guid, scheme string) string {
	value := guid[strings.Index(guid, scheme)+len(scheme):]
	if q := strings.Index(value, "?"); q != -1 {
		value = value[:q]
	}
	return value
}

// extractFromFields probes the raw "guid" field with regexes. Used when
// the structured annotations carried nothing applicable (old agents
// stored identifiers like "com.plexapp.agents.imdb://tt0111161?lang=en").
func extractFromFields(set Set, fields map[string]string, libType plex.LibraryType) Set {
	value, ok := fields["guid"]
	if !ok {
		return set
	}
	value = strings.ToLower(value)

	if set.IMDb == "" {
		if match := imdbRegex.FindString(value); match != "" {
			set.IMDb = match
		}
	}

	if set.TMDb == "" && libType == plex.LibraryMovie {
		if match := tmdbRegex.FindStringSubmatch(value); len(match) > 1 {
			set.TMDb = match[1]
		}
	}

	if set.TVDB == "" && libType == plex.LibraryTV {
		if match := tvdbRegex.FindStringSubmatch(value); len(match) > 1 {
			set.TVDB = match[1]
		}
	}

	return set
}
