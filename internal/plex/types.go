package plex

// LibraryType identifies what kind of media a library section contains
type LibraryType string

const (
	LibraryMovie LibraryType = "movie"
	LibraryTV    LibraryType = "tv"
)

// Valid reports whether the library type is one of the supported kinds
func (t LibraryType) Valid() bool {
	return t == LibraryMovie || t == LibraryTV
}

// Section represents a library section on the Plex server
type Section struct {
	Key   string
	Title string
	Type  string // "movie" or "show" as reported by the server
}

// Item represents a single catalog entry (a movie or a TV show)
type Item struct {
	Title string
	Kind  LibraryType
	Path  string // file/folder path as recorded by the server; empty if none

	// Guids holds the structured identifier annotations, e.g. "imdb://tt0111161"
	Guids []string

	// Fields holds raw attribute values keyed by field name; the "guid"
	// field carries the legacy agent identifier string
	Fields map[string]string
}
