package nfo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/Nomadcxx/nfosink/internal/ids"
	"github.com/Nomadcxx/nfosink/internal/plex"
)

// ShowMarkerName is the fixed marker filename placed inside a show folder
const ShowMarkerName = "tvshow.nfo"

// markerExt replaces a movie file's extension for its sibling marker
const markerExt = ".nfo"

var (
	// ErrNoIdentifier means the item carried no identifier usable for
	// its library type
	ErrNoIdentifier = errors.New("no usable identifier")

	// ErrNotDirectory means a show path resolved to something that is
	// not a directory
	ErrNotDirectory = errors.New("path is not a directory")

	// ErrNotFile means a movie path resolved to something that is not
	// a regular file
	ErrNotFile = errors.New("path is not a file")

	// ErrNotWritable means the marker's target directory cannot be
	// written to
	ErrNotWritable = errors.New("target directory is not writable")
)

// Writer creates NFO marker files next to resolved media paths
type Writer struct {
	DryRun bool
}

// TargetPath returns where the marker file for a resolved path would be
// written: tvshow.nfo inside a show folder, or a sibling .nfo for a
// movie file
func TargetPath(localPath string, libType plex.LibraryType) string {
	if libType == plex.LibraryTV {
		return filepath.Join(localPath, ShowMarkerName)
	}

	base := filepath.Base(localPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(localPath), name+markerExt)
}

// Content returns the single-line marker content for the best-available
// identifier: the IMDb detail-page URL when present, else the
// kind-specific database URL
func Content(set ids.Set, libType plex.LibraryType) (string, error) {
	if set.IMDb != "" {
		return fmt.Sprintf("https://www.imdb.com/title/%s/", set.IMDb), nil
	}

	switch libType {
	case plex.LibraryMovie:
		if set.TMDb != "" {
			return fmt.Sprintf("https://www.themoviedb.org/movie/%s", set.TMDb), nil
		}
	case plex.LibraryTV:
		if set.TVDB != "" {
			return fmt.Sprintf("https://thetvdb.com/series/%s", set.TVDB), nil
		}
	}

	return "", ErrNoIdentifier
}

// Write validates the resolved path and writes the marker file,
// returning the marker path. In dry-run mode all checks run but
// nothing is written.
func (w *Writer) Write(localPath string, set ids.Set, libType plex.LibraryType) (string, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		return "", fmt.Errorf("resolved path does not exist: %w", err)
	}

	if libType == plex.LibraryTV && !info.IsDir() {
		return "", fmt.Errorf("%s: %w", localPath, ErrNotDirectory)
	}
	if libType == plex.LibraryMovie && info.IsDir() {
		return "", fmt.Errorf("%s: %w", localPath, ErrNotFile)
	}

	content, err := Content(set, libType)
	if err != nil {
		return "", err
	}

	nfoPath := TargetPath(localPath, libType)

	// Writability is checked up front so dry-run reports the same
	// per-item failures a real run would
	markerDir := filepath.Dir(nfoPath)
	if err := unix.Access(markerDir, unix.W_OK); err != nil {
		return "", fmt.Errorf("%s: %w", markerDir, ErrNotWritable)
	}

	if w.DryRun {
		return nfoPath, nil
	}

	if err := os.WriteFile(nfoPath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write marker file: %w", err)
	}

	return nfoPath, nil
}
