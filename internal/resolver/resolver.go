package resolver

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/Nomadcxx/nfosink/internal/plex"
)

// Tier identifies which resolution step produced a local path
type Tier string

const (
	TierDirect        Tier = "direct"         // network path existed as recorded
	TierDriveMapped   Tier = "drive-mapped"   // drive letter substituted from root
	TierStructured    Tier = "structured"     // folder/file located under root
	TierFilename      Tier = "filename"       // matched by filename stem only
	TierFuzzy         Tier = "fuzzy"          // best-scoring partial folder match
	TierDriveFallback Tier = "drive-fallback" // last-resort drive substitution
	TierUnresolved    Tier = "unresolved"     // nothing matched
)

// Result is a resolved local path with the confidence tier that produced it
type Result struct {
	Path string
	Tier Tier
}

// Options controls platform-dependent resolution behavior. These are
// explicit capability flags rather than runtime GOOS checks so both
// branches can be exercised in tests on any host.
type Options struct {
	CaseInsensitive bool // fold case when comparing names
	DriveLetters    bool // paths use drive-letter roots (C:\...)
}

// DefaultOptions derives options from the current host
func DefaultOptions() Options {
	windows := runtime.GOOS == "windows"
	return Options{
		CaseInsensitive: windows,
		DriveLetters:    windows,
	}
}

// Resolver locates catalog-recorded paths on the local filesystem
type Resolver struct {
	opts Options
	log  *logrus.Logger
}

// New creates a resolver with the given options
func New(opts Options, log *logrus.Logger) *Resolver {
	if log == nil {
		log = logrus.New()
	}
	return &Resolver{opts: opts, log: log}
}

// request carries the normalized inputs through the step chain
type request struct {
	original string // recorded path exactly as passed in
	recorded string // normalized recorded path
	root     string // normalized root path
	libType  plex.LibraryType
}

// step is one resolution strategy; it returns a path and whether it
// produced an existing match
type step struct {
	tier Tier
	run  func(*Resolver, request) (string, bool)
}

// Ordered fallback chain. Each step runs only if the previous one
// yielded no existing path; the first hit wins.
var resolveSteps = []step{
	{TierDirect, (*Resolver).directNetworkPath},
	{TierDriveMapped, (*Resolver).remappedDrivePath},
	{TierStructured, (*Resolver).structuredSearch},
	{TierFilename, (*Resolver).filenameFallback},
	{TierFuzzy, (*Resolver).fuzzyFolderMatch},
	{TierDriveFallback, (*Resolver).driveFallback},
}

// Resolve converts a catalog-recorded path into a local filesystem path
// under rootPath. Catalog paths are frequently stale (renamed drives,
// migrated servers, Unicode drift, minor folder renames), so resolution
// is a layered best-effort search. When nothing matches, the recorded
// path is returned unchanged so the caller's existence check fails
// cleanly downstream.
func (r *Resolver) Resolve(recordedPath, rootPath string, libType plex.LibraryType) Result {
	req := request{
		original: recordedPath,
		recorded: normalizePath(recordedPath),
		root:     normalizePath(rootPath),
		libType:  libType,
	}

	for _, s := range resolveSteps {
		path, ok := s.run(r, req)
		if !ok {
			continue
		}
		r.log.WithFields(logrus.Fields{
			"recorded": recordedPath,
			"resolved": path,
			"tier":     s.tier,
		}).Debug("resolved local path")
		return Result{Path: path, Tier: s.tier}
	}

	r.log.WithFields(logrus.Fields{
		"recorded": recordedPath,
		"root":     rootPath,
	}).Warn("could not find recorded path under root")

	return Result{Path: recordedPath, Tier: TierUnresolved}
}

// directNetworkPath accepts a UNC path that exists exactly as recorded
func (r *Resolver) directNetworkPath(req request) (string, bool) {
	if isUNC(req.recorded) && pathExists(req.recorded) {
		return req.recorded, true
	}
	return "", false
}

// remappedDrivePath substitutes the root's drive letter when the
// recorded path lives on a different drive (e.g. C:\filme to Y:\filme)
func (r *Resolver) remappedDrivePath(req request) (string, bool) {
	if !r.opts.DriveLetters {
		return "", false
	}

	recordedDrive, rest := splitDrive(req.recorded)
	rootDrive, _ := splitDrive(req.root)
	if recordedDrive == "" || equalFold(recordedDrive, rootDrive) {
		return "", false
	}

	mapped := rootDrive + rest
	if pathExists(mapped) {
		return mapped, true
	}
	return "", false
}

// structuredSearch walks the root tree looking for the recorded
// folder/file structure
func (r *Resolver) structuredSearch(req request) (string, bool) {
	if req.libType == plex.LibraryMovie {
		return r.findMovie(req)
	}
	return r.findShow(req)
}

// findMovie looks for the recorded parent folder anywhere under root,
// then for the recorded filename inside it (exact first, then a
// case-insensitive retry over the directory entries)
func (r *Resolver) findMovie(req request) (string, bool) {
	folder := baseName(dirName(req.recorded))
	filename := baseName(req.recorded)
	if folder == "" || filename == "" {
		return "", false
	}

	var found string
	walkDirs(req.root, func(dirPath, name string) bool {
		if !r.nameEqual(name, folder) {
			return false
		}

		// Exact filename inside the matched folder
		candidate := filepath.Join(dirPath, filename)
		if pathExists(candidate) {
			found = candidate
			return true
		}

		// Case-insensitive retry over the folder's entries
		entries, err := os.ReadDir(dirPath)
		if err != nil {
			return false
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if foldedEqual(entry.Name(), filename) {
				found = filepath.Join(dirPath, entry.Name())
				return true
			}
		}
		return false
	})

	return found, found != ""
}

// findShow looks for a directory matching the recorded path's basename
func (r *Resolver) findShow(req request) (string, bool) {
	target := baseName(req.recorded)
	if target == "" {
		return "", false
	}

	var found string
	walkDirs(req.root, func(dirPath, name string) bool {
		if r.nameEqual(name, target) {
			found = dirPath
			return true
		}
		return false
	})

	return found, found != ""
}

// filenameFallback walks the whole tree comparing filename stems.
// Movies only; used when the folder-based search found nothing.
func (r *Resolver) filenameFallback(req request) (string, bool) {
	if req.libType != plex.LibraryMovie {
		return "", false
	}

	want := stem(baseName(req.recorded))
	if want == "" {
		return "", false
	}

	var found string
	errStop := errors.New("found")
	filepath.Walk(req.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if r.nameEqual(stem(info.Name()), want) {
			found = path
			return errStop
		}
		return nil
	})

	return found, found != ""
}

// driveFallback applies the drive substitution unconditionally as a
// last resort before giving up
func (r *Resolver) driveFallback(req request) (string, bool) {
	rootDrive, _ := splitDrive(req.root)
	if rootDrive == "" {
		return "", false
	}

	_, rest := splitDrive(req.recorded)
	mapped := rootDrive + rest
	if pathExists(mapped) {
		return mapped, true
	}
	return "", false
}

// walkDirs visits every directory strictly below root and calls match
// with its path and name, stopping when match returns true
func walkDirs(root string, match func(dirPath, name string) bool) {
	errStop := errors.New("found")
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() || path == root {
			return nil
		}
		if match(path, info.Name()) {
			return errStop
		}
		return nil
	})
}
