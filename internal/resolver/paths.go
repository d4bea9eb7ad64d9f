package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Recorded paths come from the server's filesystem, which may be a
// different OS than the local one. Name splitting therefore tolerates
// both separator styles instead of relying on filepath alone.

// normalizePath folds the path to NFC form and makes it the host's
// canonical absolute form. Letter case is preserved; Unicode
// normalization matters because catalog data and filesystem entries
// may encode the same visible name with different code sequences.
// UNC and drive-letter paths are only cleaned: they are already
// anchored, and Abs would misread them on a non-Windows host.
func normalizePath(path string) string {
	path = norm.NFC.String(path)
	if isUNC(path) {
		// Clean would mangle the \\ prefix on non-Windows hosts
		return path
	}
	if drive, _ := splitDrive(path); drive != "" {
		return filepath.Clean(path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// isUNC reports whether the path is a network-style \\host\share path
func isUNC(path string) bool {
	return strings.HasPrefix(path, `\\`)
}

// splitDrive splits a drive-letter prefix ("C:") from the rest of the
// path. Paths without a drive yield an empty drive.
func splitDrive(path string) (drive, rest string) {
	if len(path) >= 2 && path[1] == ':' && isDriveLetter(path[0]) {
		return path[:2], path[2:]
	}
	return "", path
}

func isDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// lastSeparator finds the last path separator of either style
func lastSeparator(path string) int {
	slash := strings.LastIndexByte(path, '/')
	backslash := strings.LastIndexByte(path, '\\')
	if backslash > slash {
		return backslash
	}
	return slash
}

// baseName returns the last path element, tolerating foreign separators
func baseName(path string) string {
	path = strings.TrimRight(path, `/\`)
	if i := lastSeparator(path); i != -1 {
		return path[i+1:]
	}
	return path
}

// dirName returns everything before the last path element
func dirName(path string) string {
	path = strings.TrimRight(path, `/\`)
	if i := lastSeparator(path); i != -1 {
		return path[:i]
	}
	return ""
}

// stem returns the filename without its extension
func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// nameEqual compares two names under the resolver's case rules, after
// folding both to NFC
func (r *Resolver) nameEqual(a, b string) bool {
	if r.opts.CaseInsensitive {
		return foldedEqual(a, b)
	}
	return norm.NFC.String(a) == norm.NFC.String(b)
}

// foldedEqual compares two names case-insensitively after NFC folding
func foldedEqual(a, b string) bool {
	return strings.EqualFold(norm.NFC.String(a), norm.NFC.String(b))
}

func equalFold(a, b string) bool {
	return strings.EqualFold(a, b)
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
