package resolver

import (
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	"github.com/Nomadcxx/nfosink/internal/plex"
)

// fuzzyThreshold is the minimum (strictly exceeded) similarity score
// for accepting a partial folder match. Tuned against charSetRatio
// specifically; do not reuse with a different metric.
const fuzzyThreshold = 0.7

// fuzzyFolderMatch walks the root tree scoring every directory whose
// name is a substring of the target or vice versa, and accepts the
// best-scoring candidate above the threshold. TV shows only; this
// recovers folders that drifted slightly from the catalog title.
func (r *Resolver) fuzzyFolderMatch(req request) (string, bool) {
	if req.libType != plex.LibraryTV {
		return "", false
	}

	target := r.foldName(baseName(req.recorded))
	if target == "" {
		return "", false
	}

	bestScore := 0.0
	bestPath := ""

	filepathWalkDirs(req.root, func(dirPath, name string) {
		name = r.foldName(name)
		if !strings.Contains(name, target) && !strings.Contains(target, name) {
			return
		}
		if score := charSetRatio(target, name); score > bestScore {
			bestScore = score
			bestPath = dirPath
		}
	})

	if bestScore > fuzzyThreshold {
		r.log.WithFields(logrus.Fields{
			"target": target,
			"match":  baseName(bestPath),
			"score":  bestScore,
		}).Info("accepted partial folder match")
		return bestPath, true
	}

	return "", false
}

// foldName normalizes a name for fuzzy comparison (NFC, case folded
// when the platform is case-insensitive)
func (r *Resolver) foldName(name string) string {
	name = norm.NFC.String(name)
	if r.opts.CaseInsensitive {
		name = strings.ToLower(name)
	}
	return name
}

// charSetRatio scores name similarity as the size of the rune-set
// intersection over the longer name's rune count. The metric ignores
// character multiplicity and ordering; it is a heuristic, not an edit
// distance, and the acceptance threshold was tuned against exactly
// this behavior.
func charSetRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}

	setA := make(map[rune]struct{})
	for _, r := range a {
		setA[r] = struct{}{}
	}

	setB := make(map[rune]struct{})
	for _, r := range b {
		setB[r] = struct{}{}
	}

	intersection := 0
	for r := range setA {
		if _, ok := setB[r]; ok {
			intersection++
		}
	}

	longer := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longer {
		longer = n
	}

	return float64(intersection) / float64(longer)
}

// filepathWalkDirs visits every directory strictly below root without
// early exit, since fuzzy matching must consider all candidates
func filepathWalkDirs(root string, visit func(dirPath, name string)) {
	walkDirs(root, func(dirPath, name string) bool {
		visit(dirPath, name)
		return false
	})
}
