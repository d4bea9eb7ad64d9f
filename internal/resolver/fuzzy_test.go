package resolver

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/Nomadcxx/nfosink/internal/plex"
)

func TestCharSetRatio(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want float64
	}{
		{"breaking bad", "breaking bad", 1.0},
		{"", "anything", 0.0},
		{"anything", "", 0.0},
		// Same character set, reordered: intersection is the shared
		// set size, denominator the (equal) rune count
		{"aaabcdefga", "bcdefga", 0.7},
		{"westworld", "westworlds", 0.8},
		{"abc", "xyz", 0.0},
	}

	for _, tt := range tests {
		got := charSetRatio(tt.a, tt.b)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("charSetRatio(%q, %q) = %.4f, want %.4f", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFuzzyMatchAccepted(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, filepath.Join(root, "Westworlds"))

	r := testResolver(Options{CaseInsensitive: true})
	result := r.Resolve("/media/tv/Westworld", root, plex.LibraryTV)

	want := filepath.Join(root, "Westworlds")
	if result.Path != want {
		t.Errorf("Resolve() = %q, want %q", result.Path, want)
	}
	if result.Tier != TierFuzzy {
		t.Errorf("Tier = %q, want %q", result.Tier, TierFuzzy)
	}
}

func TestFuzzyMatchRejectedAtThreshold(t *testing.T) {
	root := t.TempDir()
	// charSetRatio("aaabcdefga", "bcdefga") is exactly 0.70, which must
	// NOT be accepted: the threshold is strictly greater-than
	mkdirAll(t, filepath.Join(root, "bcdefga"))

	r := testResolver(Options{CaseInsensitive: true})
	result := r.Resolve("/media/tv/aaabcdefga", root, plex.LibraryTV)

	if result.Tier != TierUnresolved {
		t.Errorf("Tier = %q, want %q (score 0.70 must not match)", result.Tier, TierUnresolved)
	}
}

func TestFuzzyPicksBestCandidate(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, filepath.Join(root, "Westworlds"))
	mkdirAll(t, filepath.Join(root, "Westworlds Extras"))

	r := testResolver(Options{CaseInsensitive: true})
	result := r.Resolve("/media/tv/Westworld", root, plex.LibraryTV)

	want := filepath.Join(root, "Westworlds")
	if result.Path != want {
		t.Errorf("Resolve() = %q, want best-scoring %q", result.Path, want)
	}
}

func TestFuzzyNotUsedForMovies(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, filepath.Join(root, "Westworlds"))

	r := testResolver(Options{CaseInsensitive: true})
	result := r.Resolve("/media/Westworld/film.mkv", root, plex.LibraryMovie)

	if result.Tier != TierUnresolved {
		t.Errorf("Tier = %q, want %q (fuzzy is TV-only)", result.Tier, TierUnresolved)
	}
}

func TestFuzzyRequiresSubstringRelation(t *testing.T) {
	root := t.TempDir()
	// Same characters reordered score 1.0 but fail the substring gate
	mkdirAll(t, filepath.Join(root, "dab gnikaerb"))

	r := testResolver(Options{CaseInsensitive: true})
	result := r.Resolve("/media/tv/breaking bad", root, plex.LibraryTV)

	if result.Tier != TierUnresolved {
		t.Errorf("Tier = %q, want %q", result.Tier, TierUnresolved)
	}
}
