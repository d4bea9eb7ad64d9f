package reporter

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()

	report := Report{
		Timestamp:   time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
		ServerURL:   "http://localhost:32400",
		Library:     "TV Shows",
		LibraryType: "tv",
		RootPath:    "/media/tv",
		Stats: Stats{
			Success:   2,
			Failed:    1,
			Primary:   2,
			Secondary: 1,
		},
		Items: []ItemResult{
			{Title: "Breaking Bad", Status: StatusSuccess, Method: "primary"},
			{Title: "Westworld", Status: StatusSuccess, Method: "secondary"},
			{Title: "Lost Show", Status: StatusFailed, Error: "path not resolved"},
		},
	}

	path, err := Save(report, dir)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	wantPath := filepath.Join(dir, "20260314_150926.json")
	if path != wantPath {
		t.Errorf("Save() path = %q, want %q", path, wantPath)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if loaded.Library != report.Library {
		t.Errorf("Library = %q, want %q", loaded.Library, report.Library)
	}
	if loaded.Stats != report.Stats {
		t.Errorf("Stats = %+v, want %+v", loaded.Stats, report.Stats)
	}
	if len(loaded.Items) != len(report.Items) {
		t.Fatalf("got %d items, want %d", len(loaded.Items), len(report.Items))
	}
	if loaded.Items[2].Error != "path not resolved" {
		t.Errorf("Items[2].Error = %q", loaded.Items[2].Error)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "run_results")

	report := Report{Timestamp: time.Now()}
	if _, err := Save(report, dir); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("report directory not created: %v", err)
	}
}

func TestFailedItems(t *testing.T) {
	report := Report{
		Items: []ItemResult{
			{Title: "A", Status: StatusSuccess},
			{Title: "B", Status: StatusFailed},
			{Title: "C", Status: StatusSkipped},
			{Title: "D", Status: StatusSuccess},
		},
	}

	failed := report.FailedItems()
	if len(failed) != 2 {
		t.Fatalf("got %d failed items, want 2", len(failed))
	}
	if failed[0].Title != "B" || failed[1].Title != "C" {
		t.Errorf("FailedItems() = %q, %q, want B, C", failed[0].Title, failed[1].Title)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Load() on missing file succeeded, want error")
	}
}
