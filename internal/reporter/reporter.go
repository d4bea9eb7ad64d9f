package reporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Item processing outcomes
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Stats holds the counters accumulated over one run
type Stats struct {
	Success   int `json:"success"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
	Primary   int `json:"primary"`   // identifiers found via structured annotations
	Secondary int `json:"secondary"` // identifiers found via regex fallback
}

// ItemResult records the outcome for a single catalog item
type ItemResult struct {
	Title        string `json:"title"`
	RecordedPath string `json:"recorded_path,omitempty"`
	ResolvedPath string `json:"resolved_path,omitempty"`
	Tier         string `json:"tier,omitempty"`
	Method       string `json:"method,omitempty"`
	NFOPath      string `json:"nfo_path,omitempty"`
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
}

// Report represents one sync run
type Report struct {
	Timestamp   time.Time    `json:"timestamp"`
	ServerURL   string       `json:"server_url"`
	Library     string       `json:"library"`
	LibraryType string       `json:"library_type"`
	RootPath    string       `json:"root_path"`
	DryRun      bool         `json:"dry_run"`
	Stats       Stats        `json:"stats"`
	Items       []ItemResult `json:"items"`
}

// FailedItems returns the results that did not succeed
func (r Report) FailedItems() []ItemResult {
	var failed []ItemResult
	for _, item := range r.Items {
		if item.Status != StatusSuccess {
			failed = append(failed, item)
		}
	}
	return failed
}

// DefaultDir returns the directory where run reports are stored
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp/nfosink/run_results"
	}
	return filepath.Join(home, ".local/share/nfosink/run_results")
}

// Save writes the report as timestamped JSON into dir and returns the
// report path
func Save(report Report, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	timestamp := report.Timestamp.Format("20060102_150405")
	reportPath := filepath.Join(dir, timestamp+".json")

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(reportPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return reportPath, nil
}

// Load reads a previously saved report
func Load(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read report file: %w", err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return Report{}, fmt.Errorf("failed to parse report: %w", err)
	}

	return report, nil
}
