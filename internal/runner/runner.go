// Package runner drives one sync pass: it pulls items from the catalog,
// extracts identifiers, resolves local paths, and writes marker files,
// collecting per-item results into a report.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/Nomadcxx/nfosink/internal/ids"
	"github.com/Nomadcxx/nfosink/internal/nfo"
	"github.com/Nomadcxx/nfosink/internal/plex"
	"github.com/Nomadcxx/nfosink/internal/reporter"
	"github.com/Nomadcxx/nfosink/internal/resolver"
)

// Catalog is the subset of the media server client the runner needs
type Catalog interface {
	SectionByName(ctx context.Context, name string) (plex.Section, error)
	Items(ctx context.Context, section plex.Section) ([]plex.Item, error)
}

// Runner processes a library sequentially, one item at a time
type Runner struct {
	Catalog  Catalog
	Resolver *resolver.Resolver
	Writer   *nfo.Writer
	Log      *logrus.Logger

	ServerURL string
	Library   string
	LibType   plex.LibraryType
	RootPath  string

	// Progress enables the terminal progress bar; off in tests
	Progress bool
}

// Run syncs the configured library and returns the run report. Item
// failures are recorded and do not stop the run; only catalog errors
// and context cancellation abort it.
func (r *Runner) Run(ctx context.Context) (reporter.Report, error) {
	report := reporter.Report{
		Timestamp:   time.Now(),
		ServerURL:   r.ServerURL,
		Library:     r.Library,
		LibraryType: string(r.LibType),
		RootPath:    r.RootPath,
		DryRun:      r.Writer.DryRun,
	}

	section, err := r.Catalog.SectionByName(ctx, r.Library)
	if err != nil {
		return report, fmt.Errorf("failed to find library: %w", err)
	}

	items, err := r.Catalog.Items(ctx, section)
	if err != nil {
		return report, fmt.Errorf("failed to list library items: %w", err)
	}

	r.Log.WithFields(logrus.Fields{
		"library": r.Library,
		"items":   len(items),
	}).Info("starting sync")

	var bar *progressbar.ProgressBar
	if r.Progress {
		bar = progressbar.Default(int64(len(items)), "syncing")
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result := r.processItem(item)
		report.Items = append(report.Items, result)

		switch result.Status {
		case reporter.StatusSuccess:
			report.Stats.Success++
		case reporter.StatusSkipped:
			report.Stats.Skipped++
		default:
			report.Stats.Failed++
		}
		switch ids.Method(result.Method) {
		case ids.MethodPrimary:
			report.Stats.Primary++
		case ids.MethodSecondary:
			report.Stats.Secondary++
		}

		if bar != nil {
			bar.Add(1)
		}
	}

	r.Log.WithFields(logrus.Fields{
		"success": report.Stats.Success,
		"failed":  report.Stats.Failed,
		"skipped": report.Stats.Skipped,
	}).Info("sync complete")

	return report, nil
}

// processItem handles a single catalog item; all failure modes are
// captured in the result rather than returned
func (r *Runner) processItem(item plex.Item) reporter.ItemResult {
	result := reporter.ItemResult{
		Title:        item.Title,
		RecordedPath: item.Path,
	}

	if item.Path == "" {
		r.Log.WithField("title", item.Title).Debug("item has no recorded path, skipping")
		result.Status = reporter.StatusSkipped
		result.Error = "no path recorded on server"
		return result
	}

	set, method := ids.Extract(item, r.LibType)
	if set.HasFor(r.LibType) {
		result.Method = string(method)
	} else {
		r.Log.WithField("title", item.Title).Warn("no usable identifier found")
		result.Status = reporter.StatusFailed
		result.Error = "no usable identifier found"
		return result
	}

	resolved := r.Resolver.Resolve(item.Path, r.RootPath, r.LibType)
	result.ResolvedPath = resolved.Path
	result.Tier = string(resolved.Tier)

	nfoPath, err := r.Writer.Write(resolved.Path, set, r.LibType)
	if err != nil {
		r.Log.WithFields(logrus.Fields{
			"title": item.Title,
			"path":  resolved.Path,
		}).WithError(err).Warn("failed to write marker")
		result.Status = reporter.StatusFailed
		result.Error = err.Error()
		return result
	}

	result.NFOPath = nfoPath
	result.Status = reporter.StatusSuccess
	return result
}
