// Package health provides environment health checks for whatsnew. It verifies
// that the configured changelog can be loaded, that read state can be
// persisted and whether desktop notifications are available, returning
// structured reports used by the 'whatsnew doctor' command.
package health

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/whatsnew/internal/changelog"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// HealthReport contains all health check results. Optional checks are
// reported but never fail the report.
type HealthReport struct {
	Checks   []CheckResult
	Optional []CheckResult
	Passed   bool
}

// Availability is satisfied by anything that can say whether it is usable,
// such as a notification sender.
type Availability interface {
	Available() bool
}

// Options describes the environment to check.
type Options struct {
	// LoadCatalogue loads the configured changelog.
	LoadCatalogue func() (*changelog.Catalogue, error)
	// StateDir is where read state is persisted. Empty skips the check.
	StateDir string
	// Notifier is checked as an optional capability when set.
	Notifier Availability
}

// RunHealthChecks runs all health checks and returns a report.
func RunHealthChecks(opts Options) *HealthReport {
	report := &HealthReport{Passed: true}

	if opts.LoadCatalogue != nil {
		cat, err := opts.LoadCatalogue()
		report.add(CheckChangelog(cat, err))
		if err == nil {
			report.Optional = append(report.Optional, CheckOrdering(cat))
		}
	}
	if opts.StateDir != "" {
		report.add(CheckStateDir(opts.StateDir))
	}
	if opts.Notifier != nil {
		report.Optional = append(report.Optional, CheckNotifier(opts.Notifier))
	}

	return report
}

// Fail records a failed check, for problems found before the checks could run.
func (r *HealthReport) Fail(name, message string) {
	r.add(CheckResult{Name: name, Passed: false, Message: message})
}

func (r *HealthReport) add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Passed {
		r.Passed = false
	}
}

// CheckChangelog checks the result of loading the catalogue: it must have
// loaded and have at least one valid version.
func CheckChangelog(cat *changelog.Catalogue, err error) CheckResult {
	if err != nil {
		return CheckResult{
			Name:    "Changelog",
			Passed:  false,
			Message: err.Error(),
		}
	}

	latest, err := cat.LatestVersion()
	if err != nil {
		return CheckResult{
			Name:    "Changelog",
			Passed:  false,
			Message: fmt.Sprintf("%d entries but no valid version", cat.Len()),
		}
	}

	msg := fmt.Sprintf("%d entries, latest %s", cat.Len(), changelog.VersionLabel(latest))
	if malformed := cat.Malformed(); len(malformed) > 0 {
		ids := make([]string, 0, len(malformed))
		for _, e := range malformed {
			ids = append(ids, e.ID)
		}
		msg += fmt.Sprintf(" (ignoring malformed versions: %s)", strings.Join(ids, ", "))
	}

	return CheckResult{
		Name:    "Changelog",
		Passed:  true,
		Message: msg,
	}
}

// CheckOrdering warns when versions are not listed newest first. The latest
// version is taken from the first entry, so a misordered list shows the
// wrong badge.
func CheckOrdering(cat *changelog.Catalogue) CheckResult {
	versions := cat.Versions()
	for i := 1; i < len(versions); i++ {
		if changelog.VersionNewer(versions[i], versions[i-1]) {
			return CheckResult{
				Name:   "Ordering",
				Passed: false,
				Message: fmt.Sprintf("%s is listed after older %s, entries should be newest first",
					changelog.VersionLabel(versions[i]), changelog.VersionLabel(versions[i-1])),
			}
		}
	}
	return CheckResult{
		Name:    "Ordering",
		Passed:  true,
		Message: "entries are newest first",
	}
}

// CheckStateDir checks that read state can be written under dir.
func CheckStateDir(dir string) CheckResult {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return CheckResult{
			Name:    "Read state",
			Passed:  false,
			Message: fmt.Sprintf("cannot create %s: %v", dir, err),
		}
	}

	scratch, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return CheckResult{
			Name:    "Read state",
			Passed:  false,
			Message: fmt.Sprintf("%s is not writable: %v", dir, err),
		}
	}
	scratch.Close()
	os.Remove(scratch.Name())

	return CheckResult{
		Name:    "Read state",
		Passed:  true,
		Message: fmt.Sprintf("%s is writable", filepath.Clean(dir)),
	}
}

// CheckNotifier reports whether desktop notifications can be shown.
func CheckNotifier(n Availability) CheckResult {
	if !n.Available() {
		return CheckResult{
			Name:    "Desktop notifications",
			Passed:  false,
			Message: "no notification tool found (watch --notify is disabled)",
		}
	}
	return CheckResult{
		Name:    "Desktop notifications",
		Passed:  true,
		Message: "available",
	}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var b strings.Builder

	for _, check := range report.Checks {
		if check.Passed {
			fmt.Fprintf(&b, "✓ %s: %s\n", check.Name, check.Message)
		} else {
			fmt.Fprintf(&b, "✗ %s: %s\n", check.Name, check.Message)
		}
	}

	if len(report.Optional) > 0 {
		b.WriteString("\nOptional:\n")
		for _, check := range report.Optional {
			if check.Passed {
				fmt.Fprintf(&b, "  ✓ %s: %s\n", check.Name, check.Message)
			} else {
				fmt.Fprintf(&b, "  ○ %s: %s\n", check.Name, check.Message)
			}
		}
	}

	return b.String()
}
