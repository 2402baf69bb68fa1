package cli

import (
	"context"
	"fmt"

	"github.com/ariel-frischer/whatsnew/internal/changelog"
	"github.com/ariel-frischer/whatsnew/internal/config"
	"github.com/ariel-frischer/whatsnew/internal/health"
	"github.com/ariel-frischer/whatsnew/internal/notify"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Aliases: []string{"doc"},
	Short:   "Check the changelog source and read-state storage (doc)",
	Long: `Check that the configured changelog loads, that read state can be
persisted and whether desktop notifications are available.

Unlike the other commands, a served changelog is checked without falling
back to the embedded one.`,
	Example: `  whatsnew doctor`,
	Args:    cobra.NoArgs,
	RunE:    runDoctor,
}

func init() {
	doctorCmd.GroupID = GroupSettings
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd)
	if err != nil {
		report := &health.HealthReport{}
		report.Fail("Configuration", err.Error())
		fmt.Fprint(out, health.FormatReport(report))
		return NewExitError(ExitConfigInvalid)
	}

	opts := health.Options{
		LoadCatalogue: func() (*changelog.Catalogue, error) {
			return loadCatalogueStrict(cmd.Context(), cfg)
		},
		Notifier: notify.NewSender(),
	}
	if cfg.StateBackend != config.BackendMemory {
		opts.StateDir = cfg.StateDir
	}

	report := health.RunHealthChecks(opts)
	fmt.Fprint(out, health.FormatReport(report))
	if !report.Passed {
		return NewExitError(ExitFailure)
	}
	return nil
}

// loadCatalogueStrict loads the configured source without any fallback.
func loadCatalogueStrict(ctx context.Context, cfg *config.Configuration) (*changelog.Catalogue, error) {
	switch cfg.Source {
	case config.SourceFile:
		return changelog.Load(cfg.ChangelogPath)
	case config.SourceRemote:
		ctx, cancel := context.WithTimeout(ctx, cfg.RemoteTimeout)
		defer cancel()
		return changelog.FetchRemote(ctx, cfg.RemoteURL)
	default:
		return changelog.LoadEmbedded()
	}
}
