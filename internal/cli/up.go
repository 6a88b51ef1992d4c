package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repositorySlug = "happyhackingspace/nerprobe"

func (c *CLI) newUpCommand() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Self-update to the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.selfUpdate(cmd.Context(), cmd.OutOrStdout(), checkOnly)
		},
	}
	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only report whether a newer release exists")
	return cmd
}

// comparableVersion maps development builds below every release.
func comparableVersion(v string) string {
	if v == "" || v == "dev" {
		return "0.0.0"
	}
	return v
}

func (c *CLI) selfUpdate(ctx context.Context, out io.Writer, checkOnly bool) error {
	updater, err := selfupdate.NewUpdater(selfupdate.Config{})
	if err != nil {
		return err
	}

	latest, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return fmt.Errorf("detect latest release: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", repositorySlug)
	}
	if latest.LessOrEqual(comparableVersion(c.version)) {
		_, _ = fmt.Fprintf(out, "nerprobe %s is up to date\n", c.version)
		return nil
	}
	if checkOnly {
		_, _ = fmt.Fprintf(out, "nerprobe %s is available (running %s)\n", latest.Version(), c.version)
		return nil
	}

	slog.Info("Updating", "from", c.version, "to", latest.Version(), "url", latest.AssetURL)
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	if err := updater.UpdateTo(ctx, latest, exe); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Updated to %s\n", latest.Version())
	return nil
}
