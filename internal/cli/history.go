package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kelseymakesthings/auto-outfit/internal/history"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// HistoryResult is the success payload of the history command.
type HistoryResult struct {
	Outfits []history.Entry `json:"outfits"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded outfits",
		Long: `Show outfits recorded by generate --db, newest first.

Example:
  outfit history --db ~/.outfit.db
  outfit history --db ~/.outfit.db --limit 5 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to history database (default $OUTFIT_HISTORY_DB)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 10, "maximum number of outfits to show")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := resolveConfig("", "", opts.Database, "")
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to resolve configuration", err)
	}
	if cfg.HistoryDB == "" {
		return NewExitError(ExitCommandError, "history requires --db or $OUTFIT_HISTORY_DB")
	}

	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open history database", err)
	}
	defer store.Close()

	entries, err := store.Recent(cmd.Context(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read history", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(HistoryResult{Outfits: entries})
	}

	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "No outfits recorded yet.")
		return nil
	}

	for _, e := range entries {
		names := make([]string, len(e.Pieces))
		for i, p := range e.Pieces {
			names[i] = p.Name
		}
		fmt.Fprintf(formatter.Writer, "%s  %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), strings.Join(names, ", "))
		formatter.VerboseLog("  id=%s seed=%d", e.ID, e.Seed)
	}
	return nil
}
