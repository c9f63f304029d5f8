package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/library"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/stats"
)

var (
	favoriteColumns = []stats.Column{
		{Title: "#", RightAlign: true},
		{Title: "Object", MaxWidth: 16},
		{Title: "Question", MaxWidth: 60},
		{Title: "Answer", MaxWidth: 40},
	}
	recentColumns = []stats.Column{
		{Title: "#", RightAlign: true},
		{Title: "Time"},
		{Title: "Object"},
	}
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show quiz statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLibrary(cmd, func(ctx context.Context, lib *library.Manager) error {
				rec, err := lib.Stats(ctx)
				if err != nil {
					return fmt.Errorf("failed to load stats: %w", err)
				}
				return stats.RenderReport(cmd.OutOrStdout(), rec, 0)
			})
		},
	}
}

func newLibraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "List saved favourite questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLibrary(cmd, func(ctx context.Context, lib *library.Manager) error {
				return printFavorites(ctx, cmd.OutOrStdout(), lib)
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <n>",
		Short: "Remove the n-th favourite question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseEntryNumber(args[0])
			if err != nil {
				return err
			}
			return withLibrary(cmd, func(ctx context.Context, lib *library.Manager) error {
				if err := lib.RemoveFavoriteAt(ctx, index); err != nil {
					return fmt.Errorf("failed to remove favourite %s: %w", args[0], err)
				}
				return printFavorites(ctx, cmd.OutOrStdout(), lib)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all favourite questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLibrary(cmd, func(ctx context.Context, lib *library.Manager) error {
				if err := lib.ClearFavorites(ctx); err != nil {
					return fmt.Errorf("failed to clear favourites: %w", err)
				}
				logErrln("Favourites cleared.")
				return nil
			})
		},
	})
	return cmd
}

func newRecentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently scanned objects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLibrary(cmd, func(ctx context.Context, lib *library.Manager) error {
				return printRecent(ctx, cmd.OutOrStdout(), lib)
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <n>",
		Short: "Remove the n-th recent scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseEntryNumber(args[0])
			if err != nil {
				return err
			}
			return withLibrary(cmd, func(ctx context.Context, lib *library.Manager) error {
				if err := lib.RemoveRecentScanAt(ctx, index); err != nil {
					return fmt.Errorf("failed to remove recent scan %s: %w", args[0], err)
				}
				return printRecent(ctx, cmd.OutOrStdout(), lib)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all recent scans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLibrary(cmd, func(ctx context.Context, lib *library.Manager) error {
				if err := lib.ClearRecentScans(ctx); err != nil {
					return fmt.Errorf("failed to clear recent scans: %w", err)
				}
				logErrln("Recent scans cleared.")
				return nil
			})
		},
	})
	return cmd
}

func withLibrary(cmd *cobra.Command, fn func(context.Context, *library.Manager) error) error {
	if err := resolveOptions(cmd); err != nil {
		return err
	}
	lib, closeStore, err := openLibrary()
	if err != nil {
		return err
	}
	defer closeStore()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, lib)
}

// parseEntryNumber converts a 1-based list number to an index.
func parseEntryNumber(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid entry number %q", v)
	}
	return n - 1, nil
}

func printFavorites(ctx context.Context, w io.Writer, lib *library.Manager) error {
	favs, err := lib.Favorites(ctx)
	if err != nil {
		return fmt.Errorf("failed to load favourites: %w", err)
	}
	if len(favs) == 0 {
		return writeLines(w, []string{"No favourite questions saved yet."})
	}
	rows := make([][]string, 0, len(favs))
	for i, f := range favs {
		rows = append(rows, []string{strconv.Itoa(i + 1), f.Object, f.Question, f.Answer})
	}
	return writeLines(w, stats.FormatTable(favoriteColumns, rows))
}

func printRecent(ctx context.Context, w io.Writer, lib *library.Manager) error {
	recent, err := lib.RecentScans(ctx)
	if err != nil {
		return fmt.Errorf("failed to load recent scans: %w", err)
	}
	if len(recent) == 0 {
		return writeLines(w, []string{"No objects scanned yet."})
	}
	rows := make([][]string, 0, len(recent))
	for i, r := range recent {
		rows = append(rows, []string{strconv.Itoa(i + 1), r.Time, r.Object})
	}
	return writeLines(w, stats.FormatTable(recentColumns, rows))
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
