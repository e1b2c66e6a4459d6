package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"

	"github.com/streamvision/datagen/internal/biz"
	"github.com/streamvision/datagen/internal/conf"
)

var (
	// Version is set via ldflags.
	Version = "dev"

	flagConf string
)

// stdinConfirmer requires the operator to type YES before a destructive
// action proceeds.
type stdinConfirmer struct{}

func (stdinConfirmer) Confirm(action string) bool {
	fmt.Printf("About to %s.\nType 'YES' to confirm: ", action)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == "YES"
}

func newLogger() log.Logger {
	return log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.name", "streamvision-datagen",
		"service.version", Version,
	)
}

func loadBootstrap() (*conf.Bootstrap, error) {
	return conf.Load(flagConf)
}

// runCounts resolves generation targets: full-mode defaults, overridden by
// config, overridden by flags the operator actually set.
func runCounts(cmd *cobra.Command, gc *conf.Generate) biz.Counts {
	counts := biz.DefaultCounts()

	apply := func(target *int, configured int) {
		if configured > 0 {
			*target = configured
		}
	}
	apply(&counts.Users, gc.Users)
	apply(&counts.Content, gc.Content)
	apply(&counts.ViewingSessions, gc.ViewingSessions)
	apply(&counts.Ratings, gc.Ratings)
	apply(&counts.WatchlistItems, gc.WatchlistItems)
	apply(&counts.SubscriptionEvents, gc.SubscriptionEvents)
	apply(&counts.SearchQueries, gc.SearchQueries)
	apply(&counts.EpisodeViewings, gc.EpisodeViewings)
	apply(&counts.Episodes, gc.Episodes)

	flags := []struct {
		name   string
		target *int
	}{
		{"users", &counts.Users},
		{"content", &counts.Content},
		{"sessions", &counts.ViewingSessions},
		{"ratings", &counts.Ratings},
		{"watchlist", &counts.WatchlistItems},
		{"events", &counts.SubscriptionEvents},
		{"searches", &counts.SearchQueries},
		{"episodes", &counts.Episodes},
		{"episode-views", &counts.EpisodeViewings},
	}
	for _, f := range flags {
		if cmd.Flags().Changed(f.name) {
			v, _ := cmd.Flags().GetInt(f.name)
			*f.target = v
		}
	}
	return counts
}

func newGenerateCmd() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and persist the full synthetic dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			bc, err := loadBootstrap()
			if err != nil {
				return err
			}
			logger := newLogger()

			app, cleanup, err := wireApp(bc.Data, bc.Export, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := app.data.Migrate(); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			if !cmd.Flags().Changed("seed") && bc.Generate.Seed != 0 {
				seed = bc.Generate.Seed
			}
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}

			counts := runCounts(cmd, bc.Generate)
			report, err := app.pipeline.Run(cmd.Context(), biz.NewSource(seed), counts)
			printReport(report, seed)
			return err
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = time-derived)")
	cmd.Flags().Int("users", 0, "number of users")
	cmd.Flags().Int("content", 0, "number of content items")
	cmd.Flags().Int("sessions", 0, "number of viewing sessions")
	cmd.Flags().Int("ratings", 0, "maximum number of ratings")
	cmd.Flags().Int("watchlist", 0, "maximum number of watchlist items")
	cmd.Flags().Int("events", 0, "maximum number of subscription events")
	cmd.Flags().Int("searches", 0, "number of search queries")
	cmd.Flags().Int("episodes", 0, "maximum number of episodes")
	cmd.Flags().Int("episode-views", 0, "number of episode viewings")
	return cmd
}

func printReport(report *biz.RunReport, seed uint64) {
	if report == nil {
		return
	}
	fmt.Printf("\nRun %s (seed %d)\n", report.RunID, seed)
	for _, s := range report.Stages {
		fmt.Printf("  %-20s %8d / %d\n", s.Name, s.Inserted, s.Requested)
	}
	fmt.Printf("  %-20s %8d\n", "total", report.TotalInserted())
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Print row counts and aggregate statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			bc, err := loadBootstrap()
			if err != nil {
				return err
			}
			app, cleanup, err := wireApp(bc.Data, bc.Export, newLogger())
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := app.pipeline.Verify(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println("\nTable counts:")
			for _, c := range summary.Counts {
				fmt.Printf("  %-26s %10d\n", c.Label, c.Count)
			}
			fmt.Printf("\nTotal records:       %d\n", summary.TotalRecords)
			fmt.Printf("Total watch hours:   %.1f\n", summary.TotalWatchHours)
			fmt.Printf("Average rating:      %.2f\n", summary.AverageRating)
			fmt.Printf("Average completion:  %.1f%%\n", summary.AverageCompletion)
			fmt.Println("\nPlan breakdown:")
			for _, p := range summary.PlanBreakdown {
				fmt.Printf("  %-12s %8d (%.1f%%)\n", p.Plan, p.Count, p.Percentage)
			}
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export all tables as CSV to the object store",
		RunE: func(cmd *cobra.Command, args []string) error {
			bc, err := loadBootstrap()
			if err != nil {
				return err
			}
			app, cleanup, err := wireApp(bc.Data, bc.Export, newLogger())
			if err != nil {
				return err
			}
			defer cleanup()

			results, err := app.exporter.Run(cmd.Context())
			for _, r := range results {
				fmt.Printf("  %-20s %8d rows -> %s\n", r.Table, r.Rows, r.Key)
			}
			return err
		},
	}
}

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete ALL generated data (requires confirmation)",
		RunE: func(cmd *cobra.Command, args []string) error {
			bc, err := loadBootstrap()
			if err != nil {
				return err
			}
			app, cleanup, err := wireApp(bc.Data, bc.Export, newLogger())
			if err != nil {
				return err
			}
			defer cleanup()

			var confirm biz.Confirmer = stdinConfirmer{}
			if yes {
				confirm = autoConfirmer{}
			}

			done, err := app.pipeline.Reset(cmd.Context(), confirm)
			if err != nil {
				return err
			}
			if !done {
				fmt.Println("Reset cancelled.")
				return nil
			}
			fmt.Println("All tables truncated.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the interactive confirmation")
	return cmd
}

type autoConfirmer struct{}

func (autoConfirmer) Confirm(string) bool { return true }

func main() {
	root := &cobra.Command{
		Use:           "streamvision-datagen",
		Short:         "Synthetic dataset generator for the StreamVision analytics warehouse",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&flagConf, "conf", "configs/config.yaml", "config file path")

	root.AddCommand(
		newGenerateCmd(),
		newVerifyCmd(),
		newExportCmd(),
		newResetCmd(),
	)

	ctx := context.Background()
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
