package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	supabasego "github.com/supabase-community/supabase-go"

	"stallion/domain"
	"stallion/errors"
	"stallion/services"
	"stallion/supabase"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type rootOptions struct {
	logLevel string
	envFiles []string
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "scraper",
		Short:         "Collect netkeiba horses, races and rankings into the stallion database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level, overrides LOG_LEVEL")
	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv files loaded before the environment (default .env)")

	root.AddCommand(
		newCheckCommand(opts),
		newHorseCommand(opts),
		newHorsesCommand(opts),
		newRaceCommand(opts),
		newRacesCommand(opts),
		newRankingsCommand(opts),
		newSearchCommand(opts),
		newRunsCommand(opts),
		newStatsCommand(opts),
	)
	return root
}

// withApp builds the application for one command and closes it once fn returns.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, a *app) error) (err error) {
	a, err := newApp(opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()
	return fn(cmd.Context(), a)
}

func newCheckCommand(opts *rootOptions) *cobra.Command {
	var ping bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Build both Supabase handles and show the role carried by each key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				handles := []struct {
					name   string
					role   string
					client *supabasego.Client
				}{
					{"public", a.clients.PublicRole, a.clients.Public},
					{"service", a.clients.ServiceRole, a.clients.Service},
				}
				table := newTable(a.out, "Handle", "Endpoint", "Key role", "Horses")
				for _, h := range handles {
					horses := "-"
					if ping {
						n, err := supabase.Count(ctx, h.client, "horses", "id")
						if err != nil {
							horses = failure(err.Error())
						} else {
							horses = fmt.Sprint(n)
						}
					}
					table.Append([]string{h.name, a.clients.URL, roleLabel(h.role), horses})
				}
				table.Render()
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&ping, "ping", false, "count the horses table through each handle")
	return cmd
}

func newHorseCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "horse <id>",
		Short: "Scrape one horse with its pedigree and store it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				service, err := a.horseService(ctx)
				if err != nil {
					return err
				}
				horse, err := service.Scrape(ctx, args[0])
				if err != nil {
					return err
				}
				printHorse(a.out, horse)
				return nil
			})
		},
	}
}

func newHorsesCommand(opts *rootOptions) *cobra.Command {
	var batch services.BatchOptions
	cmd := &cobra.Command{
		Use:   "horses",
		Short: "Scrape the G1 winners list with a pool of workers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				service, err := a.batchService(ctx)
				if err != nil {
					return err
				}
				if batch.Workers <= 0 {
					batch.Workers = a.config.ScraperWorkers
				}
				if !cmd.Flags().Changed("output-dir") {
					batch.OutputDir = a.config.OutputDir
				}
				batch.RestartInterval = a.config.RestartInterval
				batch.MetricInterval = a.config.MetricInterval
				batch.ReportInterval = a.config.ReportInterval

				report, err := service.Run(ctx, batch)
				printReport(a.out, report)
				return err
			})
		},
	}
	cmd.Flags().IntVar(&batch.List.Max, "max", 0, "maximum number of horses, 0 reads the whole list")
	cmd.Flags().IntVar(&batch.List.Offset, "offset", 0, "position of the first horse in the list")
	cmd.Flags().IntVar(&batch.List.MinBirthYear, "min-birth-year", services.DefaultMinBirthYear, "stop at the first horse born before")
	cmd.Flags().BoolVar(&batch.SkipExisting, "skip-existing", true, "skip horses already stored")
	cmd.Flags().IntVar(&batch.Workers, "workers", 0, "number of detail workers (default SCRAPER_WORKERS)")
	cmd.Flags().StringVar(&batch.OutputDir, "output-dir", "", "directory receiving the JSON report, empty disables it (default OUTPUT_DIR)")
	return cmd
}

func newRaceCommand(opts *rootOptions) *cobra.Command {
	var store bool
	cmd := &cobra.Command{
		Use:   "race <id>",
		Short: "Scrape one race page and show its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				service, err := a.raceService(ctx)
				if err != nil {
					return err
				}
				if store {
					stats := service.ScrapeAndStore(ctx, []domain.RaceSummary{{RaceID: args[0]}}, false)
					printStoreStats(a.out, stats)
					return nil
				}
				detail, err := service.Detail(ctx, args[0])
				if err != nil {
					return err
				}
				printRace(a.out, detail)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&store, "store", false, "save the race and its results")
	return cmd
}

type racesOptions struct {
	conditions   domain.RaceConditions
	g1Year       int
	recentDays   int
	skipExisting bool
	listOnly     bool
}

func newRacesCommand(opts *rootOptions) *cobra.Command {
	var o racesOptions
	cmd := &cobra.Command{
		Use:   "races",
		Short: "Search races and store every race found",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				service, err := a.raceService(ctx)
				if err != nil {
					return err
				}
				var stats domain.StoreStats
				switch {
				case o.g1Year > 0:
					stats, err = service.G1ByYear(ctx, o.g1Year)
				case o.recentDays > 0:
					stats, err = service.Recent(ctx, o.recentDays)
				default:
					var races []domain.RaceSummary
					races, err = service.List(ctx, o.conditions)
					if err != nil {
						return err
					}
					if o.listOnly {
						printRaceList(a.out, races)
						return nil
					}
					stats = service.ScrapeAndStore(ctx, races, o.skipExisting)
				}
				if err != nil {
					return err
				}
				printStoreStats(a.out, stats)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&o.conditions.StartYear, "start-year", 0, "first year searched (default last year)")
	cmd.Flags().IntVar(&o.conditions.EndYear, "end-year", 0, "last year searched (default this year)")
	cmd.Flags().StringSliceVar(&o.conditions.Grades, "grade", nil, "grade codes, 1 for G1, 2 for G2, 3 for G3 (default 1,2)")
	cmd.Flags().StringSliceVar(&o.conditions.Venues, "venue", nil, "racecourse codes 01 to 10 (default every JRA course)")
	cmd.Flags().StringVar(&o.conditions.Word, "word", "", "race name keyword")
	cmd.Flags().IntVar(&o.conditions.Limit, "limit", 0, "maximum number of races listed (default 100)")
	cmd.Flags().IntVar(&o.g1Year, "g1-year", 0, "store every G1 race of the year")
	cmd.Flags().IntVar(&o.recentDays, "recent-days", 0, "store the G1 and G2 races of the last days")
	cmd.Flags().BoolVar(&o.skipExisting, "skip-existing", true, "skip races already stored")
	cmd.Flags().BoolVar(&o.listOnly, "list", false, "only print the races found")
	cmd.MarkFlagsMutuallyExclusive("g1-year", "recent-days")
	return cmd
}

func newRankingsCommand(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:       "rankings <jockey|trainer|owner|breeder>",
		Short:     "Scrape a ranking list and store it",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.RankingJockey), string(domain.RankingTrainer), string(domain.RankingOwner), string(domain.RankingBreeder)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseRankingKind(strings.ToLower(args[0]))
			if err != nil {
				return fmt.Errorf("%w: %q", err, args[0])
			}
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				service, err := a.rankingService(ctx)
				if err != nil {
					return err
				}
				rankings, err := service.ScrapeAndStore(ctx, kind, limit)
				if err != nil {
					return err
				}
				printRankings(a.out, rankings)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 100, "number of entries, 0 reads the whole list")
	return cmd
}

func newSearchCommand(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search the names of the horses scraped so far and of their ancestors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				index, err := a.index()
				if err != nil {
					return err
				}
				horses, err := index.Search(ctx, strings.Join(args, " "), limit)
				if err != nil {
					return err
				}
				table := newTable(a.out, "ID", "Name", "English name", "Scraped")
				for _, h := range horses {
					table.Append([]string{h.ID, h.NameJa, h.NameEn, yesNo(!h.Ancestor)})
				}
				table.Render()
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of matches")
	return cmd
}

func newRunsCommand(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List the latest batch runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				journal, err := a.journal(ctx)
				if err != nil {
					return err
				}
				reports, err := journal.Latest(limit)
				if err != nil {
					return err
				}
				table := newTable(a.out, "Run", "Started", "Duration", "Total", "OK", "Failed", "Skipped")
				for _, r := range reports {
					table.Append([]string{
						r.RunID.String()[:8],
						r.StartedAt.Local().Format(time.DateTime),
						r.Duration().Round(time.Second).String(),
						fmt.Sprint(r.Total),
						success(fmt.Sprint(len(r.Success))),
						failure(fmt.Sprint(len(r.Failed))),
						skip(fmt.Sprint(len(r.Skipped))),
					})
				}
				table.Render()
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of runs, 0 lists every run")
	return cmd
}

func newStatsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise the stored races",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				s, err := a.storage(ctx)
				if err != nil {
					return err
				}
				stats, err := s.races.Stats(ctx)
				if err != nil {
					return err
				}
				printRaceStats(a.out, stats)
				return nil
			})
		},
	}
}
