package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pkg/browser"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/h0rv/dayroll/internal/auth"
	"github.com/h0rv/dayroll/internal/config"
	"github.com/h0rv/dayroll/internal/dates"
	"github.com/h0rv/dayroll/internal/report"
	"github.com/h0rv/dayroll/internal/rollover"
	"github.com/h0rv/dayroll/internal/stats"
	"github.com/h0rv/dayroll/internal/statsapi"
	"github.com/h0rv/dayroll/internal/trello"
)

var (
	// CLI flags
	configFlag  string
	boardFlag   string
	orgFlag     string
	verboseFlag bool

	fromFlag string
	toFlag   string
	saveFlag bool
	yearFlag int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dayroll",
		Short: "Daily list rollover and label statistics for your task board",
		Long: `dayroll automates date-named daily lists on your task board.

It locates today's and yesterday's work lists by the dates embedded in their
names, migrates unfinished cards forward with label bookkeeping, and tallies
card labels by status color over arbitrary date ranges.

Authentication:
  1. Environment variables: TRELLO_KEY and TRELLO_TOKEN (preferred)
  2. Config file: key/token entries in ~/.config/dayroll/config.yaml`,
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file path. Defaults to ~/.config/dayroll/config.yaml.")
	rootCmd.PersistentFlags().StringVar(&boardFlag, "board", "", "Board name. Overrides the config file.")
	rootCmd.PersistentFlags().StringVar(&orgFlag, "org", "", "Organization name for reporting. Overrides the config file.")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging.")

	rolloverCmd := &cobra.Command{
		Use:   "rollover",
		Short: "Migrate unfinished cards from yesterday's list into today's",
		RunE:  runRollover,
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Tally card labels by status color over a date range",
		RunE:  runStats,
	}
	statsCmd.Flags().StringVar(&fromFlag, "from", "", "Range start (oldest), e.g. 01.03.24.")
	statsCmd.Flags().StringVar(&toFlag, "to", "", "Range end (newest), e.g. 21.03.24.")
	statsCmd.Flags().BoolVar(&saveFlag, "save", false, "Persist bucketed counts to the statistics backend.")
	statsCmd.Flags().IntVar(&yearFlag, "year", 0, "Fetch the cross-board year report from the backend instead of scanning.")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare this month's label counts with last month's",
		RunE:  runCompare,
	}

	openCmd := &cobra.Command{
		Use:   "open",
		Short: "Open the board in the browser",
		RunE:  runOpen,
	}

	rootCmd.AddCommand(rolloverCmd, statsCmd, compareCmd, openCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env ties together everything a command needs: config, logger, API client,
// and the resolved board.
type env struct {
	cfg    *config.Config
	log    zerolog.Logger
	client *trello.Client
}

func setup() (*env, error) {
	path := configFlag
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	creds, err := auth.Resolve(path)
	if err != nil {
		return nil, err
	}

	level := zerolog.InfoLevel
	if verboseFlag {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	return &env{
		cfg:    cfg,
		log:    log,
		client: trello.New(creds),
	}, nil
}

func (e *env) boardName() (string, error) {
	if boardFlag != "" {
		return boardFlag, nil
	}
	if e.cfg.Board != "" {
		return e.cfg.Board, nil
	}
	return "", errors.New("no board configured: pass --board or set board in the config file")
}

func (e *env) orgName() string {
	if orgFlag != "" {
		return orgFlag
	}
	return e.cfg.Org
}

func (e *env) resolveBoard(ctx context.Context) (string, string, error) {
	name, err := e.boardName()
	if err != nil {
		return "", "", err
	}
	board, err := e.client.FindBoard(ctx, name)
	if err != nil {
		return "", "", err
	}
	return board.ID, board.URL, nil
}

func runRollover(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	boardID, _, err := e.resolveBoard(ctx)
	if err != nil {
		return err
	}

	session := rollover.NewSession(e.client, boardID, e.log)
	migrated, err := session.Rollover(ctx)
	if errors.Is(err, rollover.ErrNoYesterdayList) {
		fmt.Println("No list found for a previous day - nothing to migrate from.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("rollover failed: %w", err)
	}

	fmt.Printf("Migrated %d card(s) into today's list.\n", migrated)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if yearFlag != 0 {
		return runYearReport(ctx, e)
	}

	from, to := fromFlag, toFlag
	if from == "" || to == "" {
		from, to = dates.MonthWindow(time.Now())
	}

	boardID, _, err := e.resolveBoard(ctx)
	if err != nil {
		return err
	}

	lists, err := e.client.GetListsWithCards(ctx, boardID)
	if err != nil {
		return err
	}

	name, _ := e.boardName()
	saver := statsapi.New(e.cfg.StatsServerURL())
	agg := stats.New(e.client, saver, boardID, e.log)

	bucket, err := agg.Aggregate(ctx, lists, from, to, stats.Options{
		SaveOnServer: saveFlag,
		BoardName:    name,
		OrgName:      e.orgName(),
	})
	if err != nil {
		return err
	}

	report.PrintBucket(os.Stdout, fmt.Sprintf("%s  %s - %s", name, from, to), bucket)
	if saveFlag {
		fmt.Println("Saved to statistics backend.")
	}
	return nil
}

func runYearReport(ctx context.Context, e *env) error {
	client := statsapi.New(e.cfg.StatsServerURL())
	rep, err := client.Fetch(ctx, yearFlag, e.orgName())
	if err != nil {
		return err
	}
	report.PrintYearReport(os.Stdout, yearFlag, rep)
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	boardID, _, err := e.resolveBoard(ctx)
	if err != nil {
		return err
	}

	lists, err := e.client.GetListsWithCards(ctx, boardID)
	if err != nil {
		return err
	}

	agg := stats.New(e.client, nil, boardID, e.log)
	now := time.Now()

	currFrom, currTo := dates.MonthWindow(now)
	curr, err := agg.Aggregate(ctx, lists, currFrom, currTo, stats.Options{})
	if err != nil {
		return err
	}

	prevFrom, prevTo := dates.MonthWindow(now.AddDate(0, -1, 0))
	prev, err := agg.Aggregate(ctx, lists, prevFrom, prevTo, stats.Options{})
	if err != nil {
		return err
	}

	report.PrintBucket(os.Stdout, "Last month", prev)
	report.PrintBucket(os.Stdout, "This month", curr)
	report.PrintComparison(os.Stdout, stats.CompareMonths(prev, curr))
	return nil
}

func runOpen(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}

	_, url, err := e.resolveBoard(cmd.Context())
	if err != nil {
		return err
	}
	if url == "" {
		return errors.New("board has no URL")
	}
	return browser.OpenURL(url)
}
