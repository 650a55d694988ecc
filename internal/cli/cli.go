package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bdxtown/agenda-digest/internal/calendar"
	"github.com/bdxtown/agenda-digest/internal/config"
	"github.com/bdxtown/agenda-digest/internal/locale"
	"github.com/bdxtown/agenda-digest/internal/logger"
	"github.com/bdxtown/agenda-digest/internal/metrics"
	"github.com/bdxtown/agenda-digest/internal/mobilizon"
	"github.com/bdxtown/agenda-digest/internal/normalize"
	"github.com/bdxtown/agenda-digest/internal/notifier"
	"github.com/bdxtown/agenda-digest/internal/pipeline"
	"github.com/bdxtown/agenda-digest/internal/scraper"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

const (
	PublisherMastodon = "mastodon"
	PublisherTwitter  = "twitter"
)

type rootOptions struct {
	configPath  string
	dryRun      bool
	format      string
	publisher   string
	sortOrder   string
	dedup       bool
	icsPath     string
	pushgateway string
	verbose     bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "agenda-digest",
		Short: "Publish the weekly digest of local events",
		Long: `A CLI tool that collects the coming week's events from the municipal agenda
and a Mobilizon instance, merges them by date and publishes one Markdown post.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "agenda-digest.yaml", "Path to the YAML configuration file")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the digest instead of publishing it")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&opts.publisher, "publisher", PublisherMastodon, "Publisher: mastodon or twitter")
	cmd.Flags().StringVar(&opts.sortOrder, "sort", string(SortByDate), "Sort order of the report: date, source or title")
	cmd.Flags().BoolVar(&opts.dedup, "dedup", false, "Drop events listed by both sources on the same day")
	cmd.Flags().StringVar(&opts.icsPath, "ics", "", "Also write the digest's events to this .ics file")
	cmd.Flags().StringVar(&opts.pushgateway, "pushgateway", "", "Pushgateway URL for run metrics (overrides config)")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newAuthURLCmd(opts))

	return cmd
}

// newAuthURLCmd prints the page where the Mastodon authorization code is issued.
func newAuthURLCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "auth-url",
		Short: "Print the Mastodon authorization URL for the configured application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}
			if cfg.Mastodon.ClientID == "" {
				return fmt.Errorf("mastodon client_id is not configured")
			}
			fmt.Fprintln(cmd.OutOrStdout(), notifier.AuthorizationURL(cfg.Mastodon.Instance, cfg.Mastodon.ClientID))
			return nil
		},
	}
}

// runDigest is the main command logic
func runDigest(cmd *cobra.Command, opts *rootOptions) error {
	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}
	sortOrder := SortOrder(strings.ToLower(opts.sortOrder))
	if sortOrder != SortByDate && sortOrder != SortBySource && sortOrder != SortByTitle {
		return fmt.Errorf("invalid sort order: %s (must be 'date', 'source' or 'title')", opts.sortOrder)
	}
	switch strings.ToLower(opts.publisher) {
	case PublisherMastodon, PublisherTwitter:
	default:
		return fmt.Errorf("unknown publisher: %s (must be 'mastodon' or 'twitter')", opts.publisher)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.pushgateway != "" {
		cfg.Pushgateway = opts.pushgateway
	}

	runID := uuid.NewString()
	if err := setupLogger(cfg.LogLevel, opts.verbose, cmd.ErrOrStderr(), runID); err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	output, err := locale.ByName(cfg.OutputLocale)
	if err != nil {
		return fmt.Errorf("output locale: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}

	sc := scraper.New(cfg.Agenda.BaseURL, httpClient)
	sc.SetEndMarker(cfg.Agenda.EndMarker)
	sc.SetUserAgent(cfg.HTTP.UserAgent)

	mc := mobilizon.NewClient(cfg.Mobilizon.Endpoint, cfg.Mobilizon.EventsURL, cfg.MobilizonVariables(), httpClient)
	mc.SetUserAgent(cfg.HTTP.UserAgent)

	m := metrics.New()
	norm, err := normalize.New(cfg.Agenda.BaseURL, locale.French, output, loc)
	if err != nil {
		return fmt.Errorf("initializing normalizer: %w", err)
	}
	norm.WithMetrics(m)

	dryRunOut := cmd.OutOrStdout()
	if format == FormatJSON {
		// keep stdout valid JSON
		dryRunOut = cmd.ErrOrStderr()
	}
	pub, err := newPublisher(opts, cfg, httpClient, runID, dryRunOut)
	if err != nil {
		return fmt.Errorf("initializing publisher: %w", err)
	}

	logger.Debug("Configuration loaded", logger.Fields{
		"config":    opts.configPath,
		"publisher": opts.publisher,
		"dry_run":   opts.dryRun,
		"timezone":  cfg.Timezone,
		"agenda":    sc.BaseURL(),
	})

	runner := pipeline.New(sc, mc, norm, pub, pipeline.Options{
		City:       cfg.City,
		WindowDays: cfg.WindowDays,
		Location:   loc,
		Dedup:      opts.dedup,
	}).WithMetrics(m).WithRunID(runID)

	result, runErr := runner.Run(cmd.Context())

	if cfg.Pushgateway != "" {
		if err := m.Push(cmd.Context(), cfg.Pushgateway); err != nil {
			logger.Warn("Failed to push metrics", logger.Fields{"pushgateway": cfg.Pushgateway, "error": err.Error()})
		}
	}

	if runErr != nil {
		return runErr
	}

	if opts.icsPath != "" {
		if err := writeCalendar(opts.icsPath, result); err != nil {
			return err
		}
		logger.Info("Wrote calendar", logger.Fields{"path": opts.icsPath, "events": len(result.Events)})
	}

	sortEvents(result.Events, sortOrder)
	if err := WriteOutput(cmd.OutOrStdout(), result, format, opts.verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// setupLogger installs the default logger for this run
func setupLogger(levelName string, verbose bool, out io.Writer, runID string) error {
	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return err
	}
	if verbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, out)
	log.SetBaseFields(logger.Fields{"run_id": runID})
	logger.SetDefault(log)
	return nil
}

// newPublisher selects where the digest goes
func newPublisher(opts *rootOptions, cfg *config.Config, httpClient *http.Client, runID string, dryRunOut io.Writer) (notifier.Publisher, error) {
	if opts.dryRun {
		return notifier.NewDryRunNotifier(dryRunOut), nil
	}

	switch strings.ToLower(opts.publisher) {
	case PublisherMastodon:
		n, err := notifier.NewMastodonNotifier(cfg.Mastodon.Instance, cfg.MastodonCredentials(), httpClient)
		if err != nil {
			return nil, err
		}
		n.SetIdempotencyKey(runID)
		return n, nil
	case PublisherTwitter:
		return notifier.NewTwitterNotifier(cfg.TwitterCredentials())
	default:
		return nil, fmt.Errorf("unknown publisher: %s (must be 'mastodon' or 'twitter')", opts.publisher)
	}
}

func writeCalendar(path string, result *pipeline.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating calendar file: %w", err)
	}
	if err := calendar.WriteICS(f, result.Events, time.Now()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		logger.Error("Run failed", nil, err)
		stop()
		os.Exit(ExitError)
	}
}
