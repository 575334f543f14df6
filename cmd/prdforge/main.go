package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lamim/prdforge/internal/api"
	"github.com/lamim/prdforge/internal/config"
	"github.com/lamim/prdforge/internal/console"
	"github.com/lamim/prdforge/internal/metrics"
	"github.com/lamim/prdforge/internal/prompt"
	"github.com/lamim/prdforge/internal/server"
	"github.com/lamim/prdforge/internal/wizard"
	"github.com/lamim/prdforge/internal/writer"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	configPath string
	envFile    string
	verbose    bool
	realAI     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "prdforge",
		Short: "prdforge - guided PRD writer",
		Long: `prdforge walks a problem statement through two rounds of guided
questions and generates an iteration plan, user stories and a complete
product requirements document with a generative model (or canned content
in mock mode).`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to environment file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the wizard over HTTP",
		Long:  "Serve wizard sessions over a JSON API with a websocket event stream, health check and Prometheus metrics",
		RunE:  runServe,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the wizard interactively in the terminal",
		RunE:  runInteractive,
	}
	runCmd.Flags().BoolVar(&realAI, "real-ai", false, "Use the generative backend even if the config starts in mock mode")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and test the backend credential",
		RunE:  runCheck,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "prdforge %s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
		},
	}

	rootCmd.AddCommand(serveCmd, runCmd, checkCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds everything the commands share
type app struct {
	cfg      *config.Config
	secrets  *config.Secrets
	logger   *slog.Logger
	closer   io.Closer
	metrics  *metrics.Collector
	client   *api.Client
	catalog  *prompt.Catalog
	exporter *writer.Exporter
}

// setup loads the env file and configuration and wires the shared components.
// consoleLevel is the minimum level logged to stderr; the log file always gets debug.
func setup(consoleLevel slog.Level) (*app, error) {
	if envFile != "" {
		if err := config.LoadEnvFile(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(os.Stderr, "Warning: failed to load env file: %v\n", err)
			}
		} else if verbose {
			fmt.Fprintf(os.Stderr, "Loaded env file: %s\n", envFile)
		}
	}

	cfg, secrets, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if realAI {
		cfg.Wizard.UseRealAI = true
	}

	level, _ := config.ParseLogLevel(cfg.Logging.Level)
	level = max(level, consoleLevel)
	if verbose {
		level = slog.LevelDebug
	}

	logger, closer, err := writer.SetupLogger(cfg.Logging, cfg.Output.Dir, level, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	sessions, err := writer.NewSessionManager(cfg.Output.Dir, logger)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	collector := metrics.NewCollector(logger)
	client := api.NewClient(cfg.Model, logger)
	client.SetMetrics(collector)
	client.SetExpectedChars(cfg.Wizard.ProgressEstimateChars)

	if cfg.Wizard.UseRealAI && !secrets.HasAPIKey() {
		logger.Warn("Real AI mode is enabled but GEMINI_API_KEY is not set; generations will be rejected until a key is configured")
	}

	return &app{
		cfg:      cfg,
		secrets:  secrets,
		logger:   logger,
		closer:   closer,
		metrics:  collector,
		client:   client,
		catalog:  prompt.NewCatalog(cfg.PromptTemplates),
		exporter: writer.NewExporter(sessions, logger),
	}, nil
}

func (a *app) close() {
	if a.closer != nil {
		_ = a.closer.Close()
	}
}

func (a *app) newController(observer wizard.Observer) *wizard.Controller {
	return wizard.New(a.client, wizard.Options{
		Catalog:   a.catalog,
		Logger:    a.logger,
		Metrics:   a.metrics,
		Observer:  observer,
		UseRealAI: a.cfg.Wizard.UseRealAI,
		APIKey:    a.secrets.GeminiAPIKey,
		MockDelay: time.Duration(a.cfg.Wizard.MockDelayMillis) * time.Millisecond,
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup(slog.LevelDebug)
	if err != nil {
		return err
	}
	defer a.close()

	a.logger.Info("prdforge starting",
		"version", Version,
		"config", configPath,
		"model", a.cfg.Model.ModelName,
		"real_ai", a.cfg.Wizard.UseRealAI)

	srv := server.New(server.Options{
		Config:   a.cfg.Server,
		Factory:  a.newController,
		Exporter: a.exporter,
		Metrics:  a.metrics,
		Logger:   a.logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		a.logger.Error("Server stopped with error", "error", err)
		return err
	}
	a.logger.Info("prdforge stopped")
	return nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	// Keep routine logs out of the conversation; they still reach the log file
	a, err := setup(slog.LevelWarn)
	if err != nil {
		return err
	}
	defer a.close()

	con := console.New(console.Options{
		In:       cmd.InOrStdin(),
		Out:      cmd.OutOrStdout(),
		Exporter: a.exporter,
		Logger:   a.logger,
	})
	ctrl := a.newController(con)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := con.Run(ctx, ctrl); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := setup(slog.LevelWarn)
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration OK (model %s, output %s)\n", a.cfg.Model.ModelName, a.cfg.Output.Dir)

	if !a.secrets.HasAPIKey() {
		fmt.Fprintln(out, "No GEMINI_API_KEY set: sessions will run in mock mode only")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := a.client.CheckConnection(ctx, a.secrets.GeminiAPIKey); err != nil {
		return fmt.Errorf("backend check failed: %w", err)
	}
	fmt.Fprintf(out, "Backend reachable with the configured key (%s)\n", a.cfg.Model.BaseURL)
	return nil
}
