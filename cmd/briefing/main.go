package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"newsbrief/internal/app"
	"newsbrief/internal/config"
)

var (
	jsonOutput bool
	parallel   int
	every      string
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:          "briefing [topic...]",
	Short:        "Build news briefings from the terminal",
	Long:         `Fetches articles for each topic, summarizes them and renders a thumbnail per article.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if debugMode {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		service, err := app.NewService(ctx, cfg)
		if err != nil {
			return err
		}

		topics := uniqueTopics(args, service.Topic)
		out := cmd.OutOrStdout()

		runOnce := func() error {
			results, err := buildAll(ctx, service, topics, parallel)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(out, results)
			}
			writeStyled(out, results)
			return nil
		}

		if every == "" {
			return runOnce()
		}

		return watch(ctx, every, runOnce)
	},
}

// watch re-runs fn on a cron schedule until ctx is cancelled. A tick that
// fires while the previous run is still going is skipped, so runs never
// write the same files at once.
func watch(ctx context.Context, spec string, fn func() error) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(spec, func() {
		if err := fn(); err != nil {
			slog.Error("scheduled briefing failed", "schedule", spec, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	c.Start()
	slog.Info("watching", "schedule", spec)

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

func init() {
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the briefing as JSON")
	rootCmd.Flags().IntVar(&parallel, "parallel", 2, "Topics built at the same time")
	rootCmd.Flags().StringVar(&every, "every", "", "Cron schedule to rebuild on, e.g. \"@hourly\"")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

func main() {
	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
