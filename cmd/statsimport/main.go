package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/fantasy-coach/internal/app"
	"github.com/riskibarqy/fantasy-coach/internal/config"
	"github.com/riskibarqy/fantasy-coach/internal/observability"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

var errImportFailed = errors.New("one or more files failed to import")

var tracer = otel.Tracer("fantasy-coach/cmd/statsimport")

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	logger := logging.NewJSON(cfg.LogLevel).With("service", "statsimport", "env", cfg.AppEnv)
	logging.SetDefault(logger)

	telemetry, err := observability.Start(cfg, logger)
	if err != nil {
		logger.Error("start telemetry", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:           "statsimport",
		Short:         "Import player statistics CSV files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(importCmd(cfg, logger))

	runErr := root.ExecuteContext(ctx)
	if err := telemetry.Shutdown(context.Background()); err != nil {
		logger.Warn("shutdown telemetry", "error", err)
	}
	if runErr != nil {
		logger.Error("stats import failed", "error", runErr)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func importCmd(cfg config.Config, logger *logging.Logger) *cobra.Command {
	workers := cfg.ImportWorkers
	cmd := &cobra.Command{
		Use:   "import <file.csv>...",
		Short: "Import each file as its own batch",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, span := tracer.Start(cmd.Context(), "statsimport.import",
				trace.WithAttributes(attribute.Int("import.files", len(args)), attribute.Int("import.workers", workers)))
			defer span.End()

			container, err := app.Build(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("build services: %w", err)
			}
			defer func() {
				if err := container.Close(); err != nil {
					logger.Warn("close store failed", "error", err)
				}
			}()

			report, err := container.PlayerStatsService.ImportFiles(ctx, fileSources(args), workers)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			span.SetAttributes(attribute.Int("import.failed", report.FailedCount))
			if report.FailedCount > 0 {
				span.SetStatus(codes.Error, errImportFailed.Error())
				return errImportFailed
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", workers, "number of files imported concurrently")
	return cmd
}

func fileSources(paths []string) []usecase.ImportSource {
	sources := make([]usecase.ImportSource, 0, len(paths))
	for _, path := range paths {
		sources = append(sources, usecase.ImportSource{
			Name: filepath.Clean(path),
			Open: func() (io.ReadCloser, error) { return os.Open(path) },
		})
	}
	return sources
}

func printReport(w io.Writer, report usecase.FileImportReport) {
	for _, file := range report.Files {
		switch {
		case file.Err != nil:
			fmt.Fprintf(w, "FAIL %s: %v\n", file.Name, file.Err)
		case !file.Summary.Success:
			fmt.Fprintf(w, "FAIL %s batch=%s: %s\n", file.Name, file.Summary.BatchID, strings.Join(file.Summary.Errors, "; "))
		default:
			fmt.Fprintf(w, "OK   %s batch=%s imported=%d skipped=%d (%dms)\n",
				file.Name, file.Summary.BatchID, file.Summary.ImportedCount, file.Summary.SkippedCount, file.DurationMs)
			for _, rowErr := range file.Summary.Errors {
				fmt.Fprintf(w, "     %s\n", rowErr)
			}
		}
	}
	fmt.Fprintf(w, "%d file(s): %d succeeded, %d failed\n", len(report.Files), report.SuccessCount, report.FailedCount)
}
