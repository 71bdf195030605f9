// Command payroll parses timesheet files and prints a report.
//
//	payroll --report payout march.csv april.csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/garyjia/payroll-report/internal/config"
	"github.com/garyjia/payroll-report/internal/export"
	"github.com/garyjia/payroll-report/internal/models"
	"github.com/garyjia/payroll-report/internal/parser"
	"github.com/garyjia/payroll-report/internal/report"
	"github.com/garyjia/payroll-report/internal/service"
	"github.com/garyjia/payroll-report/internal/storage"
	"github.com/garyjia/payroll-report/pkg/utils"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// errUsage marks command line mistakes
var errUsage = errors.New("usage")

type options struct {
	reportType string
	configPath string
	xlsxName   string
	files      []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	registry, err := report.NewDefaultRegistry()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	opts, err := parseArgs(args, registry.Types(), stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		return exitUsage
	}

	// Environment and .env are only consulted when a config file is asked for
	cfg := config.Default()
	logCfg := utils.LoggerConfig{Level: "warn", Format: "console"}
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		logCfg.Level = cfg.Logger.Level
	}
	logger := utils.NewLoggerWithWriter(logCfg, stderr)
	defer logger.Sync()

	svc := service.NewReportService(parser.NewParser(logger), registry, logger)

	records, err := svc.LoadRecords(ctx, opts.files)
	if err != nil {
		return fail(stderr, logger, err)
	}

	out, err := svc.Generate(records, opts.reportType)
	if err != nil {
		return fail(stderr, logger, err)
	}

	if opts.xlsxName != "" {
		fs := storage.NewLocalFileStorage(cfg.Export.OutputDir, logger)
		path, err := writeWorkbook(fs, logger, records, opts.xlsxName)
		if err != nil {
			return fail(stderr, logger, err)
		}
		logger.Info("Workbook written", zap.String("path", path))
	}

	fmt.Fprintln(stdout, out)
	return exitOK
}

func fail(stderr io.Writer, logger *zap.Logger, err error) int {
	logger.Debug("Report generation failed",
		zap.String("kind", service.Classify(err).String()),
		zap.Error(err))
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitError
}

// writeWorkbook renders the payout report for records and stores it as name
func writeWorkbook(fs storage.FileStorage, logger *zap.Logger, records []models.Employee, name string) (string, error) {
	payout := report.NewPayoutGenerator(report.WithLogger(logger)).Build(records)

	content, err := export.NewWorkbookExporter(logger).Render(payout)
	if err != nil {
		return "", err
	}
	return fs.SaveReport(name, content)
}

// parseArgs accepts flags before, between and after the file arguments.
// Everything after a "--" terminator is a file.
func parseArgs(args []string, reportTypes []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("payroll", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.reportType, "report", "", "report type to generate (required)")
	fs.StringVar(&opts.configPath, "config", "", "optional YAML configuration file")
	fs.StringVar(&opts.xlsxName, "xlsx", "", "also write the payout workbook under export.output_dir with this file name")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: payroll --report <type> [--config file] [--xlsx name] FILE...\n\n")
		fmt.Fprintf(stderr, "Generate payroll reports from timesheet files.\n\n")
		fmt.Fprintf(stderr, "Report types: %s\n\n", strings.Join(reportTypes, ", "))
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		consumed := len(args) - len(rest)
		if consumed > 0 && args[consumed-1] == "--" {
			opts.files = append(opts.files, rest...)
			break
		}
		if len(rest) == 0 {
			break
		}
		opts.files = append(opts.files, rest[0])
		args = rest[1:]
	}

	switch {
	case opts.reportType == "":
		return nil, usageError(fs, stderr, "--report is required")
	case len(opts.files) == 0:
		return nil, usageError(fs, stderr, "at least one file is required")
	}

	if opts.xlsxName != "" {
		if opts.reportType != report.PayoutReportType {
			return nil, usageError(fs, stderr, "--xlsx is only supported with --report "+report.PayoutReportType)
		}
		if err := utils.ValidateFileName(opts.xlsxName); err != nil {
			return nil, usageError(fs, stderr, err.Error())
		}
	}

	return opts, nil
}

func usageError(fs *flag.FlagSet, stderr io.Writer, msg string) error {
	fmt.Fprintf(stderr, "payroll: %s\n", msg)
	fs.Usage()
	return fmt.Errorf("%w: %s", errUsage, msg)
}
