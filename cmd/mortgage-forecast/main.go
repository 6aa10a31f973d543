package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/mortgage-forecast/internal/config"
	"github.com/iwvelando/mortgage-forecast/internal/forecast"
	"github.com/iwvelando/mortgage-forecast/internal/interactive"
	"github.com/iwvelando/mortgage-forecast/internal/logging"
	"github.com/iwvelando/mortgage-forecast/internal/optimizer"
	"github.com/iwvelando/mortgage-forecast/pkg/constants"
	"github.com/iwvelando/mortgage-forecast/pkg/output"
	"github.com/iwvelando/mortgage-forecast/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// loadConfiguration reads the config file, falling back to defaults and
// environment overrides when the file does not exist.
func loadConfiguration(path string) (*config.Configuration, bool, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		conf, err := config.LoadDefaults()
		return conf, false, err
	}
	conf, err := config.LoadConfiguration(path)
	return conf, true, err
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, interactive")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	export := flag.Bool("export", false, "write the spreadsheet and analysis CSV files after a pretty or csv run")
	exportDir := flag.String("export-dir", "", "directory for exported CSV files (overrides output.directory)")
	optimizeField := flag.String("optimize", "", "search for a value: extraPrincipal (payoff target in months) or houseValue (monthly budget)")
	optimizeTarget := flag.Float64("target", 0, "goal for -optimize")
	flag.Parse()

	// A .env file may carry MORTGAGE_ overrides
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load .env file\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	conf, fromFile, err := loadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	newLogger := logging.NewLogger
	if outputFormat == constants.OutputFormatInteractive {
		newLogger = logging.NewTerminalLogger
	}
	logger, err := newLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if !fromFile {
		logger.Info(fmt.Sprintf("no configuration at %s, using defaults", *configLocation),
			zap.String("op", "main"),
		)
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	directory := conf.Output.Directory
	if *exportDir != "" {
		directory = *exportDir
	}

	if outputFormat == constants.OutputFormatInteractive {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		session := interactive.NewSession(logger, os.Stdin, os.Stdout, directory, conf.Mortgage)
		if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Fatal("interactive session failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	result, err := forecast.FromConfig(logger, conf.Mortgage)
	if err != nil {
		logger.Fatal("failed to compute forecast",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, result)
	case constants.OutputFormatCSV:
		if err := output.CsvFormat(os.Stdout, result); err != nil {
			logger.Fatal("failed to write CSV output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	if *optimizeField != "" {
		runner, err := optimizer.NewRunner(logger, result.Params)
		if err != nil {
			logger.Fatal("failed to initialize optimizer",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		summary, err := runner.Run(optimizer.Directive{Field: *optimizeField, Target: *optimizeTarget})
		if err != nil {
			logger.Fatal("optimizer execution failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		if outputFormat == constants.OutputFormatPretty {
			output.OptimizationFormat(os.Stdout, summary)
		}
	}

	if !*export && *exportDir == "" {
		return
	}

	spreadsheet, err := output.ExportSpreadsheet(directory, result.Records)
	if err != nil {
		logger.Fatal("failed to export spreadsheet",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	analysis, err := output.ExportAnalysis(directory, result.Params, result.Summary)
	if err != nil {
		logger.Fatal("failed to export analysis",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	logger.Info("exported schedule",
		zap.String("op", "main"),
		zap.String("run_id", result.RunID),
		zap.String("spreadsheet", spreadsheet),
		zap.String("analysis", analysis),
	)
}
