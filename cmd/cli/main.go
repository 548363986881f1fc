package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"cochaviz/remaster/internal/config"
	"cochaviz/remaster/internal/logging"
	"cochaviz/remaster/internal/remaster"
)

const defaultLogLevel = "info"

// runPipeline is swapped out by tests to capture the resolved options.
var runPipeline = func(ctx context.Context, opts remaster.Options, logger *slog.Logger) error {
	pipeline := &remaster.Pipeline{
		Options: opts,
		Logger:  logger,
	}
	return pipeline.Run(ctx)
}

func main() {
	var levelVar slog.LevelVar
	levelVar.Set(slog.LevelInfo)

	logger := logging.NewCLI(os.Stderr, &levelVar)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(logger, &levelVar)
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("command interrupted", "error", err)
			os.Exit(130)
		}
		logger.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

func newRootCommand(logger *slog.Logger, levelVar *slog.LevelVar) *cobra.Command {
	var (
		logLevel   = defaultLogLevel
		configPath string
		opts       remaster.Options
	)

	root := &cobra.Command{
		Use:           "remaster <iso>",
		Args:          cobra.ExactArgs(1),
		Short:         "Rebuild a bootable installer image around a kickstart answer file",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			source := strings.TrimSpace(args[0])
			if source == "" {
				return fmt.Errorf("source image is required")
			}
			absSource, err := filepath.Abs(source)
			if err != nil {
				return fmt.Errorf("resolve source image path: %w", err)
			}
			if _, err := os.Stat(absSource); err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source image %s does not exist", absSource)
				}
				return fmt.Errorf("stat source image: %w", err)
			}

			if configPath != "" {
				defaults, err := config.Load(configPath)
				if err != nil {
					return err
				}
				applyDefaults(cmd, defaults, &opts)
			}

			level, err := parseLogLevel(logLevel)
			if err != nil {
				return err
			}
			if opts.Verbose && level > slog.LevelDebug {
				level = slog.LevelDebug
			}
			if levelVar != nil {
				levelVar.Set(level)
			}

			opts.SourceISO = absSource
			return runPipeline(cmd.Context(), opts, logger.With("command", "remaster"))
		},
	}

	root.Flags().StringVar(&opts.OutputPath, "output", "bootiso.iso", "Path for the remastered image")
	root.Flags().StringVar(&opts.Kickstart, "kickstart", "edge.ks", "Kickstart answer file to embed")
	root.Flags().StringArrayVar(&opts.ExtraKargs, "kargs", nil, "Additional kernel argument; repeat flag to add more")
	root.Flags().BoolVar(&opts.Verbose, "verbose", false, "Show mastering tool output and per-file progress")
	root.Flags().StringVar(&configPath, "config", "", "Path to YAML file providing flag defaults")
	root.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "Set log verbosity (debug, info, warning, error)")

	return root
}

// applyDefaults fills options from the config file for every flag the user
// did not set explicitly.
func applyDefaults(cmd *cobra.Command, defaults *config.Defaults, opts *remaster.Options) {
	flags := cmd.Flags()
	if !flags.Changed("output") && defaults.Output != "" {
		opts.OutputPath = defaults.Output
	}
	if !flags.Changed("kickstart") && defaults.Kickstart != "" {
		opts.Kickstart = defaults.Kickstart
	}
	if !flags.Changed("kargs") && len(defaults.Kargs) > 0 {
		opts.ExtraKargs = defaults.Kargs
	}
	if !flags.Changed("verbose") && defaults.Verbose {
		opts.Verbose = true
	}
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error", "err":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", value)
	}
}
