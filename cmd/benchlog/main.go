// Package main provides the benchlog CLI for browsing stored benchmark runs.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"benchlog/internal/config"
	"benchlog/internal/logger"
	"benchlog/internal/model"
	"benchlog/internal/parser"
	_ "benchlog/internal/store" // registers the storage drivers
	"benchlog/internal/view"

	"github.com/spf13/cobra"
)

var version = "dev"

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath  string
	verbose     bool
	storagePath string
	driver      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "benchlog: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "benchlog",
		Short:         "Browse previously executed benchmark runs",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.Configure(cmd.ErrOrStderr(), opts.verbose)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (env: BENCHLOG_CONFIG, default: ./benchlog.toml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log diagnostics to stderr")
	flags.StringVar(&opts.storagePath, "storage", "", "override the storage path")
	flags.StringVar(&opts.driver, "driver", "", "override the storage driver: "+strings.Join(model.Drivers(), ", "))

	rootCmd.AddCommand(newLogCmd(opts))
	rootCmd.AddCommand(newRecordCmd(opts))
	return rootCmd
}

// loadConfig reads the config file and applies the persistent flag overrides.
func loadConfig(opts *globalOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if opts.storagePath != "" {
		cfg.Storage.Path = opts.storagePath
	}
	if opts.driver != "" {
		cfg.Storage.Driver = opts.driver
	}
	if cfg.Source != "" {
		logger.Component("cli").Debugf("loaded config %s", cfg.Source)
	}
	return cfg, nil
}

func openStorage(cfg config.Config) (model.Storage, error) {
	storage, err := model.NewStorage(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return storage, nil
}

func newLogCmd(opts *globalOptions) *cobra.Command {
	var (
		noPagination bool
		timeUnit     string
		mode         string
		precision    int
		formatFlag   string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "List previously executed benchmark runs.",
		Long: `Show a list of previously executed benchmark runs, most recent first.

When the output does not fit the terminal, press return to show the next
page or enter any other text to quit.

NOTE: This is only possible when a storage driver has been configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("time-unit") {
				cfg.Unit = timeUnit
			}
			if flags.Changed("mode") {
				cfg.Mode = mode
			}
			if flags.Changed("precision") {
				cfg.Precision = precision
			}
			unit, err := cfg.TimeUnit()
			if err != nil {
				return err
			}

			storage, err := openStorage(cfg)
			if err != nil {
				return err
			}
			defer storage.Close()

			out := cmd.OutOrStdout()
			outFile, _ := out.(*os.File)
			in := cmd.InOrStdin()
			inFile, _ := in.(*os.File)

			return view.Run(storage.History(), view.Options{
				Format:   formatFlag,
				Unit:     unit,
				Paginate: cfg.Paginate && !noPagination,
				Out:      out,
				OutFile:  outFile,
				In:       in,
				InFile:   inFile,
			})
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&noPagination, "no-pagination", "P", false, "do not paginate")
	flags.StringVar(&timeUnit, "time-unit", "", "time unit: microseconds, milliseconds, seconds, minutes, hours or days")
	flags.StringVar(&mode, "mode", "", "display mode: time or throughput")
	flags.IntVar(&precision, "precision", 0, "number of decimals for time values")
	flags.StringVar(&formatFlag, "format", "text", "output format: text, table, json, or jsonl")

	return cmd
}

func newRecordCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record [file]",
		Short: "Store benchmark runs read as JSON Lines from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			storage, err := openStorage(cfg)
			if err != nil {
				return err
			}
			defer storage.Close()

			return recordRuns(cmd.OutOrStdout(), storage, in)
		},
	}
	return cmd
}

// recordRuns stores every run found in the JSON Lines input.
func recordRuns(out io.Writer, storage model.Storage, in io.Reader) error {
	return parser.IterateRuns(in, func(run model.RunRecord) error {
		saved, err := storage.Save(run)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "stored run %s\n", saved.ID) //nolint:errcheck
		return nil
	})
}
