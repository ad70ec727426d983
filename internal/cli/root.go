package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/coronaengine/corona-log/logger"
	"github.com/coronaengine/corona-log/sink"
)

type options struct {
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile  string
	level    string
	async    bool
	file     string
	maxSize  int64
	maxFiles int
	count    int
	stats    bool
}

// Execute executes the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "corona-logdemo",
		Short: "Log one message per level through corona-log",
		Long: `Builds a logger from defaults, an optional YAML file, CORONA_LOG_* environment
variables and flags (in that order), then writes every level --count times.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.cfgFile, "config", "", "YAML config file (default: environment only)")
	f.StringVar(&opts.level, "level", "", "minimum level: trace, debug, info, warn, error, critical, off")
	f.BoolVar(&opts.async, "async", false, "write through the background queue")
	f.StringVar(&opts.file, "file", "", "also write to this rotating log file")
	f.Int64Var(&opts.maxSize, "max-size", 0, "rotate the file after this many bytes")
	f.IntVar(&opts.maxFiles, "max-files", 0, "number of rotated files to keep")
	f.IntVar(&opts.count, "count", 1, "how many times to log each level")
	f.BoolVar(&opts.stats, "stats", false, "print backend counters to stderr before exiting")

	return cmd
}

func loadConfig(cmd *cobra.Command, opts options) (logger.Config, error) {
	var cfg logger.Config
	var err error
	if opts.cfgFile != "" {
		cfg, err = logger.LoadConfig(opts.cfgFile)
	} else {
		cfg, err = logger.ConfigFromEnv()
	}
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("level") {
		if cfg.Level, err = logger.ParseLevel(opts.level); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("async") {
		cfg.Async = opts.async
	}
	if flags.Changed("file") {
		cfg.EnableFile = opts.file != ""
		cfg.FilePath = opts.file
	}
	if flags.Changed("max-size") {
		cfg.MaxFileSizeBytes = opts.maxSize
	}
	if flags.Changed("max-files") {
		cfg.MaxFiles = opts.maxFiles
	}
	if cfg.ConsoleStream == string(sink.Stderr) {
		cfg.ConsoleWriter = cmd.ErrOrStderr()
	} else {
		cfg.ConsoleWriter = cmd.OutOrStdout()
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts options) (err error) {
	if opts.count < 0 {
		return fmt.Errorf("--count must not be negative, got %d", opts.count)
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg); err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, logger.Shutdown())
	}()

	for i := 1; i <= opts.count; i++ {
		logger.Tracef("trace message %d", i)
		logger.Debugf("debug message %d", i)
		logger.Infof("info message %d", i)
		logger.Warnf("warning message %d", i)
		logger.Errorf("error message %d", i)
		logger.Criticalf("critical message %d", i)
	}

	if err := logger.Flush(); err != nil {
		return err
	}
	if opts.stats {
		s := logger.Stats()
		fmt.Fprintf(cmd.ErrOrStderr(), "processed=%d dropped=%d blocked=%d errors=%d writes=%d bytes=%d rotations=%d\n",
			s.Processed, s.TotalDropped(), s.Blocked, s.Errors, s.Sinks.Writes, s.Sinks.Bytes, s.Sinks.Rotations)
	}
	return nil
}
