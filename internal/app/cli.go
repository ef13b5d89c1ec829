// Package app wires the command line surface to the signature task runner.
package app

import (
	"errors"
	"fmt"
	"os"

	config "github.com/dbessono/sigtest/internal/config"
	engine "github.com/dbessono/sigtest/internal/engine"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const version = "1.0.0"

var exitFn = os.Exit

type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit %d", e.code)
}

type cliOptions struct {
	Packages   []string
	Classpath  []string
	FileName   string
	APIVersion string
	Excludes   []string

	Binary      bool
	Backward    bool
	FormatHuman bool
	Output      string
	Debug       bool
	ErrorAll    bool

	Negative    bool
	FailOnError bool

	Engine     string
	ConfigFile string
	Version    bool
	Cleanup    bool
}

// Run is the program entrypoint for cmd/sigtask/main.go.
func Run() {
	exitFn(run())
}

func run() int {
	cmd := newRootCommand()
	cmd.SetArgs(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:           "sigtask [flags]",
		Short:         "Run a signature compatibility check as a build step",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Version {
				fmt.Printf("sigtask version %s\n", version)
				return nil
			}
			if opts.Cleanup {
				code := runCleanupMode()
				if code == 0 {
					return nil
				}
				return exitError{code: code}
			}

			exitCode := runWithLoggerAndCleanup(func() int {
				v, err := config.NewViper(opts.ConfigFile)
				if err != nil {
					logError(err.Error())
					fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
					return 1
				}

				taskOpts, engineName, err := buildTaskOptions(cmd, opts, v)
				if err != nil {
					logError(err.Error())
					fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
					return 1
				}

				logInfo(fmt.Sprintf("Parsed options: engine=%s, packages=%d, classpath=%d, negative=%t, failonerror=%t",
					engineName, len(taskOpts.Packages), len(taskOpts.Classpath), taskOpts.Negative, taskOpts.FailOnError))
				return runTask(cmd.Context(), taskOpts, engineName)
			})

			if exitCode == 0 {
				return nil
			}
			return exitError{code: exitCode}
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	addRootFlags(cmd.Flags(), opts)
	cmd.AddCommand(newVersionCommand(), newCleanupCommand())

	return cmd
}

func addRootFlags(fs *pflag.FlagSet, opts *cliOptions) {
	fs.StringVar(&opts.ConfigFile, "config", "", "Config file path (default: $HOME/.sigtask/config.*)")
	fs.BoolVarP(&opts.Version, "version", "v", false, "Print version and exit")
	fs.BoolVar(&opts.Cleanup, "cleanup", false, "Clean up old logs and exit")

	fs.StringSliceVar(&opts.Packages, "package", nil, "Package to test (repeatable)")
	fs.StringSliceVar(&opts.Classpath, "classpath", nil, "Classpath entry (repeatable)")
	fs.StringVar(&opts.FileName, "filename", "", "Signature file name")
	fs.StringVar(&opts.APIVersion, "api-version", "", "API version recorded in the signature file")
	fs.StringSliceVar(&opts.Excludes, "exclude", nil, "Package or class excluded from the check (repeatable)")

	fs.BoolVar(&opts.Binary, "binary", false, "Turn on binary mode")
	fs.BoolVar(&opts.Backward, "backward", false, "Perform backward compatibility checking")
	fs.BoolVar(&opts.FormatHuman, "format-human", false, "Produce human readable error output")
	fs.StringVar(&opts.Output, "output", "", "Report file name")
	fs.BoolVar(&opts.Debug, "debug", false, "Print engine debug information")
	fs.BoolVar(&opts.ErrorAll, "error-all", false, "Treat engine warnings as errors")

	fs.BoolVar(&opts.Negative, "negative", false, "Invert the verdict: a pass fails the build")
	fs.BoolVar(&opts.FailOnError, "fail-on-error", false, "Abort the build when the check fails")

	fs.StringVar(&opts.Engine, "engine", engine.DefaultName, "Engine to invoke (signaturetest, apicheck)")
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Print version and exit",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("sigtask version %s\n", version)
			return nil
		},
	}
}

func newCleanupCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "cleanup",
		Short:         "Clean up old logs and exit",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			code := runCleanupMode()
			if code == 0 {
				return nil
			}
			return exitError{code: code}
		},
	}
}

func runWithLoggerAndCleanup(fn func() int) (exitCode int) {
	logger, err := NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: failed to initialize logger: %v\n", err)
		return 1
	}
	setLogger(logger)

	defer func() {
		logger := activeLogger()
		if logger != nil {
			logger.Flush()
		}
		if err := closeLogger(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: failed to close logger: %v\n", err)
		}
		if logger == nil {
			return
		}

		if exitCode != 0 {
			if entries := logger.ExtractRecentErrors(10); len(entries) > 0 {
				fmt.Fprintln(os.Stderr, "\n=== Recent Errors ===")
				for _, entry := range entries {
					fmt.Fprintln(os.Stderr, entry)
				}
			}
		}
		_ = logger.RemoveLogFile()
	}()

	// Clean up stale logs from previous runs.
	scheduleStartupCleanup()

	return fn()
}

func scheduleStartupCleanup() {
	go func() {
		if _, err := cleanupOldLogs(); err != nil {
			logWarn("startup log cleanup: " + err.Error())
		}
	}()
}

func runCleanupMode() int {
	stats, err := cleanupOldLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}
	fmt.Printf("Scanned %d log file(s): deleted %d, kept %d, errors %d\n",
		stats.Scanned, stats.Deleted, stats.Kept, stats.Errors)
	return 0
}
