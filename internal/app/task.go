package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	config "github.com/dbessono/sigtest/internal/config"
	engine "github.com/dbessono/sigtest/internal/engine"
	sigtask "github.com/dbessono/sigtest/internal/sigtask"
	utils "github.com/dbessono/sigtest/internal/utils"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const logReportLimit = 4000

var selectEngineFn = engine.Select

// buildTaskOptions merges command line flags with the viper config: an
// explicitly set flag wins, otherwise the config file / SIGTASK_* env
// value applies.
func buildTaskOptions(cmd *cobra.Command, opts *cliOptions, v *viper.Viper) (sigtask.TaskOptions, string, error) {
	flags := cmd.Flags()

	stringOpt := func(name, flagVal string) string {
		if flags.Changed(name) {
			return strings.TrimSpace(flagVal)
		}
		return strings.TrimSpace(v.GetString(name))
	}
	boolOpt := func(name string, flagVal bool) bool {
		if flags.Changed(name) {
			return flagVal
		}
		return v.GetBool(name)
	}
	sliceOpt := func(name string, flagVal []string) []string {
		if flags.Changed(name) {
			return flagVal
		}
		return v.GetStringSlice(name)
	}

	engineName := stringOpt("engine", opts.Engine)
	if engineName == "" {
		engineName = engine.DefaultName
	}
	if err := config.ValidateEngineName(engineName); err != nil {
		return sigtask.TaskOptions{}, "", fmt.Errorf("--engine flag invalid value: %w", err)
	}

	taskOpts := sigtask.TaskOptions{
		Packages:   sliceOpt("package", opts.Packages),
		Classpath:  sliceOpt("classpath", opts.Classpath),
		FileName:   stringOpt("filename", opts.FileName),
		APIVersion: stringOpt("api-version", opts.APIVersion),
		Excludes:   sliceOpt("exclude", opts.Excludes),

		BinaryMode: boolOpt("binary", opts.Binary),
		Format: sigtask.NormalizeFormat(
			boolOpt("backward", opts.Backward),
			boolOpt("format-human", opts.FormatHuman),
		),
		OutputFile: stringOpt("output", opts.Output),
		Debug:      boolOpt("debug", opts.Debug),
		ErrorAll:   boolOpt("error-all", opts.ErrorAll),

		Negative:    boolOpt("negative", opts.Negative),
		FailOnError: boolOpt("fail-on-error", opts.FailOnError),
	}

	return taskOpts, engineName, nil
}

// runTask executes one signature check and maps the outcome onto an exit
// code: 0 success, 1 configuration or invocation problem, 2 check failed.
func runTask(ctx context.Context, opts sigtask.TaskOptions, engineName string) int {
	factory, err := selectEngineFn(engineName)
	if err != nil {
		logError(err.Error())
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}
	logInfo(fmt.Sprintf("Selected engine: %s", engineName))

	if ctx == nil {
		ctx = context.Background()
	}

	runner := &sigtask.Runner{
		NewEngine: sigtask.EngineFactory(factory),
		Out:       os.Stdout,
		LogError: func(report string) {
			logError(utils.SafeTruncate(utils.SanitizeOutput(report), logReportLimit))
		},
	}

	err = runner.Execute(ctx, opts)
	if err == nil {
		logInfo("Signature check completed")
		return 0
	}

	var cfgErr *sigtask.ConfigError
	if errors.As(err, &cfgErr) {
		logError(err.Error())
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}

	var engErr *sigtask.EngineError
	if errors.As(err, &engErr) {
		logError(utils.SafeTruncate(utils.SanitizeOutput(engErr.Report), logReportLimit))
		fmt.Fprintln(os.Stderr, utils.SanitizeOutput(engErr.Report))
		return 2
	}

	logError(err.Error())
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	return 1
}
