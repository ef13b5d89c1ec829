package sigtask

import (
	"path/filepath"
	"strings"
)

// Engine option tokens. Value tokens must immediately follow their flag.
const (
	staticOption      = "-static"
	modeOption        = "-mode"
	binaryModeValue   = "bin"
	backwardOption    = "-Backward"
	formatHumanOption = "-FormatHuman"
	outOption         = "-out"
	debugOption       = "-debug"
	errorAllOption    = "-ErrorAll"

	fileNameOption   = "-FileName"
	classpathOption  = "-classpath"
	packageOption    = "-package"
	excludeOption    = "-exclude"
	apiVersionOption = "-apiVersion"
)

// BuildBaseParams renders the arguments shared by every task flavor: the
// signature file, the classpath, the package and exclude lists, and the API
// version when one is set.
func BuildBaseParams(opts TaskOptions) []string {
	var params []string
	if name := strings.TrimSpace(opts.FileName); name != "" {
		params = append(params, fileNameOption, name)
	}
	if len(opts.Classpath) > 0 {
		params = append(params, classpathOption, strings.Join(opts.Classpath, string(filepath.ListSeparator)))
	}
	for _, pkg := range opts.Packages {
		params = append(params, packageOption, pkg)
	}
	for _, excl := range opts.Excludes {
		params = append(params, excludeOption, excl)
	}
	if v := strings.TrimSpace(opts.APIVersion); v != "" {
		params = append(params, apiVersionOption, v)
	}
	return params
}

// BuildParams appends the test-mode arguments to base. Pure transformation:
// no validation, never fails. The result always carries at least the
// -static marker the engine requires for this task mode.
func BuildParams(opts TaskOptions, base []string) []string {
	params := append([]string(nil), base...)
	params = append(params, staticOption)

	if opts.BinaryMode {
		params = append(params, modeOption, binaryModeValue)
	}

	// Binary mode does not suppress the format flags.
	switch opts.Format {
	case FormatBackward:
		params = append(params, backwardOption)
	case FormatHuman:
		params = append(params, formatHumanOption)
	}

	if out := strings.TrimSpace(opts.OutputFile); out != "" {
		params = append(params, outOption, out)
	}
	if opts.Debug {
		params = append(params, debugOption)
	}
	if opts.ErrorAll {
		params = append(params, errorAllOption)
	}

	return params
}
