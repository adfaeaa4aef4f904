// Package cli parses command-line arguments for the descbuild binary into
// a ready-to-use build.Config, the way burstgridgo's internal/cli turns
// flags into an app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/dxmodel/internal/build"
	"github.com/vk/dxmodel/internal/config"
	"github.com/vk/dxmodel/internal/problem"
)

// ExitError carries a process exit code alongside a message, so main can
// report CLI-level failures without treating every error as exit code 1.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// Options bundles a descriptor path with the wired build.Config the rest
// of the flags and any project-level .descriptorbuild.yml together resolve to.
type Options struct {
	DescriptorPath string
	Config         build.Config
	LogFormat      string
	LogLevel       string
}

// Parse processes args. It returns populated Options, a boolean asking the
// caller to exit cleanly (e.g. -help), or an *ExitError.
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	flagSet := flag.NewFlagSet("descbuild", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
descbuild - builds the effective project descriptor for a module.

Usage:
  descbuild [options] DESCRIPTOR_PATH

Arguments:
  DESCRIPTOR_PATH
    Path to a single .hcl descriptor file.

Options:
`)
		flagSet.PrintDefaults()
	}

	configPathFlag := flagSet.String("config", ".descriptorbuild.yml", "Path to the project-level defaults file.")
	workspaceFlag := flagSet.String("workspace", "", "Workspace root scanned for sibling descriptors.")
	repoFlag := flagSet.String("repository", "", "Filesystem repository root for parent/import resolution.")
	validationFlag := flagSet.String("validation-level", "", "Validation gate: Base, V20, V30, V31, or V37.")
	processPluginsFlag := flagSet.Bool("process-plugins", false, "Inject default lifecycle plugin bindings and expand plugin configuration.")
	twoPhaseFlag := flagSet.Bool("two-phase", false, "Stop after the lineage walk instead of assembling the effective model.")
	activeProfilesFlag := flagSet.String("active-profiles", "", "Comma-separated profile ids to force-activate.")
	inactiveProfilesFlag := flagSet.String("inactive-profiles", "", "Comma-separated profile ids to force-deactivate.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	descriptorPath := flagSet.Arg(0)

	fileCfg, err := config.Load(*configPathFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	workspaceRoot := firstNonEmpty(*workspaceFlag, fileCfg.WorkspaceRoot)
	repoRoot := firstNonEmpty(*repoFlag, fileCfg.RepositoryRoot)

	level, err := parseValidationLevel(firstNonEmpty(*validationFlag, fileCfg.ValidationLevel))
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	processPlugins := *processPluginsFlag || fileCfg.ProcessPlugins

	activeProfiles := splitCommaList(*activeProfilesFlag)
	if len(activeProfiles) == 0 {
		activeProfiles = fileCfg.ActiveProfiles
	}
	inactiveProfiles := splitCommaList(*inactiveProfilesFlag)
	if len(inactiveProfiles) == 0 {
		inactiveProfiles = fileCfg.InactiveProfiles
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	return &Options{
		DescriptorPath: descriptorPath,
		Config: build.Config{
			RepositoryRoot:     repoRoot,
			WorkspaceRoot:      workspaceRoot,
			UserProperties:     fileCfg.Properties,
			ValidationLevel:    level,
			TwoPhaseBuilding:   *twoPhaseFlag,
			ProcessPlugins:     processPlugins,
			ActiveProfileIDs:   activeProfiles,
			InactiveProfileIDs: inactiveProfiles,
		},
		LogFormat: logFormat,
		LogLevel:  logLevel,
	}, false, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseValidationLevel(s string) (problem.Gate, error) {
	switch strings.ToUpper(s) {
	case "", "BASE":
		return problem.Base, nil
	case "V20":
		return problem.V20, nil
	case "V30":
		return problem.V30, nil
	case "V31":
		return problem.V31, nil
	case "V37":
		return problem.V37, nil
	default:
		return 0, fmt.Errorf("invalid validation-level %q: must be Base, V20, V30, V31, or V37", s)
	}
}
