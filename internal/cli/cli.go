package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/specialistvlad/toymeas/internal/app"
	"github.com/specialistvlad/toymeas/internal/model"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// globalFlags are shared by every command.
type globalFlags struct {
	logLevel  string
	logFormat string
}

// NewRootCommand builds the command tree. Command output goes to outW,
// logs go to logW.
func NewRootCommand(outW, logW io.Writer) *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "toymeas",
		Short:         "Expected-distribution generator for polarized e+e- measurement setups",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(outW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	})

	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "Logging level: debug, info, warn or error.")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "Log output format: text or json.")

	root.AddCommand(
		runCmd(g, logW),
		validateCmd(g, logW),
		inspectCmd(),
		initCmd(),
		versionCmd(),
	)
	return root
}

// Execute runs the command tree with args and returns an *ExitError for
// every failure.
func Execute(ctx context.Context, args []string, outW, logW io.Writer) error {
	root := NewRootCommand(outW, logW)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return toExitError(err)
	}
	return nil
}

func (g *globalFlags) appConfig(setupPath, output, connector string) (*app.Config, error) {
	cfg, err := app.NewConfig(app.Config{
		SetupPath: setupPath,
		Output:    output,
		Connector: connector,
		LogFormat: g.logFormat,
		LogLevel:  g.logLevel,
	})
	if err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	return cfg, nil
}

// toExitError maps configuration problems to the usage code and everything
// else to a generic failure.
func toExitError(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	if model.IsKind(err, model.KindConfiguration) || strings.HasPrefix(err.Error(), "unknown command") {
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	return &ExitError{Code: ExitFailure, Message: err.Error()}
}
