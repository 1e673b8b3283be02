// Package cli implements the jsontab command.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// App carries the streams and build information of one CLI invocation.
type App struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Version string

	logger      zerolog.Logger
	loggerReady bool
}

// NewApp constructs an App bound to the process streams.
func NewApp() *App {
	return &App{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Version: "dev",
	}
}

// Execute runs the command with args. Errors are logged to Stderr and
// returned.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := newRootCmd(a)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		logger := a.errorLogger()
		logger.Error().Err(err).Msg("jsontab failed")
		return err
	}
	return nil
}

// RootCommand exposes the root command for tests.
func (a *App) RootCommand() *cobra.Command {
	return newRootCmd(a)
}

// errorLogger returns the configured logger, or a default one when the
// command failed before logging was set up.
func (a *App) errorLogger() zerolog.Logger {
	if !a.loggerReady {
		return NewLogger(&LogConfig{Level: "info"}, a.Stderr)
	}
	return a.logger
}
