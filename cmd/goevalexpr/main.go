// Command goevalexpr evaluates expressions from the command line.
//
// Usage:
//
//	goevalexpr eval "1 + 2 * 3"
//	goevalexpr eval -v a=2 -v b=3.5 "a ^ b"
//	goevalexpr eval --vars bindings.yaml --as int "x * y"
//	goevalexpr repl
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pkg/profile"
)

// CLI is the top-level command-line interface for goevalexpr.
type CLI struct {
	LogLevel string `help:"Minimum log level." enum:"debug,info,warn,error" default:"warn"`
	Profile  bool   `help:"Write a CPU profile to the current directory."`

	Eval EvalCmd `cmd:"" default:"withargs" help:"Evaluate an expression"`
	Repl ReplCmd `cmd:"" help:"Interactive read-eval-print loop"`
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func main() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("goevalexpr"),
		kong.Description("Evaluate arithmetic, logical, and string expressions."),
		kong.UsageOnError(),
	)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevels[cli.LogLevel],
	})))

	if cli.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	ctx.FatalIfErrorf(ctx.Run())
}
