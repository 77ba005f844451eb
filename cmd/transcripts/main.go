package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUnknownCommand indicates the first argument is not a known command.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches the command in args[1] and returns the exit code.
// args[0] is the program name, as in os.Args.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "render":
		return reportError(env, runRender(ctx, rest, env))
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "transcripts %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		return runHelp(rest, env)
	}

	// Bare export paths render directly: "transcripts general.json".
	if looksLikeExport(cmd) {
		return reportError(env, runRender(ctx, args[1:], env))
	}

	fmt.Fprintf(env.Stderr, "%v: %s\n\n", ErrUnknownCommand, cmd)
	printUsage(env.Stderr)
	return ExitUsage
}

// reportError prints err with any matching hint and returns its exit code.
func reportError(env *Environment, err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintln(env.Stderr, err.Error()+hintFor(err))
	return exitCodeFor(err)
}
