package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

const defaultConfigPath = "./configs/configs.yml"

// command is one CLI subcommand.
type command interface {
	Execute(ctx context.Context, args []string) error
	Description() string
}

type commandRouter struct {
	commands map[string]command
	output   io.Writer
	errOut   io.Writer
}

func newCommandRouter(output, errOut io.Writer, getenv func(string) string) *commandRouter {
	return &commandRouter{
		commands: map[string]command{
			"serve":     newServeCommand(output, errOut, getenv),
			"summarize": newSummarizeCommand(output, errOut),
		},
		output: output,
		errOut: errOut,
	}
}

// Route runs the subcommand named by args[0].
func (r *commandRouter) Route(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		r.printUsage(r.output)
		return nil
	}

	cmd, ok := r.commands[args[0]]
	if !ok {
		r.printUsage(r.errOut)
		return fmt.Errorf("unknown command %q", args[0])
	}

	err := cmd.Execute(ctx, args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	return err
}

func (r *commandRouter) printUsage(w io.Writer) {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Usage: accesssummary <command> [flags]\n\nCommands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-10s %s\n", name, r.commands[name].Description())
	}
	b.WriteString("\nRun 'accesssummary <command> --help' for the flags of a command.\n")
	_, _ = io.WriteString(w, b.String())
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func newFlagSet(name string, errOut io.Writer) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(errOut)
	flags.SortFlags = false
	return flags
}

// parseFlags parses args. Malformed flags are reported on errOut with the flag list,
// since a ContinueOnError flag set prints nothing for them.
func parseFlags(name string, flags *pflag.FlagSet, args []string, errOut io.Writer) error {
	err := flags.Parse(args)
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return err
	}
	fmt.Fprintf(errOut, "%s: %v\n", name, err)
	flags.PrintDefaults()
	return err
}
