// fragctl splits payloads and protocol messages into fixed-size fragment
// record streams and reassembles them.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/danmuck/assembler/internal/assembler"
	"github.com/danmuck/assembler/internal/config"
	"github.com/danmuck/assembler/internal/logging"
	"github.com/danmuck/assembler/internal/observability"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

var errUsage = errors.New("usage")

// env is shared by every subcommand for one invocation.
type env struct {
	cfg    config.Config
	asm    *assembler.Assembler
	logger zerolog.Logger
	out    io.Writer
}

// stats feed the operation log line.
type stats struct {
	bytes     int
	fragments int
}

type command struct {
	summary string
	run     func(e *env, args []string) (stats, error)
}

var commands = map[string]command{
	"split":   {summary: "split a file into a fragment record stream", run: runSplit},
	"join":    {summary: "join a fragment record stream back into a file", run: runJoin},
	"send":    {summary: "encode a protocol message into a fragment record stream", run: runSend},
	"recv":    {summary: "reassemble and print a protocol message", run: runRecv},
	"inspect": {summary: "list the records of a fragment stream", run: runInspect},
	"tags":    {summary: "list the message tag table", run: runTags},
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	flagSet := pflag.NewFlagSet("fragctl", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)
	configPath := flagSet.String("config", "", "path to fragctl.toml (built-in defaults when empty)")
	flagSet.SetOutput(out)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printUsage(out, flagSet)
			return nil
		}
		return err
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printUsage(out, flagSet)
		return errUsage
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", rest[0])
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	logging.Configure(logging.ProfileRuntime, cfg.ApplyLogging)

	e := &env{
		cfg:    cfg,
		asm:    assembler.New(assembler.Config{Limits: cfg.Limits(), Logger: logging.Component("assembler")}),
		logger: logging.Component("fragctl"),
		out:    out,
	}

	start := time.Now()
	st, err := cmd.run(e, rest[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	observability.LogOperation(e.logger, observability.Operation{
		Name:      rest[0],
		Start:     start,
		Bytes:     st.bytes,
		Fragments: st.fragments,
		Err:       err,
	})

	if cfg.MetricsTextfile != "" {
		if werr := observability.WriteTextfile(cfg.MetricsTextfile); werr != nil {
			e.logger.Warn().Err(werr).Str("path", cfg.MetricsTextfile).Msg("metrics textfile export failed")
			if err == nil {
				err = werr
			}
		}
	}
	return err
}

func printUsage(out io.Writer, global *pflag.FlagSet) {
	fmt.Fprintln(out, "usage: fragctl [--config PATH] <command> [flags]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-8s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "global flags:")
	fmt.Fprint(out, global.FlagUsages())
}

// newFlagSet builds a subcommand flag set that reports errors instead of exiting.
func newFlagSet(e *env, name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("fragctl "+name, pflag.ContinueOnError)
	fs.SetOutput(e.out)
	return fs
}

func requireFlag(name, value string) error {
	if value == "" {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}
