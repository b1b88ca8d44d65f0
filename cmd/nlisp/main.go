// Command nlisp is the nlisp CLI entry point.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/thomasrohde/nlisp/pkg/diagnostics"
	"github.com/thomasrohde/nlisp/pkg/evaluator"
	"github.com/thomasrohde/nlisp/pkg/reader"
	"github.com/thomasrohde/nlisp/pkg/runtime"
	"github.com/thomasrohde/nlisp/pkg/types"
)

const (
	prompt      = "user> "
	historyFile = ".nlisp_history"
)

func main() {
	args := os.Args[1:]
	cmd := "repl"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd = args[0]
		args = args[1:]
	}

	switch cmd {
	case "repl":
		os.Exit(cmdRepl(args))
	case "run":
		os.Exit(cmdRun(args))
	case "eval":
		os.Exit(cmdEval(args))
	case "help", "--help", "-h":
		printUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage(os.Stderr)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: nlisp [command] [options]")
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  repl                 interactive read-eval-print loop (default)")
	fmt.Fprintln(w, "  run <file>           evaluate each line of file")
	fmt.Fprintln(w, "  eval <expr>          evaluate a single expression")
	fmt.Fprintln(w, "options:")
	fmt.Fprintln(w, "  --raw                print strings without quoting")
	fmt.Fprintln(w, "  --json               print results as JSON")
	fmt.Fprintln(w, "  --pretty             human-readable diagnostics (default for repl)")
	fmt.Fprintln(w, "  --trace              write evaluation events to stderr as JSON lines")
	fmt.Fprintln(w, "  --max-depth <n>      limit evaluation nesting")
	fmt.Fprintln(w, "  --history <file>     repl history file (default ~/"+historyFile+")")
}

// options holds the flags shared by every command.
type options struct {
	raw      bool
	json     bool
	pretty   bool
	trace    bool
	maxDepth int
	history  string
	args     []string
}

func parseOptions(args []string) (*options, error) {
	opts := &options{}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--raw":
			opts.raw = true
		case "--json":
			opts.json = true
		case "--pretty":
			opts.pretty = true
		case "--trace":
			opts.trace = true
		case "--max-depth":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--max-depth requires a value")
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid --max-depth value: %s", args[i])
			}
			opts.maxDepth = n
		case "--history":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--history requires a value")
			}
			i++
			opts.history = args[i]
		default:
			if strings.HasPrefix(args[i], "--") {
				return nil, fmt.Errorf("unknown option: %s", args[i])
			}
			opts.args = append(opts.args, args[i])
		}
	}
	return opts, nil
}

// newRuntime builds a runtime from the command-line options. Trace events are
// written to traceOut as JSON lines.
func newRuntime(opts *options, filename string, traceOut io.Writer) *runtime.Runtime {
	rtOpts := []runtime.Option{
		runtime.WithMaxDepth(opts.maxDepth),
		runtime.WithFilename(filename),
	}
	if opts.raw {
		rtOpts = append(rtOpts, runtime.WithRaw())
	}
	if opts.trace {
		enc := json.NewEncoder(traceOut)
		rtOpts = append(rtOpts, runtime.WithTrace(func(ev evaluator.TraceEvent) {
			_ = enc.Encode(ev)
		}))
	}
	return runtime.New(rtOpts...)
}

// output renders a result according to the options.
func output(rt *runtime.Runtime, opts *options, v types.Value) (string, error) {
	if opts.json {
		b, err := types.ToJSON(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return rt.Print(v), nil
}

func reportError(w io.Writer, err error, pretty bool) {
	diag := diagnostics.FromError(err, diagnostics.EIO)
	fmt.Fprintln(w, diagnostics.FormatDiagnostic(diag, pretty))
}

// evalLine reads, evaluates and prints one line. Blank and comment-only lines
// print nothing. It reports whether the line succeeded.
func evalLine(rt *runtime.Runtime, opts *options, line string, stdout, stderr io.Writer) bool {
	if reader.Empty(line) {
		return true
	}
	v, err := rt.EvalString(line)
	if err != nil {
		reportError(stderr, err, opts.pretty)
		return false
	}
	out, err := output(rt, opts, v)
	if err != nil {
		reportError(stderr, err, opts.pretty)
		return false
	}
	fmt.Fprintln(stdout, out)
	return true
}

// runLines feeds every line of r through rt. A failing line is reported and
// the next line still runs. The exit code is 2 if any line failed.
func runLines(rt *runtime.Runtime, opts *options, r io.Reader, stdout, stderr io.Writer) int {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	code := 0
	for sc.Scan() {
		if !evalLine(rt, opts, sc.Text(), stdout, stderr) {
			code = 2
		}
	}
	if err := sc.Err(); err != nil {
		reportError(stderr, err, opts.pretty)
		return 1
	}
	return code
}

func cmdRun(args []string) int {
	opts, err := parseOptions(args)
	if err != nil || len(opts.args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: nlisp run <file> [--raw] [--json] [--pretty] [--trace] [--max-depth n]")
		return 1
	}
	file := opts.args[0]

	f, err := os.Open(file)
	if err != nil {
		diag := diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot read file: %s", file), nil, "")
		fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostic(diag, opts.pretty))
		return 1
	}
	defer f.Close()

	rt := newRuntime(opts, file, os.Stderr)
	return runLines(rt, opts, f, os.Stdout, os.Stderr)
}

func cmdEval(args []string) int {
	opts, err := parseOptions(args)
	if err != nil || len(opts.args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: nlisp eval <expr> [--raw] [--json] [--pretty] [--trace] [--max-depth n]")
		return 1
	}

	rt := newRuntime(opts, "", os.Stderr)
	if !evalLine(rt, opts, opts.args[0], os.Stdout, os.Stderr) {
		return 2
	}
	return 0
}

func cmdRepl(args []string) int {
	opts, err := parseOptions(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	opts.pretty = true

	histPath := opts.history
	if histPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			histPath = filepath.Join(home, historyFile)
		}
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	rt := newRuntime(opts, "", os.Stderr)
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			// io.EOF on Ctrl-D
			fmt.Println()
			break
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		evalLine(rt, opts, line, os.Stdout, os.Stderr)
	}
	return 0
}
