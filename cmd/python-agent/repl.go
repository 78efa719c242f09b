package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pspandana/python-agent/pkg/pythonagent"
)

// dispatcher routes one line of user input.
type dispatcher interface {
	Dispatch(input string) pythonagent.DispatchResult
}

// replOptions configures REPL behavior.
type replOptions struct {
	Verbose bool
	Logger  pythonagent.Logger
}

// runREPL starts an interactive session: one line is fully processed,
// including any blocking network call or subprocess wait, before the next
// is read. It returns once the user quits or input is exhausted.
func runREPL(agent dispatcher, opts replOptions, in io.Reader, out io.Writer) error {
	if agent == nil {
		return fmt.Errorf("agent is required")
	}
	if in == nil {
		return fmt.Errorf("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}

	if opts.Verbose && opts.Logger != nil {
		opts.Logger.Debug("[verbose] repl start", nil)
	}

	printWelcome(out)

	scanner := bufio.NewScanner(in)
	for {
		_, _ = fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(out)
			break
		}

		input := scanner.Text()
		if strings.TrimSpace(input) == "" {
			continue
		}

		result := dispatchSafely(agent, input, out)
		if result.Quit {
			break
		}
		_, _ = fmt.Fprintf(out, "Agent: %s\n\n", result.Reply)
	}

	_, _ = fmt.Fprintln(out, "Agent: Goodbye!")

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// dispatchSafely recovers from a panicking turn so the session still ends
// with a report and a clean goodbye instead of a stack trace.
func dispatchSafely(agent dispatcher, input string, out io.Writer) (result pythonagent.DispatchResult) {
	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(out, "Agent: unrecoverable error: %v\n", r)
			result = pythonagent.DispatchResult{Quit: true}
		}
	}()
	return agent.Dispatch(input)
}

// printWelcome prints the session banner.
func printWelcome(out io.Writer) {
	_, _ = fmt.Fprintln(out, "--- Python Agent is Ready ---")
	_, _ = fmt.Fprintln(out, "Commands:")
	_, _ = fmt.Fprintln(out, "  run_local <path>      - Run a local Python script")
	_, _ = fmt.Fprintln(out, "  run_github <raw_url>  - Run a script from a raw GitHub URL")
	_, _ = fmt.Fprintln(out, "Type 'quit' or 'exit' to end.")
	_, _ = fmt.Fprintln(out, strings.Repeat("-", 50))
}
