package main

import (
	"strings"
	"testing"

	"github.com/pspandana/python-agent/pkg/pythonagent"
)

// scriptedDispatcher returns canned results and records inputs.
type scriptedDispatcher struct {
	inputs  []string
	results map[string]pythonagent.DispatchResult
	panicOn string
}

func (d *scriptedDispatcher) Dispatch(input string) pythonagent.DispatchResult {
	d.inputs = append(d.inputs, input)
	if d.panicOn != "" && strings.Contains(input, d.panicOn) {
		panic("dispatcher blew up")
	}
	if result, ok := d.results[strings.TrimSpace(input)]; ok {
		return result
	}
	return pythonagent.DispatchResult{Reply: "echo: " + input}
}

func TestRunREPLDispatchesAndQuits(t *testing.T) {
	d := &scriptedDispatcher{results: map[string]pythonagent.DispatchResult{
		"hello": {Reply: "hi"},
		"quit":  {Quit: true},
	}}
	var out strings.Builder

	err := runREPL(d, replOptions{}, strings.NewReader("hello\nquit\n"), &out)
	if err != nil {
		t.Fatalf("runREPL: %v", err)
	}
	if len(d.inputs) != 2 {
		t.Fatalf("expected 2 dispatched lines, got %d: %v", len(d.inputs), d.inputs)
	}
	transcript := out.String()
	if !strings.Contains(transcript, "Agent: hi") {
		t.Fatalf("missing agent reply in transcript:\n%s", transcript)
	}
	if !strings.Contains(transcript, "Agent: Goodbye!") {
		t.Fatalf("missing goodbye in transcript:\n%s", transcript)
	}
}

func TestRunREPLSkipsBlankLines(t *testing.T) {
	d := &scriptedDispatcher{results: map[string]pythonagent.DispatchResult{
		"quit": {Quit: true},
	}}

	err := runREPL(d, replOptions{}, strings.NewReader("\n   \nquit\n"), &strings.Builder{})
	if err != nil {
		t.Fatalf("runREPL: %v", err)
	}
	if len(d.inputs) != 1 {
		t.Fatalf("blank lines must not be dispatched, got %v", d.inputs)
	}
}

func TestRunREPLSaysGoodbyeOnEOF(t *testing.T) {
	d := &scriptedDispatcher{}
	var out strings.Builder

	err := runREPL(d, replOptions{}, strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("runREPL: %v", err)
	}
	if len(d.inputs) != 0 {
		t.Fatalf("nothing should be dispatched on EOF, got %v", d.inputs)
	}
	if !strings.Contains(out.String(), "Agent: Goodbye!") {
		t.Fatalf("missing goodbye in transcript:\n%s", out.String())
	}
}

func TestRunREPLRecoversPanickingTurn(t *testing.T) {
	d := &scriptedDispatcher{panicOn: "boom"}
	var out strings.Builder

	err := runREPL(d, replOptions{}, strings.NewReader("boom\nnever-read\n"), &out)
	if err != nil {
		t.Fatalf("runREPL must end gracefully after a panic, got: %v", err)
	}
	transcript := out.String()
	if !strings.Contains(transcript, "unrecoverable error") {
		t.Fatalf("missing fault report in transcript:\n%s", transcript)
	}
	if !strings.Contains(transcript, "Agent: Goodbye!") {
		t.Fatalf("missing goodbye in transcript:\n%s", transcript)
	}
	if len(d.inputs) != 1 {
		t.Fatalf("the loop must stop after an unrecoverable fault, got %v", d.inputs)
	}
}

func TestRunREPLRequiresAgent(t *testing.T) {
	if err := runREPL(nil, replOptions{}, strings.NewReader(""), &strings.Builder{}); err == nil {
		t.Fatal("expected error for nil agent")
	}
}
