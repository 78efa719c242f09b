// Interpreter subprocess execution with timeout and captured output.
package pythonagent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// execResult captures one script subprocess outcome. It is transient:
// only its formatted projection is returned to the caller.
type execResult struct {
	ExitCode   int
	Stdout     string
	Stderr     string
	TimedOut   bool
	Timeout    time.Duration
	DurationMs int64
	Err        error
}

// processExecutor runs a script file and reports the captured outcome.
type processExecutor interface {
	Run(ctx context.Context, path string) execResult
}

// interpreterExecutor runs a script file under a Python interpreter in a
// fresh OS process with a hard wall-clock timeout.
type interpreterExecutor struct {
	interpreter string
	timeout     time.Duration
	verbose     bool
	logger      Logger
}

func (e *interpreterExecutor) Run(ctx context.Context, path string) execResult {
	timeout := e.timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	interpreter := e.interpreter
	if interpreter == "" {
		resolved, err := resolvePython()
		if err != nil {
			return execResult{ExitCode: -1, Timeout: timeout, Err: err}
		}
		interpreter = resolved
	}
	debugf(e.verbose, e.logger, "[verbose] exec: interpreter=%s path=%s timeout=%s", interpreter, path, timeout)

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, interpreter, path)
	// Force UTF-8 child I/O regardless of platform locale.
	cmd.Env = append(sanitizedEnv(), "PYTHONIOENCODING=utf-8", "PYTHONUTF8=1")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start).Milliseconds()

	res := execResult{
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		Timeout:    timeout,
		DurationMs: duration,
	}
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.Is(runCtx.Err(), context.DeadlineExceeded):
			res.ExitCode = -1
			res.TimedOut = true
		case errors.As(err, &exitErr):
			res.ExitCode = exitErr.ExitCode()
		default:
			res.ExitCode = -1
			res.Err = err
		}
	}
	debugf(e.verbose, e.logger, "[verbose] exec: completed exit_code=%d timed_out=%v duration=%dms stdout=%d bytes stderr=%d bytes",
		res.ExitCode, res.TimedOut, duration, stdout.Len(), stderr.Len())
	return res
}

// formatExecResult renders a subprocess outcome for the conversation.
func formatExecResult(res execResult) string {
	switch {
	case res.TimedOut:
		return fmt.Sprintf("Error: script execution timed out after %s.", res.Timeout)
	case res.Err != nil:
		return fmt.Sprintf("An error occurred: %v", res.Err)
	case res.ExitCode == 0:
		return "--- Script Result ---\n" + res.Stdout
	default:
		return "--- Script Error ---\n" + res.Stderr
	}
}

// resolvePython locates a python interpreter.
func resolvePython() (string, error) {
	if path, err := exec.LookPath("python3"); err == nil {
		return path, nil
	}
	if path, err := exec.LookPath("python"); err == nil {
		return path, nil
	}
	return "", errors.New("python executable not found")
}

// sanitizedEnv keeps only low-risk environment variables for subprocesses.
func sanitizedEnv() []string {
	allowedPrefixes := []string{
		"PATH=",
		"HOME=",
		"USER=",
		"LOGNAME=",
		"SHELL=",
		"TMPDIR=",
		"TMP=",
		"TEMP=",
		"LANG=",
		"LC_",
		"TERM=",
		"PWD=",
	}

	env := make([]string, 0, len(allowedPrefixes))
	for _, kv := range os.Environ() {
		for _, prefix := range allowedPrefixes {
			if strings.HasPrefix(kv, prefix) {
				env = append(env, kv)
				break
			}
		}
	}
	return env
}
