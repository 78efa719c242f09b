// Local script execution.
package pythonagent

import (
	"context"
	"fmt"
	"os"
)

// localScriptRunner executes a script file from the local filesystem.
type localScriptRunner struct {
	exec    processExecutor
	verbose bool
	logger  Logger
}

// Run executes the script at path and returns the formatted outcome.
// A missing path fails fast without spawning any process.
func (r *localScriptRunner) Run(ctx context.Context, path string) string {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		debugf(r.verbose, r.logger, "[verbose] run_local: script not found: %s", path)
		return fmt.Sprintf("Error: script not found: %s", path)
	}
	return formatExecResult(r.exec.Run(ctx, path))
}
