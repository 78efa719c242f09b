// Remote script fetch and execution.
package pythonagent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// remoteScriptRunner fetches a script from a trusted raw-content host,
// writes it to a scoped temporary file, and executes it.
type remoteScriptRunner struct {
	exec        processExecutor
	client      *http.Client
	trustedHost string
	verbose     bool
	logger      Logger
}

// Run fetches the script at rawURL and returns the formatted outcome.
// Untrusted URLs are rejected before any network call. The temporary file
// is removed on every exit path.
func (r *remoteScriptRunner) Run(ctx context.Context, rawURL string) string {
	if !r.trusted(rawURL) {
		debugf(r.verbose, r.logger, "[verbose] run_github: rejected untrusted url: %s", rawURL)
		return fmt.Sprintf("Error: only raw URLs from %s are supported (e.g. https://%s/user/repo/branch/script.py).",
			r.trustedHost, r.trustedHost)
	}

	body, err := r.fetch(ctx, rawURL)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	path, err := writeTempScript(body)
	if err != nil {
		return fmt.Sprintf("An error occurred: %v", err)
	}
	defer func() {
		_ = os.Remove(path)
	}()
	debugf(r.verbose, r.logger, "[verbose] run_github: fetched %d bytes into %s", len(body), path)

	return formatExecResult(r.exec.Run(ctx, path))
}

// trusted applies the substring host check. The check is deliberately a
// weak substring match on the parsed hostname, matching the documented
// rejection behavior rather than a full origin comparison.
func (r *remoteScriptRunner) trusted(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host != "" && strings.Contains(host, r.trustedHost)
}

// fetch downloads the script body as UTF-8 text under the fetch timeout.
func (r *remoteScriptRunner) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("fetching script: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return "", fmt.Errorf("fetching script timed out after %s", r.client.Timeout)
		}
		return "", fmt.Errorf("fetching script: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetching script failed with status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading script body: %w", err)
	}
	return string(body), nil
}

// writeTempScript creates a fresh temp file holding the script content.
func writeTempScript(content string) (string, error) {
	file, err := os.CreateTemp("", "python-agent-*.py")
	if err != nil {
		return "", err
	}
	name := file.Name()
	if _, err := file.WriteString(content); err != nil {
		_ = file.Close()
		_ = os.Remove(name)
		return "", err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}
