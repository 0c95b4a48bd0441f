// Package git wraps the git binary for the small set of operations shelf
// needs: detecting a repository, listing changed files, and committing
// regenerated documents.
package git

import (
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
)

// Client executes git commands in a working directory.
type Client struct {
	WorkDir string
	Logger  *slog.Logger
}

// NewClient creates a git client rooted at workDir.
func NewClient(workDir string, logger *slog.Logger) *Client {
	return &Client{WorkDir: workDir, Logger: logger}
}

// IsInstalled checks if git is available in the system path.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepo reports whether the working directory is inside a git work tree.
func (c *Client) IsRepo() bool {
	out, err := c.Run("rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// Run executes a raw git command in the working directory.
func (c *Client) Run(args ...string) (string, error) {
	if c.Logger != nil {
		c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)
	}

	cmd := exec.Command("git", args...)
	cmd.Dir = c.WorkDir

	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\nOutput: %s", args[0], err, output)
	}

	return strings.TrimSpace(output), nil
}

// ChangedFiles returns the paths (relative to the work dir, slash-separated)
// that differ from the given base ref, including untracked files. An empty
// base compares against HEAD.
func (c *Client) ChangedFiles(base string) ([]string, error) {
	if base == "" {
		base = "HEAD"
	}

	// --relative keeps paths rooted at the work dir rather than the
	// repository root, matching ls-files below when the collection is a
	// subdirectory of the repo.
	out, err := c.Run("diff", "--name-only", "--relative", base)
	if err != nil {
		return nil, err
	}

	untracked, err := c.Run("ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var files []string
	for _, chunk := range []string{out, untracked} {
		for _, line := range strings.Split(chunk, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || seen[line] {
				continue
			}
			seen[line] = true
			files = append(files, filepath.ToSlash(line))
		}
	}
	return files, nil
}

// Add stages files.
func (c *Client) Add(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"add"}, files...)
	_, err := c.Run(args...)
	return err
}

// Commit records staged changes.
func (c *Client) Commit(msg string) error {
	_, err := c.Run("commit", "-m", msg)
	return err
}

// Status returns the porcelain status of the repo.
func (c *Client) Status() (string, error) {
	return c.Run("status", "--porcelain")
}

// HasRemote reports whether the repo has at least one remote configured.
func (c *Client) HasRemote() bool {
	out, err := c.Run("remote")
	return err == nil && out != ""
}

// Pull integrates remote changes, rebasing local commits on top.
func (c *Client) Pull() error {
	_, err := c.Run("pull", "--rebase", "--autostash")
	return err
}

// Push publishes local commits to the remote.
func (c *Client) Push() error {
	_, err := c.Run("push")
	return err
}

// Sync pulls remote changes and pushes local ones.
func (c *Client) Sync() error {
	if !c.HasRemote() {
		return fmt.Errorf("no remote configured in %s", c.WorkDir)
	}
	if err := c.Pull(); err != nil {
		return err
	}
	return c.Push()
}
