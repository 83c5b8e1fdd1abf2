// Package gitops records every change to a data directory as a git commit,
// so imports and edits to the ledger can be reviewed and reverted with git.
package gitops

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Repo is a data directory under git.
type Repo struct {
	Dir         string
	AuthorName  string
	AuthorEmail string
}

// New returns a Repo for dir committing as the given author.
func New(dir, authorName, authorEmail string) *Repo {
	return &Repo{Dir: dir, AuthorName: authorName, AuthorEmail: authorEmail}
}

// Available reports whether a git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Init initializes a git repository in the data directory.
func (r *Repo) Init() error {
	if _, err := r.run("init", "--quiet"); err != nil {
		return err
	}
	return nil
}

// IsRepo reports whether the data directory has its own .git.
func (r *Repo) IsRepo() bool {
	_, err := os.Stat(filepath.Join(r.Dir, ".git"))
	return err == nil
}

// HasChanges reports whether any of paths (all files when empty) differ from
// HEAD, including untracked files.
func (r *Repo) HasChanges(paths ...string) (bool, error) {
	args := append([]string{"status", "--porcelain", "--"}, paths...)
	out, err := r.run(args...)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// Commit stages paths (all files when empty) and commits them. It returns
// the short hash, or "" when there was nothing to commit.
func (r *Repo) Commit(message string, paths ...string) (string, error) {
	changed, err := r.HasChanges(paths...)
	if err != nil {
		return "", err
	}
	if !changed {
		return "", nil
	}

	add := []string{"add", "-A"}
	if len(paths) > 0 {
		add = append(add, "--")
		add = append(add, paths...)
	}
	if _, err := r.run(add...); err != nil {
		return "", err
	}

	author := fmt.Sprintf("%s <%s>", r.AuthorName, r.AuthorEmail)
	if _, err := r.run("commit", "--quiet", "-m", message, "--author", author); err != nil {
		return "", err
	}

	out, err := r.run("rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// run executes git in the data directory. The committer identity is pinned
// to the author so commits work on machines without a global git config.
func (r *Repo) run(args ...string) (string, error) {
	full := append([]string{
		"-c", "user.name=" + r.AuthorName,
		"-c", "user.email=" + r.AuthorEmail,
	}, args...)

	cmd := exec.Command("git", full...)
	cmd.Dir = r.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(stderr.String()), err)
	}
	return stdout.String(), nil
}
