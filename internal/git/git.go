// Package git wraps the git CLI operations the sandbox tool needs.
//
// Probes follow a fail-soft contract: a non-zero exit from git yields an
// empty or false result, never an error. Callers decide whether a negative
// answer is fatal.
package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Worktree is one entry from `git worktree list --porcelain`.
type Worktree struct {
	Path   string
	Branch string // full ref, e.g. refs/heads/feature; empty for detached HEAD
	Head   string
}

// RepoRoot returns the absolute root of the enclosing repository,
// or "" when not inside one.
func RepoRoot() string {
	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// MainGitDir returns the shared .git directory for repoRoot, resolving
// worktree indirection. Returns "" when git fails.
func MainGitDir(repoRoot string) string {
	cmd := exec.Command("git", "-C", repoRoot, "rev-parse", "--git-common-dir")
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return resolveCommonDir(repoRoot, strings.TrimSpace(string(out)))
}

// resolveCommonDir interprets `rev-parse --git-common-dir` output. Inside
// a linked worktree git answers with the main repository's git dir as an
// absolute path; inside the main checkout it answers the literal ".git",
// which is relative to the root and must be resolved against it.
func resolveCommonDir(repoRoot, raw string) string {
	if raw == ".git" {
		return filepath.Join(repoRoot, ".git")
	}
	return raw
}

// Worktrees lists all worktrees of the current repository.
// Returns nil when git fails.
func Worktrees() []Worktree {
	out, err := exec.Command("git", "worktree", "list", "--porcelain").Output()
	if err != nil {
		return nil
	}
	return parseWorktrees(string(out))
}

// parseWorktrees parses the porcelain stream: blocks of
// "worktree <path>" / "branch <ref>" / "HEAD <sha>" lines separated by
// blank lines. A detached-HEAD block has no branch line.
func parseWorktrees(out string) []Worktree {
	var (
		worktrees []Worktree
		current   *Worktree
	)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		switch {
		case strings.HasPrefix(line, "worktree "):
			if current != nil {
				worktrees = append(worktrees, *current)
			}
			current = &Worktree{Path: strings.TrimPrefix(line, "worktree ")}
		case current == nil:
			// Stray line before any worktree header.
		case strings.HasPrefix(line, "branch "):
			current.Branch = strings.TrimPrefix(line, "branch ")
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		}
	}
	if current != nil {
		worktrees = append(worktrees, *current)
	}
	return worktrees
}

// WorktreeAdd creates a worktree at path. With createBranch set, a new
// branch named branch is created; otherwise the existing ref is checked
// out. Git's progress goes to stderr; stdout is reserved for directives.
func WorktreeAdd(path, branch string, createBranch bool) bool {
	args := []string{"worktree", "add", path}
	if createBranch {
		args = append(args, "-b", branch)
	} else {
		args = append(args, branch)
	}
	cmd := exec.Command("git", args...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	return cmd.Run() == nil
}

// WorktreeRemove removes the worktree at path.
func WorktreeRemove(path string) bool {
	return exec.Command("git", "worktree", "remove", path).Run() == nil
}

// WorktreePrune drops stale worktree metadata. Best effort.
func WorktreePrune() {
	exec.Command("git", "worktree", "prune").Run()
}

// BranchExists reports whether a local branch named branch exists.
func BranchExists(branch string) bool {
	return exec.Command("git", "show-ref", "--verify", "--quiet",
		"refs/heads/"+branch).Run() == nil
}

// RemoteBranchExists reports whether origin has a branch named branch.
// Fetches first so the answer reflects the remote's current refs.
func RemoteBranchExists(branch string) bool {
	exec.Command("git", "fetch", "--quiet").Run()
	return exec.Command("git", "show-ref", "--verify", "--quiet",
		"refs/remotes/origin/"+branch).Run() == nil
}

// DeleteBranch force-deletes a local branch. dir is the directory to run
// from; branch deletion during teardown runs against the main repository
// rather than a worktree that may be mid-removal.
func DeleteBranch(dir, branch string) bool {
	cmd := exec.Command("git", "branch", "-D", branch)
	cmd.Dir = dir
	return cmd.Run() == nil
}
