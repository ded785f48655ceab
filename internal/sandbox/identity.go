// Package sandbox holds the lifecycle core: identity derivation, the
// start/teardown resolvers, and the container launch builder.
//
// A sandbox has no stored record. Its container name and worktree path are
// pure functions of (repository, name), and every command re-derives the
// current state from git and docker.
package sandbox

import (
	"path/filepath"
	"strings"
)

// SafeName normalizes a sandbox name for use in container names and
// filesystem paths by replacing path separators with dashes. Idempotent.
// Distinct names can collide after normalization ("a/b" vs "a-b"); that is
// an accepted limitation, the colliding names share one sandbox.
func SafeName(name string) string {
	return strings.ReplaceAll(name, "/", "-")
}

// ContainerName derives the container name for a sandbox.
func ContainerName(repoName, safeName string) string {
	return "sandbox-" + repoName + "-" + safeName
}

// WorktreePath derives the worktree location: a sibling of the repository
// root named {repo}__{safeName}.
func WorktreePath(repoRoot, safeName string) string {
	return filepath.Join(filepath.Dir(repoRoot), filepath.Base(repoRoot)+"__"+safeName)
}

// TaskBranch is the branch created for a sandbox that starts from neither
// an existing local nor remote branch.
func TaskBranch(name string) string {
	return "task/" + name
}

// DefaultImage is the image tag used when no Dockerfile.sandbox exists and
// the config does not override it.
func DefaultImage(repoName string) string {
	return "sandbox-template:" + repoName
}
