package sandbox

// CleanupResult records the independent removal outcomes for one sandbox.
// Container and worktree are lifecycled separately, so each removal is
// attempted and reported on its own.
type CleanupResult struct {
	ContainerRemoved bool
	WorktreeRemoved  bool
}

// Failed reports whether the cleanup found nothing to remove. Removing
// either target counts as success; only a sandbox with no container and
// no worktree is a failure.
func (r CleanupResult) Failed() bool {
	return !r.ContainerRemoved && !r.WorktreeRemoved
}
