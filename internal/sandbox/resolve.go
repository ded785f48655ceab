package sandbox

// Action is the lifecycle decision for a start request.
type Action int

const (
	// ActionRecreate replaces the existing container of a sandbox whose
	// worktree also exists. The worktree is untouched; the container may
	// be stale relative to the code or image, so it is rebuilt.
	ActionRecreate Action = iota
	// ActionStartFresh launches a container for an existing worktree that
	// has none.
	ActionStartFresh
	// ActionCreateFromLocalBranch adds a worktree for an existing local
	// branch, runs first-time setup, then launches.
	ActionCreateFromLocalBranch
	// ActionCreateFromRemoteBranch is the same for an origin branch.
	ActionCreateFromRemoteBranch
	// ActionCreateNewBranch creates a task/{name} branch plus worktree,
	// runs first-time setup, then launches.
	ActionCreateNewBranch
)

func (a Action) String() string {
	switch a {
	case ActionRecreate:
		return "recreate"
	case ActionStartFresh:
		return "start-fresh"
	case ActionCreateFromLocalBranch:
		return "create-from-local-branch"
	case ActionCreateFromRemoteBranch:
		return "create-from-remote-branch"
	case ActionCreateNewBranch:
		return "create-new-branch"
	}
	return "unknown"
}

// State is a snapshot of the two external systems for one sandbox name.
// RemoteBranchExists only matters when the first three fields rule out
// every earlier action, so callers may fill it lazily.
type State struct {
	WorktreeExists     bool
	ContainerExists    bool
	LocalBranchExists  bool
	RemoteBranchExists bool
}

// Decide maps a state snapshot to the action to take. First match wins;
// the ordering is load-bearing (a worktree always outranks branch state,
// a local branch outranks a remote one).
func Decide(s State) Action {
	switch {
	case s.WorktreeExists && s.ContainerExists:
		return ActionRecreate
	case s.WorktreeExists:
		return ActionStartFresh
	case s.LocalBranchExists:
		return ActionCreateFromLocalBranch
	case s.RemoteBranchExists:
		return ActionCreateFromRemoteBranch
	default:
		return ActionCreateNewBranch
	}
}

// NeedsWorktree reports whether the action must add a worktree (and run
// first-time setup) before launching.
func (a Action) NeedsWorktree() bool {
	switch a {
	case ActionCreateFromLocalBranch, ActionCreateFromRemoteBranch, ActionCreateNewBranch:
		return true
	}
	return false
}
