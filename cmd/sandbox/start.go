package main

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/zpdzap/sandbox/internal/config"
	"github.com/zpdzap/sandbox/internal/docker"
	"github.com/zpdzap/sandbox/internal/git"
	"github.com/zpdzap/sandbox/internal/names"
	"github.com/zpdzap/sandbox/internal/ports"
	"github.com/zpdzap/sandbox/internal/sandbox"
)

func startCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start [name]",
		Short: "Start a sandbox (creates if new, recreates if it exists)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return runStart(name)
		},
	}
}

func runStart(name string) error {
	repo, err := requireRepo()
	if err != nil {
		return err
	}
	cfg, err := config.Load(repo.Root)
	if err != nil {
		return err
	}

	if name == "" {
		name = names.Generate(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
		fmt.Fprintf(os.Stderr, "Generated sandbox name: %s\n", name)
	}

	sname := sandbox.SafeName(name)
	// Derive from the main checkout's directory, not the current root:
	// started from inside a sandbox worktree, the current root is the
	// worktree itself and would nest paths like repo__a__b. In the main
	// checkout the two are the same directory.
	wtPath := sandbox.WorktreePath(repo.MainDir, sname)
	containerName := sandbox.ContainerName(repo.Name, sname)

	// Snapshot the two external systems. The remote probe fetches, so it
	// only runs once the cheaper checks have ruled the other actions out.
	state := sandbox.State{
		WorktreeExists:  pathExists(wtPath),
		ContainerExists: docker.ContainerExists(containerName),
	}
	if !state.WorktreeExists {
		state.LocalBranchExists = git.BranchExists(name)
		if !state.LocalBranchExists {
			state.RemoteBranchExists = git.RemoteBranchExists(name)
		}
	}

	action := sandbox.Decide(state)

	image, err := resolveImage(repo, cfg)
	if err != nil {
		return err
	}

	switch action {
	case sandbox.ActionRecreate:
		fmt.Fprintf(os.Stderr, "Recreating sandbox: %s\n", sname)
		docker.RemoveContainer(containerName)

	case sandbox.ActionStartFresh:
		fmt.Fprintf(os.Stderr, "Starting sandbox: %s\n", sname)

	case sandbox.ActionCreateFromLocalBranch:
		if !git.WorktreeAdd(wtPath, name, false) {
			return fmt.Errorf("failed to create worktree for branch: %s", name)
		}
		fmt.Fprintf(os.Stderr, "Created sandbox from local branch: %s\n", name)

	case sandbox.ActionCreateFromRemoteBranch:
		// git worktree add resolves the bare name against origin and
		// creates a local tracking branch.
		if !git.WorktreeAdd(wtPath, name, false) {
			return fmt.Errorf("failed to create worktree for remote branch: %s", name)
		}
		fmt.Fprintf(os.Stderr, "Created sandbox from remote branch: %s\n", name)

	case sandbox.ActionCreateNewBranch:
		if !git.WorktreeAdd(wtPath, sandbox.TaskBranch(name), true) {
			return fmt.Errorf("failed to create worktree")
		}
		fmt.Fprintf(os.Stderr, "Created sandbox: %s\n", sname)
	}

	if action.NeedsWorktree() {
		if err := sandbox.FirstTimeSetup(repo.Root, wtPath); err != nil {
			return err
		}
	}

	resume := action == sandbox.ActionRecreate

	var plan sandbox.Plan
	if docker.ContainerExists(containerName) {
		// Not reachable through the flows above (recreate just removed
		// the container), but the builder contract covers it: attach to
		// whatever is there instead of failing.
		plan = sandbox.ResumePlan(containerName, wtPath, docker.ContainerRunning(containerName), resume)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}
		hostPorts := ports.Allocate(cfg.Ports)
		if len(hostPorts) < cfg.Ports {
			fmt.Fprintf(os.Stderr, "Warning: only %d of %d ports available\n", len(hostPorts), cfg.Ports)
		}
		plan = sandbox.RunPlan(sandbox.RunParams{
			ContainerName: containerName,
			Image:         image,
			WorktreePath:  wtPath,
			MainGitDir:    repo.MainGitDir,
			Home:          home,
			GHToken:       ghToken(),
			Ports:         hostPorts,
			ExtraMounts:   cfg.Mounts,
			ExtraEnv:      configEnv(cfg.Env),
			Resume:        resume,
		})
	}

	plan.Emit(os.Stdout)
	sandbox.EmitIdentity(os.Stdout, sname, repo.Name)
	return nil
}
