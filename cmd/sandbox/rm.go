package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zpdzap/sandbox/internal/docker"
	"github.com/zpdzap/sandbox/internal/git"
	"github.com/zpdzap/sandbox/internal/sandbox"
)

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a sandbox's container and worktree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRm(args[0])
		},
	}
}

func runRm(name string) error {
	repo, err := requireRepo()
	if err != nil {
		return err
	}

	sname := sandbox.SafeName(name)
	wtPath := sandbox.WorktreePath(repo.MainDir, sname)
	containerName := sandbox.ContainerName(repo.Name, sname)

	// Branch lookup happens before removal; afterwards the worktree
	// record is gone.
	branch := worktreeBranch(wtPath)
	if branch == "" {
		branch = sandbox.TaskBranch(name)
	}

	result := sandbox.CleanupResult{
		ContainerRemoved: docker.RemoveContainer(containerName),
		WorktreeRemoved:  git.WorktreeRemove(wtPath),
	}

	if result.ContainerRemoved {
		fmt.Printf("Removed container: %s\n", containerName)
	}
	if result.WorktreeRemoved {
		fmt.Printf("Removed worktree: %s\n", wtPath)
	}
	if result.Failed() {
		return fmt.Errorf("nothing found to remove for: %s", sname)
	}

	offerBranchDeletion(repo, branch)
	return nil
}
