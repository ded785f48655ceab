package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zpdzap/sandbox/internal/docker"
	"github.com/zpdzap/sandbox/internal/git"
)

func purgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Remove every sandbox container and worktree for this repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPurge()
		},
	}
}

// runPurge is a best-effort bulk sweep with no rollback: every removal is
// attempted regardless of earlier failures, and the command always
// succeeds.
func runPurge() error {
	repo, err := requireRepo()
	if err != nil {
		return err
	}

	fmt.Printf("Removing all containers for %s...\n", repo.Name)
	for _, c := range docker.Containers("sandbox-") {
		if !strings.Contains(c.Name, repo.Name) {
			continue
		}
		if docker.RemoveContainer(c.Name) {
			fmt.Printf("  Removed container: %s\n", c.Name)
		}
	}

	fmt.Println("Removing worktrees...")
	for _, wt := range git.Worktrees() {
		if !strings.Contains(wt.Path, repo.Name+"__") {
			continue
		}
		if git.WorktreeRemove(wt.Path) {
			fmt.Printf("  Removed worktree: %s\n", wt.Path)
		}
	}

	git.WorktreePrune()
	fmt.Println("Done")
	return nil
}
