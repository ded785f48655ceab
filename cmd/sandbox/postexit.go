package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zpdzap/sandbox/internal/docker"
	"github.com/zpdzap/sandbox/internal/git"
	"github.com/zpdzap/sandbox/internal/sandbox"
)

func postExitCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "post-exit <name> <repo-name>",
		Short:  "Offer sandbox teardown after the session ends",
		Hidden: true, // invoked by the shell wrapper, not by hand
		Args:   cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPostExit(args[0], args[1])
		},
	}
}

// runPostExit is called by the shell wrapper with the identity directives
// start emitted. The container is gone if the user already removed it;
// then there is nothing to offer.
func runPostExit(name, repoName string) error {
	sname := sandbox.SafeName(name)
	containerName := sandbox.ContainerName(repoName, sname)
	if !docker.ContainerExists(containerName) {
		return nil
	}

	if !confirm("Tear down sandbox %s?", sname) {
		fmt.Fprintf(os.Stderr, "Keeping sandbox %s. Resume with: sandbox start %s\n", sname, name)
		return nil
	}

	if docker.RemoveContainer(containerName) {
		fmt.Fprintf(os.Stderr, "Removed container: %s\n", containerName)
	}

	// The wrapper may leave us inside the worktree being discussed, or
	// outside any repository at all; both are fine, worktree removal is
	// best effort here.
	root := git.RepoRoot()
	if root == "" {
		return nil
	}
	mainGit := git.MainGitDir(root)
	if mainGit == "" {
		return nil
	}
	repo := repoContext{
		Root:       root,
		Name:       repoName,
		MainGitDir: mainGit,
		MainDir:    filepath.Dir(mainGit),
	}

	wtPath := sandbox.WorktreePath(repo.MainDir, sname)
	branch := worktreeBranch(wtPath)
	if branch == "" {
		branch = sandbox.TaskBranch(name)
	}
	if git.WorktreeRemove(wtPath) {
		fmt.Fprintf(os.Stderr, "Removed worktree: %s\n", wtPath)
	}

	offerBranchDeletion(repo, branch)
	return nil
}
