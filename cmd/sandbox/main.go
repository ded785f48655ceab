// Command sandbox manages disposable Claude Code workspaces: one git
// worktree plus one docker container per name.
//
// Stdout is a protocol channel: start emits __SANDBOX_*__ directive lines
// for a wrapping shell to interpret (cd into the worktree, exec the
// container command). Human-facing messages go to stderr.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zpdzap/sandbox/internal/config"
	"github.com/zpdzap/sandbox/internal/docker"
	"github.com/zpdzap/sandbox/internal/git"
	"github.com/zpdzap/sandbox/internal/sandbox"
)

func main() {
	root := &cobra.Command{
		Use:           "sandbox",
		Short:         "Disposable Claude Code workspaces: a git worktree plus a container per task",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		startCmd(),
		lsCmd(),
		rmCmd(),
		portsCmd(),
		postExitCmd(),
		purgeCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var errNotARepo = errors.New("not in a git repository")

// repoContext resolves the ambient repository once; everything downstream
// takes these as explicit inputs.
type repoContext struct {
	Root       string // root of the current checkout (may be a worktree)
	Name       string // repository name, from the main checkout's directory
	MainGitDir string // shared .git directory
	MainDir    string // directory containing the shared .git directory
}

func requireRepo() (repoContext, error) {
	root := git.RepoRoot()
	if root == "" {
		return repoContext{}, errNotARepo
	}
	mainGit := git.MainGitDir(root)
	if mainGit == "" {
		return repoContext{}, fmt.Errorf("cannot resolve git directory for %s", root)
	}
	mainDir := filepath.Dir(mainGit)
	return repoContext{
		Root:       root,
		Name:       filepath.Base(mainDir),
		MainGitDir: mainGit,
		MainDir:    mainDir,
	}, nil
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// stdin is shared across prompts; a fresh reader per question could
// buffer past the line it was asked for.
var stdin = bufio.NewReader(os.Stdin)

// confirm prints a y/N question on stderr and reads the answer from
// stdin. Anything but an explicit yes (EOF included) means no.
func confirm(format string, args ...any) bool {
	fmt.Fprintf(os.Stderr, format+" [y/N] ", args...)
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// ghToken asks the gh CLI for the current token. Empty when gh is absent
// or logged out; the container then simply starts without GH_TOKEN.
func ghToken() string {
	out, err := exec.Command("gh", "auth", "token").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// worktreeBranch returns the short branch name checked out at wtPath,
// or "" if the worktree is unknown or detached.
func worktreeBranch(wtPath string) string {
	for _, wt := range git.Worktrees() {
		if wt.Path == wtPath {
			return strings.TrimPrefix(wt.Branch, "refs/heads/")
		}
	}
	return ""
}

// offerBranchDeletion interactively deletes the sandbox's branch. Deletion
// runs against the main repository directory, never the worktree, which
// may be mid-removal.
func offerBranchDeletion(repo repoContext, branch string) {
	if branch == "" || !git.BranchExists(branch) {
		return
	}
	if !confirm("Delete branch %s?", branch) {
		return
	}
	if git.DeleteBranch(repo.MainDir, branch) {
		fmt.Fprintf(os.Stderr, "Deleted branch: %s\n", branch)
	} else {
		fmt.Fprintf(os.Stderr, "Failed to delete branch: %s\n", branch)
	}
}

// configEnv flattens the config env map into ordered vars so the emitted
// command line is stable.
func configEnv(env map[string]string) []sandbox.EnvVar {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	vars := make([]sandbox.EnvVar, len(keys))
	for i, k := range keys {
		vars[i] = sandbox.EnvVar{Key: k, Value: env[k]}
	}
	return vars
}

// resolveImage builds Dockerfile.sandbox when the repository ships one,
// and otherwise requires the image to exist already.
func resolveImage(repo repoContext, cfg *config.Config) (string, error) {
	image := cfg.Image
	if image == "" {
		image = sandbox.DefaultImage(repo.Name)
	}
	dockerfile := filepath.Join(repo.Root, "Dockerfile.sandbox")
	if pathExists(dockerfile) {
		fmt.Fprintln(os.Stderr, "Building sandbox image...")
		if !docker.BuildImage(image, dockerfile, repo.Root) {
			return "", fmt.Errorf("failed to build sandbox image from %s", dockerfile)
		}
		return image, nil
	}
	if !docker.ImageExists(image) {
		return "", fmt.Errorf("sandbox image %s not found (add Dockerfile.sandbox or set image in %s)", image, config.File)
	}
	return image, nil
}
