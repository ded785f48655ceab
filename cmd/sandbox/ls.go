package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/zpdzap/sandbox/internal/docker"
	"github.com/zpdzap/sandbox/internal/git"
)

var (
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD700"))

	noneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

func lsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List worktrees and containers for the current repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLs()
		},
	}
}

func runLs() error {
	repo, err := requireRepo()
	if err != nil {
		return err
	}

	fmt.Println(sectionStyle.Render("=== Worktrees ==="))
	worktrees := git.Worktrees()
	for _, wt := range worktrees {
		branch := strings.TrimPrefix(wt.Branch, "refs/heads/")
		fmt.Printf("  %s  [%s]\n", wt.Path, branch)
	}
	if len(worktrees) == 0 {
		fmt.Println(noneStyle.Render("  (none)"))
	}

	fmt.Println()
	fmt.Println(sectionStyle.Render("=== Containers ==="))
	// Substring filter on the repository name; a repo whose name is a
	// substring of another's will show the other's containers too.
	count := 0
	for _, c := range docker.Containers("sandbox-") {
		if !strings.Contains(c.Name, repo.Name) {
			continue
		}
		fmt.Printf("  %s  %s\n", c.Name, statusStyle.Render("("+c.Status+")"))
		count++
	}
	if count == 0 {
		fmt.Println(noneStyle.Render("  (none)"))
	}
	return nil
}
