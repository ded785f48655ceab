package sandbox

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// The assistant-configuration bundle shipped with the tool: a settings
// document plus a hooks directory, installed into each new worktree.
//
//go:embed assets
var assets embed.FS

// FirstTimeSetup prepares a freshly added worktree: copies dotenv files
// from the repository root and installs the bundled assistant settings.
// Runs only on worktree creation, never on resume or recreate.
func FirstTimeSetup(repoRoot, worktreePath string) error {
	if err := copyEnvFiles(repoRoot, worktreePath); err != nil {
		return fmt.Errorf("copying env files: %w", err)
	}
	if err := installSettings(worktreePath); err != nil {
		return fmt.Errorf("installing settings: %w", err)
	}
	if err := installHooks(worktreePath); err != nil {
		return fmt.Errorf("installing hooks: %w", err)
	}
	return nil
}

// copyEnvFiles copies every .env* file from the repository root into the
// worktree. Non-recursive, plain files only; worktrees start without the
// untracked env files the developer keeps in the main checkout.
func copyEnvFiles(repoRoot, worktreePath string) error {
	entries, err := os.ReadDir(repoRoot)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), ".env") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(repoRoot, entry.Name()))
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(worktreePath, entry.Name()), data, 0o600); err != nil {
			return err
		}
	}
	return nil
}

// installSettings merges the bundled settings document into the
// worktree's .claude/settings.json.
func installSettings(worktreePath string) error {
	bundled, err := assets.ReadFile("assets/settings.json")
	if err != nil {
		return err
	}
	var tool map[string]any
	if err := json.Unmarshal(bundled, &tool); err != nil {
		return err
	}

	dir := filepath.Join(worktreePath, ".claude")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(dir, "settings.json")
	project := map[string]any{}
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &project); err != nil {
			return fmt.Errorf("parsing project settings: %w", err)
		}
	}

	merged := MergeSettings(project, tool)
	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// MergeSettings merges the tool's settings document into the project's.
// Hook lists are concatenated per event name, project hooks first so the
// tool's hooks run after any the project defines. Every other top-level
// key is overwritten by the tool's value.
func MergeSettings(project, tool map[string]any) map[string]any {
	merged := make(map[string]any, len(project)+len(tool))
	for k, v := range project {
		merged[k] = v
	}
	for k, v := range tool {
		if k != "hooks" {
			merged[k] = v
			continue
		}
		toolHooks, ok := v.(map[string]any)
		if !ok {
			merged[k] = v
			continue
		}
		projectHooks, _ := merged["hooks"].(map[string]any)
		merged["hooks"] = mergeHooks(projectHooks, toolHooks)
	}
	return merged
}

func mergeHooks(project, tool map[string]any) map[string]any {
	merged := make(map[string]any, len(project)+len(tool))
	for event, list := range project {
		merged[event] = list
	}
	for event, list := range tool {
		toolList, ok := list.([]any)
		if !ok {
			merged[event] = list
			continue
		}
		if projectList, ok := merged[event].([]any); ok {
			merged[event] = append(append([]any{}, projectList...), toolList...)
		} else {
			merged[event] = toolList
		}
	}
	return merged
}

// installHooks replaces the worktree's .claude/hooks directory with the
// bundled one. Replacement, not merge: the scripts pair with the hook
// entries in the bundled settings document.
func installHooks(worktreePath string) error {
	dst := filepath.Join(worktreePath, ".claude", "hooks")
	if err := os.RemoveAll(dst); err != nil {
		return err
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}
	entries, err := fs.ReadDir(assets, "assets/hooks")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		data, err := assets.ReadFile("assets/hooks/" + entry.Name())
		if err != nil {
			return err
		}
		// Hook scripts must be executable inside the container.
		if err := os.WriteFile(filepath.Join(dst, entry.Name()), data, 0o755); err != nil {
			return err
		}
	}
	return nil
}
