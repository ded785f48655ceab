package sandbox

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSettingsHooksConcatenate(t *testing.T) {
	project := map[string]any{
		"hooks": map[string]any{
			"PreToolUse": []any{"project-hook"},
		},
	}
	tool := map[string]any{
		"hooks": map[string]any{
			"PreToolUse": []any{"tool-hook"},
		},
	}

	merged := MergeSettings(project, tool)
	hooks := merged["hooks"].(map[string]any)
	// Project hooks come first so the tool's run after them.
	assert.Equal(t, []any{"project-hook", "tool-hook"}, hooks["PreToolUse"])
}

func TestMergeSettingsDisjointHookEvents(t *testing.T) {
	project := map[string]any{
		"hooks": map[string]any{"Stop": []any{"a"}},
	}
	tool := map[string]any{
		"hooks": map[string]any{"PreToolUse": []any{"b"}},
	}

	merged := MergeSettings(project, tool)
	hooks := merged["hooks"].(map[string]any)
	assert.Equal(t, []any{"a"}, hooks["Stop"])
	assert.Equal(t, []any{"b"}, hooks["PreToolUse"])
}

func TestMergeSettingsTopLevelOverwrite(t *testing.T) {
	project := map[string]any{
		"model":   "opus",
		"keepMe":  true,
		"verbose": true,
	}
	tool := map[string]any{
		"model":   "sonnet",
		"verbose": false,
	}

	merged := MergeSettings(project, tool)
	assert.Equal(t, "sonnet", merged["model"])
	assert.Equal(t, false, merged["verbose"])
	assert.Equal(t, true, merged["keepMe"])
}

func TestMergeSettingsNoProjectSettings(t *testing.T) {
	tool := map[string]any{
		"hooks": map[string]any{"Stop": []any{"x"}},
		"key":   "value",
	}
	merged := MergeSettings(map[string]any{}, tool)
	assert.Equal(t, "value", merged["key"])
	assert.Equal(t, []any{"x"}, merged["hooks"].(map[string]any)["Stop"])
}

func TestFirstTimeSetupCopiesEnvFiles(t *testing.T) {
	repo := t.TempDir()
	wt := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(repo, ".env"), []byte("A=1\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(repo, ".env.local"), []byte("B=2\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(repo, "notes.txt"), []byte("x"), 0o644))
	// Directories matching the pattern are skipped; the copy is
	// non-recursive and files-only.
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".env.d"), 0o755))

	require.NoError(t, FirstTimeSetup(repo, wt))

	data, err := os.ReadFile(filepath.Join(wt, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "A=1\n", string(data))

	_, err = os.Stat(filepath.Join(wt, ".env.local"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(wt, "notes.txt"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(wt, ".env.d"))
	assert.True(t, os.IsNotExist(err))
}

func TestFirstTimeSetupMergesProjectSettings(t *testing.T) {
	repo := t.TempDir()
	wt := t.TempDir()

	claudeDir := filepath.Join(wt, ".claude")
	require.NoError(t, os.MkdirAll(claudeDir, 0o755))
	projectSettings := map[string]any{
		"hooks": map[string]any{
			"PreToolUse": []any{
				map[string]any{"matcher": "Edit", "hooks": []any{}},
			},
		},
		"model": "opus",
	}
	data, err := json.Marshal(projectSettings)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(claudeDir, "settings.json"), data, 0o644))

	require.NoError(t, FirstTimeSetup(repo, wt))

	out, err := os.ReadFile(filepath.Join(claudeDir, "settings.json"))
	require.NoError(t, err)
	var merged map[string]any
	require.NoError(t, json.Unmarshal(out, &merged))

	// Untouched project key survives; bundle keys are present.
	assert.Equal(t, "opus", merged["model"])
	assert.Equal(t, false, merged["includeCoAuthoredBy"])

	hooks := merged["hooks"].(map[string]any)
	pre := hooks["PreToolUse"].([]any)
	require.Len(t, pre, 2, "project hook followed by bundled hook")
	first := pre[0].(map[string]any)
	assert.Equal(t, "Edit", first["matcher"])
}

func TestFirstTimeSetupReplacesHooksDir(t *testing.T) {
	repo := t.TempDir()
	wt := t.TempDir()

	hooksDir := filepath.Join(wt, ".claude", "hooks")
	require.NoError(t, os.MkdirAll(hooksDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(hooksDir, "stale.sh"), []byte("#!/bin/sh\n"), 0o755))

	require.NoError(t, FirstTimeSetup(repo, wt))

	// Wholesale replacement: the stale script is gone, bundle scripts are
	// installed executable.
	_, err := os.Stat(filepath.Join(hooksDir, "stale.sh"))
	assert.True(t, os.IsNotExist(err))

	info, err := os.Stat(filepath.Join(hooksDir, "guard-push.sh"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o111)
}
