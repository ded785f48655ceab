package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "feature", "feature"},
		{"one slash", "feature/auth", "feature-auth"},
		{"many slashes", "claude/integrate/api", "claude-integrate-api"},
		{"already safe", "fix-bug-123", "fix-bug-123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeName(tt.in))
		})
	}
}

func TestSafeNameIdempotent(t *testing.T) {
	for _, in := range []string{"feature/auth", "a/b/c", "plain", "x-y"} {
		once := SafeName(in)
		assert.Equal(t, once, SafeName(once))
	}
}

func TestWorktreePath(t *testing.T) {
	assert.Equal(t, "/home/dev/src/myrepo__feature-auth",
		WorktreePath("/home/dev/src/myrepo", "feature-auth"))
	assert.Equal(t, "/deep/nested/repo__task",
		WorktreePath("/deep/nested/repo", "task"))
}

func TestContainerName(t *testing.T) {
	assert.Equal(t, "sandbox-myrepo-feature-auth", ContainerName("myrepo", "feature-auth"))
}

func TestTaskBranch(t *testing.T) {
	assert.Equal(t, "task/quick-fix", TaskBranch("quick-fix"))
}

func TestDefaultImage(t *testing.T) {
	assert.Equal(t, "sandbox-template:myrepo", DefaultImage("myrepo"))
}
