package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanupResultFailed(t *testing.T) {
	tests := []struct {
		name   string
		result CleanupResult
		failed bool
	}{
		{"both removed", CleanupResult{ContainerRemoved: true, WorktreeRemoved: true}, false},
		{"container only", CleanupResult{ContainerRemoved: true}, false},
		{"worktree only", CleanupResult{WorktreeRemoved: true}, false},
		{"neither found", CleanupResult{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.failed, tt.result.Failed())
		})
	}
}
