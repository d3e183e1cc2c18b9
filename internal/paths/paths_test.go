package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/charter/pkg/types"
)

func TestDocumentPath(t *testing.T) {
	assert.Equal(t, "vision.md", DocumentPath(types.TypeVision, "ignored"))
	assert.Equal(t, filepath.Join("strategy", "eu-launch", "strategy.md"), DocumentPath(types.TypeStrategy, "eu-launch"))
	assert.Equal(t, filepath.Join("initiative", "billing", "initiative.md"), DocumentPath(types.TypeInitiative, "billing"))
	assert.Equal(t, filepath.Join("task", "wire-up.md"), DocumentPath(types.TypeTask, "wire-up"))
	assert.Equal(t, filepath.Join("adr", "use-sqlite.md"), DocumentPath(types.TypeAdr, "use-sqlite"))
}

func TestArchivedPath(t *testing.T) {
	assert.Equal(t, filepath.Join("archived", "task", "wire-up.md"), ArchivedPath(filepath.Join("task", "wire-up.md")))

	// Already archived paths are left alone.
	archived := filepath.Join("archived", "task", "wire-up.md")
	assert.Equal(t, archived, ArchivedPath(archived))

	assert.True(t, IsArchivedPath(archived))
	assert.False(t, IsArchivedPath(filepath.Join("task", "wire-up.md")))
}

func TestTypeFromPath(t *testing.T) {
	tests := []struct {
		rel  string
		want types.DocumentType
		ok   bool
	}{
		{"vision.md", types.TypeVision, true},
		{"archived/vision.md", types.TypeVision, true},
		{"strategy/eu-launch/strategy.md", types.TypeStrategy, true},
		{"archived/task/wire-up.md", types.TypeTask, true},
		{"adr/use-sqlite.md", types.TypeAdr, true},
		{"notes.md", "", false},
		{"docs/readme.md", "", false},
	}
	for _, tt := range tests {
		got, ok := TypeFromPath(tt.rel)
		assert.Equal(t, tt.ok, ok, tt.rel)
		assert.Equal(t, tt.want, got, tt.rel)
	}
}

func TestDetect(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, WorkspaceDirName)
	nested := filepath.Join(base, "a", "b")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := Detect(nested)
	require.NoError(t, err)
	assert.Equal(t, root, got)

	// Pointing straight at the workspace directory works too.
	got, err = Detect(root)
	require.NoError(t, err)
	assert.Equal(t, root, got)

	_, err = Detect(t.TempDir())
	assert.ErrorIs(t, err, types.ErrWorkspaceNotFound)
}

func TestDetectEnvOverride(t *testing.T) {
	root := filepath.Join(t.TempDir(), WorkspaceDirName)
	require.NoError(t, os.MkdirAll(root, 0o755))
	t.Setenv(EnvWorkspace, root)

	got, err := Detect(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, root, got)
}
