package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGraph() *Graph {
	return &Graph{
		Name: "Shop",
		Targets: []Target{
			{Project: "app", Name: "app", Product: "app", Directory: "/ws/app"},
			{Project: "kit", Name: "kit", Product: "framework", Directory: "/ws/kit"},
		},
		Schemes: []Scheme{
			{Name: "App", Project: "app", BuildTargets: []string{"app/app"}, Entry: true},
			{Name: "Kit", Project: "kit", BuildTargets: []string{"kit/kit"}, Entry: true},
			{Name: "kit/kit", Project: "kit", BuildTargets: []string{"kit/kit"}, Generated: true},
		},
	}
}

func TestWorkspacePathDiscovery(t *testing.T) {
	insp := NewInspector()
	root := t.TempDir()

	_, ok := insp.WorkspacePath(root)
	assert.False(t, ok, "no artifact yet")

	artifact := filepath.Join(root, "Shop"+WorkspaceArtifactSuffix)
	require.NoError(t, os.MkdirAll(artifact, 0o750))

	got, ok := insp.WorkspacePath(root)
	require.True(t, ok)
	assert.Equal(t, artifact, got)
}

func TestWorkspacePathIgnoresFiles(t *testing.T) {
	insp := NewInspector()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "x"+WorkspaceArtifactSuffix), []byte("not a dir"), 0o644))

	_, ok := insp.WorkspacePath(root)
	assert.False(t, ok)
}

func TestBuildableEntrySchemesPreservesOrder(t *testing.T) {
	insp := NewInspector()
	g := sampleGraph()

	entries := insp.BuildableEntrySchemes(g)
	assert.Equal(t, []string{"App", "Kit"}, SchemeNames(entries))

	all := insp.BuildableSchemes(g)
	assert.Len(t, all, 3)
}

func TestBuildableTarget(t *testing.T) {
	insp := NewInspector()
	g := sampleGraph()

	tgt, ok := insp.BuildableTarget(g.Schemes[0], g)
	require.True(t, ok)
	assert.Equal(t, "app/app", tgt.QualifiedName())

	// Scheme referencing only missing targets resolves to nothing.
	orphan := Scheme{Name: "Ghost", BuildTargets: []string{"gone/gone"}}
	_, ok = insp.BuildableTarget(orphan, g)
	assert.False(t, ok)

	// First resolvable target wins when earlier references are stale.
	mixed := Scheme{Name: "Mixed", BuildTargets: []string{"gone/gone", "kit/kit"}}
	tgt, ok = insp.BuildableTarget(mixed, g)
	require.True(t, ok)
	assert.Equal(t, "kit/kit", tgt.QualifiedName())
}
