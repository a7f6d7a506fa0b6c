package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/buildforge/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFixture lays out a two-project workspace: app declares a scheme, kit
// relies on the generated project scheme.
func writeFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	write("workspace.yaml", `
name: Shop
projects: [app, kit]
`)
	write("app/project.yaml", `
name: app
targets:
  - name: app
    product: app
    dependencies: [kit/kit]
  - name: app-tests
    product: test
schemes:
  - name: App
    build_targets: [app]
`)
	write("kit/project.yaml", `
name: kit
targets:
  - name: kit
    product: framework
`)
	return root
}

func TestGeneratePersistsArtifact(t *testing.T) {
	root := writeFixture(t)
	p := New()

	g, err := p.Generate(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, "Shop", g.Name)
	assert.Equal(t, filepath.Join(root, "Shop.forgespace"), g.WorkspacePath)
	assert.DirExists(t, g.WorkspacePath)
	assert.FileExists(t, filepath.Join(g.WorkspacePath, GraphFileName))
	assert.NotEmpty(t, g.Metadata.Fingerprint)
	assert.False(t, g.Metadata.GeneratedAt.IsZero())
}

func TestGenerateSchemeDerivation(t *testing.T) {
	root := writeFixture(t)
	g, err := New().Generate(context.Background(), root)
	require.NoError(t, err)

	insp := graph.NewInspector()

	// Entry order: workspace project order, declaration order within.
	entries := graph.SchemeNames(insp.BuildableEntrySchemes(g))
	assert.Equal(t, []string{"App", "kit"}, entries)

	// Per-target generated schemes are buildable but not entry.
	all := graph.SchemeNames(insp.BuildableSchemes(g))
	assert.Contains(t, all, "app/app")
	assert.Contains(t, all, "app/app-tests")
	assert.Contains(t, all, "kit/kit")

	// Local dependency references were qualified.
	app, ok := g.TargetByName("app/app")
	require.True(t, ok)
	assert.Equal(t, []string{"kit/kit"}, app.Dependencies)
}

func TestGenerateRejectsUnknownDependency(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "workspace.yaml"), []byte(`
name: W
projects: [p]
`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "p"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "p", "project.yaml"), []byte(`
name: p
targets:
  - name: t
    product: library
    dependencies: [missing/missing]
`), 0o644))

	_, err := New().Generate(context.Background(), root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown target")
}

func TestGenerateRejectsDuplicateSchemeAcrossProjects(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write("workspace.yaml", "name: W\nprojects: [a, b]\n")
	write("a/project.yaml", `
name: a
targets: [{name: t, product: library}]
schemes: [{name: Shared, build_targets: [t]}]
`)
	write("b/project.yaml", `
name: b
targets: [{name: t, product: library}]
schemes: [{name: Shared, build_targets: [t]}]
`)

	_, err := New().Generate(context.Background(), root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declared in both")
}

func TestLoadRoundTrip(t *testing.T) {
	root := writeFixture(t)
	p := New()

	generated, err := p.Generate(context.Background(), root)
	require.NoError(t, err)

	loaded, err := p.Load(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, generated.Name, loaded.Name)
	assert.Equal(t, generated.WorkspacePath, loaded.WorkspacePath)
	assert.Equal(t, graph.SchemeNames(generated.Schemes), graph.SchemeNames(loaded.Schemes))
	assert.Equal(t, generated.Metadata.Fingerprint, loaded.Metadata.Fingerprint)
}

func TestLoadWithoutArtifactFails(t *testing.T) {
	_, err := New().Load(context.Background(), t.TempDir())
	require.Error(t, err)
}

func TestGenerateReplacesRenamedArtifact(t *testing.T) {
	root := writeFixture(t)
	p := New()

	_, err := p.Generate(context.Background(), root)
	require.NoError(t, err)

	// Rename the workspace and regenerate: the old artifact must vanish.
	require.NoError(t, os.WriteFile(filepath.Join(root, "workspace.yaml"), []byte(`
name: Storefront
projects: [app, kit]
`), 0o644))

	g, err := p.Generate(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Storefront.forgespace"), g.WorkspacePath)
	assert.NoDirExists(t, filepath.Join(root, "Shop.forgespace"))
}

func TestGenerateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Generate(ctx, writeFixture(t))
	require.ErrorIs(t, err, context.Canceled)
}
