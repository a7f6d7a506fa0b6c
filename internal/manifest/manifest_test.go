package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWorkspace(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, WorkspaceFileName), []byte(`
name: Shop
projects:
  - app
  - kit
`), 0o644))

	ws, err := LoadWorkspace(root)
	require.NoError(t, err)
	assert.Equal(t, "Shop", ws.Name)
	assert.Equal(t, []string{"app", "kit"}, ws.Projects)
}

func TestLoadWorkspaceRejectsDuplicates(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, WorkspaceFileName), []byte(`
name: Shop
projects: [app, app]
`), 0o644))

	_, err := LoadWorkspace(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate project")
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFileName), []byte(`
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
`), 0o644))

	p, err := LoadProject(dir)
	require.NoError(t, err)
	assert.Len(t, p.Targets, 2)
	assert.Equal(t, []string{"kit/kit"}, p.Targets[0].Dependencies)
	require.Len(t, p.Schemes, 1)
	assert.Equal(t, "App", p.Schemes[0].Name)
}

func TestProjectValidation(t *testing.T) {
	tests := []struct {
		name    string
		project Project
		wantErr string
	}{
		{"no targets", Project{Name: "p"}, "no targets"},
		{"missing product", Project{Name: "p", Targets: []Target{{Name: "t"}}}, "no product"},
		{"duplicate target", Project{Name: "p", Targets: []Target{
			{Name: "t", Product: "library"}, {Name: "t", Product: "library"},
		}}, "duplicate target"},
		{"scheme without build targets", Project{Name: "p",
			Targets: []Target{{Name: "t", Product: "library"}},
			Schemes: []Scheme{{Name: "S"}},
		}, "no build targets"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.project.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFingerprintStability(t *testing.T) {
	ws := &Workspace{Name: "Shop", Projects: []string{"app"}}
	p := &Project{Name: "app", Targets: []Target{{Name: "app", Product: "app"}}}

	a, err := Fingerprint(ws, []*Project{p})
	require.NoError(t, err)
	b, err := Fingerprint(ws, []*Project{p})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	changed := &Project{Name: "app", Targets: []Target{{Name: "app", Product: "framework"}}}
	c, err := Fingerprint(ws, []*Project{changed})
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
