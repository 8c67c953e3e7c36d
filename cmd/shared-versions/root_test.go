package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ymmmsick/shared-versions/pkg/tree"
)

func setupDocs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	source := filepath.Join(dir, "shared.yaml")
	target := filepath.Join(dir, "pubspec.yaml")
	if err := os.WriteFile(source, []byte("dependencies:\n  http: ^1.2.0\n  path: ^1.9.0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("name: app\ndependencies:\n  path: ^1.8.0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return source, target
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRoot_Sync(t *testing.T) {
	source, target := setupDocs(t)

	out, err := execute(t, "--source", source, "--target", target, "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, out, "dependencies: -> dependencies:")
	assert.True(t, strings.HasSuffix(out, "Complete!\n"), out)
	assert.NotContains(t, out, "\x1b[")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	n, err := tree.Parse(data)
	require.NoError(t, err)
	d, _ := n.(*tree.Mapping).Get("dependencies")
	assert.Equal(t, []string{"http", "path"}, d.(*tree.Mapping).Keys())
	p, _ := d.(*tree.Mapping).Get("path")
	assert.Equal(t, "^1.8.0", p.(*tree.Scalar).Value)
}

func TestRoot_PositionalArgs(t *testing.T) {
	source, target := setupDocs(t)

	out, err := execute(t, source, target, "--color", "always", "--summary")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "dependencies: 1 added, 1 overridden, 0 unchanged, 0 retained")
}

func TestRoot_DryRun(t *testing.T) {
	source, target := setupDocs(t)
	before, err := os.ReadFile(target)
	require.NoError(t, err)

	out, err := execute(t, source, target, "--dry-run", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, `http: "^1.2.0"`)
	assert.NotContains(t, out, "Complete!")

	after, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestRoot_Errors(t *testing.T) {
	source, target := setupDocs(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no source", args: []string{"--target", target}, want: "source document is required"},
		{name: "bad color", args: []string{source, target, "--color", "sometimes"}, want: "invalid --color"},
		{name: "missing target", args: []string{source, filepath.Join(filepath.Dir(target), "nope.yaml")}, want: "nope.yaml"},
		{name: "too many args", args: []string{source, target, "extra"}, want: "accepts at most 2 arg(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestResolveColor(t *testing.T) {
	var buf bytes.Buffer

	on, err := resolveColor("always", &buf)
	require.NoError(t, err)
	assert.True(t, on)

	off, err := resolveColor("auto", &buf)
	require.NoError(t, err)
	assert.False(t, off)
}
