package safeio

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUserPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"simple", "file.txt", "file.txt"},
		{"leading dot", "./src/main.java", filepath.FromSlash("src/main.java")},
		{"backslashes", `templates\java\header.txt`, filepath.FromSlash("templates/java/header.txt")},
		{"surrounding spaces", "  src  ", "src"},
		{"parent allowed", "../shared", filepath.FromSlash("../shared")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeUserPath(tt.input))
		})
	}
}

func TestIsContained(t *testing.T) {
	root := t.TempDir()
	inside := filepath.Join(root, "sub", "a.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(inside), 0o755))
	require.NoError(t, os.WriteFile(inside, []byte("a"), 0o644))

	outsideDir := t.TempDir()
	outside := filepath.Join(outsideDir, "b.txt")
	require.NoError(t, os.WriteFile(outside, []byte("b"), 0o644))

	ok, err := IsContained(root, inside)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsContained(root, outside)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsContained(root, root)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = IsContained(root, filepath.Join(root, "missing.txt"))
	assert.Error(t, err)
}

func TestIsContainedSymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}
	root := t.TempDir()
	outside := filepath.Join(t.TempDir(), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("s"), 0o644))

	link := filepath.Join(root, "link.txt")
	require.NoError(t, os.Symlink(outside, link))

	ok, err := IsContained(root, link)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteFilePreservePerms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	require.NoError(t, WriteFilePreservePerms(path, []byte("data")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))

	if runtime.GOOS != "windows" {
		st, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), st.Mode().Perm())
	}
}

func TestWriteFilePreservePermsExisting(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	path := filepath.Join(t.TempDir(), "script.sh")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o755))

	require.NoError(t, WriteFilePreservePerms(path, []byte("new")))

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), st.Mode().Perm())
}

func TestWriteFilePreservePermsError(t *testing.T) {
	err := WriteFilePreservePerms(filepath.Join(t.TempDir(), "no", "such", "dir", "f.txt"), []byte("x"))
	assert.Error(t, err)
}
