package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OgnjenAdzic28/portfolio/internal/scaffold"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, scaffold.CreateNewSite(dir))
	t.Chdir(dir)

	path := execute(t, "new", "post", "Second", "Post")
	assert.Contains(t, path, filepath.Join("content", "posts", "second-post.mdoc"))

	listing := execute(t, "posts")
	assert.Contains(t, listing, "hello-world")
	assert.Contains(t, listing, "second-post")

	execute(t, "build", "--out", "public", "--clean")
	assert.FileExists(t, filepath.Join(dir, "public", "blog", "second-post", "index.html"))
	assert.FileExists(t, filepath.Join(dir, "public", "static", "style.css"))
}

func TestCommandsWithAbsoluteContentDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, scaffold.CreateNewSite(root))
	t.Chdir(root)

	shared := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(shared, "posts"), 0755))
	post := "---\ntitle: Shared Post\npublishedDate: 2024-04-04\n---\nFrom elsewhere\n"
	require.NoError(t, os.WriteFile(filepath.Join(shared, "posts", "shared-post.mdoc"), []byte(post), 0644))
	t.Setenv("PORTFOLIO_CONTENTDIR", shared)

	listing := execute(t, "posts")
	assert.Contains(t, listing, "shared-post")
	assert.NotContains(t, listing, "hello-world")

	path := execute(t, "new", "post", "Third")
	assert.Contains(t, path, filepath.Join(shared, "posts", "third.mdoc"))
	assert.FileExists(t, filepath.Join(shared, "posts", "third.mdoc"))
}
