package rewrite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const templateSource = `const myTemplate = require("my-template")
class MyTemplate {}
MY_TEMPLATE=1
X-Powered-By: My-Template
`

const projectSource = `const awesomeApp = require("awesome-app")
class AwesomeApp {}
AWESOME_APP=1
X-Powered-By: Awesome-App
`

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	require.NoError(t, os.Chmod(path, mode))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNewRewriterPairs(t *testing.T) {
	r := NewRewriter("my-template", "awesome-app")

	var got [][2]string
	for _, p := range r.Pairs() {
		got = append(got, [2]string{p.From, p.To})
	}
	assert.Equal(t, [][2]string{
		{"my-template", "awesome-app"},
		{"myTemplate", "awesomeApp"},
		{"MyTemplate", "AwesomeApp"},
		{"MY_TEMPLATE", "AWESOME_APP"},
		{"My-Template", "Awesome-App"},
	}, got)
}

func TestNewRewriterDropsNoOpPairs(t *testing.T) {
	assert.Empty(t, NewRewriter("same-name", "same-name").Pairs())
	assert.Empty(t, NewRewriter("", "awesome-app").Pairs())

	// Only the verbatim spelling differs.
	pairs := NewRewriter("my_template", "my-template").Pairs()
	require.Len(t, pairs, 1)
	assert.Equal(t, "my_template", pairs[0].From)
}

func TestApply(t *testing.T) {
	r := NewRewriter("my-template", "awesome-app")
	assert.Equal(t, projectSource, string(r.Apply([]byte(templateSource))))
}

func TestNewRewriterDropsRepeatedSpellings(t *testing.T) {
	// "starter" is its own camel spelling and "Starter" both its pascal and
	// header spelling; the earlier pair takes the spelling.
	var got [][2]string
	for _, p := range NewRewriter("starter", "demo-app").Pairs() {
		got = append(got, [2]string{p.From, p.To})
	}
	assert.Equal(t, [][2]string{
		{"starter", "demo-app"},
		{"Starter", "DemoApp"},
		{"STARTER", "DEMO_APP"},
	}, got)
}

func TestApplyPriorityOrder(t *testing.T) {
	r := NewRewriter("starter", "my-app")
	got := r.Apply([]byte("starter Starter STARTER"))
	assert.Equal(t, "my-app MyApp MY_APP", string(got))
}

// TestApplyDoesNotRescanReplacements verifies that a project spelling which
// contains a template spelling is not rewritten again in the same pass.
func TestApplyDoesNotRescanReplacements(t *testing.T) {
	r := NewRewriter("app", "my-app")

	once := r.Apply([]byte("const app = new App(APP)"))
	assert.Equal(t, "const my-app = new MyApp(MY_APP)", string(once))
}

func TestApplyMatchesLiterally(t *testing.T) {
	r := NewRewriter("a.b", "x")
	assert.Equal(t, "x axb", string(r.Apply([]byte("a.b axb"))))
}

func TestApplyIsIdempotent(t *testing.T) {
	r := NewRewriter("my-template", "awesome-app")
	once := r.Apply([]byte(templateSource))
	twice := r.Apply(once)
	assert.Equal(t, string(once), string(twice))
}

func TestRewriteTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "index.js"), templateSource, 0o644)
	writeFile(t, filepath.Join(root, "bin", "my-template"), "#!/bin/sh\necho my-template\n", 0o755)
	writeFile(t, filepath.Join(root, "LICENSE"), "MIT\n", 0o644)
	writeFile(t, filepath.Join(root, ".github", "workflows", "ci.yml"), "name: my-template\n", 0o644)

	r := NewRewriter("my-template", "awesome-app")
	report, err := r.RewriteTree(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Scanned)
	assert.ElementsMatch(t, []string{
		"index.js",
		filepath.Join("bin", "my-template"),
		filepath.Join(".github", "workflows", "ci.yml"),
	}, report.Changed)

	assert.Equal(t, projectSource, readFile(t, filepath.Join(root, "index.js")))
	assert.Equal(t, "#!/bin/sh\necho awesome-app\n", readFile(t, filepath.Join(root, "bin", "my-template")),
		"file names are not rewritten, only contents")
	assert.Equal(t, "name: awesome-app\n", readFile(t, filepath.Join(root, ".github", "workflows", "ci.yml")))

	info, err := os.Stat(filepath.Join(root, "bin", "my-template"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm(), "file mode should be preserved")
}

func TestRewriteTreeTwiceChangesNothing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "index.js"), templateSource, 0o644)

	r := NewRewriter("my-template", "awesome-app")
	_, err := r.RewriteTree(context.Background(), root)
	require.NoError(t, err)

	report, err := r.RewriteTree(context.Background(), root)
	require.NoError(t, err)
	assert.Empty(t, report.Changed)
	assert.Equal(t, projectSource, readFile(t, filepath.Join(root, "index.js")))
}

func TestRewriteTreeSkipsBinaryFiles(t *testing.T) {
	root := t.TempDir()
	binary := "my-template\x00\x01\x02"
	writeFile(t, filepath.Join(root, "logo.png"), binary, 0o644)

	r := NewRewriter("my-template", "awesome-app")
	report, err := r.RewriteTree(context.Background(), root)
	require.NoError(t, err)

	assert.Empty(t, report.Changed)
	assert.Equal(t, binary, readFile(t, filepath.Join(root, "logo.png")))
}

func TestRewriteTreeSkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(t.TempDir(), "outside.txt")
	writeFile(t, outside, "my-template\n", 0o644)
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "link.txt")))

	r := NewRewriter("my-template", "awesome-app")
	report, err := r.RewriteTree(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Scanned)
	assert.Equal(t, "my-template\n", readFile(t, outside), "symlink targets must not be touched")
}

func TestRewriteTreeSkipsGitDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".git", "config"), "url = my-template\n", 0o644)

	r := NewRewriter("my-template", "awesome-app")
	report, err := r.RewriteTree(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Scanned)
	assert.Equal(t, "url = my-template\n", readFile(t, filepath.Join(root, ".git", "config")))
}

func TestRewriteTreeMissingRoot(t *testing.T) {
	r := NewRewriter("my-template", "awesome-app")
	_, err := r.RewriteTree(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRewriteTreeCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "index.js"), templateSource, 0o644)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRewriter("my-template", "awesome-app")
	_, err := r.RewriteTree(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, templateSource, readFile(t, filepath.Join(root, "index.js")))
}

func TestRewriteFileNotRegular(t *testing.T) {
	r := NewRewriter("my-template", "awesome-app")
	changed, err := r.RewriteFile(t.TempDir())
	require.NoError(t, err)
	assert.False(t, changed)
}
