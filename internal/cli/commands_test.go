package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/linkdiag/pkg/errors"
	"github.com/matzehuels/linkdiag/pkg/issues"
	"github.com/matzehuels/linkdiag/pkg/observability"
	"github.com/matzehuels/linkdiag/pkg/render/tree"
)

const projectUniverse = `current: app
modules:
  - name: app
    dependencies: [liba, libb]
  - name: liba
    dependencies: [libc]
  - name: libb
    dependencies: [libc, libd]
  - name: libc
  - name: libd
`

const cyclicUniverse = `current: app
modules:
  - name: app
    dependencies: [x]
  - name: x
    dependencies: [y]
  - name: y
    dependencies: [x]
`

const sampleManifest = "1 org.example:liba[1.0] #0[1.0]\n" +
	"\t/m2/liba.klib\n" +
	"2 org.example:libb[2.0] #0[2.0] #1[1.9]\n" +
	"\t/m2/libb.klib\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command with args and returns what it wrote.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Cleanup(observability.Reset)
	var logs, out, errOut bytes.Buffer
	root := New(&logs, log.InfoLevel).RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestRenderCommand(t *testing.T) {
	u := writeFile(t, "universe.yaml", projectUniverse)

	stdout, _, err := execute(t, "render", "-u", u)
	require.NoError(t, err)

	want := "├─── liba\n" +
		"│    └─── libc\n" +
		"└─── libb\n" +
		"     ├─── libc\n" +
		"     └─── libd\n"
	assert.Equal(t, want, stdout)
}

func TestRenderCommand_Highlight(t *testing.T) {
	u := writeFile(t, "universe.yaml", projectUniverse)

	stdout, stderr, err := execute(t, "render", "-u", u, "--highlight", "libd", "--stats")
	require.NoError(t, err)
	assert.Contains(t, stdout, "     └─── libd\n          "+tree.ErrorMarker)
	assert.Contains(t, stderr, "4 modules")
	assert.Contains(t, stderr, "5 edges")
}

func TestRenderCommand_UnknownHighlight(t *testing.T) {
	u := writeFile(t, "universe.yaml", projectUniverse)

	stdout, stderr, err := execute(t, "render", "-u", u, "--highlight", "nope")
	require.NoError(t, err)
	assert.Contains(t, stderr, "nope is not part of the dependency graph")
	assert.NotContains(t, stdout, tree.ErrorMarker)
}

func TestRenderCommand_Empty(t *testing.T) {
	u := writeFile(t, "universe.yaml", "current: app\nmodules:\n  - name: app\n")

	stdout, _, err := execute(t, "render", "-u", u)
	require.NoError(t, err)
	assert.Equal(t, "<empty>\n", stdout)
}

func TestRenderCommand_MissingUniverse(t *testing.T) {
	_, _, err := execute(t, "render")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestExplainUnresolved(t *testing.T) {
	u := writeFile(t, "universe.yaml", projectUniverse)

	stdout, _, err := execute(t, "explain", "unresolved", "-u", u, "-m", "libb", "-s", "foo/bar|1")
	require.Error(t, err)
	assert.True(t, issues.IsFatal(err))
	assert.Equal(t, errors.ErrCodeUnresolvedSymbol, errors.GetCode(err))

	assert.Contains(t, stdout, "Module libb has a reference to symbol foo/bar|1.")
	assert.Contains(t, stdout, "\n\nProject dependencies:\n")
	assert.Contains(t, stdout, "└─── app\n")
	assert.Contains(t, stdout, "libb\n          "+tree.ErrorMarker)
}

func TestExplainUnresolved_UnknownModule(t *testing.T) {
	u := writeFile(t, "universe.yaml", projectUniverse)

	stdout, _, err := execute(t, "explain", "unresolved", "-u", u, "-m", "nope", "-s", "foo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeModuleNotFound))
	assert.Empty(t, stdout)
}

func TestExplainMissing(t *testing.T) {
	stdout, _, err := execute(t, "explain", "missing", "-m", "libz", "-s", "foo")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeModuleNotLoaded, errors.GetCode(err))
	assert.Equal(t, "Could not load module libz in an attempt to find deserializer for symbol foo.\n", stdout)
}

func TestExplainMismatch(t *testing.T) {
	u := writeFile(t, "universe.yaml", projectUniverse)

	stdout, _, err := execute(t, "explain", "mismatch", "-u", u, "--cause", "foo is a class, expected a function")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTypeMismatch, errors.GetCode(err))
	assert.Contains(t, stdout, "foo is a class, expected a function\n\nThis could happen")
	assert.Contains(t, stdout, "Project dependencies:\n├─── liba\n")
	assert.NotContains(t, stdout, tree.ErrorMarker)
}

func TestWhyCommand(t *testing.T) {
	u := writeFile(t, "universe.yaml", projectUniverse)

	stdout, _, err := execute(t, "why", "libd", "-u", u)
	require.NoError(t, err)
	assert.Equal(t, "app\n└─── libb\n     └─── libd\n", stdout)
}

func TestWhyCommand_NotInGraph(t *testing.T) {
	u := writeFile(t, "universe.yaml", projectUniverse)

	_, _, err := execute(t, "why", "nope", "-u", u)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeModuleNotFound))
}

func TestWhyCommand_Unreachable(t *testing.T) {
	u := writeFile(t, "universe.yaml", "current: app\nmodules:\n  - name: app\n  - name: orphan\n")

	stdout, _, err := execute(t, "why", "orphan", "-u", u)
	require.NoError(t, err)
	assert.Contains(t, stdout, "orphan is not reachable from the project")
}

func TestCyclesCommand(t *testing.T) {
	u := writeFile(t, "universe.yaml", cyclicUniverse)

	stdout, _, err := execute(t, "cycles", "-u", u)
	require.NoError(t, err)
	assert.Contains(t, stdout, "cycle: x ↔ y")
}

func TestCyclesCommand_None(t *testing.T) {
	u := writeFile(t, "universe.yaml", projectUniverse)

	stdout, _, err := execute(t, "cycles", "-u", u)
	require.NoError(t, err)
	assert.Contains(t, stdout, "no dependency cycles")
}

func TestGraphCommand_DOT(t *testing.T) {
	u := writeFile(t, "universe.yaml", projectUniverse)

	stdout, _, err := execute(t, "graph", "-u", u, "--highlight", "libc")
	require.NoError(t, err)
	assert.Contains(t, stdout, "digraph G {")
	assert.Contains(t, stdout, `"<root>" [label="app"`)
	assert.Contains(t, stdout, `"<root>" -> "liba";`)
	assert.Contains(t, stdout, `"libb" -> "libd";`)
	assert.Contains(t, stdout, `"libc" [label="libc", fillcolor="#f4b6b6", penwidth=2];`)
}

func TestGraphCommand_DOTFile(t *testing.T) {
	u := writeFile(t, "universe.yaml", projectUniverse)
	out := filepath.Join(t.TempDir(), "deps.dot")

	stdout, stderr, err := execute(t, "graph", "-u", u, "-o", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph G {")
}

func TestGraphCommand_BadFormat(t *testing.T) {
	u := writeFile(t, "universe.yaml", projectUniverse)

	_, _, err := execute(t, "graph", "-u", u, "-o", "deps.jpeg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestManifestCheck(t *testing.T) {
	m := writeFile(t, "deps.txt", sampleManifest)

	stdout, stderr, err := execute(t, "manifest", "check", m)
	require.NoError(t, err)
	assert.Equal(t, sampleManifest, stdout)
	assert.Contains(t, stderr, "is well-formed")
	assert.Contains(t, stderr, "2 modules")
}

func TestManifestCheck_Malformed(t *testing.T) {
	m := writeFile(t, "deps.txt", sampleManifest+"garbage\n")

	stdout, stderr, err := execute(t, "manifest", "check", "--quiet", m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidManifest))
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "deps.txt:5: malformed entry")
}

func TestManifestCheck_MissingFile(t *testing.T) {
	_, _, err := execute(t, "manifest", "check", filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestRenderCommand_MergingBuilder(t *testing.T) {
	dir := t.TempDir()
	m := filepath.Join(dir, "deps.txt")
	require.NoError(t, os.WriteFile(m, []byte(sampleManifest), 0o644))

	u := filepath.Join(dir, "universe.yaml")
	require.NoError(t, os.WriteFile(u, []byte(`current: app
modules:
  - name: app
    dependencies: [org.example:liba]
  - name: org.example:liba
    version: "1.0"
    path: /m2/liba.klib
`), 0o644))

	stdout, _, err := execute(t, "render", "-u", u, "--manifest", m)
	require.NoError(t, err)
	assert.Contains(t, stdout, "org.example:liba: 1.0")
	assert.Contains(t, stdout, "org.example:libb: 2.0")
	assert.Contains(t, stdout, "org.example:libb: 1.9 -> 2.0")
}

func TestGraphCommand_Snapshot(t *testing.T) {
	u := writeFile(t, "universe.yaml", projectUniverse)
	snap := filepath.Join(t.TempDir(), "deps.json")

	_, _, err := execute(t, "graph", "-u", u, "-o", snap)
	require.NoError(t, err)

	fromUniverse, _, err := execute(t, "render", "-u", u)
	require.NoError(t, err)
	fromSnapshot, _, err := execute(t, "render", "--snapshot", snap)
	require.NoError(t, err)
	assert.Equal(t, fromUniverse, fromSnapshot)

	stdout, _, err := execute(t, "why", "libd", "--snapshot", snap)
	require.NoError(t, err)
	assert.Equal(t, "<root>\n└─── libb\n     └─── libd\n", stdout)
}

func TestRenderCommand_BadSnapshot(t *testing.T) {
	snap := writeFile(t, "deps.json", `{"nodes": [`)

	_, _, err := execute(t, "render", "--snapshot", snap)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestCompletionCommand(t *testing.T) {
	stdout, _, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "linkdiag")

	_, _, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestCompleteModules(t *testing.T) {
	u := writeFile(t, "universe.yaml", projectUniverse)

	cmd := New(io.Discard, log.InfoLevel).whyCommand()
	require.NoError(t, cmd.Flags().Set("universe", u))

	names, directive := completeModules(cmd, nil, "")
	assert.Equal(t, []string{"liba", "libb", "libc", "libd"}, names)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}
