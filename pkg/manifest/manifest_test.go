package manifest

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/errors"
	"github.com/matzehuels/linkdiag/pkg/ordering"
)

const sample = "1 org.example:liba[1.0] #0[1.0]\n" +
	"\t/m2/liba.klib\n" +
	"2 org.example:libb,org.example:libb-cinterop[2.0] #0[2.0] #1[1.9]\n" +
	"\t/m2/libb-cinterop.klib\n" +
	"\t/m2/libb.klib\n"

type lineReport struct {
	no   int
	line string
}

func parse(t *testing.T, text string) (dag.Graph, []lineReport) {
	t.Helper()
	var reports []lineReport
	g, err := Parse(strings.NewReader(text), func(no int, line string) {
		reports = append(reports, lineReport{no, line})
	})
	require.NoError(t, err)
	require.NoError(t, g.Validate())
	return g, reports
}

func TestParse(t *testing.T) {
	g, reports := parse(t, sample)
	assert.Empty(t, reports)
	require.Len(t, g, 2)

	liba := g[dag.MustModuleID("org.example:liba")]
	require.NotNil(t, liba)
	assert.Equal(t, "1.0", liba.SelectedVersion)
	assert.Equal(t, map[dag.ModuleID]string{dag.Root: "1.0"}, liba.RequestedVersions)
	assert.Equal(t, []string{"/m2/liba.klib"}, liba.ArtifactPaths)

	libb := g[dag.MustModuleID("org.example:libb", "org.example:libb-cinterop")]
	require.NotNil(t, libb)
	assert.Equal(t, map[dag.ModuleID]string{dag.Root: "2.0", liba.ID: "1.9"}, libb.RequestedVersions)
	assert.Len(t, libb.ArtifactPaths, 2)
}

func TestParse_ForwardReference(t *testing.T) {
	g, reports := parse(t, "1 b[1] #2[1]\n2 a[2] #0[2]\n")
	assert.Empty(t, reports)
	assert.Equal(t, "1", g[dag.MustModuleID("b")].RequestedVersions[dag.MustModuleID("a")])
}

func TestParse_EmptyVersions(t *testing.T) {
	g, reports := parse(t, "1 a[] #0[]\n")
	assert.Empty(t, reports)
	n := g[dag.MustModuleID("a")]
	assert.Empty(t, n.SelectedVersion)
	v, ok := n.RequestedBy(dag.Root)
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNodes int
		wantLines []int
	}{
		{name: "missing version", input: "1 a #0[1]\n2 b[1] #0[1]\n", wantNodes: 1, wantLines: []int{1}},
		{name: "bad ordinal", input: "x a[1]\n", wantNodes: 0, wantLines: []int{1}},
		{name: "zero ordinal declared", input: "0 a[1]\n", wantNodes: 0, wantLines: []int{1}},
		{name: "duplicate ordinal", input: "1 a[1] #0[1]\n1 b[1] #0[1]\n", wantNodes: 1, wantLines: []int{2}},
		{name: "duplicate identity", input: "1 a[1] #0[1]\n2 a[2] #0[2]\n", wantNodes: 1, wantLines: []int{2}},
		{name: "unknown dependent", input: "1 a[1] #0[1] #7[1]\n", wantNodes: 1, wantLines: []int{1}},
		{name: "self dependent", input: "1 a[1] #1[1]\n", wantNodes: 1, wantLines: []int{1}},
		{name: "bad dependent token", input: "1 a[1] 0[1]\n", wantNodes: 0, wantLines: []int{1}},
		{name: "orphan artifact", input: "\t/x.klib\n1 a[1] #0[1]\n", wantNodes: 1, wantLines: []int{1}},
		{name: "artifact of rejected entry skipped", input: "1 a\n\t/a.klib\n2 b[1] #0[1]\n", wantNodes: 1, wantLines: []int{1}},
		{name: "blank lines ignored", input: "\n1 a[1] #0[1]\n\n", wantNodes: 1},
		{name: "reported in line order", input: "1 a[1] #9[1]\nbad\n", wantNodes: 1, wantLines: []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, reports := parse(t, tt.input)
			assert.Len(t, g, tt.wantNodes)

			var lines []int
			for _, r := range reports {
				lines = append(lines, r.no)
			}
			assert.Equal(t, tt.wantLines, lines)
		})
	}
}

func TestParse_NilCallback(t *testing.T) {
	g, err := Parse(strings.NewReader("garbage\n1 a[1] #0[1]\n"), nil)
	require.NoError(t, err)
	assert.Len(t, g, 1)
}

func TestParse_OverlongLine(t *testing.T) {
	junk := strings.Repeat("x", 2<<20)
	g, reports := parse(t, "1 a[1] #0[1]\n"+junk+"\n3 b[2] #0[2]")

	assert.Len(t, g, 2)
	assert.Contains(t, g, dag.MustModuleID("a"))
	assert.Contains(t, g, dag.MustModuleID("b"))
	require.Len(t, reports, 1)
	assert.Equal(t, 2, reports[0].no)
	assert.Len(t, reports[0].line, len(junk))
}

func TestParse_ReadError(t *testing.T) {
	_, err := Parse(iotest.ErrReader(stderrors.New("disk gone")), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidManifest))
}

func TestWrite(t *testing.T) {
	g, _ := parse(t, sample)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, g, ordering.Default()))
	assert.Equal(t, sample, buf.String())

	again, reports := parse(t, buf.String())
	assert.Empty(t, reports)
	assert.Equal(t, g, again)
}

func TestWrite_Inconsistent(t *testing.T) {
	n := dag.NewNode(dag.MustModuleID("a"), "1")
	n.SetRequested(dag.MustModuleID("ghost"), "1")
	g := dag.Graph{n.ID: n}

	err := Write(&bytes.Buffer{}, g, ordering.Default())
	assert.ErrorIs(t, err, dag.ErrDanglingDependency)
}

func TestFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file is empty", func(t *testing.T) {
		g, err := File{Path: filepath.Join(dir, "absent.txt")}.Load(nil)
		require.NoError(t, err)
		assert.Empty(t, g)
	})

	t.Run("empty path is empty", func(t *testing.T) {
		g, err := File{}.Load(nil)
		require.NoError(t, err)
		assert.Empty(t, g)
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(dir, "deps.txt")
		require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

		f := File{Path: path}
		g, err := f.Load(nil)
		require.NoError(t, err)
		assert.Len(t, g, 2)
		assert.Equal(t, path, f.Source())
	})
}
