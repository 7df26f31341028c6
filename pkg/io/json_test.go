package io

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/linkdiag/pkg/dag"
)

func sampleGraph(t *testing.T) dag.Graph {
	t.Helper()
	liba := dag.NewNode(dag.MustModuleID("liba"), "1.0", "/m2/liba.klib")
	net := dag.NewNode(dag.MustModuleID("net", "net-cinterop"), "2.1")
	platform := dag.NewNode(dag.MustModuleID("platform.posix"), "2.0.0")
	platform.VisibleAtRoot = false

	liba.SetRequested(dag.Root, "1.0")
	net.SetRequested(dag.Root, "2.0")
	net.SetRequested(liba.ID, "2.1")
	platform.SetRequested(net.ID, "2.0.0")

	g := dag.Graph{}
	for _, n := range []*dag.Node{liba, net, platform} {
		require.NoError(t, g.Add(n))
	}
	return g
}

func TestRoundTrip(t *testing.T) {
	g := sampleGraph(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(g, &buf))

	got, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, g, got)
}

func TestWriteJSON_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, WriteJSON(sampleGraph(t), &a))
	require.NoError(t, WriteJSON(sampleGraph(t), &b))
	assert.Equal(t, a.String(), b.String())
	assert.Contains(t, a.String(), `"hidden": true`)
	assert.Contains(t, a.String(), `"names": [
        "net",
        "net-cinterop"
      ]`)
}

func TestReadJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"dangling edge", `{"nodes":[{"names":["a"]}],"edges":[{"to":["b"]}]}`, dag.ErrDanglingDependency},
		{"unknown dependent", `{"nodes":[{"names":["a"]}],"edges":[{"from":["x"],"to":["a"]}]}`, dag.ErrDanglingDependency},
		{"duplicate node", `{"nodes":[{"names":["a"]},{"names":["a"]}],"edges":[]}`, dag.ErrDuplicateModuleID},
		{"empty names", `{"nodes":[{"names":[]}],"edges":[]}`, dag.ErrInvalidModuleID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestReadJSON_Malformed(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"nodes": [`))
	assert.Error(t, err)

	_, err = ReadJSON(strings.NewReader(`{"nodes":[],"edges":[],"layout":{}}`))
	assert.Error(t, err)
}

func TestExportImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	g := sampleGraph(t)

	require.NoError(t, ExportJSON(g, path))
	got, err := ImportJSON(path)
	require.NoError(t, err)
	assert.Equal(t, g, got)

	_, err = ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
