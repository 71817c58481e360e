package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graph"
)

func TestReadTypedGraph(t *testing.T) {
	nodes := "0\n1\n# comment\n0\n2\n"
	edges := "0,1\n2,1\n1,0\n3, 0\n"

	g, err := ReadTypedGraph(strings.NewReader(nodes), strings.NewReader(edges), Options{})
	require.NoError(t, err)

	assert.Equal(t, 4, g.NumberOfNodes())
	assert.Equal(t, 3, g.NumberOfEdges())
	assert.Equal(t, 3, g.NumberOfNodeLabels())
	assert.Equal(t, []int{0, 2}, g.Neighbours(1))
	assert.Equal(t, []int{1, 3}, g.Neighbours(0))
	assert.Equal(t, graph.Label(2), g.NodeLabel(3))
	require.NoError(t, graph.Validate(g))
}

func TestReadTypedGraphOptions(t *testing.T) {
	nodes := "label\n0\n0\n"
	edges := "src\tdst\n0\t1\n"

	g, err := ReadTypedGraph(strings.NewReader(nodes), strings.NewReader(edges), Options{Delimiter: '\t', Header: true})
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumberOfNodes())
	assert.Equal(t, 1, g.NumberOfEdges())
}

func TestReadTypedGraphErrors(t *testing.T) {
	tests := []struct {
		name    string
		nodes   string
		edges   string
		wantErr error
	}{
		{"self loop", "0\n0\n", "1,1\n", graph.ErrSelfLoop},
		{"unknown node", "0\n0\n", "0,2\n", graph.ErrNodeOutOfRange},
		{"negative node", "0\n0\n", "-1,0\n", graph.ErrNodeOutOfRange},
		{"sparse labels", "0\n3\n", "0,1\n", graph.ErrNonDenseLabels},
		{"short record", "0\n0\n", "0\n", nil},
		{"bad label", "x\n", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTypedGraph(strings.NewReader(tt.nodes), strings.NewReader(tt.edges), Options{})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoadTypedGraph(t *testing.T) {
	dir := t.TempDir()
	nodesPath := filepath.Join(dir, "node_list.csv")
	edgesPath := filepath.Join(dir, "edge_list.csv")
	require.NoError(t, os.WriteFile(nodesPath, []byte("0\n1\n1\n"), 0o644))
	require.NoError(t, os.WriteFile(edgesPath, []byte("0,1\n1,2\n2,0\n"), 0o644))

	g, err := LoadTypedGraph(nodesPath, edgesPath, Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, g.NumberOfEdges())

	_, err = LoadTypedGraph(filepath.Join(dir, "missing.csv"), edgesPath, Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
