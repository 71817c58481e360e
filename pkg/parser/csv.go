package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graph"
)

// Options control how node and edge lists are read.
type Options struct {
	// Delimiter separates columns. Defaults to ','.
	Delimiter rune
	// Header skips the first record of each file.
	Header bool
}

// LoadTypedGraph reads a typed graph from a node list, holding the label of
// node i on record i, and an edge list with one "src,dst" pair per record.
// Lines starting with '#' are ignored. Edges are symmetrised, sorted and
// de-duplicated; the label domain is inferred and must be dense.
func LoadTypedGraph(nodesPath, edgesPath string, opts Options) (*graph.CSR, error) {
	nodes, err := os.Open(nodesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open node list: %w", err)
	}
	defer nodes.Close()

	edges, err := os.Open(edgesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open edge list: %w", err)
	}
	defer edges.Close()

	return ReadTypedGraph(nodes, edges, opts)
}

// ReadTypedGraph is LoadTypedGraph over readers.
func ReadTypedGraph(nodes, edges io.Reader, opts Options) (*graph.CSR, error) {
	labels, err := readLabels(nodes, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse node list: %w", err)
	}

	b := graph.NewBuilder(len(labels))
	for node, label := range labels {
		if err := b.SetLabel(node, label); err != nil {
			return nil, err
		}
	}

	err = eachRecord(edges, opts, 2, func(line int, record []string) error {
		src, err := parseID(record[0])
		if err != nil {
			return err
		}
		dst, err := parseID(record[1])
		if err != nil {
			return err
		}
		return b.AddEdge(src, dst)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse edge list: %w", err)
	}

	g, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}
	return g, nil
}

func readLabels(r io.Reader, opts Options) ([]graph.Label, error) {
	var labels []graph.Label
	err := eachRecord(r, opts, 1, func(line int, record []string) error {
		value, err := strconv.ParseUint(strings.TrimSpace(record[0]), 10, 32)
		if err != nil {
			return err
		}
		labels = append(labels, graph.Label(value))
		return nil
	})
	return labels, err
}

// eachRecord calls fn with every record holding at least columns fields.
func eachRecord(r io.Reader, opts Options, columns int, fn func(line int, record []string) error) error {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}

	skipHeader := opts.Header
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		line, _ := cr.FieldPos(0)
		if skipHeader {
			skipHeader = false
			continue
		}
		if len(record) < columns {
			return fmt.Errorf("line %d: expected %d columns, got %d", line, columns, len(record))
		}
		if err := fn(line, record); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

func parseID(field string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, err
	}
	if id < 0 {
		return 0, fmt.Errorf("negative node id %d: %w", id, graph.ErrNodeOutOfRange)
	}
	return id, nil
}
