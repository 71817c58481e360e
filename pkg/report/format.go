package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
	CSV  Format = "csv"
)

// Formats lists the supported formats.
var Formats = []Format{Text, JSON, YAML, CSV}

// ParseFormat parses a format name.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(string(f), name) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown report format %q", name)
}

// Extension returns the file extension for f.
func (f Format) Extension() string {
	if f == Text {
		return "txt"
	}
	return string(f)
}

// Write renders r to w in format f.
func Write(w io.Writer, r *Report, f Format) error {
	switch f {
	case Text:
		return writeText(w, r)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case CSV:
		return writeCSV(w, r)
	}
	return fmt.Errorf("unknown report format %q", f)
}

// writeText writes one "Kind(labels): count" line per row.
func writeText(w io.Writer, r *Report) error {
	for _, row := range r.Graphlets {
		if _, err := fmt.Fprintf(w, "%s(%s): %d\n", row.Kind, joinLabels(row.Labels, ", "), row.Count); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"kind", "label_a", "label_b", "label_c", "label_d", "count"}); err != nil {
		return err
	}
	for _, row := range r.Graphlets {
		record := make([]string, 0, 6)
		record = append(record, row.Kind)
		for i := 0; i < 4; i++ {
			if i < len(row.Labels) {
				record = append(record, strconv.FormatUint(uint64(row.Labels[i]), 10))
			} else {
				record = append(record, "")
			}
		}
		record = append(record, strconv.FormatUint(row.Count, 10))
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func joinLabels(labels []uint32, sep string) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = strconv.FormatUint(uint64(l), 10)
	}
	return strings.Join(parts, sep)
}
