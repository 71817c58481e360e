package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Summary is the run-level metadata written next to the graphlet tables.
type Summary struct {
	RunID      string      `yaml:"run_id"`
	Statistics interface{} `yaml:"statistics,omitempty"`
	Kinds      []KindTotal `yaml:"kinds"`
	Reduced    []KindTotal `yaml:"reduced_kinds"`
}

// OutputWriter interface for flexible output generation
type OutputWriter interface {
	WriteReport(r *Report, f Format, path string) error
	WriteSummary(r *Report, runID string, statistics interface{}, path string) error
	WriteAll(r *Report, runID string, statistics interface{}, outputDir string, prefix string) error
}

// FileWriter implements OutputWriter for file-based output
type FileWriter struct{}

// NewFileWriter creates a new file-based output writer
func NewFileWriter() OutputWriter {
	return &FileWriter{}
}

// WriteAll writes the report in every format plus a YAML summary
func (fw *FileWriter) WriteAll(r *Report, runID string, statistics interface{}, outputDir string, prefix string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, f := range Formats {
		path := filepath.Join(outputDir, fmt.Sprintf("%s.graphlets.%s", prefix, f.Extension()))
		if err := fw.WriteReport(r, f, path); err != nil {
			return fmt.Errorf("failed to write %s report: %w", f, err)
		}
	}

	summaryPath := filepath.Join(outputDir, fmt.Sprintf("%s.summary.yaml", prefix))
	if err := fw.WriteSummary(r, runID, statistics, summaryPath); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// WriteReport writes r to path in format f
func (fw *FileWriter) WriteReport(r *Report, f Format, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := Write(file, r, f); err != nil {
		return err
	}
	return file.Close()
}

// WriteSummary writes per-kind totals and run statistics to path
func (fw *FileWriter) WriteSummary(r *Report, runID string, statistics interface{}, path string) error {
	kinds, err := r.KindTotals()
	if err != nil {
		return err
	}
	reduced, err := r.ReducedTotals()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(Summary{
		RunID:      runID,
		Statistics: statistics,
		Kinds:      kinds,
		Reduced:    reduced,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
