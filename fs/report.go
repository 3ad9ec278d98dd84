// Package fs persists extraction reports to the local filesystem.
package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/storeinsight"
)

// ReportWriter writes JSON reports with atomic replace semantics: content
// is written to a temporary file in the target directory and renamed into
// place, so an interrupted run never leaves a truncated report.
type ReportWriter struct{}

// NewReportWriter creates a new ReportWriter.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// WriteJSON marshals v as indented JSON and writes it to path, creating
// parent directories as needed. An existing file at path is replaced.
func (w *ReportWriter) WriteJSON(path string, v any) error {
	if path == "" {
		return storeinsight.Errorf(storeinsight.EINVALID, "report path required")
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return storeinsight.Errorf(storeinsight.EINTERNAL, "encode report: %v", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
