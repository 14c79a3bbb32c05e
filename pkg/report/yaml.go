package report

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/arthur-debert/iconpack/pkg/types"
	"gopkg.in/yaml.v3"
)

// Document is the serialized form of a summary
type Document struct {
	Command   string      `yaml:"command"`
	Timestamp time.Time   `yaml:"timestamp"`
	Succeeded int         `yaml:"succeeded"`
	Failed    int         `yaml:"failed"`
	Axes      []AxisEntry `yaml:"axes"`
	Warnings  []string    `yaml:"warnings,omitempty"`
}

// AxisEntry is one axis of a Document
type AxisEntry struct {
	Axis       string   `yaml:"axis"`
	OK         bool     `yaml:"ok"`
	Artifact   string   `yaml:"artifact,omitempty"`
	Icons      int      `yaml:"icons"`
	Missing    int      `yaml:"missing,omitempty"`
	Skipped    []string `yaml:"skipped,omitempty"`
	ErrorCode  string   `yaml:"error_code,omitempty"`
	Error      string   `yaml:"error,omitempty"`
	DurationMS int64    `yaml:"duration_ms"`

	ErrorDetails map[string]interface{} `yaml:"error_details,omitempty"`
}

// FromSummary converts a summary to its document form
func FromSummary(s *types.Summary) Document {
	doc := Document{
		Command:   s.Command,
		Timestamp: s.Timestamp.UTC(),
		Succeeded: len(s.Succeeded()),
		Failed:    len(s.Failed()),
		Axes:      make([]AxisEntry, 0, len(s.Results)),
		Warnings:  s.Warnings,
	}
	for _, res := range s.Results {
		entry := AxisEntry{
			Axis:       res.Axis.String(),
			OK:         res.Succeeded(),
			Artifact:   res.Artifact,
			Icons:      len(res.Written),
			Missing:    res.Missing,
			DurationMS: res.Duration.Milliseconds(),
		}
		for _, sel := range res.Skipped {
			entry.Skipped = append(entry.Skipped, sel.String())
		}
		if res.Err != nil {
			entry.ErrorCode = string(errors.GetErrorCode(res.Err))
			entry.Error = res.Err.Error()
			entry.ErrorDetails = errors.GetErrorDetails(res.Err)
		}
		doc.Axes = append(doc.Axes, entry)
	}
	return doc
}

// WriteYAML writes the summary as YAML
func WriteYAML(w io.Writer, s *types.Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromSummary(s)); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode report")
	}
	return enc.Close()
}

// WriteYAMLFile writes the summary as YAML to path
func WriteYAMLFile(path string, s *types.Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create report directory").
			WithDetail("path", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to create report").
			WithDetail("path", path)
	}
	if err := WriteYAML(f, s); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write report").
			WithDetail("path", path)
	}
	return nil
}
