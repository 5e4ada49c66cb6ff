package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/slate/pkg/tmpl"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ExportTemplateData defines available fields for the export filename template.
type ExportTemplateData struct {
	Title string
	Slug  string
	ID    string
}

// sampleExportData is used to test-render the filename template.
var sampleExportData = ExportTemplateData{
	Title: "Untitled Whiteboard",
	Slug:  "untitled-whiteboard",
	ID:    "00000000-0000-0000-0000-000000000000",
}

// ExportFilename renders the export filename template for data.
func (c *Config) ExportFilename(data ExportTemplateData) (string, error) {
	name, err := tmpl.Render(c.Export.Filename, data)
	if err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("rendered to an empty name")
	}
	if name != filepath.Base(name) {
		return "", fmt.Errorf("%q must not contain a directory", name)
	}
	return name, nil
}

// ValidateDeep performs comprehensive validation of the configuration.
// Unlike Validate(), this checks file access and renders the export
// filename template. Non-fatal findings are available from Warnings.
func (c *Config) ValidateDeep(configPath string) error {
	var errs criterio.FieldErrorsBuilder
	c.warnings = nil

	if configPath != "" {
		if info, err := os.Stat(configPath); err == nil && info.IsDir() {
			errs = errs.Append("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
		} else if err != nil && !os.IsNotExist(err) {
			errs = errs.Append("config_file", fmt.Errorf("cannot access %s: %w", configPath, err))
		}
	}

	if info, err := os.Stat(c.Export.Dir); err == nil {
		if !info.IsDir() {
			errs = errs.Append("export.dir", fmt.Errorf("%s is not a directory", c.Export.Dir))
		}
	} else if os.IsNotExist(err) {
		c.warn("Export", "export.dir", fmt.Sprintf("%s does not exist and will be created on export", c.Export.Dir))
	} else {
		errs = errs.Append("export.dir", fmt.Errorf("cannot access %s: %w", c.Export.Dir, err))
	}

	if name, err := c.ExportFilename(sampleExportData); err != nil {
		errs = errs.Append("export.filename", fmt.Errorf("template error: %w", err))
	} else if !strings.HasSuffix(strings.ToLower(name), ".png") {
		c.warn("Export", "export.filename", fmt.Sprintf("%q does not end in .png", name))
	}

	if c.History.MaxEntries == 0 && c.History.MaxBytes == 0 {
		c.warn("History", "", "undo history is unbounded; set history.max_entries or history.max_bytes to cap memory")
	}

	if err := c.Validate(); err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs = errs.Append(fe.Field, fe.Err)
			}
		} else {
			errs = errs.Append("config", err)
		}
	}

	return errs.ToError()
}

func (c *Config) warn(category, item, msg string) {
	c.warnings = append(c.warnings, ValidationWarning{
		Category: category,
		Item:     item,
		Message:  msg,
	})
}
