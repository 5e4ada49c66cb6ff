package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a bounded Config exporting to a temp dir.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Export.Dir = t.TempDir()
	cfg.History.MaxEntries = 50
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, nil)
	return &cfg
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep("")
	assert.NoError(t, err, "expected valid config")
	assert.Empty(t, cfg.Warnings())
}

func TestValidateDeep_InvalidFilenameTemplate(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"syntax", "{{ .Slug }"},
		{"unknown field", "{{ .Invalid }}.png"},
		{"directory", "out/{{ .Slug }}.png"},
		{"empty", "{{ \"\" }}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			cfg.Export.Filename = tt.filename

			err := cfg.ValidateDeep("")

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, "export.filename", fieldErrs[0].Field)
			assert.Contains(t, fieldErrs[0].Err.Error(), "template error")
		})
	}
}

func TestValidateDeep_ExportDirIsFile(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(cfg.Export.Dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	cfg.Export.Dir = file

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "export.dir", fieldErrs[0].Field)
}

func TestValidateDeep_ConfigPathIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "config_file", fieldErrs[0].Field)
}

func TestValidateDeep_MissingConfigFileIsFine(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.ValidateDeep(filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestValidateDeep_IncludesShallowErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.Brush.Color = "not-a-color"
	cfg.Keybindings["q"] = Keybinding{Action: "explode"}

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "brush.color")
	assert.Contains(t, fields, "keybindings.q")
}

func TestValidateDeep_Warnings(t *testing.T) {
	cfg := validConfig(t)
	cfg.History.MaxEntries = 0
	cfg.Export.Dir = filepath.Join(cfg.Export.Dir, "later")
	cfg.Export.Filename = "{{ .Slug }}.jpg"

	require.NoError(t, cfg.ValidateDeep(""))

	warnings := cfg.Warnings()
	require.Len(t, warnings, 3)

	items := []string{warnings[0].Item, warnings[1].Item, warnings[2].Item}
	assert.Equal(t, []string{"export.dir", "export.filename", ""}, items)
	assert.Equal(t, "History", warnings[2].Category)
}

func TestExportFilename(t *testing.T) {
	cfg := validConfig(t)
	cfg.Export.Filename = "{{ .Title | slug }}-{{ .ID }}.png"

	name, err := cfg.ExportFilename(ExportTemplateData{Title: "Sprint Retro", Slug: "sprint-retro", ID: "42"})
	require.NoError(t, err)
	assert.Equal(t, "sprint-retro-42.png", name)
}
