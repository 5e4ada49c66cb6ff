package doctor

import (
	"context"
	"errors"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/slate/internal/core/config"
)

// ConfigCheck reports where the configuration came from and validates it,
// including the export directory and filename template.
type ConfigCheck struct {
	config     *config.Config
	configPath string
}

// NewConfigCheck creates a new configuration check.
func NewConfigCheck(cfg *config.Config, configPath string) *ConfigCheck {
	return &ConfigCheck{
		config:     cfg,
		configPath: configPath,
	}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if c.config == nil {
		result.fail("Config loaded", "configuration not loaded")
		return result
	}

	switch _, err := os.Stat(c.configPath); {
	case c.configPath == "":
		result.pass("Config file", "built-in defaults")
	case errors.Is(err, os.ErrNotExist):
		result.pass("Config file", c.configPath+" not found, using defaults")
	case err != nil:
		result.fail("Config file", err.Error())
	default:
		result.pass("Config file", c.configPath)
	}

	err := c.config.ValidateDeep(c.configPath)
	if err != nil {
		var fieldErrs criterio.FieldErrors
		if !errors.As(err, &fieldErrs) {
			result.fail("validation", err.Error())
		}
		for _, fe := range fieldErrs {
			label := fe.Field
			if label == "" {
				label = "validation"
			}
			result.fail(label, fe.Err.Error())
		}
	}

	for _, w := range c.config.Warnings() {
		label := w.Category
		if w.Item != "" {
			label += " (" + w.Item + ")"
		}
		result.warn(label, w.Message)
	}

	if result.Status() == StatusPass {
		result.pass("Config valid", "")
	}

	return result
}
