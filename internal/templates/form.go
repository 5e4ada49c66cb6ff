// Package templates builds the new-board form: a board title and one of the
// built-in board templates.
package templates

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hay-kot/criterio"

	"github.com/hay-kot/slate/internal/core/board"
	"github.com/hay-kot/slate/internal/core/tools"
	"github.com/hay-kot/slate/internal/core/validate"
	"github.com/hay-kot/slate/internal/styles"
)

// Field names accepted by --set.
const (
	FieldTitle    = "title"
	FieldTemplate = "template"
)

// FormResult holds the collected values from the new-board form.
type FormResult struct {
	Title    string
	Template string
}

// AllFieldsPrefilled returns true if both fields have prefilled values.
func AllFieldsPrefilled(prefilled map[string]string) bool {
	_, hasTitle := prefilled[FieldTitle]
	_, hasTemplate := prefilled[FieldTemplate]
	return hasTitle && hasTemplate
}

// Prefilled converts prefilled values into a result, applying defaults for
// missing fields.
func Prefilled(prefilled map[string]string) FormResult {
	res := FormResult{Title: board.DefaultTitle, Template: "blank"}
	if v, ok := prefilled[FieldTitle]; ok {
		res.Title = v
	}
	if v, ok := prefilled[FieldTemplate]; ok {
		res.Template = v
	}
	return res
}

// RunForm runs a huh form for the board title and template, using prefilled
// values as defaults. The form is skipped entirely if all fields have
// prefilled values (use AllFieldsPrefilled to check).
func RunForm(prefilled map[string]string) (*FormResult, error) {
	result := Prefilled(prefilled)

	form := huh.NewForm(huh.NewGroup(Fields(&result)...)).WithTheme(styles.FormTheme())
	if err := form.Run(); err != nil {
		return nil, err
	}

	result.Title = strings.TrimSpace(result.Title)
	return &result, nil
}

// Fields returns the form fields bound to res.
func Fields(res *FormResult) []huh.Field {
	title := huh.NewInput().
		Title("Board title").
		Placeholder(board.DefaultTitle).
		Validate(validate.Title).
		Value(&res.Title)

	tmpl := huh.NewSelect[string]().
		Title("Template").
		Options(TemplateOptions()...).
		Value(&res.Template)

	return []huh.Field{title, tmpl}
}

// TemplateOptions lists the board templates as select options.
func TemplateOptions() []huh.Option[string] {
	list := tools.Templates()
	options := make([]huh.Option[string], len(list))
	for i, t := range list {
		options[i] = huh.NewOption(fmt.Sprintf("%s (%s)", t.Name, t.Category), t.ID)
	}
	return options
}

// ParseSetValues parses --set flag values into a map.
// Format: "name=value".
func ParseSetValues(sets []string) (map[string]string, error) {
	result := make(map[string]string)

	for _, s := range sets {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid --set format %q: expected name=value", s)
		}

		name := strings.TrimSpace(parts[0])
		if name == "" {
			return nil, fmt.Errorf("invalid --set format %q: empty name", s)
		}
		if name != FieldTitle && name != FieldTemplate {
			return nil, fmt.Errorf("unknown field %q: expected %s or %s", name, FieldTitle, FieldTemplate)
		}

		result[name] = strings.TrimSpace(parts[1])
	}

	return result, nil
}

// Validate checks the collected values using criterio.
func (r FormResult) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if err := validate.Title(r.Title); err != nil {
		errs = errs.Append(FieldTitle, err)
	}
	if _, err := tools.LookupTemplate(r.Template); err != nil {
		errs = errs.Append(FieldTemplate, err)
	}

	return errs.ToError()
}
