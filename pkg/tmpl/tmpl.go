// Package tmpl provides template rendering utilities for export file names.
package tmpl

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"
	"time"
)

var (
	slugStrip  = regexp.MustCompile(`[^a-z0-9]+`)
	unsafePath = strings.NewReplacer("/", "-", "\\", "-", ":", "-")
)

// slugify lowercases s and collapses every run of non-alphanumeric
// characters into a single dash.
func slugify(s string) string {
	s = slugStrip.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// safeName replaces path separators so a value cannot escape its directory.
func safeName(s string) string {
	return unsafePath.Replace(s)
}

// now is replaced in tests.
var now = time.Now

var funcs = template.FuncMap{
	"slug":  slugify,
	"safe":  safeName,
	"lower": strings.ToLower,
	"date": func(layout string) string {
		return now().Format(layout)
	},
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - slug: lowercase and dash-separate a string
//   - safe: replace path separators with dashes
//   - lower: lowercase a string
//   - date: format the current time with a Go layout, e.g. {{ date "2006-01-02" }}
func Render(tmpl string, data any) (string, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
