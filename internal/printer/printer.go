// Package printer writes styled CLI output: status lines, check items and
// boxed errors with criterio field errors expanded.
package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
	"golang.org/x/term"
)

// ANSI color codes (Tokyo Night palette)
const (
	ColorReset     = "\033[0m"
	ColorRed       = "\033[38;2;215;95;107m"  // #d75f6b
	ColorGreen     = "\033[38;2;158;206;106m" // #9ece6a
	ColorYellow    = "\033[38;2;224;175;104m" // #e0af68
	ColorGray      = "\033[38;2;86;95;137m"   // #565f89
	ColorBold      = "\033[1m"
	ColorUnderline = "\033[4m"
)

// Symbols
const (
	Check = "✔"
	Cross = "✘"
	Dot   = "•"
)

type ctxKey struct{}

// Printer writes lines to a single writer. Output is plain when the writer
// is not a terminal.
type Printer struct {
	writer io.Writer
	color  bool
}

// New creates a Printer for w. Colors are enabled when w is a terminal and
// NO_COLOR is unset.
func New(w io.Writer) *Printer {
	return &Printer{writer: w, color: useColor(w)}
}

func useColor(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewContext attaches p to ctx.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer attached to ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

// FatalError prints err in a box. Field errors get one line each. It does
// not exit.
func (p *Printer) FatalError(err error) {
	if err == nil {
		return
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		p.box("Error", []string{p.paint(ColorGray, err.Error())})
		return
	}

	var body []string
	if prefix := errorPrefix(err, fieldErrs); prefix != "" {
		body = append(body, p.paint(ColorGray, prefix), "")
	}
	for _, fe := range fieldErrs {
		line := p.paint(ColorRed, Cross) + " "
		if fe.Field != "" {
			line += p.paint(ColorGray, fe.Field+": ")
		}
		body = append(body, line+fe.Err.Error())
	}
	p.box("Validation Error", body)
}

// errorPrefix returns the wrapping context in front of the field errors,
// such as "load config".
func errorPrefix(err error, fieldErrs criterio.FieldErrors) string {
	full, inner := err.Error(), fieldErrs.Error()
	idx := strings.Index(full, inner)
	if idx <= 0 {
		return ""
	}
	return strings.TrimSuffix(full[:idx], ": ")
}

func (p *Printer) box(title string, body []string) {
	edge := p.paint(ColorRed, "│")

	var sb strings.Builder
	sb.WriteString(p.paint(ColorRed, "╭ "+title) + "\n")
	for _, line := range body {
		if line == "" {
			sb.WriteString(edge + "\n")
			continue
		}
		sb.WriteString(edge + " " + line + "\n")
	}
	sb.WriteString(p.paint(ColorRed, "╵") + "\n")

	p.write(sb.String())
}

// Successf prints a green checkmark line.
func (p *Printer) Successf(format string, args ...any) {
	p.writeln(p.paint(ColorGreen, Check+" "+fmt.Sprintf(format, args...)))
}

// Infof prints a gray dotted line.
func (p *Printer) Infof(format string, args ...any) {
	p.writeln(p.paint(ColorGray, Dot+" "+fmt.Sprintf(format, args...)))
}

// Printf prints an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	p.writeln(fmt.Sprintf(format, args...))
}

// Section prints a bold, underlined heading.
func (p *Printer) Section(title string) {
	p.writeln(p.paint(ColorBold+ColorUnderline, title))
}

// CheckItem, WarnItem and FailItem print an indented status line under a
// Section.
func (p *Printer) CheckItem(label, detail string) { p.item(ColorGreen, Check, label, detail) }
func (p *Printer) WarnItem(label, detail string)  { p.item(ColorYellow, Dot, label, detail) }
func (p *Printer) FailItem(label, detail string)  { p.item(ColorRed, Cross, label, detail) }

func (p *Printer) item(color, symbol, label, detail string) {
	line := "  " + p.paint(color, symbol) + " " + label
	if detail != "" {
		line += ": " + detail
	}
	p.writeln(line)
}

func (p *Printer) paint(color, text string) string {
	if !p.color {
		return text
	}
	return color + text + ColorReset
}

func (p *Printer) writeln(s string) { p.write(s + "\n") }

func (p *Printer) write(s string) {
	_, _ = io.WriteString(p.writer, s)
}
