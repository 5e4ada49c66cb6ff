package printer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
)

func TestPrinter_NoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Successf("exported %s", "board.png")
	p.CheckItem("Config", "valid")
	p.FailItem("Canvas", "too large")

	assert.Equal(t, "✔ exported board.png\n  ✔ Config: valid\n  ✘ Canvas: too large\n", buf.String())
	assert.NotContains(t, buf.String(), "\033[")
}

func TestPrinter_FatalError(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.FatalError(errors.New("boom"))
	assert.Equal(t, "╭ Error\n│ boom\n╵\n", buf.String())

	buf.Reset()
	p.FatalError(nil)
	assert.Empty(t, buf.String())
}

func TestPrinter_FatalErrorFieldErrors(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	var errs criterio.FieldErrorsBuilder
	errs = errs.Append("canvas.width", errors.New("must be at least 1"))
	err := fmt.Errorf("load config: %w", errs.ToError())

	p.FatalError(err)

	out := buf.String()
	assert.Contains(t, out, "╭ Validation Error")
	assert.Contains(t, out, "│ load config")
	assert.Contains(t, out, "✘ canvas.width: must be at least 1")
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))
	assert.NotNil(t, Ctx(context.Background()))
}
